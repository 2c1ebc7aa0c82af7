// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

package presentation

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// NotAvailable is shown for missing genre, runtime and rating values.
const NotAvailable = "N/A"

// NoDescription is shown when no overview or plot exists.
const NoDescription = "No description available."

const (
	// maxFieldValue is Discord's embed field value limit.
	maxFieldValue = 1024
	// maxEmbedTitle is Discord's embed title limit.
	maxEmbedTitle = 256
	// maxChoiceName is Discord's autocomplete choice name limit.
	maxChoiceName = 100
)

// MinutesToHhMm formats a runtime as "2h 28m". Non-positive values are N/A.
func MinutesToHhMm(minutes int) string {
	if minutes <= 0 {
		return NotAvailable
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// ParseColor converts "#rrggbb" to Discord's integer color. Invalid input
// falls back to fallback, which must itself be valid.
func ParseColor(hex, fallback string) int {
	if c, ok := parseHex(hex); ok {
		return c
	}
	c, _ := parseHex(fallback)
	return c
}

func parseHex(hex string) (int, bool) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, false
	}
	return int(v), true
}

// FormatRating renders an IMDb rating as "8.8/10", or N/A.
func FormatRating(rating string) string {
	if rating == "" || rating == NotAvailable {
		return NotAvailable
	}
	return rating + "/10"
}

// truncateField keeps a field value within Discord's limit.
func truncateField(s string) string {
	return truncate(s, maxFieldValue)
}

// truncate shortens s to at most limit runes, ending in "...".
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-3]) + "..."
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
