// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SetupTokenIssuer is the iss claim of setup tokens.
const SetupTokenIssuer = "anchorr"

var (
	// ErrInvalidToken covers malformed, tampered and expired tokens.
	ErrInvalidToken = errors.New("invalid setup token")

	// ErrGuildMismatch is returned when a valid token is presented for a
	// different guild.
	ErrGuildMismatch = errors.New("setup token was issued for another guild")
)

// SetupClaims authorize one Discord user to configure one guild.
type SetupClaims struct {
	GuildID string `json:"guild_id"`
	jwt.RegisteredClaims
}

// SetupTokenManager issues and validates the short-lived tokens embedded in
// the /setup link.
type SetupTokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSetupTokenManager creates a manager. secret must be non-empty.
func NewSetupTokenManager(secret string, ttl time.Duration) (*SetupTokenManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("SETUP_TOKEN_SECRET is required but was empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("setup token ttl must be positive, got %v", ttl)
	}
	return &SetupTokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// TTL returns the token lifetime.
func (m *SetupTokenManager) TTL() time.Duration { return m.ttl }

// Generate signs a token for userID scoped to guildID.
func (m *SetupTokenManager) Generate(guildID, userID string) (string, error) {
	now := m.now()
	claims := &SetupClaims{
		GuildID: guildID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    SetupTokenIssuer,
			Subject:   userID,
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate parses tokenString and returns its claims. Only HS256 is
// accepted.
func (m *SetupTokenManager) Validate(tokenString string) (*SetupClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SetupClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(SetupTokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*SetupClaims)
	if !ok || !token.Valid || claims.GuildID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ValidateForGuild validates tokenString and checks it covers guildID.
func (m *SetupTokenManager) ValidateForGuild(tokenString, guildID string) (*SetupClaims, error) {
	claims, err := m.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.GuildID != guildID {
		return nil, ErrGuildMismatch
	}
	return claims, nil
}
