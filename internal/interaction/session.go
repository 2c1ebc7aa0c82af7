// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

package interaction

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/tomtom215/anchorr/internal/logging"
	"github.com/tomtom215/anchorr/internal/metrics"
)

// ResponseWindow is how long Discord accepts edits to a deferred response.
const ResponseWindow = 15 * time.Minute

var (
	// ErrAlreadyTerminal is returned for any transition out of Terminal.
	ErrAlreadyTerminal = errors.New("interaction already has a terminal response")

	// ErrAlreadyAcknowledged is returned when a session is deferred twice or
	// replied to after deferral.
	ErrAlreadyAcknowledged = errors.New("interaction already acknowledged")

	// ErrNotAcknowledged is returned when Finish is called before Defer.
	ErrNotAcknowledged = errors.New("interaction not acknowledged")

	// ErrWrongOrigin is returned when an operation does not apply to the
	// interaction type, e.g. autocomplete choices for a command.
	ErrWrongOrigin = errors.New("operation not valid for this interaction type")
)

// State is the lifecycle position of a Session. Transitions only move
// forward: Received → Acknowledged → Terminal, or Received → Terminal.
type State int

const (
	StateReceived State = iota
	StateAcknowledged
	StateTerminal
)

func (s State) String() string {
	switch s {
	case StateReceived:
		return "received"
	case StateAcknowledged:
		return "acknowledged"
	case StateTerminal:
		return "terminal"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Origin is the kind of interaction that created a session.
type Origin string

const (
	OriginCommand      Origin = "command"
	OriginButton       Origin = "button"
	OriginAutocomplete Origin = "autocomplete"
	OriginOther        Origin = "other"
)

// OriginOf maps a Discord interaction type to an Origin.
func OriginOf(t discordgo.InteractionType) Origin {
	switch t {
	case discordgo.InteractionApplicationCommand:
		return OriginCommand
	case discordgo.InteractionMessageComponent:
		return OriginButton
	case discordgo.InteractionApplicationCommandAutocomplete:
		return OriginAutocomplete
	default:
		return OriginOther
	}
}

// Responder is the subset of *discordgo.Session a Session needs.
type Responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Session is one interaction exchange. Each transition is reserved under
// the mutex before the Discord call is made, so concurrent callers cannot
// both send a terminal response. A failed Discord call still consumes the
// transition.
type Session struct {
	responder   Responder
	interaction *discordgo.Interaction
	origin      Origin
	now         func() time.Time

	mu             sync.Mutex
	state          State
	receivedAt     time.Time
	acknowledgedAt time.Time
	terminalAt     time.Time
	abandoned      bool
}

// NewSession starts a session in StateReceived.
func NewSession(r Responder, i *discordgo.Interaction) *Session {
	return newSession(r, i, time.Now)
}

func newSession(r Responder, i *discordgo.Interaction, now func() time.Time) *Session {
	return &Session{
		responder:   r,
		interaction: i,
		origin:      OriginOf(i.Type),
		now:         now,
		state:       StateReceived,
		receivedAt:  now(),
	}
}

// ID returns the interaction id.
func (s *Session) ID() string { return s.interaction.ID }

// GuildID returns the guild the interaction came from, or "" for DMs.
func (s *Session) GuildID() string { return s.interaction.GuildID }

// Origin returns the interaction kind.
func (s *Session) Origin() Origin { return s.origin }

// Interaction returns the underlying Discord interaction.
func (s *Session) Interaction() *discordgo.Interaction { return s.interaction }

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Abandoned reports whether Finish was skipped because the response window
// had closed.
func (s *Session) Abandoned() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.abandoned
}

// transition moves from one of the allowed states to next.
func (s *Session) transition(next State, allowed ...State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateTerminal {
		return ErrAlreadyTerminal
	}
	for _, a := range allowed {
		if s.state == a {
			s.state = next
			switch next {
			case StateAcknowledged:
				s.acknowledgedAt = s.now()
			case StateTerminal:
				s.terminalAt = s.now()
			}
			return nil
		}
	}
	if next == StateTerminal {
		return ErrNotAcknowledged
	}
	return ErrAlreadyAcknowledged
}

// Defer acknowledges a command with a "thinking" response.
func (s *Session) Defer(ctx context.Context, ephemeral bool) error {
	if s.origin == OriginAutocomplete {
		return ErrWrongOrigin
	}
	return s.acknowledge(ctx, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: ephemeralFlag(ephemeral)},
	})
}

// DeferUpdate acknowledges a button press; Finish then edits the message
// carrying the button.
func (s *Session) DeferUpdate(ctx context.Context) error {
	if s.origin != OriginButton {
		return ErrWrongOrigin
	}
	return s.acknowledge(ctx, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
}

func (s *Session) acknowledge(ctx context.Context, resp *discordgo.InteractionResponse) error {
	if err := s.transition(StateAcknowledged, StateReceived); err != nil {
		return err
	}
	if err := s.responder.InteractionRespond(s.interaction, resp, discordgo.WithContext(ctx)); err != nil {
		// An unacknowledged interaction cannot be edited later.
		s.forceTerminal()
		return fmt.Errorf("acknowledge interaction: %w", err)
	}
	return nil
}

// Reply sends the single immediate response of a fast-path rejection or a
// response that needs no asynchronous work.
func (s *Session) Reply(ctx context.Context, data *discordgo.InteractionResponseData) error {
	if s.origin == OriginAutocomplete {
		return ErrWrongOrigin
	}
	if err := s.transition(StateTerminal, StateReceived); err != nil {
		if errors.Is(err, ErrNotAcknowledged) {
			return ErrAlreadyAcknowledged
		}
		return err
	}
	err := s.responder.InteractionRespond(s.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("reply to interaction: %w", err)
	}
	return nil
}

// Finish edits the acknowledged response. It is the only terminal edit. If
// the response window has closed the edit is skipped and nil is returned.
func (s *Session) Finish(ctx context.Context, edit *discordgo.WebhookEdit) error {
	if err := s.transition(StateTerminal, StateAcknowledged); err != nil {
		return err
	}

	s.mu.Lock()
	expired := s.now().Sub(s.receivedAt) >= ResponseWindow
	s.abandoned = expired
	s.mu.Unlock()

	if expired {
		metrics.InteractionsAbandoned.Inc()
		logging.Ctx(ctx).Warn().
			Str("interaction_id", s.interaction.ID).
			Msg("Response window closed, dropping final edit")
		return nil
	}

	if _, err := s.responder.InteractionResponseEdit(s.interaction, edit, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("edit interaction response: %w", err)
	}
	return nil
}

// Autocomplete answers an autocomplete interaction. choices may be empty.
func (s *Session) Autocomplete(ctx context.Context, choices []*discordgo.ApplicationCommandOptionChoice) error {
	if s.origin != OriginAutocomplete {
		return ErrWrongOrigin
	}
	if err := s.transition(StateTerminal, StateReceived); err != nil {
		return err
	}
	if choices == nil {
		choices = []*discordgo.ApplicationCommandOptionChoice{}
	}
	err := s.responder.InteractionRespond(s.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("respond to autocomplete: %w", err)
	}
	return nil
}

// Fail reports an unexpected error to the user from whatever state the
// session is in: a reply when nothing was sent yet, a follow-up message
// otherwise. Autocomplete sessions get an empty choice list.
func (s *Session) Fail(ctx context.Context, content string) error {
	if s.origin == OriginAutocomplete {
		if s.State() == StateReceived {
			return s.Autocomplete(ctx, nil)
		}
		return nil
	}

	if err := s.Reply(ctx, ephemeralMessage(content)); !errors.Is(err, ErrAlreadyAcknowledged) && !errors.Is(err, ErrAlreadyTerminal) {
		return err
	}

	s.forceTerminal()
	if s.Abandoned() {
		return nil
	}
	_, err := s.responder.FollowupMessageCreate(s.interaction, false, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("send follow-up: %w", err)
	}
	return nil
}

func (s *Session) forceTerminal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateTerminal {
		s.state = StateTerminal
		s.terminalAt = s.now()
	}
}

func ephemeralFlag(ephemeral bool) discordgo.MessageFlags {
	if ephemeral {
		return discordgo.MessageFlagsEphemeral
	}
	return 0
}

func ephemeralMessage(content string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{Content: content, Flags: discordgo.MessageFlagsEphemeral}
}
