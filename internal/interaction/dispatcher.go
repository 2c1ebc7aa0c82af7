// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

package interaction

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"runtime/debug"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/tomtom215/anchorr/internal/enrichment"
	"github.com/tomtom215/anchorr/internal/guildstore"
	"github.com/tomtom215/anchorr/internal/jellyseerr"
	"github.com/tomtom215/anchorr/internal/logging"
	"github.com/tomtom215/anchorr/internal/metrics"
	"github.com/tomtom215/anchorr/internal/models"
	"github.com/tomtom215/anchorr/internal/presentation"
	"github.com/tomtom215/anchorr/internal/tmdb"
)

// User-facing messages.
const (
	MsgNotConfigured    = "⚠️ Anchorr is not configured. An admin needs to run `/setup`."
	MsgAdminOnly        = "Only administrators can use this command."
	MsgInvalidSelection = "⚠️ Please select a valid title from the list."
	MsgUpstreamError    = "❌ An error occurred. The item might already be requested."
	MsgUnhandled        = "There was an error while executing this command!"
	MsgGuildOnly        = "This command can only be used in a server."
	MsgNoPublicURL      = "⚠️ The dashboard address is not configured. Set PUBLIC_BOT_URL and restart Anchorr."
	MsgSetup            = "Click the button below to configure Anchorr for this server."
	MsgUnknownCommand   = "Unknown command."
)

// minQueryLength is the shortest autocomplete query sent to TMDB.
const minQueryLength = 2

// Outcome is the uniform result of handling one interaction.
type Outcome string

const (
	// OutcomeReplied: Received → Terminal with a single reply.
	OutcomeReplied Outcome = "replied"
	// OutcomeCompleted: Received → Acknowledged → Terminal with a result card.
	OutcomeCompleted Outcome = "completed"
	// OutcomeFailed: Received → Acknowledged → Terminal with the generic error.
	OutcomeFailed Outcome = "failed"
	// OutcomeAbandoned: the response window closed before the final edit.
	OutcomeAbandoned Outcome = "abandoned"
	// OutcomeAutocomplete: choices (possibly none) were returned.
	OutcomeAutocomplete Outcome = "autocomplete"
	// OutcomeIgnored: nothing was sent.
	OutcomeIgnored Outcome = "ignored"
	// OutcomeError: an unexpected error was reported to the user.
	OutcomeError Outcome = "error"
	// OutcomePanicked: a panic was recovered and reported to the user.
	OutcomePanicked Outcome = "panic"
)

// Runner is satisfied by *enrichment.Pipeline.
type Runner interface {
	Run(ctx context.Context, req enrichment.Request) (*enrichment.Result, error)
}

// LinkIssuer is satisfied by *auth.SetupTokenManager.
type LinkIssuer interface {
	Generate(guildID, userID string) (string, error)
}

// Config bounds the work done per interaction.
type Config struct {
	PublicURL           string
	PipelineTimeout     time.Duration
	AutocompleteTimeout time.Duration
	AutocompleteLimit   int
}

// Dispatcher routes interactions to one handler per interaction type.
type Dispatcher struct {
	responder Responder
	guilds    guildstore.Reader
	searcher  tmdb.Searcher
	pipeline  Runner
	links     LinkIssuer
	cfg       Config
	now       func() time.Time
}

// NewDispatcher wires a Dispatcher.
func NewDispatcher(cfg Config, responder Responder, guilds guildstore.Reader, searcher tmdb.Searcher, pipeline Runner, links LinkIssuer) *Dispatcher {
	if cfg.PipelineTimeout <= 0 {
		cfg.PipelineTimeout = 30 * time.Second
	}
	if cfg.AutocompleteTimeout <= 0 {
		cfg.AutocompleteTimeout = 2500 * time.Millisecond
	}
	if cfg.AutocompleteLimit <= 0 || cfg.AutocompleteLimit > 25 {
		cfg.AutocompleteLimit = 10
	}
	return &Dispatcher{
		responder: responder,
		guilds:    guilds,
		searcher:  searcher,
		pipeline:  pipeline,
		links:     links,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Handle processes one interaction to completion. Errors and panics are
// logged and reported to the user; nothing escapes.
func (d *Dispatcher) Handle(ctx context.Context, i *discordgo.Interaction) (outcome Outcome) {
	start := d.now()
	sess := newSession(d.responder, i, d.now)
	ctx = logging.ContextWithInteractionID(logging.ContextWithGuildID(ctx, i.GuildID), i.ID)

	defer func() {
		if r := recover(); r != nil {
			outcome = OutcomePanicked
			logging.Ctx(ctx).Error().
				Str("panic", fmt.Sprint(r)).
				Str("stack", string(debug.Stack())).
				Msg("Recovered from panic while handling interaction")
			if err := sess.Fail(ctx, MsgUnhandled); err != nil {
				logging.Ctx(ctx).Warn().Err(err).Msg("Failed to report panic to user")
			}
		}
		metrics.RecordInteraction(string(sess.Origin()), string(outcome), d.now().Sub(start))
	}()

	var err error
	switch sess.Origin() {
	case OriginAutocomplete:
		outcome, err = d.handleAutocomplete(ctx, sess)
	case OriginCommand:
		outcome, err = d.handleCommand(ctx, sess)
	case OriginButton:
		outcome, err = d.handleButton(ctx, sess)
	default:
		return OutcomeIgnored
	}

	if err != nil {
		logging.Ctx(ctx).Error().
			Err(err).
			Str("origin", string(sess.Origin())).
			Str("state", sess.State().String()).
			Msg("Interaction handler failed")
		if ferr := sess.Fail(ctx, MsgUnhandled); ferr != nil {
			logging.Ctx(ctx).Warn().Err(ferr).Msg("Failed to report error to user")
		}
		return OutcomeError
	}
	return outcome
}

func (d *Dispatcher) handleAutocomplete(ctx context.Context, sess *Session) (Outcome, error) {
	query := strings.TrimSpace(focusedValue(sess.Interaction().ApplicationCommandData().Options))
	if utf8.RuneCountInString(query) < minQueryLength {
		return OutcomeAutocomplete, sess.Autocomplete(ctx, nil)
	}

	searchCtx, cancel := context.WithTimeout(ctx, d.cfg.AutocompleteTimeout)
	defer cancel()

	results, err := d.searcher.Search(searchCtx, query)
	if err != nil {
		logging.Ctx(ctx).Debug().
			Err(err).
			Str("query", logging.Sanitize(query)).
			Msg("Autocomplete search failed, returning no choices")
		results = nil
	}
	return OutcomeAutocomplete, sess.Autocomplete(ctx, presentation.AutocompleteChoices(results, d.cfg.AutocompleteLimit))
}

func (d *Dispatcher) handleCommand(ctx context.Context, sess *Session) (Outcome, error) {
	data := sess.Interaction().ApplicationCommandData()
	switch data.Name {
	case CommandSetup:
		return d.handleSetup(ctx, sess)
	case CommandSearch, CommandRequest:
		return d.handleMediaCommand(ctx, sess, optionValue(data.Options, OptionTitle), data.Name == CommandRequest)
	default:
		return OutcomeReplied, sess.Reply(ctx, ephemeralMessage(MsgUnknownCommand))
	}
}

func (d *Dispatcher) handleSetup(ctx context.Context, sess *Session) (Outcome, error) {
	guildID := sess.GuildID()
	switch {
	case guildID == "":
		return OutcomeReplied, sess.Reply(ctx, ephemeralMessage(MsgGuildOnly))
	case !isAdministrator(sess.Interaction()):
		return OutcomeReplied, sess.Reply(ctx, ephemeralMessage(MsgAdminOnly))
	case d.cfg.PublicURL == "":
		return OutcomeReplied, sess.Reply(ctx, ephemeralMessage(MsgNoPublicURL))
	}

	token, err := d.links.Generate(guildID, userID(sess.Interaction()))
	if err != nil {
		return OutcomeError, fmt.Errorf("issue setup token: %w", err)
	}
	link := fmt.Sprintf("%s/setup?guild_id=%s&token=%s",
		strings.TrimRight(d.cfg.PublicURL, "/"), url.QueryEscape(guildID), url.QueryEscape(token))

	return OutcomeReplied, sess.Reply(ctx, &discordgo.InteractionResponseData{
		Content:    MsgSetup,
		Components: presentation.SetupButton(link),
		Flags:      discordgo.MessageFlagsEphemeral,
	})
}

func (d *Dispatcher) handleMediaCommand(ctx context.Context, sess *Session, selection string, submit bool) (Outcome, error) {
	cfg, outcome, err := d.requireConfig(ctx, sess)
	if cfg == nil {
		return outcome, err
	}

	ref, err := models.ParseSelection(selection)
	if err != nil {
		return OutcomeReplied, sess.Reply(ctx, ephemeralMessage(MsgInvalidSelection))
	}

	if err := sess.Defer(ctx, cfg.EphemeralResponses); err != nil {
		return OutcomeError, err
	}
	return d.runPipeline(ctx, sess, cfg, ref, submit)
}

func (d *Dispatcher) handleButton(ctx context.Context, sess *Session) (Outcome, error) {
	customID := sess.Interaction().MessageComponentData().CustomID
	if !models.IsRequestButtonID(customID) {
		return OutcomeIgnored, nil
	}

	ref, err := models.ParseRequestButtonID(customID)
	if err != nil {
		return OutcomeReplied, sess.Reply(ctx, ephemeralMessage(MsgInvalidSelection))
	}

	cfg, outcome, err := d.requireConfig(ctx, sess)
	if cfg == nil {
		return outcome, err
	}

	if err := sess.DeferUpdate(ctx); err != nil {
		return OutcomeError, err
	}
	return d.runPipeline(ctx, sess, cfg, ref, true)
}

// requireConfig returns the guild's configuration, or replies with the
// "not configured" message and returns nil.
func (d *Dispatcher) requireConfig(ctx context.Context, sess *Session) (*models.GuildConfig, Outcome, error) {
	if sess.GuildID() == "" {
		return nil, OutcomeReplied, sess.Reply(ctx, ephemeralMessage(MsgGuildOnly))
	}

	cfg, err := d.guilds.Get(ctx, sess.GuildID())
	if err != nil && !errors.Is(err, guildstore.ErrGuildNotFound) {
		return nil, OutcomeError, fmt.Errorf("load guild config: %w", err)
	}
	if !cfg.RequestsConfigured() {
		return nil, OutcomeReplied, sess.Reply(ctx, ephemeralMessage(MsgNotConfigured))
	}
	return cfg, "", nil
}

// runPipeline runs after acknowledgment and ends with exactly one Finish.
func (d *Dispatcher) runPipeline(ctx context.Context, sess *Session, cfg *models.GuildConfig, ref models.MediaReference, submit bool) (Outcome, error) {
	pipeCtx, cancel := context.WithTimeout(ctx, d.cfg.PipelineTimeout)
	res, err := d.pipeline.Run(pipeCtx, enrichment.Request{
		Ref:    ref,
		Submit: submit,
		Target: jellyseerr.TargetFor(cfg),
	})
	cancel()

	var edit *discordgo.WebhookEdit
	outcome := OutcomeCompleted
	if err != nil {
		logging.Ctx(ctx).Error().
			Err(err).
			Str("stage", string(enrichment.StageOf(err))).
			Str("media", ref.String()).
			Bool("request", submit).
			Msg("Enrichment pipeline failed")
		edit = errorEdit(MsgUpstreamError)
		outcome = OutcomeFailed
	} else {
		status := presentation.StatusSearch
		if submit {
			status = presentation.StatusRequested
		}
		embeds := []*discordgo.MessageEmbed{presentation.MediaEmbed(res, status, cfg)}
		components := presentation.ActionButtons(ref, res.Details.IMDbID(), submit)
		content := ""
		edit = &discordgo.WebhookEdit{Content: &content, Embeds: &embeds, Components: &components}

		if submit {
			logging.Ctx(ctx).Info().
				Str("media", ref.String()).
				Str("title", logging.Sanitize(res.Details.DisplayTitle())).
				Str("user_id", userID(sess.Interaction())).
				Msg("Media requested")
		}
	}

	if err := sess.Finish(ctx, edit); err != nil {
		return OutcomeError, err
	}
	if sess.Abandoned() {
		return OutcomeAbandoned, nil
	}
	return outcome, nil
}

func errorEdit(content string) *discordgo.WebhookEdit {
	embeds := []*discordgo.MessageEmbed{}
	components := []discordgo.MessageComponent{}
	return &discordgo.WebhookEdit{Content: &content, Embeds: &embeds, Components: &components}
}

func isAdministrator(i *discordgo.Interaction) bool {
	return i.Member != nil && i.Member.Permissions&discordgo.PermissionAdministrator != 0
}

func userID(i *discordgo.Interaction) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func optionValue(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, o := range opts {
		if o.Name == name && o.Type == discordgo.ApplicationCommandOptionString {
			return o.StringValue()
		}
	}
	return ""
}

func focusedValue(opts []*discordgo.ApplicationCommandInteractionDataOption) string {
	for _, o := range opts {
		if o.Focused && o.Type == discordgo.ApplicationCommandOptionString {
			return o.StringValue()
		}
	}
	return ""
}
