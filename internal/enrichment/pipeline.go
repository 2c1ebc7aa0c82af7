// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

// Package enrichment assembles the data behind every card Anchorr renders.
//
// Run serves /search, /request and the Request button: optional submission
// to Jellyseerr, TMDB details, a best-effort OMDb lookup and backdrop
// selection. Notification serves coalesced Jellyfin events, which already
// carry their own metadata and only need the OMDb supplement.
package enrichment

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/anchorr/internal/jellyseerr"
	"github.com/tomtom215/anchorr/internal/logging"
	"github.com/tomtom215/anchorr/internal/models"
	"github.com/tomtom215/anchorr/internal/omdb"
	"github.com/tomtom215/anchorr/internal/tmdb"
)

// Stage names the mandatory pipeline step that failed.
type Stage string

const (
	StageSubmit  Stage = "submit"
	StageDetails Stage = "details"
)

// StageError is returned when a mandatory step fails.
type StageError struct {
	Stage Stage
	Ref   models.MediaReference
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("enrichment %s failed for %s: %v", e.Stage, e.Ref, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// StageOf returns the failed stage of err, or "".
func StageOf(err error) Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}

// DetailsFetcher is satisfied by *tmdb.Client.
type DetailsFetcher interface {
	Details(ctx context.Context, ref models.MediaReference) (*tmdb.Details, error)
}

// Request describes one pipeline run.
type Request struct {
	Ref    models.MediaReference
	Submit bool
	Target jellyseerr.Target
}

// Result is everything the presentation layer needs for a media card.
type Result struct {
	Ref       models.MediaReference
	Details   *tmdb.Details
	OMDb      *omdb.Title // nil when the lookup was skipped or failed
	Backdrop  string      // TMDB file path, "" when none
	Requested bool
}

// Notification is a coalesced Jellyfin event plus its OMDb supplement.
type Notification struct {
	Event *models.JellyfinItemAdded
	OMDb  *omdb.Title
}

// Pipeline runs enrichment against the capability adapters.
type Pipeline struct {
	details   DetailsFetcher
	ratings   omdb.Looker
	submitter jellyseerr.Submitter
}

// NewPipeline wires the adapters. ratings may be nil to disable OMDb.
func NewPipeline(details DetailsFetcher, ratings omdb.Looker, submitter jellyseerr.Submitter) *Pipeline {
	return &Pipeline{details: details, ratings: ratings, submitter: submitter}
}

// Run executes the pipeline. Submission and details failures are returned
// as *StageError; the OMDb step never fails the run.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	if _, err := req.Ref.TMDBID(); err != nil {
		return nil, err
	}

	if req.Submit {
		if err := p.submitter.Submit(ctx, req.Target, req.Ref); err != nil {
			return nil, &StageError{Stage: StageSubmit, Ref: req.Ref, Err: err}
		}
	}

	details, err := p.details.Details(ctx, req.Ref)
	if err != nil {
		return nil, &StageError{Stage: StageDetails, Ref: req.Ref, Err: err}
	}

	return &Result{
		Ref:       req.Ref,
		Details:   details,
		OMDb:      p.lookup(ctx, details.IMDbID()),
		Backdrop:  details.BestBackdrop(),
		Requested: req.Submit,
	}, nil
}

// Notification enriches a coalesced event. It cannot fail.
func (p *Pipeline) Notification(ctx context.Context, event *models.JellyfinItemAdded) *Notification {
	return &Notification{Event: event, OMDb: p.lookup(ctx, event.ProviderImdb)}
}

// lookup is the best-effort OMDb step.
func (p *Pipeline) lookup(ctx context.Context, imdbID string) *omdb.Title {
	if p.ratings == nil || imdbID == "" {
		return nil
	}
	title, err := p.ratings.Lookup(ctx, imdbID)
	if err != nil {
		if !errors.Is(err, omdb.ErrDisabled) {
			logging.Ctx(ctx).Debug().
				Str("imdb_id", imdbID).
				Err(err).
				Msg("OMDb lookup failed, continuing without it")
		}
		return nil
	}
	return title
}
