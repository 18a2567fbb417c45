package service

import "errors"

var (
	// ErrUnknownUser rejects any session operation for an unregistered id.
	// Surfaced as a 401-style failure, never retried.
	ErrUnknownUser = errors.New("unknown user")

	// ErrNotReady means the interview has not committed to recommendations yet
	ErrNotReady = errors.New("recommendation not ready")

	// ErrEmptyRecommendations means can_recommend flipped but no titles were
	// stored. Distinguished from "not ready" as a data-integrity signal.
	ErrEmptyRecommendations = errors.New("no recommended titles stored")

	// ErrNoCatalogMatch means stored titles resolve to no catalog record
	ErrNoCatalogMatch = errors.New("no matching catalog data")

	// ErrNoKeywords rejects the legacy embedding path for sessions that have
	// not produced any interest terms yet
	ErrNoKeywords = errors.New("no keywords accumulated for user")
)
