// internal/engine/generate.go

// Package engine implements the review assignment core: assignment
// generation, progress aggregation, completion recording, review packaging
// and applicant import. All persistence goes through the store interfaces so
// the components run identically against postgres or the in-memory doubles.
package engine

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"

	commonerrors "review-engine/internal/common/errors"
	"review-engine/internal/common/logger"
	"review-engine/internal/common/metrics"
	"review-engine/internal/models"
	"review-engine/internal/store"
)

// GeneratorConfig tunes batching for the assignment generator.
type GeneratorConfig struct {
	// BatchSize is the number of applicants whose writes are committed
	// together; 300 respects the per-transaction write ceiling the original
	// deployment ran under.
	BatchSize int

	// WriteRetries bounds retries of a failed batch commit before the whole
	// generation surfaces INTERNAL.
	WriteRetries int

	// Rand seeds the shuffles; tests inject a fixed source. Nil selects a
	// time-seeded source per call.
	Rand *rand.Rand
}

// Generator distributes applicants across reviewing teams and creates one
// review work item per (applicant, team member) pair.
type Generator struct {
	config     GeneratorConfig
	teams      store.TeamStore
	applicants store.ApplicantStore
	reviews    store.ReviewStore
	logger     logger.Logger
}

func NewGenerator(config GeneratorConfig, teams store.TeamStore, applicants store.ApplicantStore, reviews store.ReviewStore, log logger.Logger) *Generator {
	if config.BatchSize <= 0 {
		config.BatchSize = 300
	}
	if config.WriteRetries <= 0 {
		config.WriteRetries = 3
	}
	return &Generator{
		config:     config,
		teams:      teams,
		applicants: applicants,
		reviews:    reviews,
		logger:     log.WithFields(map[string]interface{}{"component": "generator"}),
	}
}

// GenerationSummary reports what a generation run produced. ReviewsByReader
// feeds the assignment notifications.
type GenerationSummary struct {
	Teams           int
	Applicants      int
	Reviews         int
	ReviewsByReader map[string]int
}

// Generate wipes all existing reviews and reassigns every applicant.
// Regeneration erases prior completion progress; warning the admin happens in
// the presentation layer before this is ever invoked.
func (g *Generator) Generate(ctx context.Context) (*GenerationSummary, error) {
	teams, err := g.teams.List(ctx)
	if err != nil {
		return nil, commonerrors.NewInternalError("loading teams", err)
	}
	if len(teams) == 0 {
		return nil, commonerrors.NewFailedPreconditionError("At least one reviewing team must be defined")
	}

	applicants, err := g.applicants.List(ctx)
	if err != nil {
		return nil, commonerrors.NewInternalError("loading applicants", err)
	}
	if len(applicants) == 0 {
		return nil, commonerrors.NewFailedPreconditionError("There must be at least one applicant")
	}

	// Full wipe before reassigning. Skipping this leaves orphaned reviews
	// from the previous run behind and double-counts progress.
	if err := retryWrite(g.config.WriteRetries, func() error {
		return g.reviews.DeleteAll(ctx)
	}); err != nil {
		return nil, commonerrors.NewInternalError("wiping reviews", err)
	}

	rng := g.config.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	// Fisher-Yates on both sequences. Comparator-based pseudo-shuffles are
	// biased and must not come back.
	rng.Shuffle(len(teams), func(i, j int) { teams[i], teams[j] = teams[j], teams[i] })
	rng.Shuffle(len(applicants), func(i, j int) { applicants[i], applicants[j] = applicants[j], applicants[i] })

	var (
		pendingReviews    []models.Review
		pendingCompletion = make(map[string]map[string]bool)
		created           int
		byReader          = make(map[string]int)
	)

	flush := func() error {
		if len(pendingCompletion) == 0 {
			return nil
		}
		if err := retryWrite(g.config.WriteRetries, func() error {
			return g.reviews.CreateBatch(ctx, pendingReviews)
		}); err != nil {
			return commonerrors.NewInternalError("committing review batch", err)
		}
		if err := retryWrite(g.config.WriteRetries, func() error {
			return g.applicants.SetReaderCompletionBatch(ctx, pendingCompletion)
		}); err != nil {
			return commonerrors.NewInternalError("committing completion batch", err)
		}
		for _, review := range pendingReviews {
			byReader[review.ReaderID]++
		}

		created += len(pendingReviews)
		pendingReviews = nil
		pendingCompletion = make(map[string]map[string]bool)
		return nil
	}

	for i, applicant := range applicants {
		team := teams[i%len(teams)]

		completion := make(map[string]bool, len(team.MemberIDs))
		for _, member := range team.MemberIDs {
			pendingReviews = append(pendingReviews, models.Review{
				ID:          uuid.NewString(),
				ApplicantID: applicant.ID,
				ReaderID:    member,
				Complete:    false,
			})
			completion[member] = false
		}
		// Replaces any prior completion map entirely, never merged.
		pendingCompletion[applicant.ID] = completion

		if len(pendingCompletion) >= g.config.BatchSize {
			if err := flush(); err != nil {
				return nil, err
			}
		}
	}

	if err := flush(); err != nil {
		return nil, err
	}

	metrics.AssignmentsGenerated.Inc()
	metrics.ReviewsCreated.Add(float64(created))

	g.logger.Info("assignments generated", map[string]interface{}{
		"teams":      len(teams),
		"applicants": len(applicants),
		"reviews":    created,
	})
	return &GenerationSummary{
		Teams:           len(teams),
		Applicants:      len(applicants),
		Reviews:         created,
		ReviewsByReader: byReader,
	}, nil
}

// retryWrite retries a store write a bounded number of times with a short
// doubling backoff.
func retryWrite(attempts int, operation func() error) error {
	var err error
	delay := 50 * time.Millisecond

	for i := 0; i < attempts; i++ {
		if err = operation(); err == nil {
			return nil
		}
		if i < attempts-1 {
			time.Sleep(delay)
			delay *= 2
		}
	}
	return err
}
