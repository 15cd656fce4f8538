// internal/store/store.go

// Package store defines the persistence contracts the review engine depends
// on. The engine only ever sees these interfaces; postgres-backed
// implementations live in store/postgres and mutex-guarded in-memory doubles
// in store/memory.
package store

import (
	"context"
	"errors"

	"review-engine/internal/models"
)

// ErrNotFound is returned when a referenced record is absent.
var ErrNotFound = errors.New("record not found")

// ApplicantStore owns applicant records and their denormalized
// reader-completion cache.
type ApplicantStore interface {
	List(ctx context.Context) ([]models.Applicant, error)
	Get(ctx context.Context, id string) (*models.Applicant, error)
	Count(ctx context.Context) (int, error)
	CreateBatch(ctx context.Context, applicants []models.Applicant) error
	Clear(ctx context.Context) error

	// SetReaderCompletionBatch replaces each listed applicant's completion map
	// wholesale, all within one transaction.
	SetReaderCompletionBatch(ctx context.Context, completion map[string]map[string]bool) error

	// MarkReaderComplete flips exactly the one readerCompletion key, as a
	// targeted field-path write. Implementations must never load the map,
	// mutate it locally and write it back whole.
	MarkReaderComplete(ctx context.Context, applicantID, readerID string) error
}

// TeamStore owns reviewing teams.
type TeamStore interface {
	List(ctx context.Context) ([]models.Team, error)
	Get(ctx context.Context, id string) (*models.Team, error)
	Create(ctx context.Context, name string, memberIDs []string) (*models.Team, error)
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
	AddMember(ctx context.Context, teamID, userID string) error
	RemoveMember(ctx context.Context, teamID, userID string) error
}

// ReviewStore owns review work items.
type ReviewStore interface {
	Get(ctx context.Context, id string) (*models.Review, error)
	List(ctx context.Context) ([]models.Review, error)
	ListByReader(ctx context.Context, readerID string) ([]models.Review, error)

	// CreateBatch inserts all reviews in one transaction; a failed batch
	// leaves no rows behind.
	CreateBatch(ctx context.Context, reviews []models.Review) error

	// MarkComplete sets complete=true. Completing an already-complete review
	// is a no-op, not an error.
	MarkComplete(ctx context.Context, id string) error

	DeleteAll(ctx context.Context) error
	Any(ctx context.Context) (bool, error)
}

// ColumnFlag names a toggleable column attribute.
type ColumnFlag string

const (
	FlagHidden   ColumnFlag = "hidden"
	FlagIsName   ColumnFlag = "is_name"
	FlagIsEmail  ColumnFlag = "is_email"
	FlagIsResume ColumnFlag = "is_resume"
)

// ColumnStore owns the import schema. List returns columns ordered by their
// import position. Setting IsName/IsEmail/IsResume on one column clears it on
// every other, keeping at most one carrier per flag.
type ColumnStore interface {
	List(ctx context.Context) ([]models.Column, error)
	Replace(ctx context.Context, columns []models.Column) error
	SetDisplayName(ctx context.Context, id, displayName string) error
	SetFlag(ctx context.Context, id string, flag ColumnFlag, value bool) error
}

// GenerationLock serializes assignment generation. TryAcquire returns false
// without blocking when another run holds the lock.
type GenerationLock interface {
	TryAcquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// UserStore resolves caller roles and reader profiles.
type UserStore interface {
	GetRole(ctx context.Context, uid string) (string, error)
	SetRole(ctx context.Context, uid, role string) error
	List(ctx context.Context) ([]models.User, error)
	GetProfile(ctx context.Context, uid string) (*models.ReaderProfile, error)
	UpsertProfile(ctx context.Context, profile models.ReaderProfile) error
}
