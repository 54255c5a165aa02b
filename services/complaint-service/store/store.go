// Package store owns all complaint records. Handlers only ever touch records
// through a Store; backends are picked at startup.
package store

import (
	"context"
	"errors"

	"complaint-portal/services/complaint-service/models"
)

// ErrNotFound signals an unknown complaint id.
var ErrNotFound = errors.New("complaint not found")

type Store interface {
	// List returns all complaints ordered by createdAt descending, ties
	// broken by insertion order.
	List(ctx context.Context) ([]models.Complaint, error)

	// FindByID returns the matching complaint or ErrNotFound.
	FindByID(ctx context.Context, id string) (*models.Complaint, error)

	// Append stores a new complaint under its pre-assigned id.
	Append(ctx context.Context, c *models.Complaint) error

	// Upvote records addr in the complaint's upvoter set. A repeat upvote
	// from the same addr is a no-op; the current record is returned either
	// way.
	Upvote(ctx context.Context, id, addr string) (*models.Complaint, error)

	// SetStatus replaces the complaint's status and refreshes updatedAt.
	SetStatus(ctx context.Context, id, status string) (*models.Complaint, error)

	// Ping reports backend connectivity for health checks.
	Ping(ctx context.Context) error
}
