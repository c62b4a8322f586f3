package repository

import (
	"context"

	"github.com/google/uuid"

	"steprally/grouphub/internal/model"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// GetUsersByIDs resolves profiles in one batched query. IDs with no
	// matching row are silently omitted from the result.
	GetUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error)
}
