package contract

import (
	"context"
	"errors"

	"bible-study-be/internal/entity"
)

// ErrProfileNotFound reports that the backend holds no profile row for the
// user yet. Callers are expected to create one.
var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	// Fetch retries transient misses before giving up with ErrProfileNotFound.
	Fetch(ctx context.Context, userId string) (*entity.UserData, error)
	Insert(ctx context.Context, data *entity.UserData) (*entity.UserData, error)
	Update(ctx context.Context, userId string, patch *entity.ProfilePatch) error
}
