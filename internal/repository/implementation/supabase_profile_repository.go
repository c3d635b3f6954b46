package implementation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bible-study-be/internal/entity"
	"bible-study-be/internal/mapper"
	"bible-study-be/internal/pkg/logger"
	"bible-study-be/internal/repository/contract"
	"bible-study-be/pkg/supabase"
)

const (
	fetchAttempts = 3
	fetchTimeout  = 2 * time.Second
)

// fetchBackoff spaces the retries after a missing row. The row is written by
// the backend shortly after signup, so early misses usually resolve in a
// second or two.
var fetchBackoff = []time.Duration{500 * time.Millisecond, 1000 * time.Millisecond}

// ProfileRows is the slice of the auth backend the repository depends on.
type ProfileRows interface {
	SelectProfileRow(ctx context.Context, userId string) (map[string]interface{}, error)
	InsertProfileRow(ctx context.Context, row map[string]interface{}) (map[string]interface{}, error)
	UpdateProfileRow(ctx context.Context, userId string, patch map[string]interface{}) error
}

type supabaseProfileRepository struct {
	rows   ProfileRows
	mapper *mapper.ProfileMapper
	logger logger.ILogger
	sleep  func(time.Duration)
}

func NewSupabaseProfileRepository(rows ProfileRows, m *mapper.ProfileMapper, log logger.ILogger) contract.ProfileRepository {
	return &supabaseProfileRepository{
		rows:   rows,
		mapper: m,
		logger: log,
		sleep:  time.Sleep,
	}
}

// Fetch loads the profile row, retrying a missing row up to fetchAttempts
// times. Every attempt gets its own deadline; a timeout aborts the whole
// fetch because the caller's request budget is already gone. Only a missing
// row is retried. When all attempts miss, the profile genuinely does not
// exist yet and the caller should create it.
func (r *supabaseProfileRepository) Fetch(ctx context.Context, userId string) (*entity.UserData, error) {
	for attempt := 0; attempt < fetchAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
		row, err := r.rows.SelectProfileRow(attemptCtx, userId)
		cancel()

		if err == nil {
			return r.mapper.DecodeRow(row), nil
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("profile fetch timed out: %w", err)
		}
		if !errors.Is(err, supabase.ErrRowNotFound) {
			return nil, err
		}

		if attempt < len(fetchBackoff) {
			r.logger.Warn("profile_repository", "profile row missing, retrying", map[string]interface{}{
				"user_id": userId,
				"attempt": attempt + 1,
			})
			r.sleep(fetchBackoff[attempt])
		}
	}

	return nil, contract.ErrProfileNotFound
}

// Insert creates the profile row and returns the stored form. A conflict is
// surfaced as supabase.ErrConflict so the caller can resolve the username.
func (r *supabaseProfileRepository) Insert(ctx context.Context, data *entity.UserData) (*entity.UserData, error) {
	row, err := r.rows.InsertProfileRow(ctx, r.mapper.EncodeRow(data))
	if err != nil {
		return nil, err
	}
	return r.mapper.DecodeRow(row), nil
}

// Update writes only the fields the patch names. An empty patch is a no-op.
func (r *supabaseProfileRepository) Update(ctx context.Context, userId string, patch *entity.ProfilePatch) error {
	encoded := r.mapper.EncodePatch(patch)
	if len(encoded) == 0 {
		return nil
	}
	return r.rows.UpdateProfileRow(ctx, userId, encoded)
}
