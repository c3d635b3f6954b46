package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"bible-study-be/internal/constant"
	"bible-study-be/internal/dto"
	"bible-study-be/internal/entity"
	"bible-study-be/internal/pkg/logger"
	"bible-study-be/internal/repository/contract"
	"bible-study-be/pkg/supabase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthBackend struct {
	signUpErr error
	signInErr error
}

func (f *fakeAuthBackend) SignUp(ctx context.Context, email, password string) (*supabase.AuthSession, error) {
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return &supabase.AuthSession{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresIn:    3600,
		User:         supabase.AuthUser{Id: "u1", Email: email},
	}, nil
}

func (f *fakeAuthBackend) SignInWithPassword(ctx context.Context, email, password string) (*supabase.AuthSession, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return &supabase.AuthSession{
		AccessToken: "access",
		User:        supabase.AuthUser{Id: "u1", Email: email},
	}, nil
}

func (f *fakeAuthBackend) SignOut(ctx context.Context, accessToken string) error {
	return nil
}

type conflictingProfileRepo struct {
	fakeProfileRepo
	conflicts int
	inserted  []string
}

func (r *conflictingProfileRepo) Insert(ctx context.Context, data *entity.UserData) (*entity.UserData, error) {
	r.inserted = append(r.inserted, data.Username)
	if r.conflicts > 0 {
		r.conflicts--
		return nil, supabase.ErrConflict
	}
	return data, nil
}

func TestSignUpCreatesProfileWithDefaults(t *testing.T) {
	repo := &conflictingProfileRepo{}
	svc := NewAuthService(&fakeAuthBackend{}, repo, &fakePublisher{}, logger.NewNoopLogger())

	res, err := svc.SignUp(context.Background(), dto.SignUpRequest{
		Email:    "dana@example.com",
		Password: "hunter2hunter2",
		Username: "Dana",
	})
	require.NoError(t, err)
	assert.Equal(t, "access", res.AccessToken)
	require.NotNil(t, res.Profile)
	assert.Equal(t, "Dana", res.Profile.Username)
	assert.Equal(t, string(entity.StudyModeReadThrough), res.Profile.StudyMode)
	assert.Equal(t, constant.DefaultTranslation, res.Profile.Translation)
}

func TestSignUpUsernameConflictRetriesWithSuffix(t *testing.T) {
	repo := &conflictingProfileRepo{conflicts: 1}
	svc := NewAuthService(&fakeAuthBackend{}, repo, &fakePublisher{}, logger.NewNoopLogger())

	res, err := svc.SignUp(context.Background(), dto.SignUpRequest{
		Email:    "dana@example.com",
		Password: "hunter2hunter2",
		Username: "Dana",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Profile)

	require.Len(t, repo.inserted, 2)
	assert.Equal(t, "Dana", repo.inserted[0])
	assert.True(t, strings.HasPrefix(repo.inserted[1], "Dana-"))
	assert.Equal(t, res.Profile.Username, repo.inserted[1])
}

func TestSignInBootstrapsMissingProfile(t *testing.T) {
	repo := &conflictingProfileRepo{}
	repo.err = contract.ErrProfileNotFound
	publisher := &fakePublisher{}
	svc := NewAuthService(&fakeAuthBackend{}, repo, publisher, logger.NewNoopLogger())

	res, err := svc.SignIn(context.Background(), dto.SignInRequest{
		Email:    "dana@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Profile)
	assert.Equal(t, constant.DefaultUsername, res.Profile.Username)
	assert.Equal(t, []string{constant.EventUserLogin}, publisher.events)
}

func TestSignInSucceedsWhenProfileUnavailable(t *testing.T) {
	repo := &conflictingProfileRepo{}
	repo.err = errors.New("backend timeout")
	svc := NewAuthService(&fakeAuthBackend{}, repo, &fakePublisher{}, logger.NewNoopLogger())

	res, err := svc.SignIn(context.Background(), dto.SignInRequest{
		Email:    "dana@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, "access", res.AccessToken)
	assert.Nil(t, res.Profile)
}

func TestSignInInvalidCredentials(t *testing.T) {
	svc := NewAuthService(&fakeAuthBackend{signInErr: supabase.ErrInvalidCredentials}, &conflictingProfileRepo{}, nil, logger.NewNoopLogger())

	_, err := svc.SignIn(context.Background(), dto.SignInRequest{Email: "a@b.c", Password: "wrong"})
	assert.ErrorIs(t, err, supabase.ErrInvalidCredentials)
}
