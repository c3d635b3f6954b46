package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bible-study-be/internal/constant"
	"bible-study-be/internal/dto"
	"bible-study-be/internal/entity"
	"bible-study-be/internal/pkg/logger"
	"bible-study-be/internal/repository/contract"
	"bible-study-be/pkg/supabase"

	"github.com/google/uuid"
)

type IAuthService interface {
	SignUp(ctx context.Context, req dto.SignUpRequest) (*dto.AuthResponse, error)
	SignIn(ctx context.Context, req dto.SignInRequest) (*dto.AuthResponse, error)
	SignOut(ctx context.Context, accessToken string) error
}

// AuthBackend is the slice of the hosted auth service this layer uses.
type AuthBackend interface {
	SignUp(ctx context.Context, email, password string) (*supabase.AuthSession, error)
	SignInWithPassword(ctx context.Context, email, password string) (*supabase.AuthSession, error)
	SignOut(ctx context.Context, accessToken string) error
}

type authService struct {
	backend   AuthBackend
	profiles  contract.ProfileRepository
	publisher IPublisherService
	logger    logger.ILogger
}

func NewAuthService(backend AuthBackend, profiles contract.ProfileRepository, publisher IPublisherService, log logger.ILogger) IAuthService {
	return &authService{
		backend:   backend,
		profiles:  profiles,
		publisher: publisher,
		logger:    log,
	}
}

func (s *authService) SignUp(ctx context.Context, req dto.SignUpRequest) (*dto.AuthResponse, error) {
	session, err := s.backend.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	profile, err := s.bootstrapProfile(ctx, session.User.Id, req.Username)
	if err != nil {
		// The account exists either way; the profile can be created on the
		// next sign-in.
		s.logger.Error("auth_service", "profile bootstrap failed", map[string]interface{}{
			"user_id": session.User.Id,
			"error":   err.Error(),
		})
	}

	return authResponse(session, profile), nil
}

func (s *authService) SignIn(ctx context.Context, req dto.SignInRequest) (*dto.AuthResponse, error) {
	session, err := s.backend.SignInWithPassword(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.Fetch(ctx, session.User.Id)
	if errors.Is(err, contract.ErrProfileNotFound) {
		profile, err = s.bootstrapProfile(ctx, session.User.Id, "")
	}
	if err != nil {
		// A slow or broken profile backend must not block sign-in.
		s.logger.Warn("auth_service", "signed in without profile", map[string]interface{}{
			"user_id": session.User.Id,
			"error":   err.Error(),
		})
		profile = nil
	}

	if s.publisher != nil {
		pubErr := s.publisher.PublishStudyEvent(ctx, constant.EventUserLogin, map[string]interface{}{
			"user_id": session.User.Id,
		})
		if pubErr != nil {
			s.logger.Warn("auth_service", "failed to publish login event", map[string]interface{}{
				"user_id": session.User.Id,
				"error":   pubErr.Error(),
			})
		}
	}

	return authResponse(session, profile), nil
}

func (s *authService) SignOut(ctx context.Context, accessToken string) error {
	return s.backend.SignOut(ctx, accessToken)
}

// bootstrapProfile creates the profile row with defaults. A username conflict
// gets one retry with a short random suffix.
func (s *authService) bootstrapProfile(ctx context.Context, userId, username string) (*entity.UserData, error) {
	if username == "" {
		username = constant.DefaultUsername
	}

	profile, err := s.profiles.Insert(ctx, defaultProfile(userId, username))
	if errors.Is(err, supabase.ErrConflict) {
		suffixed := fmt.Sprintf("%s-%s", username, uuid.New().String()[:4])
		s.logger.Info("auth_service", "username taken, retrying with suffix", map[string]interface{}{
			"user_id":  userId,
			"username": suffixed,
		})
		profile, err = s.profiles.Insert(ctx, defaultProfile(userId, suffixed))
	}
	return profile, err
}

func defaultProfile(userId, username string) *entity.UserData {
	return &entity.UserData{
		Id:                userId,
		Username:          username,
		StudyMode:         entity.StudyModeReadThrough,
		ReadThroughIndex:  0,
		CompletedChapters: []string{},
		Bookmarks:         []string{},
		Notes:             map[string]string{},
		CachedContent:     map[string]*entity.ChapterContentBundle{},
		Translation:       constant.DefaultTranslation,
		UpdatedAt:         time.Now(),
	}
}

func authResponse(session *supabase.AuthSession, profile *entity.UserData) *dto.AuthResponse {
	return &dto.AuthResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		ExpiresIn:    session.ExpiresIn,
		Profile:      dto.NewProfileResponse(profile),
	}
}
