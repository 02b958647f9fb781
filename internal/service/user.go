package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/localtrades/contractor-directory/internal/apperrors"
	"github.com/localtrades/contractor-directory/internal/domain"
	"github.com/localtrades/contractor-directory/internal/identity"
	"github.com/localtrades/contractor-directory/internal/repository"
)

type UserService interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)

	// FindOrCreateFromProfile resolves a social sign-in profile into a local
	// user: matched by provider id first, then by email (linking the provider
	// id), creating a verified user otherwise. Returns the session handed to
	// the caller.
	FindOrCreateFromProfile(ctx context.Context, profile identity.Profile) (*domain.User, *identity.Session, error)
}

type UserServiceImpl struct {
	log  *slog.Logger
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository, log *slog.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		log:  log,
		repo: repo,
	}
}

func (s *UserServiceImpl) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("repo.GetByID failed: %w", err)
	}

	return user, nil
}

func (s *UserServiceImpl) FindOrCreateFromProfile(ctx context.Context, profile identity.Profile) (*domain.User, *identity.Session, error) {
	const op = "internal.service.user.FindOrCreateFromProfile"
	log := s.log.With(slog.String("op", op), slog.String("provider", string(profile.Provider)))

	user, err := s.getBySubject(ctx, profile)
	if err == nil {
		return user, s.session(user, profile), nil
	}

	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil, fmt.Errorf("%s: failed to get user by provider id: %w", op, err)
	}

	user, err = s.repo.GetByEmail(ctx, profile.Email)
	if err == nil {
		// Existing email account: link the provider identity to it.
		linkSubject(user, profile)
		if profile.AvatarURL != nil {
			user.Avatar = profile.AvatarURL
		}

		if err := s.repo.Update(ctx, user); err != nil {
			return nil, nil, fmt.Errorf("%s: failed to link provider identity: %w", op, err)
		}

		log.Info("linked provider to existing user", slog.String("user_id", user.ID))

		return user, s.session(user, profile), nil
	}

	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil, fmt.Errorf("%s: failed to get user by email: %w", op, err)
	}

	user = &domain.User{
		ID:       uuid.NewString(),
		Email:    profile.Email,
		Name:     profile.Name,
		Avatar:   profile.AvatarURL,
		Verified: true,
	}
	linkSubject(user, profile)

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("%s: failed to create user: %w", op, err)
	}

	log.Info("created user from provider profile", slog.String("user_id", user.ID))

	return user, s.session(user, profile), nil
}

// getBySubject scopes the subject lookup to the provider's own identifier
// column. Subject ids are only unique within a provider, so a cross-provider
// lookup could resolve to the wrong account.
func (s *UserServiceImpl) getBySubject(ctx context.Context, profile identity.Profile) (*domain.User, error) {
	switch profile.Provider {
	case identity.ProviderGoogle:
		return s.repo.GetByGoogleID(ctx, profile.SubjectID)
	default:
		return s.repo.GetByFacebookID(ctx, profile.SubjectID)
	}
}

// linkSubject writes the subject id into the provider's own field.
func linkSubject(user *domain.User, profile identity.Profile) {
	subject := profile.SubjectID

	switch profile.Provider {
	case identity.ProviderGoogle:
		user.GoogleID = &subject
	default:
		user.FacebookID = &subject
	}
}

func (s *UserServiceImpl) session(user *domain.User, profile identity.Profile) *identity.Session {
	return &identity.Session{
		UserID:   user.ID,
		Provider: profile.Provider,
	}
}
