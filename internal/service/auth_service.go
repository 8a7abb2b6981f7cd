package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"mercado-service/internal/events"
	"mercado-service/internal/model"
	"mercado-service/internal/repository"
)

type RegisterInput struct {
	FirstName string
	LastName  *string
	Email     string
	Password  string
}

type ProfileInput struct {
	FirstName string
	LastName  *string
	Email     string
	// PhotoFile is the local path of a freshly uploaded photo, if any.
	PhotoFile string
}

type AuthService interface {
	RegisterUser(ctx context.Context, in RegisterInput) (*model.User, error)
	LoginUser(ctx context.Context, email, password string) (*model.User, string, error)
	GetUserProfile(ctx context.Context, userID uuid.UUID) (*model.User, error)
	UpdateUserProfile(ctx context.Context, userID uuid.UUID, in ProfileInput) (*model.User, error)
}

type authService struct {
	userRepo    repository.UserRepository
	credentials Credentials
	relay       MediaRelay
	publisher   events.EventPublisher
}

func NewAuthService(userRepo repository.UserRepository, credentials Credentials, relay MediaRelay, publisher events.EventPublisher) AuthService {
	return &authService{
		userRepo:    userRepo,
		credentials: credentials,
		relay:       relay,
		publisher:   publisher,
	}
}

func (s *authService) RegisterUser(ctx context.Context, in RegisterInput) (*model.User, error) {
	_, err := s.userRepo.FindByEmail(ctx, in.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := s.credentials.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Create(ctx, &model.User{
		Email:        in.Email,
		PasswordHash: hashedPassword,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	logPublishError(ctx, events.SubjectUserRegistered, s.publisher.PublishUserRegistered(ctx, user))

	return user, nil
}

func (s *authService) LoginUser(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !s.credentials.Verify(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.credentials.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *authService) GetUserProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

func (s *authService) UpdateUserProfile(ctx context.Context, userID uuid.UUID, in ProfileInput) (*model.User, error) {
	current, err := s.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	uploaded, err := relayIfPresent(ctx, s.relay, in.PhotoFile)
	if err != nil {
		return nil, err
	}

	updated, err := s.userRepo.Update(ctx, userID, model.UserPatch{
		FirstName: &in.FirstName,
		LastName:  in.LastName,
		Email:     &in.Email,
		PhotoPath: uploaded,
	})
	settleReplacement(ctx, s.relay, uploaded, current.PhotoPath, err)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		default:
			return nil, err
		}
	}

	return updated, nil
}
