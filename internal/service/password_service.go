package service

import (
	"context"

	"github.com/google/uuid"

	"mercado-service/internal/model"
	"mercado-service/internal/repository"
)

type PasswordInput struct {
	Website  string
	Username string
	Value    string
	LogoFile string
}

type PasswordService interface {
	ListPasswords(ctx context.Context, ownerID uuid.UUID) ([]model.Password, error)
	GetPassword(ctx context.Context, id, ownerID uuid.UUID) (*model.Password, error)
	CreatePassword(ctx context.Context, ownerID uuid.UUID, in PasswordInput) (*model.Password, error)
	UpdatePassword(ctx context.Context, id, ownerID uuid.UUID, in PasswordInput) (*model.Password, error)
	DeletePassword(ctx context.Context, id, ownerID uuid.UUID) (*model.Password, error)
}

type passwordService struct {
	passwordRepo repository.PasswordRepository
	relay        MediaRelay
}

func NewPasswordService(passwordRepo repository.PasswordRepository, relay MediaRelay) PasswordService {
	return &passwordService{passwordRepo: passwordRepo, relay: relay}
}

func (s *passwordService) ListPasswords(ctx context.Context, ownerID uuid.UUID) ([]model.Password, error) {
	return s.passwordRepo.FindAll(ctx, ownerID)
}

func (s *passwordService) GetPassword(ctx context.Context, id, ownerID uuid.UUID) (*model.Password, error) {
	password, err := s.passwordRepo.FindOwned(ctx, id, ownerID)
	if err != nil {
		return nil, notFoundAs(err, ErrPasswordNotFound)
	}

	return password, nil
}

func (s *passwordService) CreatePassword(ctx context.Context, ownerID uuid.UUID, in PasswordInput) (*model.Password, error) {
	if in.LogoFile == "" {
		return nil, ErrFileRequired
	}

	uploaded, err := relayIfPresent(ctx, s.relay, in.LogoFile)
	if err != nil {
		return nil, err
	}

	created, err := s.passwordRepo.Create(ctx, &model.Password{
		Website:  in.Website,
		Username: in.Username,
		Value:    in.Value,
		LogoPath: uploaded,
		UserID:   ownerID,
	})
	settleReplacement(ctx, s.relay, uploaded, nil, err)
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (s *passwordService) UpdatePassword(ctx context.Context, id, ownerID uuid.UUID, in PasswordInput) (*model.Password, error) {
	current, err := s.passwordRepo.FindOwned(ctx, id, ownerID)
	if err != nil {
		return nil, notFoundAs(err, ErrPasswordNotFound)
	}

	uploaded, err := relayIfPresent(ctx, s.relay, in.LogoFile)
	if err != nil {
		return nil, err
	}

	updated, err := s.passwordRepo.UpdateOwned(ctx, id, ownerID, model.PasswordPatch{
		Website:  &in.Website,
		Username: &in.Username,
		Value:    &in.Value,
		LogoPath: uploaded,
	})
	settleReplacement(ctx, s.relay, uploaded, current.LogoPath, err)
	if err != nil {
		return nil, notFoundAs(err, ErrPasswordNotFound)
	}

	return updated, nil
}

func (s *passwordService) DeletePassword(ctx context.Context, id, ownerID uuid.UUID) (*model.Password, error) {
	deleted, err := s.passwordRepo.DeleteOwned(ctx, id, ownerID)
	if err != nil {
		return nil, notFoundAs(err, ErrPasswordNotFound)
	}

	if deleted.LogoPath != nil {
		s.relay.DeleteByURL(ctx, *deleted.LogoPath)
	}

	return deleted, nil
}
