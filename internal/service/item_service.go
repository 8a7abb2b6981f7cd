package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"mercado-service/internal/events"
	"mercado-service/internal/model"
	"mercado-service/internal/repository"
)

type ItemInput struct {
	Title       string
	Description *string
	Price       float64
	PhotoFile   string
}

type ItemService interface {
	ListItems(ctx context.Context, ownerID *uuid.UUID) ([]model.Item, error)
	GetItem(ctx context.Context, id uuid.UUID) (*model.Item, error)
	CreateItem(ctx context.Context, ownerID uuid.UUID, in ItemInput) (*model.Item, error)
	UpdateItem(ctx context.Context, id, ownerID uuid.UUID, in ItemInput) (*model.Item, error)
	DeleteItem(ctx context.Context, id, ownerID uuid.UUID) (*model.Item, error)
}

type itemService struct {
	itemRepo  repository.ItemRepository
	relay     MediaRelay
	publisher events.EventPublisher
}

func NewItemService(itemRepo repository.ItemRepository, relay MediaRelay, publisher events.EventPublisher) ItemService {
	return &itemService{itemRepo: itemRepo, relay: relay, publisher: publisher}
}

func (s *itemService) ListItems(ctx context.Context, ownerID *uuid.UUID) ([]model.Item, error) {
	return s.itemRepo.FindAll(ctx, ownerID)
}

func (s *itemService) GetItem(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrItemNotFound)
	}

	return item, nil
}

func (s *itemService) CreateItem(ctx context.Context, ownerID uuid.UUID, in ItemInput) (*model.Item, error) {
	uploaded, err := relayIfPresent(ctx, s.relay, in.PhotoFile)
	if err != nil {
		return nil, err
	}

	created, err := s.itemRepo.Create(ctx, &model.Item{
		Title:       in.Title,
		Description: in.Description,
		PhotoPath:   uploaded,
		Price:       in.Price,
		UserID:      ownerID,
	})
	settleReplacement(ctx, s.relay, uploaded, nil, err)
	if err != nil {
		return nil, err
	}

	logPublishError(ctx, events.SubjectItemListed, s.publisher.PublishItemListed(ctx, created))

	return created, nil
}

func (s *itemService) UpdateItem(ctx context.Context, id, ownerID uuid.UUID, in ItemInput) (*model.Item, error) {
	current, err := s.itemRepo.FindOwned(ctx, id, ownerID)
	if err != nil {
		return nil, notFoundAs(err, ErrItemNotFound)
	}

	uploaded, err := relayIfPresent(ctx, s.relay, in.PhotoFile)
	if err != nil {
		return nil, err
	}

	updated, err := s.itemRepo.UpdateOwned(ctx, id, ownerID, model.ItemPatch{
		Title:       &in.Title,
		Description: in.Description,
		PhotoPath:   uploaded,
		Price:       &in.Price,
	})
	settleReplacement(ctx, s.relay, uploaded, current.PhotoPath, err)
	if err != nil {
		return nil, notFoundAs(err, ErrItemNotFound)
	}

	return updated, nil
}

func (s *itemService) DeleteItem(ctx context.Context, id, ownerID uuid.UUID) (*model.Item, error) {
	deleted, err := s.itemRepo.DeleteOwned(ctx, id, ownerID)
	if err != nil {
		return nil, notFoundAs(err, ErrItemNotFound)
	}

	if deleted.PhotoPath != nil {
		s.relay.DeleteByURL(ctx, *deleted.PhotoPath)
	}

	logPublishError(ctx, events.SubjectItemRemoved, s.publisher.PublishItemRemoved(ctx, deleted.ID, ownerID))

	return deleted, nil
}

func notFoundAs(err, target error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return target
	}
	return err
}
