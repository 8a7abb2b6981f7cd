package service_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"mercado-service/internal/model"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id uuid.UUID, patch model.UserPatch) (*model.User, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, item *model.Item) (*model.Item, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockItemRepository) FindAll(ctx context.Context, ownerID *uuid.UUID) ([]model.Item, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]model.Item), args.Error(1)
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockItemRepository) FindOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Item, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockItemRepository) UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, patch model.ItemPatch) (*model.Item, error) {
	args := m.Called(ctx, id, ownerID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockItemRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Item, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

type MockPasswordRepository struct {
	mock.Mock
}

func (m *MockPasswordRepository) Create(ctx context.Context, password *model.Password) (*model.Password, error) {
	args := m.Called(ctx, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Password), args.Error(1)
}

func (m *MockPasswordRepository) FindAll(ctx context.Context, ownerID uuid.UUID) ([]model.Password, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]model.Password), args.Error(1)
}

func (m *MockPasswordRepository) FindOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Password, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Password), args.Error(1)
}

func (m *MockPasswordRepository) UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, patch model.PasswordPatch) (*model.Password, error) {
	args := m.Called(ctx, id, ownerID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Password), args.Error(1)
}

func (m *MockPasswordRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Password, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Password), args.Error(1)
}

type MockRelay struct {
	mock.Mock
}

func (m *MockRelay) Upload(ctx context.Context, localPath string) (string, error) {
	args := m.Called(ctx, localPath)
	return args.String(0), args.Error(1)
}

func (m *MockRelay) DeleteByURL(ctx context.Context, remoteURL string) {
	m.Called(ctx, remoteURL)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishUserRegistered(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockPublisher) PublishItemListed(ctx context.Context, item *model.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockPublisher) PublishItemRemoved(ctx context.Context, itemID, ownerID uuid.UUID) error {
	return m.Called(ctx, itemID, ownerID).Error(0)
}
