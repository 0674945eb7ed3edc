package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"campus-transport-backend/internal/domain"
)

// MockPool
type MockPool struct {
	mock.Mock
	kind domain.PoolKind
}

func (m *MockPool) Kind() domain.PoolKind { return m.kind }
func (m *MockPool) Get(ctx context.Context, id string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}
func (m *MockPool) List(ctx context.Context) ([]domain.InventoryItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}
func (m *MockPool) ReserveUnit(ctx context.Context, itemID, userID, location string, fee int64) error {
	args := m.Called(ctx, itemID, userID, location, fee)
	return args.Error(0)
}
func (m *MockPool) ReleaseUnit(ctx context.Context, itemID, userID string, fee int64) error {
	args := m.Called(ctx, itemID, userID, fee)
	return args.Error(0)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.UserAccount) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.UserAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserAccount), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.UserAccount, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserAccount), args.Error(1)
}
func (m *MockUserRepo) UpdateProfile(ctx context.Context, id, firstName, lastName, email string) (*domain.UserAccount, error) {
	args := m.Called(ctx, id, firstName, lastName, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserAccount), args.Error(1)
}
func (m *MockUserRepo) ListWithActiveRentals(ctx context.Context) ([]domain.UserAccount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.UserAccount), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]domain.Notification), args.Error(1)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRentalReceipt(ctx context.Context, email, name, itemID, location string, fee int64) error {
	args := m.Called(ctx, email, name, itemID, location, fee)
	return args.Error(0)
}
func (m *MockEmailService) SendReturnReceipt(ctx context.Context, email, name, itemID string, fee int64) error {
	args := m.Called(ctx, email, name, itemID, fee)
	return args.Error(0)
}
func (m *MockEmailService) SendEmergencyAlert(ctx context.Context, toEmail, fromName, message, position string) error {
	args := m.Called(ctx, toEmail, fromName, message, position)
	return args.Error(0)
}

// MockTokenManager
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) Verify(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}
func (m *MockTokenManager) GenerateAccessToken(userID, email string) (string, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Error(1)
}

// MockReferenceService
type MockReferenceService struct {
	mock.Mock
}

func (m *MockReferenceService) ListSchedules(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
func (m *MockReferenceService) ListBuildings(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
func (m *MockReferenceService) InvalidateCache(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
