package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"tracking-service/internal/filtering"
	"tracking-service/internal/models"
	"tracking-service/internal/services"
)

// MockShipmentService is a mock implementation of services.ShipmentService
type MockShipmentService struct {
	mock.Mock
}

var _ services.ShipmentService = (*MockShipmentService)(nil)

func (m *MockShipmentService) ListShipments(ctx context.Context, tenantID string, criteria filtering.Criteria) ([]*models.Shipment, error) {
	args := m.Called(ctx, tenantID, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Shipment), args.Error(1)
}

func (m *MockShipmentService) GetShipment(ctx context.Context, tenantID string, id uuid.UUID) (*models.Shipment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Shipment), args.Error(1)
}

func (m *MockShipmentService) CreateShipment(ctx context.Context, tenantID string, req *models.CreateShipmentRequest) (*models.Shipment, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Shipment), args.Error(1)
}

func (m *MockShipmentService) UpdateShipment(ctx context.Context, tenantID string, id uuid.UUID, req *models.UpdateShipmentRequest) (*models.Shipment, error) {
	args := m.Called(ctx, tenantID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Shipment), args.Error(1)
}

func (m *MockShipmentService) DeleteShipment(ctx context.Context, tenantID string, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockShipmentService) SetStatus(ctx context.Context, tenantID string, id uuid.UUID, status string) (*models.Shipment, error) {
	args := m.Called(ctx, tenantID, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Shipment), args.Error(1)
}

func (m *MockShipmentService) AdvanceStatus(ctx context.Context, tenantID string, id uuid.UUID) (*models.Shipment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Shipment), args.Error(1)
}

func (m *MockShipmentService) GetHistory(ctx context.Context, tenantID string, id uuid.UUID) (*models.TrackingHistoryResponse, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TrackingHistoryResponse), args.Error(1)
}

func (m *MockShipmentService) GetAnalytics(ctx context.Context, tenantID string) (*models.ShipmentAnalytics, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShipmentAnalytics), args.Error(1)
}

func (m *MockShipmentService) Statuses() []models.StatusInfo {
	args := m.Called()
	return args.Get(0).([]models.StatusInfo)
}

// MockCarrierService is a mock implementation of services.CarrierService
type MockCarrierService struct {
	mock.Mock
}

var _ services.CarrierService = (*MockCarrierService)(nil)

func (m *MockCarrierService) ListCarriers(ctx context.Context, tenantID string, activeOnly bool) ([]*models.Carrier, error) {
	args := m.Called(ctx, tenantID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Carrier), args.Error(1)
}

func (m *MockCarrierService) GetCarrier(ctx context.Context, tenantID string, id uuid.UUID) (*models.Carrier, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Carrier), args.Error(1)
}

func (m *MockCarrierService) CreateCarrier(ctx context.Context, tenantID string, req *models.CreateCarrierRequest) (*models.Carrier, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Carrier), args.Error(1)
}

func (m *MockCarrierService) UpdateCarrier(ctx context.Context, tenantID string, id uuid.UUID, req *models.UpdateCarrierRequest) (*models.Carrier, error) {
	args := m.Called(ctx, tenantID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Carrier), args.Error(1)
}

func (m *MockCarrierService) DeleteCarrier(ctx context.Context, tenantID string, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}
