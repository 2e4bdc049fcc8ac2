package services

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"tracking-service/internal/events"
	"tracking-service/internal/models"
	"tracking-service/internal/repository"
)

// MockShipmentRepository is a mock implementation of repository.ShipmentRepository
type MockShipmentRepository struct {
	mock.Mock
}

var _ repository.ShipmentRepository = (*MockShipmentRepository)(nil)

func (m *MockShipmentRepository) Create(ctx context.Context, shipment *models.Shipment, event *models.ShipmentEvent) error {
	args := m.Called(ctx, shipment, event)
	if args.Error(0) == nil && shipment.ID == uuid.Nil {
		shipment.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockShipmentRepository) GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*models.Shipment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) List(ctx context.Context, tenantID string) ([]*models.Shipment, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) Update(ctx context.Context, shipment *models.Shipment, event *models.ShipmentEvent) error {
	args := m.Called(ctx, shipment, event)
	return args.Error(0)
}

func (m *MockShipmentRepository) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockShipmentRepository) ListEvents(ctx context.Context, tenantID string, shipmentID uuid.UUID) ([]models.ShipmentEvent, error) {
	args := m.Called(ctx, tenantID, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ShipmentEvent), args.Error(1)
}

// CachedAnalytics behaves like an empty cache: it always computes
func (m *MockShipmentRepository) CachedAnalytics(ctx context.Context, tenantID string, compute func() (*models.ShipmentAnalytics, error)) (*models.ShipmentAnalytics, error) {
	m.Called(ctx, tenantID)
	return compute()
}

func (m *MockShipmentRepository) GenerateTrackingNumber(ctx context.Context, tenantID string) (string, error) {
	args := m.Called(ctx, tenantID)
	return args.String(0), args.Error(1)
}

// MockCarrierRepository is a mock implementation of repository.CarrierRepository
type MockCarrierRepository struct {
	mock.Mock
}

var _ repository.CarrierRepository = (*MockCarrierRepository)(nil)

func (m *MockCarrierRepository) Create(ctx context.Context, carrier *models.Carrier) error {
	args := m.Called(ctx, carrier)
	if args.Error(0) == nil && carrier.ID == uuid.Nil {
		carrier.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockCarrierRepository) GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*models.Carrier, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Carrier), args.Error(1)
}

func (m *MockCarrierRepository) List(ctx context.Context, tenantID string, activeOnly bool) ([]*models.Carrier, error) {
	args := m.Called(ctx, tenantID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Carrier), args.Error(1)
}

func (m *MockCarrierRepository) Update(ctx context.Context, carrier *models.Carrier) error {
	args := m.Called(ctx, carrier)
	return args.Error(0)
}

func (m *MockCarrierRepository) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockCarrierRepository) Count(ctx context.Context, tenantID string) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

// MockPublisher is a mock implementation of events.Publisher
type MockPublisher struct {
	mock.Mock
}

var _ events.Publisher = (*MockPublisher)(nil)

func (m *MockPublisher) Publish(ctx context.Context, event *events.TrackingEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() {
	m.Called()
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// eventOfType matches a published event by type
func eventOfType(eventType string) interface{} {
	return mock.MatchedBy(func(e *events.TrackingEvent) bool {
		return e.EventType == eventType
	})
}
