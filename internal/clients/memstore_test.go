package clients

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"tracking-service/internal/models"
	"tracking-service/internal/repository"
)

// memShipments is an in-memory repository.ShipmentRepository
type memShipments struct {
	mu      sync.Mutex
	order   []uuid.UUID
	byID    map[uuid.UUID]models.Shipment
	events  map[uuid.UUID][]models.ShipmentEvent
	counter int
}

var _ repository.ShipmentRepository = (*memShipments)(nil)

func newMemShipments() *memShipments {
	return &memShipments{
		byID:   map[uuid.UUID]models.Shipment{},
		events: map[uuid.UUID][]models.ShipmentEvent{},
	}
}

func (m *memShipments) Create(_ context.Context, shipment *models.Shipment, event *models.ShipmentEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	shipment.ID = uuid.New()
	shipment.CreatedAt = time.Now().UTC()
	shipment.UpdatedAt = shipment.CreatedAt
	m.byID[shipment.ID] = *shipment
	m.order = append(m.order, shipment.ID)
	m.record(shipment.ID, event)
	return nil
}

func (m *memShipments) GetByID(_ context.Context, tenantID string, id uuid.UUID) (*models.Shipment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.byID[id]
	if !ok || stored.TenantID != tenantID {
		return nil, repository.ErrNotFound
	}
	return &stored, nil
}

func (m *memShipments) List(_ context.Context, tenantID string) ([]*models.Shipment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []*models.Shipment{}
	for _, id := range m.order {
		stored := m.byID[id]
		if stored.TenantID == tenantID {
			out = append(out, &stored)
		}
	}
	return out, nil
}

func (m *memShipments) Update(_ context.Context, shipment *models.Shipment, event *models.ShipmentEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[shipment.ID]; !ok {
		return repository.ErrNotFound
	}
	shipment.UpdatedAt = time.Now().UTC()
	m.byID[shipment.ID] = *shipment
	m.record(shipment.ID, event)
	return nil
}

func (m *memShipments) Delete(_ context.Context, tenantID string, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.byID[id]
	if !ok || stored.TenantID != tenantID {
		return repository.ErrNotFound
	}
	delete(m.byID, id)
	delete(m.events, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *memShipments) ListEvents(_ context.Context, _ string, shipmentID uuid.UUID) ([]models.ShipmentEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.ShipmentEvent{}, m.events[shipmentID]...), nil
}

func (m *memShipments) CachedAnalytics(_ context.Context, _ string, compute func() (*models.ShipmentAnalytics, error)) (*models.ShipmentAnalytics, error) {
	return compute()
}

func (m *memShipments) GenerateTrackingNumber(_ context.Context, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("TRK-%08d", m.counter), nil
}

func (m *memShipments) record(shipmentID uuid.UUID, event *models.ShipmentEvent) {
	if event == nil {
		return
	}
	event.ID = uuid.New()
	event.ShipmentID = shipmentID
	m.events[shipmentID] = append(m.events[shipmentID], *event)
}

// memCarriers is an empty repository.CarrierRepository
type memCarriers struct{}

var _ repository.CarrierRepository = memCarriers{}

func (memCarriers) Create(context.Context, *models.Carrier) error { return nil }

func (memCarriers) GetByID(context.Context, string, uuid.UUID) (*models.Carrier, error) {
	return nil, repository.ErrNotFound
}

func (memCarriers) List(context.Context, string, bool) ([]*models.Carrier, error) {
	return []*models.Carrier{}, nil
}

func (memCarriers) Update(context.Context, *models.Carrier) error { return repository.ErrNotFound }

func (memCarriers) Delete(context.Context, string, uuid.UUID) error { return repository.ErrNotFound }

func (memCarriers) Count(context.Context, string) (int64, error) { return 0, nil }
