package repository

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Tesseract-Nexus/go-shared/cache"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"tracking-service/internal/models"
)

var (
	ErrNotFound = errors.New("not found")
)

// ShipmentRepository handles database operations for shipments and their
// status events
type ShipmentRepository interface {
	Create(ctx context.Context, shipment *models.Shipment, event *models.ShipmentEvent) error
	GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*models.Shipment, error)
	List(ctx context.Context, tenantID string) ([]*models.Shipment, error)
	Update(ctx context.Context, shipment *models.Shipment, event *models.ShipmentEvent) error
	Delete(ctx context.Context, tenantID string, id uuid.UUID) error
	ListEvents(ctx context.Context, tenantID string, shipmentID uuid.UUID) ([]models.ShipmentEvent, error)
	CachedAnalytics(ctx context.Context, tenantID string, compute func() (*models.ShipmentAnalytics, error)) (*models.ShipmentAnalytics, error)
	GenerateTrackingNumber(ctx context.Context, tenantID string) (string, error)
}

type shipmentRepository struct {
	db    *gorm.DB
	cache *cache.CacheLayer
	ttls  CacheTTLs
}

// NewShipmentRepository creates a new shipment repository. layer may be nil.
func NewShipmentRepository(db *gorm.DB, layer *cache.CacheLayer, ttls CacheTTLs) ShipmentRepository {
	return &shipmentRepository{db: db, cache: layer, ttls: ttls.withDefaults()}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Create inserts a shipment together with its initial status event
func (r *shipmentRepository) Create(ctx context.Context, shipment *models.Shipment, event *models.ShipmentEvent) error {
	if shipment.ID == uuid.Nil {
		shipment.ID = uuid.New()
	}
	now := time.Now().UTC()
	if shipment.CreatedAt.IsZero() {
		shipment.CreatedAt = now
	}
	shipment.UpdatedAt = now

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(shipment).Error; err != nil {
			return err
		}
		return addEvent(tx, shipment.ID, event)
	})
	if err != nil {
		return fmt.Errorf("create shipment: %w", err)
	}
	invalidateShipmentReads(ctx, r.cache, shipment.TenantID)
	return nil
}

func addEvent(tx *gorm.DB, shipmentID uuid.UUID, event *models.ShipmentEvent) error {
	if event == nil {
		return nil
	}
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	event.ShipmentID = shipmentID
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	return tx.Create(event).Error
}

// GetByID retrieves a shipment by ID
func (r *shipmentRepository) GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*models.Shipment, error) {
	var shipment models.Shipment
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&shipment).Error
	if err != nil {
		return nil, translate(err)
	}
	return &shipment, nil
}

// List returns the tenant's full shipment collection, newest first. Reads go
// through the cache when one is configured.
func (r *shipmentRepository) List(ctx context.Context, tenantID string) ([]*models.Shipment, error) {
	if r.cache != nil {
		var shipments []*models.Shipment
		err := r.cache.GetOrSetJSON(ctx, shipmentListKey(tenantID), &shipments, r.ttls.List, func() (any, error) {
			return r.listFromDB(ctx, tenantID)
		})
		if err != nil {
			return nil, err
		}
		if shipments == nil {
			shipments = []*models.Shipment{}
		}
		return shipments, nil
	}

	return r.listFromDB(ctx, tenantID)
}

func (r *shipmentRepository) listFromDB(ctx context.Context, tenantID string) ([]*models.Shipment, error) {
	shipments := []*models.Shipment{}
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&shipments).Error
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	return shipments, nil
}

// Update saves every column of shipment, last write wins. A non-nil event
// is recorded in the same transaction.
func (r *shipmentRepository) Update(ctx context.Context, shipment *models.Shipment, event *models.ShipmentEvent) error {
	shipment.UpdatedAt = time.Now().UTC()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Shipment{}).
			Where("id = ? AND tenant_id = ?", shipment.ID, shipment.TenantID).
			Select("*").
			Omit("id", "tenant_id", "created_at").
			Updates(shipment)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return addEvent(tx, shipment.ID, event)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("update shipment: %w", err)
	}
	invalidateShipmentReads(ctx, r.cache, shipment.TenantID)
	return nil
}

// Delete removes a shipment and its events. Deleting a missing shipment
// returns ErrNotFound.
func (r *shipmentRepository) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&models.Shipment{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("shipment_id = ?", id).Delete(&models.ShipmentEvent{}).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete shipment: %w", err)
	}
	invalidateShipmentReads(ctx, r.cache, tenantID)
	return nil
}

// ListEvents returns the recorded status events of a shipment, oldest first
func (r *shipmentRepository) ListEvents(ctx context.Context, tenantID string, shipmentID uuid.UUID) ([]models.ShipmentEvent, error) {
	// First verify the shipment belongs to this tenant
	if _, err := r.GetByID(ctx, tenantID, shipmentID); err != nil {
		return nil, err
	}

	events := []models.ShipmentEvent{}
	err := r.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID).
		Order("timestamp ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("list shipment events: %w", err)
	}
	return events, nil
}

// CachedAnalytics returns the tenant's cached aggregate, calling compute on a
// miss. Without a cache it always computes.
func (r *shipmentRepository) CachedAnalytics(ctx context.Context, tenantID string, compute func() (*models.ShipmentAnalytics, error)) (*models.ShipmentAnalytics, error) {
	if r.cache == nil {
		return compute()
	}
	var result models.ShipmentAnalytics
	err := r.cache.GetOrSetJSON(ctx, analyticsKey(tenantID), &result, r.ttls.Analytics, func() (any, error) {
		return compute()
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GenerateTrackingNumber generates a tracking number unique within the tenant
func (r *shipmentRepository) GenerateTrackingNumber(ctx context.Context, tenantID string) (string, error) {
	for i := 0; i < 10; i++ {
		number := newTrackingNumber()

		var count int64
		err := r.db.WithContext(ctx).Model(&models.Shipment{}).
			Where("tenant_id = ? AND tracking_number = ?", tenantID, number).
			Count(&count).Error
		if err != nil {
			return "", err
		}
		if count == 0 {
			return number, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique tracking number after 10 attempts")
}

// newTrackingNumber generates a random tracking number (format: TRK-XXXXXXXX)
func newTrackingNumber() string {
	bytes := make([]byte, 4)
	_, _ = rand.Read(bytes)
	return "TRK-" + strings.ToUpper(hex.EncodeToString(bytes))
}
