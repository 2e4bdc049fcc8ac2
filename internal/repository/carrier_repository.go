package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Tesseract-Nexus/go-shared/cache"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"tracking-service/internal/models"
)

// CarrierRepository handles database operations for the carrier registry
type CarrierRepository interface {
	Create(ctx context.Context, carrier *models.Carrier) error
	GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*models.Carrier, error)
	List(ctx context.Context, tenantID string, activeOnly bool) ([]*models.Carrier, error)
	Update(ctx context.Context, carrier *models.Carrier) error
	Delete(ctx context.Context, tenantID string, id uuid.UUID) error
	Count(ctx context.Context, tenantID string) (int64, error)
}

type carrierRepository struct {
	db    *gorm.DB
	cache *cache.CacheLayer
	ttls  CacheTTLs
}

// NewCarrierRepository creates a new carrier repository. layer may be nil.
func NewCarrierRepository(db *gorm.DB, layer *cache.CacheLayer, ttls CacheTTLs) CarrierRepository {
	return &carrierRepository{db: db, cache: layer, ttls: ttls.withDefaults()}
}

// Create registers a carrier
func (r *carrierRepository) Create(ctx context.Context, carrier *models.Carrier) error {
	if carrier.ID == uuid.Nil {
		carrier.ID = uuid.New()
	}
	now := time.Now().UTC()
	carrier.CreatedAt = now
	carrier.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(carrier).Error; err != nil {
		return fmt.Errorf("create carrier: %w", err)
	}
	invalidateCarrierReads(ctx, r.cache, carrier.TenantID)
	return nil
}

// GetByID retrieves a carrier by ID
func (r *carrierRepository) GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*models.Carrier, error) {
	var carrier models.Carrier
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&carrier).Error
	if err != nil {
		return nil, translate(err)
	}
	return &carrier, nil
}

// List returns the tenant's carriers ordered by name
func (r *carrierRepository) List(ctx context.Context, tenantID string, activeOnly bool) ([]*models.Carrier, error) {
	if r.cache != nil {
		var carriers []*models.Carrier
		err := r.cache.GetOrSetJSON(ctx, carrierListKey(tenantID, activeOnly), &carriers, r.ttls.List, func() (any, error) {
			return r.listFromDB(ctx, tenantID, activeOnly)
		})
		if err != nil {
			return nil, err
		}
		if carriers == nil {
			carriers = []*models.Carrier{}
		}
		return carriers, nil
	}

	return r.listFromDB(ctx, tenantID, activeOnly)
}

func (r *carrierRepository) listFromDB(ctx context.Context, tenantID string, activeOnly bool) ([]*models.Carrier, error) {
	carriers := []*models.Carrier{}
	query := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("name ASC").Find(&carriers).Error; err != nil {
		return nil, fmt.Errorf("list carriers: %w", err)
	}
	return carriers, nil
}

// Update saves every column of carrier
func (r *carrierRepository) Update(ctx context.Context, carrier *models.Carrier) error {
	carrier.UpdatedAt = time.Now().UTC()
	result := r.db.WithContext(ctx).Model(&models.Carrier{}).
		Where("id = ? AND tenant_id = ?", carrier.ID, carrier.TenantID).
		Select("*").
		Omit("id", "tenant_id", "created_at").
		Updates(carrier)
	if result.Error != nil {
		return fmt.Errorf("update carrier: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	invalidateCarrierReads(ctx, r.cache, carrier.TenantID)
	return nil
}

// Delete removes a carrier. Shipments keep their carrier reference.
func (r *carrierRepository) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Delete(&models.Carrier{})
	if result.Error != nil {
		return fmt.Errorf("delete carrier: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	invalidateCarrierReads(ctx, r.cache, tenantID)
	return nil
}

// Count returns the number of carriers of a tenant
func (r *carrierRepository) Count(ctx context.Context, tenantID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Carrier{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count carriers: %w", err)
	}
	return count, nil
}
