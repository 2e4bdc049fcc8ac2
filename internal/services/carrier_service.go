package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"tracking-service/internal/events"
	"tracking-service/internal/models"
	"tracking-service/internal/repository"
	"tracking-service/internal/validation"
)

// CarrierService manages the carrier registry
type CarrierService interface {
	ListCarriers(ctx context.Context, tenantID string, activeOnly bool) ([]*models.Carrier, error)
	GetCarrier(ctx context.Context, tenantID string, id uuid.UUID) (*models.Carrier, error)
	CreateCarrier(ctx context.Context, tenantID string, req *models.CreateCarrierRequest) (*models.Carrier, error)
	UpdateCarrier(ctx context.Context, tenantID string, id uuid.UUID, req *models.UpdateCarrierRequest) (*models.Carrier, error)
	DeleteCarrier(ctx context.Context, tenantID string, id uuid.UUID) error
}

type carrierService struct {
	carriers  repository.CarrierRepository
	publisher events.Publisher
	logger    *logrus.Entry
}

// NewCarrierService creates a new carrier service. publisher may be nil.
func NewCarrierService(carriers repository.CarrierRepository, publisher events.Publisher, logger *logrus.Logger) CarrierService {
	return &carrierService{
		carriers:  carriers,
		publisher: publisher,
		logger:    logger.WithField("component", "services.carrier"),
	}
}

func (s *carrierService) ListCarriers(ctx context.Context, tenantID string, activeOnly bool) ([]*models.Carrier, error) {
	return s.carriers.List(ctx, tenantID, activeOnly)
}

func (s *carrierService) GetCarrier(ctx context.Context, tenantID string, id uuid.UUID) (*models.Carrier, error) {
	return s.carriers.GetByID(ctx, tenantID, id)
}

func (s *carrierService) CreateCarrier(ctx context.Context, tenantID string, req *models.CreateCarrierRequest) (*models.Carrier, error) {
	if errs := validation.ValidateCreateCarrier(req); errs.HasErrors() {
		return nil, errs
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	carrier := &models.Carrier{
		TenantID:           tenantID,
		Name:               strings.TrimSpace(req.Name),
		Description:        req.Description,
		Website:            strings.TrimSpace(req.Website),
		SupportPhone:       strings.TrimSpace(req.SupportPhone),
		MaxWeight:          req.MaxWeight,
		BasePrice:          req.BasePrice,
		IsActive:           isActive,
		DeliversNationwide: req.DeliversNationwide,
		ServiceAreas:       normalizeAreas(req.ServiceAreas),
	}
	if err := s.carriers.Create(ctx, carrier); err != nil {
		return nil, fmt.Errorf("failed to save carrier: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"tenant_id": tenantID, "carrier_id": carrier.ID}).Info("Carrier created")
	s.publish(ctx, events.NewCarrierEvent(events.CarrierCreated, carrier))
	return carrier, nil
}

func (s *carrierService) UpdateCarrier(ctx context.Context, tenantID string, id uuid.UUID, req *models.UpdateCarrierRequest) (*models.Carrier, error) {
	if errs := validation.ValidateUpdateCarrier(req); errs.HasErrors() {
		return nil, errs
	}

	carrier, err := s.carriers.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		carrier.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		carrier.Description = *req.Description
	}
	if req.Website != nil {
		carrier.Website = strings.TrimSpace(*req.Website)
	}
	if req.SupportPhone != nil {
		carrier.SupportPhone = strings.TrimSpace(*req.SupportPhone)
	}
	if req.MaxWeight != nil {
		carrier.MaxWeight = req.MaxWeight
	}
	if req.BasePrice != nil {
		carrier.BasePrice = req.BasePrice
	}
	if req.IsActive != nil {
		carrier.IsActive = *req.IsActive
	}
	if req.DeliversNationwide != nil {
		carrier.DeliversNationwide = *req.DeliversNationwide
	}
	if req.ServiceAreas != nil {
		carrier.ServiceAreas = normalizeAreas(req.ServiceAreas)
	}

	if err := s.carriers.Update(ctx, carrier); err != nil {
		return nil, err
	}
	s.publish(ctx, events.NewCarrierEvent(events.CarrierUpdated, carrier))
	return carrier, nil
}

// DeleteCarrier removes a carrier. Shipments referencing it keep the ID and
// fall back to it for display.
func (s *carrierService) DeleteCarrier(ctx context.Context, tenantID string, id uuid.UUID) error {
	carrier, err := s.carriers.GetByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if err := s.carriers.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{"tenant_id": tenantID, "carrier_id": id}).Info("Carrier deleted")
	s.publish(ctx, events.NewCarrierEvent(events.CarrierDeleted, carrier))
	return nil
}

func (s *carrierService) publish(ctx context.Context, event *events.TrackingEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WithError(err).WithField("event_type", event.EventType).Warn("Failed to publish carrier event")
	}
}

// normalizeAreas trims and de-duplicates service areas, keeping first spellings
func normalizeAreas(areas []string) models.StringArray {
	out := models.StringArray{}
	for _, area := range areas {
		area = strings.TrimSpace(area)
		if area == "" || out.Contains(area) {
			continue
		}
		out = append(out, area)
	}
	return out
}
