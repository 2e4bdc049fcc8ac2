package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"tracking-service/internal/analytics"
	"tracking-service/internal/events"
	"tracking-service/internal/filtering"
	"tracking-service/internal/lifecycle"
	"tracking-service/internal/models"
	"tracking-service/internal/repository"
	"tracking-service/internal/tracking"
	"tracking-service/internal/validation"
)

// ShipmentService is the shipment store: CRUD, status transitions, history
// and analytics over a tenant's shipments
type ShipmentService interface {
	ListShipments(ctx context.Context, tenantID string, criteria filtering.Criteria) ([]*models.Shipment, error)
	GetShipment(ctx context.Context, tenantID string, id uuid.UUID) (*models.Shipment, error)
	CreateShipment(ctx context.Context, tenantID string, req *models.CreateShipmentRequest) (*models.Shipment, error)
	UpdateShipment(ctx context.Context, tenantID string, id uuid.UUID, req *models.UpdateShipmentRequest) (*models.Shipment, error)
	DeleteShipment(ctx context.Context, tenantID string, id uuid.UUID) error
	SetStatus(ctx context.Context, tenantID string, id uuid.UUID, status string) (*models.Shipment, error)
	AdvanceStatus(ctx context.Context, tenantID string, id uuid.UUID) (*models.Shipment, error)
	GetHistory(ctx context.Context, tenantID string, id uuid.UUID) (*models.TrackingHistoryResponse, error)
	GetAnalytics(ctx context.Context, tenantID string) (*models.ShipmentAnalytics, error)
	Statuses() []models.StatusInfo
}

type shipmentService struct {
	shipments repository.ShipmentRepository
	carriers  repository.CarrierRepository
	publisher events.Publisher
	logger    *logrus.Entry
	now       func() time.Time
}

// NewShipmentService creates a new shipment service. publisher may be nil.
func NewShipmentService(
	shipments repository.ShipmentRepository,
	carriers repository.CarrierRepository,
	publisher events.Publisher,
	logger *logrus.Logger,
) ShipmentService {
	return &shipmentService{
		shipments: shipments,
		carriers:  carriers,
		publisher: publisher,
		logger:    logger.WithField("component", "services.shipment"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ListShipments returns the tenant's shipments narrowed by criteria
func (s *shipmentService) ListShipments(ctx context.Context, tenantID string, criteria filtering.Criteria) ([]*models.Shipment, error) {
	shipments, err := s.shipments.List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shipments: %w", err)
	}
	if criteria.IsZero() {
		return shipments, nil
	}
	return filtering.Filter(shipments, criteria), nil
}

// GetShipment retrieves a shipment by ID
func (s *shipmentService) GetShipment(ctx context.Context, tenantID string, id uuid.UUID) (*models.Shipment, error) {
	return s.shipments.GetByID(ctx, tenantID, id)
}

// CreateShipment validates and stores a new shipment with its initial event
func (s *shipmentService) CreateShipment(ctx context.Context, tenantID string, req *models.CreateShipmentRequest) (*models.Shipment, error) {
	if errs := validation.ValidateCreateShipment(req); errs.HasErrors() {
		return nil, errs
	}

	status := models.ShipmentStatusPending
	if req.Status != "" {
		status = lifecycle.Canonicalize(string(req.Status))
	}

	trackingNumber := strings.TrimSpace(req.TrackingNumber)
	if trackingNumber == "" {
		generated, err := s.shipments.GenerateTrackingNumber(ctx, tenantID)
		if err != nil {
			return nil, fmt.Errorf("failed to generate tracking number: %w", err)
		}
		trackingNumber = generated
	}

	shipment := &models.Shipment{
		TenantID:          tenantID,
		OrderID:           strings.TrimSpace(req.OrderID),
		TrackingNumber:    trackingNumber,
		CustomerName:      strings.TrimSpace(req.CustomerName),
		CustomerPhone:     strings.TrimSpace(req.CustomerPhone),
		Origin:            strings.TrimSpace(req.Origin),
		Destination:       strings.TrimSpace(req.Destination),
		Zone:              strings.TrimSpace(req.Zone),
		CarrierID:         req.CarrierID,
		Status:            status,
		EstimatedDelivery: req.EstimatedDelivery,
		Weight:            req.Weight,
		DeclaredValue:     req.DeclaredValue,
		ShippingCost:      req.ShippingCost,
		Notes:             req.Notes,
	}
	if status == models.ShipmentStatusDelivered {
		now := s.now()
		shipment.ActualDelivery = &now
	}
	s.checkCarrier(ctx, tenantID, shipment)

	event := &models.ShipmentEvent{
		Status:      status,
		Location:    eventLocation(shipment, status),
		Description: "Shipment created",
		Timestamp:   s.now(),
	}
	if err := s.shipments.Create(ctx, shipment, event); err != nil {
		return nil, fmt.Errorf("failed to save shipment: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"tenant_id":       tenantID,
		"shipment_id":     shipment.ID,
		"tracking_number": shipment.TrackingNumber,
	}).Info("Shipment created")
	s.publish(ctx, events.NewShipmentEvent(events.ShipmentCreated, shipment))
	return shipment, nil
}

// UpdateShipment applies a partial patch. A status change in the patch is
// recorded like SetStatus. A patch that changes nothing writes nothing.
func (s *shipmentService) UpdateShipment(ctx context.Context, tenantID string, id uuid.UUID, req *models.UpdateShipmentRequest) (*models.Shipment, error) {
	if errs := validation.ValidateUpdateShipment(req); errs.HasErrors() {
		return nil, errs
	}

	shipment, err := s.shipments.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	previous := shipment.Status
	before := *shipment

	applyPatch(shipment, req)

	var event *models.ShipmentEvent
	if req.Status != nil {
		event = s.transition(shipment, lifecycle.Canonicalize(string(*req.Status)), req.ActualDelivery != nil)
	}
	if event == nil && reflect.DeepEqual(before, *shipment) {
		return shipment, nil
	}
	if req.CarrierID != nil {
		s.checkCarrier(ctx, tenantID, shipment)
	}

	if err := s.shipments.Update(ctx, shipment, event); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update shipment: %w", err)
	}

	s.publish(ctx, events.NewShipmentEvent(events.ShipmentUpdated, shipment))
	if event != nil {
		s.publishStatusChange(ctx, shipment, previous)
	}
	return shipment, nil
}

func applyPatch(shipment *models.Shipment, req *models.UpdateShipmentRequest) {
	if req.OrderID != nil {
		shipment.OrderID = strings.TrimSpace(*req.OrderID)
	}
	if req.TrackingNumber != nil {
		shipment.TrackingNumber = strings.TrimSpace(*req.TrackingNumber)
	}
	if req.CustomerName != nil {
		shipment.CustomerName = strings.TrimSpace(*req.CustomerName)
	}
	if req.CustomerPhone != nil {
		shipment.CustomerPhone = strings.TrimSpace(*req.CustomerPhone)
	}
	if req.Origin != nil {
		shipment.Origin = strings.TrimSpace(*req.Origin)
	}
	if req.Destination != nil {
		shipment.Destination = strings.TrimSpace(*req.Destination)
	}
	if req.Zone != nil {
		shipment.Zone = strings.TrimSpace(*req.Zone)
	}
	if req.CarrierID != nil {
		if *req.CarrierID == uuid.Nil {
			shipment.CarrierID = nil
		} else {
			id := *req.CarrierID
			shipment.CarrierID = &id
		}
	}
	if req.EstimatedDelivery != nil {
		shipment.EstimatedDelivery = req.EstimatedDelivery
	}
	if req.ActualDelivery != nil {
		if req.ActualDelivery.IsZero() {
			shipment.ActualDelivery = nil
		} else {
			shipment.ActualDelivery = req.ActualDelivery
		}
	}
	if req.Weight != nil {
		shipment.Weight = req.Weight
	}
	if req.DeclaredValue != nil {
		shipment.DeclaredValue = req.DeclaredValue
	}
	if req.ShippingCost != nil {
		shipment.ShippingCost = req.ShippingCost
	}
	if req.Notes != nil {
		shipment.Notes = *req.Notes
	}
}

// DeleteShipment removes a shipment. Repeated deletes return ErrNotFound.
func (s *shipmentService) DeleteShipment(ctx context.Context, tenantID string, id uuid.UUID) error {
	shipment, err := s.shipments.GetByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if err := s.shipments.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{"tenant_id": tenantID, "shipment_id": id}).Info("Shipment deleted")
	s.publish(ctx, events.NewShipmentEvent(events.ShipmentDeleted, shipment))
	return nil
}

// SetStatus moves a shipment to status, canonical or alias. Setting the
// current status again is accepted and writes nothing.
func (s *shipmentService) SetStatus(ctx context.Context, tenantID string, id uuid.UUID, status string) (*models.Shipment, error) {
	target, errs := validation.ValidateStatus(status)
	if errs.HasErrors() {
		return nil, errs
	}
	return s.moveTo(ctx, tenantID, id, func(models.ShipmentStatus) models.ShipmentStatus { return target })
}

// AdvanceStatus applies the quick-advance rule to a shipment
func (s *shipmentService) AdvanceStatus(ctx context.Context, tenantID string, id uuid.UUID) (*models.Shipment, error) {
	return s.moveTo(ctx, tenantID, id, lifecycle.Next)
}

func (s *shipmentService) moveTo(ctx context.Context, tenantID string, id uuid.UUID, target func(models.ShipmentStatus) models.ShipmentStatus) (*models.Shipment, error) {
	shipment, err := s.shipments.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	previous := shipment.Status
	next := target(lifecycle.Canonicalize(string(previous)))
	if next == models.ShipmentStatusUnknown {
		// unknown stored values stay put
		return shipment, nil
	}
	if next == previous {
		return shipment, nil
	}

	event := s.transition(shipment, next, false)
	if err := s.shipments.Update(ctx, shipment, event); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update shipment status: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"tenant_id":   tenantID,
		"shipment_id": id,
		"from":        previous,
		"to":          next,
	}).Info("Shipment status changed")
	s.publishStatusChange(ctx, shipment, previous)
	return shipment, nil
}

// transition sets the new status and returns the event to record, or nil
// when nothing changed. Moving to delivered stamps actualDelivery unless the
// caller supplied one explicitly.
func (s *shipmentService) transition(shipment *models.Shipment, next models.ShipmentStatus, explicitDelivery bool) *models.ShipmentEvent {
	if next == models.ShipmentStatusUnknown || next == shipment.Status {
		return nil
	}
	previous := shipment.Status
	shipment.Status = next

	now := s.now()
	if next == models.ShipmentStatusDelivered && shipment.ActualDelivery == nil && !explicitDelivery {
		shipment.ActualDelivery = &now
	}

	return &models.ShipmentEvent{
		Status:      next,
		Location:    eventLocation(shipment, next),
		Description: fmt.Sprintf("Status changed from %s to %s", previous, next),
		Timestamp:   now,
	}
}

func eventLocation(shipment *models.Shipment, status models.ShipmentStatus) string {
	switch status {
	case models.ShipmentStatusDelivered, models.ShipmentStatusDelayed:
		return shipment.Destination
	default:
		return shipment.Origin
	}
}

// GetHistory returns the recorded status events with the synthetic steps
func (s *shipmentService) GetHistory(ctx context.Context, tenantID string, id uuid.UUID) (*models.TrackingHistoryResponse, error) {
	shipment, err := s.shipments.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	recorded, err := s.shipments.ListEvents(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load shipment events: %w", err)
	}
	return tracking.History(shipment, recorded, s.now()), nil
}

// GetAnalytics aggregates the tenant's shipments, cached until the next write
func (s *shipmentService) GetAnalytics(ctx context.Context, tenantID string) (*models.ShipmentAnalytics, error) {
	return s.shipments.CachedAnalytics(ctx, tenantID, func() (*models.ShipmentAnalytics, error) {
		shipments, err := s.shipments.List(ctx, tenantID)
		if err != nil {
			return nil, fmt.Errorf("failed to list shipments: %w", err)
		}
		carriers, err := s.carriers.List(ctx, tenantID, false)
		if err != nil {
			// names are cosmetic, fall back to IDs
			s.logger.WithError(err).Warn("Failed to load carriers for analytics")
			carriers = nil
		}
		return analytics.Summarize(shipments, analytics.NamesFrom(carriers)), nil
	})
}

// Statuses describes the canonical statuses
func (s *shipmentService) Statuses() []models.StatusInfo {
	return lifecycle.Describe()
}

// checkCarrier logs assignments to carriers that are inactive or unknown.
// Neither is rejected.
// checkCarrier warns about an assignment the registry would not offer.
// The assignment itself is always kept.
func (s *shipmentService) checkCarrier(ctx context.Context, tenantID string, shipment *models.Shipment) {
	carrierID := shipment.CarrierID
	if carrierID == nil || *carrierID == uuid.Nil || s.carriers == nil {
		return
	}
	carrier, err := s.carriers.GetByID(ctx, tenantID, *carrierID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		s.logger.WithField("carrier_id", *carrierID).Warn("Shipment assigned to unknown carrier")
	case err != nil:
		s.logger.WithError(err).Warn("Failed to check carrier")
	case !carrier.IsActive:
		s.logger.WithField("carrier_id", *carrierID).Warn("Shipment assigned to inactive carrier")
	case !servesShipment(carrier, shipment):
		s.logger.WithFields(logrus.Fields{
			"carrier_id":  *carrierID,
			"destination": shipment.Destination,
			"zone":        shipment.Zone,
		}).Warn("Carrier does not serve shipment destination")
	}
}

// servesShipment reports whether carrier covers the destination or the zone.
// A shipment with neither set is not checked.
func servesShipment(carrier *models.Carrier, shipment *models.Shipment) bool {
	if shipment.Destination == "" && shipment.Zone == "" {
		return true
	}
	return (shipment.Destination != "" && carrier.Serves(shipment.Destination)) ||
		(shipment.Zone != "" && carrier.Serves(shipment.Zone))
}

func (s *shipmentService) publishStatusChange(ctx context.Context, shipment *models.Shipment, previous models.ShipmentStatus) {
	s.publish(ctx, events.NewStatusChangedEvent(shipment, previous))
	if shipment.Status == models.ShipmentStatusDelivered {
		s.publish(ctx, events.NewShipmentEvent(events.ShipmentDelivered, shipment))
	}
}

// publish never fails the caller
func (s *shipmentService) publish(ctx context.Context, event *events.TrackingEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WithError(err).WithField("event_type", event.EventType).Warn("Failed to publish tracking event")
	}
}
