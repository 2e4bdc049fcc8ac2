package events

import (
	"context"
	"time"

	"github.com/Tesseract-Nexus/go-shared/events"
	"tracking-service/internal/models"
)

// Tracking event types
const (
	ShipmentCreated       = "tracking.shipment_created"
	ShipmentUpdated       = "tracking.shipment_updated"
	ShipmentStatusChanged = "tracking.shipment_status_changed"
	ShipmentDelivered     = "tracking.shipment_delivered"
	ShipmentDeleted       = "tracking.shipment_deleted"
	CarrierCreated        = "tracking.carrier_created"
	CarrierUpdated        = "tracking.carrier_updated"
	CarrierDeleted        = "tracking.carrier_deleted"

	StreamName = "TRACKING_EVENTS"
)

// TrackingEvent represents a shipment or carrier lifecycle event
type TrackingEvent struct {
	events.BaseEvent
	ShipmentID     string `json:"shipmentId,omitempty"`
	OrderID        string `json:"orderId,omitempty"`
	TrackingNumber string `json:"trackingNumber,omitempty"`
	CarrierID      string `json:"carrierId,omitempty"`
	CarrierName    string `json:"carrierName,omitempty"`
	Status         string `json:"status,omitempty"`
	PreviousStatus string `json:"previousStatus,omitempty"`
	Destination    string `json:"destination,omitempty"`
}

func (e *TrackingEvent) GetSubject() string {
	return e.EventType
}

func (e *TrackingEvent) GetStream() string {
	return StreamName
}

// Key is the partition key: the shipment, else the carrier
func (e *TrackingEvent) Key() string {
	if e.ShipmentID != "" {
		return e.ShipmentID
	}
	return e.CarrierID
}

// Publisher sends tracking events to a broker
type Publisher interface {
	Publish(ctx context.Context, event *TrackingEvent) error
	Close()
}

// NopPublisher drops every event. Used when EVENTS_BACKEND=none.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, *TrackingEvent) error { return nil }

func (NopPublisher) Close() {}

// NewShipmentEvent builds an event describing shipment
func NewShipmentEvent(eventType string, shipment *models.Shipment) *TrackingEvent {
	return &TrackingEvent{
		BaseEvent: events.BaseEvent{
			EventType: eventType,
			TenantID:  shipment.TenantID,
			Timestamp: time.Now().UTC(),
		},
		ShipmentID:     shipment.ID.String(),
		OrderID:        shipment.OrderID,
		TrackingNumber: shipment.TrackingNumber,
		CarrierID:      shipment.CarrierKey(),
		Status:         string(shipment.Status),
		Destination:    shipment.Destination,
	}
}

// NewStatusChangedEvent builds a status change event carrying the previous status
func NewStatusChangedEvent(shipment *models.Shipment, previous models.ShipmentStatus) *TrackingEvent {
	event := NewShipmentEvent(ShipmentStatusChanged, shipment)
	event.PreviousStatus = string(previous)
	return event
}

// NewCarrierEvent builds an event describing carrier
func NewCarrierEvent(eventType string, carrier *models.Carrier) *TrackingEvent {
	return &TrackingEvent{
		BaseEvent: events.BaseEvent{
			EventType: eventType,
			TenantID:  carrier.TenantID,
			Timestamp: time.Now().UTC(),
		},
		CarrierID:   carrier.ID.String(),
		CarrierName: carrier.Name,
	}
}
