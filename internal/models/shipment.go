package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShipmentStatus represents the status of a shipment
type ShipmentStatus string

const (
	ShipmentStatusPending   ShipmentStatus = "pending"
	ShipmentStatusInTransit ShipmentStatus = "in_transit"
	ShipmentStatusDelivered ShipmentStatus = "delivered"
	ShipmentStatusDelayed   ShipmentStatus = "delayed"

	// ShipmentStatusUnknown is never stored. It is the presentation bucket for
	// values outside the canonical set.
	ShipmentStatusUnknown ShipmentStatus = "unknown"
)

// Shipment represents one parcel movement from origin to destination
type Shipment struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID string    `json:"tenantId" gorm:"type:varchar(255);not null;index"`

	// Order reference (external, not a foreign key)
	OrderID        string `json:"orderId" gorm:"type:varchar(100);not null;index"`
	TrackingNumber string `json:"trackingNumber" gorm:"type:varchar(255);index"`

	// Customer
	CustomerName  string `json:"customerName" gorm:"type:varchar(255);not null"`
	CustomerPhone string `json:"customerPhone" gorm:"type:varchar(50)"`

	// Route
	Origin      string `json:"origin" gorm:"type:varchar(255);not null"`
	Destination string `json:"destination" gorm:"type:varchar(255);not null"`
	Zone        string `json:"zone,omitempty" gorm:"type:varchar(100);index"` // supplied classification, used for analytics only

	// Carrier (optional, not enforced as a foreign key)
	CarrierID *uuid.UUID `json:"carrierId,omitempty" gorm:"type:uuid;index"`

	Status ShipmentStatus `json:"status" gorm:"type:varchar(50);not null;default:'pending';index"`

	// Dates
	EstimatedDelivery *time.Time `json:"estimatedDelivery,omitempty"`
	ActualDelivery    *time.Time `json:"actualDelivery,omitempty"`

	// Package and pricing
	Weight        *decimal.Decimal `json:"weight,omitempty" gorm:"type:decimal(10,2)"` // in kg
	DeclaredValue *decimal.Decimal `json:"declaredValue,omitempty" gorm:"type:decimal(12,2)"`
	ShippingCost  *decimal.Decimal `json:"shippingCost,omitempty" gorm:"type:decimal(10,2)"`

	Notes string `json:"notes,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// HasCarrier reports whether a carrier is assigned
func (s *Shipment) HasCarrier() bool {
	return s.CarrierID != nil && *s.CarrierID != uuid.Nil
}

// CarrierKey returns the carrier ID as a string, or "" when unassigned
func (s *Shipment) CarrierKey() string {
	if !s.HasCarrier() {
		return ""
	}
	return s.CarrierID.String()
}

// ShipmentEvent is a persisted status-change record
type ShipmentEvent struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ShipmentID  uuid.UUID      `json:"shipmentId" gorm:"type:uuid;not null;index"`
	Status      ShipmentStatus `json:"status" gorm:"type:varchar(50);not null"`
	Location    string         `json:"location" gorm:"type:varchar(255)"`
	Description string         `json:"description" gorm:"type:text"`
	Timestamp   time.Time      `json:"timestamp" gorm:"not null"`
	CreatedAt   time.Time      `json:"createdAt" gorm:"autoCreateTime"`
}

// TrackingStep is a presentation-only history step derived from a shipment's
// current status. It is never stored.
type TrackingStep struct {
	Key         string    `json:"key"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Timestamp   time.Time `json:"timestamp"`
	Location    string    `json:"location"`
	StatusLabel string    `json:"statusLabel"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
}

// TrackingHistoryResponse combines the recorded events with the synthesized steps
type TrackingHistoryResponse struct {
	ShipmentID     uuid.UUID       `json:"shipmentId"`
	TrackingNumber string          `json:"trackingNumber"`
	Status         ShipmentStatus  `json:"status"`
	Events         []ShipmentEvent `json:"events"`
	Steps          []TrackingStep  `json:"steps"`
	Synthetic      bool            `json:"synthetic"` // marks Steps as derived, not recorded
}

// CreateShipmentRequest represents a request to create a shipment
type CreateShipmentRequest struct {
	OrderID           string           `json:"orderId"`
	TrackingNumber    string           `json:"trackingNumber"` // generated when blank
	CustomerName      string           `json:"customerName"`
	CustomerPhone     string           `json:"customerPhone"`
	Origin            string           `json:"origin"`
	Destination       string           `json:"destination"`
	Zone              string           `json:"zone"`
	CarrierID         *uuid.UUID       `json:"carrierId,omitempty"`
	Status            ShipmentStatus   `json:"status,omitempty"` // defaults to pending
	EstimatedDelivery *time.Time       `json:"estimatedDelivery,omitempty"`
	Weight            *decimal.Decimal `json:"weight,omitempty"`
	DeclaredValue     *decimal.Decimal `json:"declaredValue,omitempty"`
	ShippingCost      *decimal.Decimal `json:"shippingCost,omitempty"`
	Notes             string           `json:"notes"`
}

// UpdateShipmentRequest is a partial patch: nil fields are left untouched
type UpdateShipmentRequest struct {
	OrderID           *string          `json:"orderId,omitempty"`
	TrackingNumber    *string          `json:"trackingNumber,omitempty"`
	CustomerName      *string          `json:"customerName,omitempty"`
	CustomerPhone     *string          `json:"customerPhone,omitempty"`
	Origin            *string          `json:"origin,omitempty"`
	Destination       *string          `json:"destination,omitempty"`
	Zone              *string          `json:"zone,omitempty"`
	CarrierID         *uuid.UUID       `json:"carrierId,omitempty"`
	Status            *ShipmentStatus  `json:"status,omitempty"`
	EstimatedDelivery *time.Time       `json:"estimatedDelivery,omitempty"`
	ActualDelivery    *time.Time       `json:"actualDelivery,omitempty"`
	Weight            *decimal.Decimal `json:"weight,omitempty"`
	DeclaredValue     *decimal.Decimal `json:"declaredValue,omitempty"`
	ShippingCost      *decimal.Decimal `json:"shippingCost,omitempty"`
	Notes             *string          `json:"notes,omitempty"`
}

// IsEmpty reports whether the patch carries no field at all
func (r *UpdateShipmentRequest) IsEmpty() bool {
	return r.OrderID == nil && r.TrackingNumber == nil && r.CustomerName == nil &&
		r.CustomerPhone == nil && r.Origin == nil && r.Destination == nil &&
		r.Zone == nil && r.CarrierID == nil && r.Status == nil &&
		r.EstimatedDelivery == nil && r.ActualDelivery == nil && r.Weight == nil &&
		r.DeclaredValue == nil && r.ShippingCost == nil && r.Notes == nil
}

// UpdateStatusRequest represents a request to set a shipment's status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message *string     `json:"message,omitempty"`
}

// ListShipmentsResponse represents the visible shipment collection
type ListShipmentsResponse struct {
	Success bool        `json:"success"`
	Data    []*Shipment `json:"data"`
	Total   int         `json:"total"`
}
