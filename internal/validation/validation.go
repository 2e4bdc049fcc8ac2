package validation

import (
	"fmt"
	"regexp"
	"strings"

	"tracking-service/internal/lifecycle"
	"tracking-service/internal/models"
)

// ValidationError represents a validation error with field details
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// HasErrors returns true if there are validation errors
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Err returns the collection as an error, or nil when it is empty
func (e ValidationErrors) Err() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

// Fields lists the offending field names in order
func (e ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(e))
	for _, err := range e {
		fields = append(fields, err.Field)
	}
	return fields
}

const (
	CodeRequired = "REQUIRED"
	CodeTooLong  = "TOO_LONG"
	CodeInvalid  = "INVALID"
	CodeNegative = "NEGATIVE"
)

// Field length limits
const (
	MaxOrderIDLength        = 100
	MaxTrackingNumberLength = 255
	MaxNameLength           = 255
	MaxPhoneLength          = 50
	MaxLocationLength       = 255
	MaxZoneLength           = 100
	MaxWebsiteLength        = 500
)

var (
	// Phone number pattern (international format, flexible)
	phonePattern = regexp.MustCompile(`^[\+]?[(]?[0-9]{1,4}[)]?[-\s\.]?[(]?[0-9]{1,3}[)]?[-\s\.]?[0-9]{1,4}[-\s\.]?[0-9]{1,4}[-\s\.]?[0-9]{1,9}$`)

	websitePattern = regexp.MustCompile(`^https?://[^\s]+$`)
)

type checker struct {
	errs ValidationErrors
}

func (c *checker) add(field, message, code string) {
	c.errs = append(c.errs, ValidationError{Field: field, Message: message, Code: code})
}

func (c *checker) required(field, label, value string) {
	if strings.TrimSpace(value) == "" {
		c.add(field, label+" is required", CodeRequired)
	}
}

func (c *checker) maxLen(field, label, value string, max int) {
	if len(value) > max {
		c.add(field, fmt.Sprintf("%s must be at most %d characters", label, max), CodeTooLong)
	}
}

func (c *checker) phone(field, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	if len(value) > MaxPhoneLength || !phonePattern.MatchString(value) {
		c.add(field, "Phone number format is invalid", CodeInvalid)
	}
}

func (c *checker) status(field string, status models.ShipmentStatus) {
	if status == "" {
		return
	}
	if _, ok := lifecycle.Parse(string(status)); !ok {
		c.add(field, fmt.Sprintf("Unknown status %q", status), CodeInvalid)
	}
}

// ValidateCreateShipment checks the fields a new shipment needs before it
// is sent anywhere: orderId, customerName, origin and destination.
func ValidateCreateShipment(req *models.CreateShipmentRequest) ValidationErrors {
	c := &checker{}
	if req == nil {
		c.add("body", "Request body is required", CodeRequired)
		return c.errs
	}

	c.required("orderId", "Order ID", req.OrderID)
	c.required("customerName", "Customer name", req.CustomerName)
	c.required("origin", "Origin", req.Origin)
	c.required("destination", "Destination", req.Destination)

	c.maxLen("orderId", "Order ID", req.OrderID, MaxOrderIDLength)
	c.maxLen("trackingNumber", "Tracking number", req.TrackingNumber, MaxTrackingNumberLength)
	c.maxLen("customerName", "Customer name", req.CustomerName, MaxNameLength)
	c.maxLen("origin", "Origin", req.Origin, MaxLocationLength)
	c.maxLen("destination", "Destination", req.Destination, MaxLocationLength)
	c.maxLen("zone", "Zone", req.Zone, MaxZoneLength)
	c.phone("customerPhone", req.CustomerPhone)
	c.status("status", req.Status)

	if req.Weight != nil && req.Weight.IsNegative() {
		c.add("weight", "Weight cannot be negative", CodeNegative)
	}
	if req.DeclaredValue != nil && req.DeclaredValue.IsNegative() {
		c.add("declaredValue", "Declared value cannot be negative", CodeNegative)
	}
	if req.ShippingCost != nil && req.ShippingCost.IsNegative() {
		c.add("shippingCost", "Shipping cost cannot be negative", CodeNegative)
	}
	return c.errs
}

// ValidateUpdateShipment checks a partial patch. Only supplied fields are
// checked, but a supplied required field may not be blanked.
func ValidateUpdateShipment(req *models.UpdateShipmentRequest) ValidationErrors {
	c := &checker{}
	if req == nil || req.IsEmpty() {
		c.add("body", "At least one field must be supplied", CodeRequired)
		return c.errs
	}

	if req.OrderID != nil {
		c.required("orderId", "Order ID", *req.OrderID)
		c.maxLen("orderId", "Order ID", *req.OrderID, MaxOrderIDLength)
	}
	if req.TrackingNumber != nil {
		c.required("trackingNumber", "Tracking number", *req.TrackingNumber)
		c.maxLen("trackingNumber", "Tracking number", *req.TrackingNumber, MaxTrackingNumberLength)
	}
	if req.CustomerName != nil {
		c.required("customerName", "Customer name", *req.CustomerName)
		c.maxLen("customerName", "Customer name", *req.CustomerName, MaxNameLength)
	}
	if req.Origin != nil {
		c.required("origin", "Origin", *req.Origin)
		c.maxLen("origin", "Origin", *req.Origin, MaxLocationLength)
	}
	if req.Destination != nil {
		c.required("destination", "Destination", *req.Destination)
		c.maxLen("destination", "Destination", *req.Destination, MaxLocationLength)
	}
	if req.Zone != nil {
		c.maxLen("zone", "Zone", *req.Zone, MaxZoneLength)
	}
	if req.CustomerPhone != nil {
		c.phone("customerPhone", *req.CustomerPhone)
	}
	if req.Status != nil {
		c.required("status", "Status", string(*req.Status))
		c.status("status", *req.Status)
	}
	if req.Weight != nil && req.Weight.IsNegative() {
		c.add("weight", "Weight cannot be negative", CodeNegative)
	}
	if req.DeclaredValue != nil && req.DeclaredValue.IsNegative() {
		c.add("declaredValue", "Declared value cannot be negative", CodeNegative)
	}
	if req.ShippingCost != nil && req.ShippingCost.IsNegative() {
		c.add("shippingCost", "Shipping cost cannot be negative", CodeNegative)
	}
	return c.errs
}

// ValidateStatus resolves a raw status, alias or canonical
func ValidateStatus(raw string) (models.ShipmentStatus, ValidationErrors) {
	c := &checker{}
	c.required("status", "Status", raw)
	if c.errs.HasErrors() {
		return "", c.errs
	}
	status, ok := lifecycle.Parse(raw)
	if !ok {
		c.add("status", fmt.Sprintf("Unknown status %q", raw), CodeInvalid)
		return "", c.errs
	}
	return status, nil
}

// ValidateCreateCarrier checks a new carrier
func ValidateCreateCarrier(req *models.CreateCarrierRequest) ValidationErrors {
	c := &checker{}
	if req == nil {
		c.add("body", "Request body is required", CodeRequired)
		return c.errs
	}
	c.required("name", "Name", req.Name)
	c.maxLen("name", "Name", req.Name, MaxNameLength)
	c.phone("supportPhone", req.SupportPhone)
	if req.Website != "" {
		c.website(req.Website)
	}
	if req.MaxWeight != nil && req.MaxWeight.IsNegative() {
		c.add("maxWeight", "Max weight cannot be negative", CodeNegative)
	}
	if req.BasePrice != nil && req.BasePrice.IsNegative() {
		c.add("basePrice", "Base price cannot be negative", CodeNegative)
	}
	return c.errs
}

// ValidateUpdateCarrier checks a carrier patch
func ValidateUpdateCarrier(req *models.UpdateCarrierRequest) ValidationErrors {
	c := &checker{}
	if req == nil {
		c.add("body", "Request body is required", CodeRequired)
		return c.errs
	}
	if req.Name != nil {
		c.required("name", "Name", *req.Name)
		c.maxLen("name", "Name", *req.Name, MaxNameLength)
	}
	if req.SupportPhone != nil {
		c.phone("supportPhone", *req.SupportPhone)
	}
	if req.Website != nil && *req.Website != "" {
		c.website(*req.Website)
	}
	if req.MaxWeight != nil && req.MaxWeight.IsNegative() {
		c.add("maxWeight", "Max weight cannot be negative", CodeNegative)
	}
	if req.BasePrice != nil && req.BasePrice.IsNegative() {
		c.add("basePrice", "Base price cannot be negative", CodeNegative)
	}
	return c.errs
}

func (c *checker) website(value string) {
	if len(value) > MaxWebsiteLength || !websitePattern.MatchString(value) {
		c.add("website", "Website must be an http(s) URL", CodeInvalid)
	}
}
