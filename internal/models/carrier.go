package models

import (
	"database/sql/driver"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// arrayElementEscaper escapes a quoted element of a PostgreSQL array literal
var arrayElementEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// StringArray custom type for PostgreSQL text[]
type StringArray []string

func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	quoted := make([]string, len(s))
	for i, v := range s {
		quoted[i] = `"` + arrayElementEscaper.Replace(v) + `"`
	}
	return "{" + strings.Join(quoted, ",") + "}", nil
}

func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		*s = parsePostgresArray(string(v))
	case string:
		*s = parsePostgresArray(v)
	}
	return nil
}

func parsePostgresArray(str string) StringArray {
	if str == "{}" || len(str) < 2 {
		return StringArray{}
	}
	str = str[1 : len(str)-1]

	var result StringArray
	var current strings.Builder
	inQuotes := false
	escaped := false

	for _, char := range str {
		switch {
		case escaped:
			current.WriteRune(char)
			escaped = false
		case char == '\\':
			escaped = true
		case char == '"':
			inQuotes = !inQuotes
		case char == ',' && !inQuotes:
			result = append(result, current.String())
			current.Reset()
		default:
			current.WriteRune(char)
		}
	}
	if current.Len() > 0 {
		result = append(result, current.String())
	}
	return result
}

// Contains reports whether the array holds value, ignoring case
func (s StringArray) Contains(value string) bool {
	for _, v := range s {
		if strings.EqualFold(strings.TrimSpace(v), strings.TrimSpace(value)) {
			return true
		}
	}
	return false
}

// Carrier represents a delivery provider
type Carrier struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID     string    `json:"tenantId" gorm:"type:varchar(255);not null;index:idx_carriers_tenant"`
	Name         string    `json:"name" gorm:"type:varchar(255);not null"`
	Description  string    `json:"description,omitempty" gorm:"type:text"`
	Website      string    `json:"website,omitempty" gorm:"type:varchar(500)"`
	SupportPhone string    `json:"supportPhone,omitempty" gorm:"type:varchar(50)"`

	// Capacity and pricing
	MaxWeight *decimal.Decimal `json:"maxWeight,omitempty" gorm:"type:decimal(10,2)"` // in kg
	BasePrice *decimal.Decimal `json:"basePrice,omitempty" gorm:"type:decimal(10,2)"`

	// Coverage
	IsActive           bool        `json:"isActive" gorm:"not null;index:idx_carriers_active"`
	DeliversNationwide bool        `json:"deliversNationwide" gorm:"not null"`
	ServiceAreas       StringArray `json:"serviceAreas" gorm:"type:text[]"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Carrier
func (Carrier) TableName() string {
	return "carriers"
}

// Serves reports whether the carrier covers a zone or city
func (c *Carrier) Serves(area string) bool {
	if c.DeliversNationwide {
		return true
	}
	return c.ServiceAreas.Contains(area)
}

// CreateCarrierRequest represents a request to register a carrier
type CreateCarrierRequest struct {
	Name               string           `json:"name" binding:"required"`
	Description        string           `json:"description"`
	Website            string           `json:"website"`
	SupportPhone       string           `json:"supportPhone"`
	MaxWeight          *decimal.Decimal `json:"maxWeight,omitempty"`
	BasePrice          *decimal.Decimal `json:"basePrice,omitempty"`
	IsActive           *bool            `json:"isActive,omitempty"` // defaults to true
	DeliversNationwide bool             `json:"deliversNationwide"`
	ServiceAreas       []string         `json:"serviceAreas"`
}

// UpdateCarrierRequest is a partial patch over a carrier
type UpdateCarrierRequest struct {
	Name               *string          `json:"name,omitempty"`
	Description        *string          `json:"description,omitempty"`
	Website            *string          `json:"website,omitempty"`
	SupportPhone       *string          `json:"supportPhone,omitempty"`
	MaxWeight          *decimal.Decimal `json:"maxWeight,omitempty"`
	BasePrice          *decimal.Decimal `json:"basePrice,omitempty"`
	IsActive           *bool            `json:"isActive,omitempty"`
	DeliversNationwide *bool            `json:"deliversNationwide,omitempty"`
	ServiceAreas       []string         `json:"serviceAreas,omitempty"`
}
