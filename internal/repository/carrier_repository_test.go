package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"tracking-service/internal/models"
)

// dryRunDB builds statements without a database connection
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=tracking dbname=tracking sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

// insertedValues maps each column of a single-row INSERT to its bound value
func insertedValues(t *testing.T, stmt *gorm.Statement) map[string]any {
	t.Helper()
	sql := stmt.SQL.String()
	open := strings.Index(sql, "(")
	end := strings.Index(sql, ")")
	require.True(t, open >= 0 && end > open, sql)

	columns := strings.Split(sql[open+1:end], ",")
	require.GreaterOrEqual(t, len(stmt.Vars), len(columns), sql)

	values := make(map[string]any, len(columns))
	for i, column := range columns {
		values[strings.Trim(strings.TrimSpace(column), `"`)] = stmt.Vars[i]
	}
	return values
}

func TestCarrierCreate_KeepsInactiveFlag(t *testing.T) {
	db := dryRunDB(t)

	stmt := db.Create(&models.Carrier{TenantID: "tenant-a", Name: "Dormant", IsActive: false}).Statement
	values := insertedValues(t, stmt)

	require.Contains(t, values, "is_active")
	assert.Equal(t, false, values["is_active"])
	assert.Equal(t, false, values["delivers_nationwide"])
}

func TestCarrierRepository_CreateInactive(t *testing.T) {
	repo := NewCarrierRepository(dryRunDB(t), nil, CacheTTLs{})

	carrier := &models.Carrier{TenantID: "tenant-a", Name: "Dormant", IsActive: false}
	require.NoError(t, repo.Create(context.Background(), carrier))

	assert.False(t, carrier.IsActive, "inactive carrier must stay inactive")
	assert.NotEmpty(t, carrier.ID)
}

func TestDemoCarriers_SeedInsertKeepsInactive(t *testing.T) {
	db := dryRunDB(t)

	for _, carrier := range DemoCarriers(DefaultTenantID) {
		values := insertedValues(t, db.Create(&carrier).Statement)
		assert.Equal(t, carrier.IsActive, values["is_active"], carrier.Name)
	}
}
