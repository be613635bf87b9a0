package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/23himanshusingh/network-inventory-manager/internal/database"
	"github.com/23himanshusingh/network-inventory-manager/internal/models"
)

// newTestDB opens an isolated in-memory database per test. cache=shared
// keeps all pooled connections on the same store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// newTestNetwork seeds one headend, one FDH and a splitter of the given
// capacity, returning the created rows.
func newTestNetwork(t *testing.T, db *gorm.DB, capacity int) (*models.Headend, *models.FDH, *models.Splitter) {
	t.Helper()
	headend := &models.Headend{Name: "HE-" + strings.ReplaceAll(t.Name(), "/", "_"), Location: "Core"}
	if err := db.Create(headend).Error; err != nil {
		t.Fatalf("create headend: %v", err)
	}
	fdh := &models.FDH{Name: "FDH-" + strings.ReplaceAll(t.Name(), "/", "_"), MaxPorts: 128, HeadendID: headend.ID}
	if err := db.Create(fdh).Error; err != nil {
		t.Fatalf("create fdh: %v", err)
	}
	splitter := &models.Splitter{Model: fmt.Sprintf("1:%d", capacity), PortCapacity: capacity, FdhID: fdh.ID}
	if err := db.Create(splitter).Error; err != nil {
		t.Fatalf("create splitter: %v", err)
	}
	return headend, fdh, splitter
}

func newTestCustomer(t *testing.T, db *gorm.DB, name string) *models.Customer {
	t.Helper()
	customer := &models.Customer{Name: name, Status: models.CustomerPending}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("create customer: %v", err)
	}
	return customer
}

func auditCount(t *testing.T, db *gorm.DB, actionType string) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.AuditEntry{}).Where("action_type = ?", actionType).Count(&count).Error; err != nil {
		t.Fatalf("count audit entries: %v", err)
	}
	return count
}
