package database

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/23himanshusingh/network-inventory-manager/internal/models"
)

// SeedDemoData loads a small demonstration network: one headend, one hub,
// two splitters, a pending customer and a couple of warehouse assets. It is
// idempotent and skips entirely when any headend already exists.
func SeedDemoData(db *gorm.DB) {
	var count int64
	db.Model(&models.Headend{}).Count(&count)
	if count > 0 {
		return
	}

	seedDemoUsers(db)

	tech := models.Technician{Name: "Bob The Builder", Contact: "555-0101", Region: "North"}
	db.Create(&tech)

	headend := models.Headend{Name: "Main Headend", Location: "123 Core St"}
	db.Create(&headend)

	fdh := models.FDH{
		Name:      "FDH-01-North",
		Location:  "Corner of 5th and Main",
		Region:    "North",
		MaxPorts:  128,
		HeadendID: headend.ID,
	}
	db.Create(&fdh)

	splitter32 := models.Splitter{Model: "1:32", PortCapacity: 32, Location: "Slot 1", FdhID: fdh.ID}
	splitter16 := models.Splitter{Model: "1:16", PortCapacity: 16, Location: "Slot 2", FdhID: fdh.ID}
	db.Create(&splitter32)
	db.Create(&splitter16)

	ont := models.Asset{
		Type:         models.AssetONT,
		Model:        "Nokia G-010G-A",
		SerialNumber: "NK123456",
		Status:       models.AssetAvailable,
		Location:     "Warehouse A",
	}
	router := models.Asset{
		Type:         models.AssetRouter,
		Model:        "Netgear R7000",
		SerialNumber: "NG789012",
		Status:       models.AssetAvailable,
		Location:     "Warehouse A",
	}
	db.Create(&ont)
	db.Create(&router)

	customer := models.Customer{
		Name:           "Alice Smith",
		Address:        "456 Oak St",
		Neighborhood:   "North",
		Plan:           "1 GIG Fiber",
		ConnectionType: models.ConnectionWired,
		Status:         models.CustomerPending,
	}
	db.Create(&customer)

	task := models.DeploymentTask{
		Status:        models.TaskScheduled,
		ScheduledDate: time.Now().Add(48 * time.Hour),
		Notes:         "Initial install: run drop line and mount ONT",
		CustomerID:    customer.ID,
		TechnicianID:  &tech.ID,
	}
	db.Create(&task)

	log.Println("Seeded demo network data")
}

func seedDemoUsers(db *gorm.DB) {
	demo := []struct {
		username string
		role     models.UserRole
	}{
		{"planner", models.RolePlanner},
		{"tech", models.RoleTechnician},
		{"support", models.RoleSupportAgent},
	}
	for _, d := range demo {
		var count int64
		db.Model(&models.User{}).Where("username = ?", d.username).Count(&count)
		if count > 0 {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(d.username), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Failed to hash demo password for %s: %v", d.username, err)
			continue
		}
		db.Create(&models.User{Username: d.username, PasswordHash: string(hash), Role: d.role})
	}
}
