package database

import (
	"log"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/23himanshusingh/network-inventory-manager/internal/config"
	"github.com/23himanshusingh/network-inventory-manager/internal/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	var err error
	DB, err = gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	err = Migrate(DB)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	seedAdminUser(DB)
	if cfg.SeedDemoData {
		SeedDemoData(DB)
	}
}

// Migrate creates or updates the schema for every model. Exposed separately
// so tests can spin up in-memory databases.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Headend{},
		&models.FDH{},
		&models.Splitter{},
		&models.Customer{},
		&models.FiberDropLine{},
		&models.Asset{},
		&models.AssetAssignment{},
		&models.Technician{},
		&models.DeploymentTask{},
		&models.User{},
		&models.AuditEntry{},
	)
}

func seedAdminUser(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count > 0 {
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash default admin password: %v", err)
	}

	admin := models.User{
		Username:     "admin",
		PasswordHash: string(hashedPassword),
		Role:         models.RoleAdmin,
	}
	db.Create(&admin)
	log.Println("Database seeded with default admin user (username: admin, password: admin)")
	log.Println("⚠️  IMPORTANT: Change the default password immediately!")
}
