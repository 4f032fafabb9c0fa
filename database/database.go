package database

import (
	"fmt"
	"log"
	"os"

	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/billing"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/logs"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/plans"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/pos"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/tenants"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	// Required for UUID generation on tenant ids
	if err := DB.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Fatal("❌ Failed to enable pgcrypto extension:", err)
	}

	if err := DB.AutoMigrate(
		// core
		&tenants.Tenant{},
		&users.User{},
		&users.VerificationToken{},
		&plans.Plan{},

		// billing
		&billing.Payment{},
		&billing.PaymentMethod{},

		// pos
		&pos.Product{},
		&pos.StockMovement{},
		&pos.Customer{},
		&pos.Sale{},
		&pos.SaleItem{},

		// ops
		&logs.SystemLog{},
	); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}
