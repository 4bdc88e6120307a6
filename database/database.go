package database

import (
	"academy/models"
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb establishes a connection to PostgreSQL
func ConnectDb() {
	// Build the PostgreSQL connection string
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	// Open database connection
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		os.Exit(2)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)   // Maximum open connections
	sqlDB.SetMaxIdleConns(5)    // Maximum idle connections
	sqlDB.SetConnMaxLifetime(0) // No timeout

	// Run database migrations
	RunMigrations(db)

	// Save database instance globally
	Database = DbInstance{Db: db}
}

// RunMigrations performs database migrations and seeds the module catalog
func RunMigrations(db *gorm.DB) {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.LoginTracking{},
		&models.Module{},
		&models.AccessRequest{},
		&models.Progress{},
		&models.Unit{},
		&models.SiteSettings{},
		&models.Message{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	SeedModules(db)

	log.Println("Migrations completed successfully.")
}

// SeedModules inserts the fixed catalog. Existing rows are left untouched so
// access_type changes made in the database survive restarts.
func SeedModules(db *gorm.DB) {
	modules := []models.Module{
		{ID: 1, ModuleName: "Foundation & Financial Freedom Roadmap", AccessType: models.AccessTypeOpen,
			Description: "Start here: how the lettings business model works and where it can take you."},
		{ID: 2, ModuleName: "Market Understanding & Property Strategy", AccessType: models.AccessTypeRequiresApproval,
			Description: "Reading your local market and choosing the right property strategy."},
		{ID: 3, ModuleName: "Business Setup & Compliance Foundations", AccessType: models.AccessTypeRequiresApproval,
			Description: "Company setup, legal requirements and compliance essentials."},
		{ID: 4, ModuleName: "Client Acquisition & Lettings Operations", AccessType: models.AccessTypeRequiresApproval,
			Description: "Winning landlords and running day-to-day lettings operations."},
		{ID: 5, ModuleName: "Property Management & Relationship Building", AccessType: models.AccessTypeRequiresApproval,
			Description: "Managing properties well and keeping landlords and tenants happy."},
		{ID: 6, ModuleName: "End of Tenancy, Renewals & Compliance Updates", AccessType: models.AccessTypeRequiresApproval,
			Description: "Handling tenancy endings, renewals and staying compliant."},
		{ID: 7, ModuleName: "Scaling, Marketing & Portfolio Growth", AccessType: models.AccessTypeRequiresApproval,
			Description: "Growing your portfolio and marketing the business."},
	}

	for _, m := range modules {
		if err := db.Where("id = ?", m.ID).FirstOrCreate(&m).Error; err != nil {
			log.Printf("Error seeding module %d: %v", m.ID, err)
		}
	}
}
