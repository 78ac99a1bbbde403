package config

import (
	"log"

	"github.com/LisandroRomero/bd-global/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	// Migrate the schema
	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	)

	if err != nil {
		log.Printf("Failed to migrate database schema: %v", err)
		return err
	}

	log.Println("Database Migrations completed succesfully...")

	return nil
}

func ResetAndMigrate(db *gorm.DB) error {
	// Drop all tables
	tables := []interface{}{
		&models.Review{},
		&models.OrderItem{},
		&models.Order{},
		&models.CartItem{},
		&models.Cart{},
		&models.Product{},
		&models.Category{},
		&models.User{},
	}

	if err := db.Migrator().DropTable(tables...); err != nil {
		log.Printf("Failed to drop tables: %v", err)
		return err
	}

	log.Println("All tables dropped successfully.")

	if err := Migrate(db); err != nil {
		return err
	}

	SeedUsers(db)
	SeedCategories(db)
	SeedProducts(db)

	log.Println("Database reset and migration completed successfully.")
	return nil
}
