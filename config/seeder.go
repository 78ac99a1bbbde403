package config

import (
	"log"

	"github.com/LisandroRomero/bd-global/models"
	"github.com/LisandroRomero/bd-global/utils"

	"gorm.io/gorm"
)

func SeedUsers(db *gorm.DB) {
	log.Println("🌱 Seeding users...")

	password, _ := utils.HashPassword("password123")

	users := []models.User{
		{
			Name:     "Admin",
			Email:    "admin@example.com",
			Password: password,
			Role:     models.RoleAdministrator,
		},
		{
			Name:     "Customer One",
			Email:    "customer1@example.com",
			Password: password,
			Role:     models.RoleCustomer,
		},
	}

	for _, user := range users {
		var existingUser models.User
		if err := db.Where("email = ?", user.Email).First(&existingUser).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&user).Error; err != nil {
					log.Printf("Failed to seed user %s: %v", user.Email, err)
				} else {
					log.Printf("User seeded: %s (ID: %d)", user.Email, user.ID)
				}
			}
		} else {
			log.Printf("User already exists: %s", user.Email)
		}
	}

	log.Println("✅ Seeding complete.")
}

func SeedCategories(db *gorm.DB) {
	categories := []models.Category{
		{Name: "Electronics", Description: "Phones, computers and accessories"},
		{Name: "Clothing", Description: "Apparel and footwear"},
		{Name: "Home", Description: "Furniture and household goods"},
	}

	for _, category := range categories {
		var existing models.Category
		if err := db.Where("name = ?", category.Name).First(&existing).Error; err == gorm.ErrRecordNotFound {
			if err := db.Create(&category).Error; err != nil {
				log.Printf("Failed to seed category %s: %v", category.Name, err)
			}
		}
	}
}

func SeedProducts(db *gorm.DB) {
	var electronics models.Category
	if err := db.Where("name = ?", "Electronics").First(&electronics).Error; err != nil {
		log.Printf("Skipping product seed, base category missing: %v", err)
		return
	}

	products := []models.Product{
		{Name: "Wireless Mouse", Description: "2.4GHz optical mouse", Price: 19.99, Stock: 50, CategoryID: electronics.ID},
		{Name: "USB-C Charger", Description: "65W fast charger", Price: 34.50, Stock: 30, CategoryID: electronics.ID},
	}

	for _, product := range products {
		var existing models.Product
		if err := db.Where("name = ?", product.Name).First(&existing).Error; err == gorm.ErrRecordNotFound {
			if err := db.Create(&product).Error; err != nil {
				log.Printf("Failed to seed product %s: %v", product.Name, err)
			}
		}
	}
}
