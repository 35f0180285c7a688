package main

import (
	"log"

	"github.com/calebcharles343/divine-favour-store-backend/internal/model"
	"github.com/calebcharles343/divine-favour-store-backend/pkg/database"

	"github.com/joho/godotenv"
)

// Starter catalog for a Nigerian food store: proteins and spices sold
// by weight, vegetables and grains by container.
var storeProducts = []model.StoreProduct{
	{
		Name:            "Chicken (Whole)",
		Description:     "Fresh whole chicken",
		Category:        model.CategoryProtein,
		MeasurementType: model.MeasureScale,
		PricePerUnit:    2500, // per kg
		CostPrice:       2000,
		CurrentStock:    50,
		MinStockLevel:   10,
		Supplier:        "Local Poultry Farm",
	},
	{
		Name:            "Turkey (Whole)",
		Description:     "Fresh whole turkey",
		Category:        model.CategoryProtein,
		MeasurementType: model.MeasureScale,
		PricePerUnit:    3500,
		CostPrice:       2800,
		CurrentStock:    20,
		MinStockLevel:   5,
		Supplier:        "Local Poultry Farm",
	},
	{
		Name:            "Fish (Tilapia)",
		Description:     "Fresh tilapia fish",
		Category:        model.CategoryProtein,
		MeasurementType: model.MeasureScale,
		PricePerUnit:    1500,
		CostPrice:       1200,
		CurrentStock:    100,
		MinStockLevel:   20,
		Supplier:        "Local Fishery",
	},
	{
		Name:            "Goat Meat",
		Description:     "Fresh goat meat",
		Category:        model.CategoryProtein,
		MeasurementType: model.MeasureScale,
		PricePerUnit:    3000,
		CostPrice:       2400,
		CurrentStock:    40,
		MinStockLevel:   10,
		Supplier:        "Local Butchery",
	},
	{
		Name:            "Tomatoes",
		Description:     "Fresh tomatoes",
		Category:        model.CategoryVegetable,
		MeasurementType: model.MeasureContainer,
		ContainerSize:   model.ContainerMedium,
		PricePerUnit:    800,
		CostPrice:       600,
		CurrentStock:    60,
		MinStockLevel:   15,
		Supplier:        "Mile 12 Market",
	},
	{
		Name:            "Peppers (Rodo)",
		Description:     "Scotch bonnet peppers",
		Category:        model.CategoryVegetable,
		MeasurementType: model.MeasureContainer,
		ContainerSize:   model.ContainerSmall,
		PricePerUnit:    500,
		CostPrice:       350,
		CurrentStock:    80,
		MinStockLevel:   20,
		Supplier:        "Mile 12 Market",
	},
	{
		Name:            "Rice (Local)",
		Description:     "Ofada rice",
		Category:        model.CategoryGrain,
		MeasurementType: model.MeasureContainer,
		ContainerSize:   model.ContainerLarge,
		PricePerUnit:    1800,
		CostPrice:       1500,
		CurrentStock:    120,
		MinStockLevel:   30,
		Supplier:        "Northern Grains Ltd",
	},
	{
		Name:            "Beans (Honey)",
		Description:     "Honey beans (ewa oloyin)",
		Category:        model.CategoryGrain,
		MeasurementType: model.MeasureContainer,
		ContainerSize:   model.ContainerMedium,
		PricePerUnit:    1200,
		CostPrice:       950,
		CurrentStock:    90,
		MinStockLevel:   25,
		Supplier:        "Northern Grains Ltd",
	},
	{
		Name:            "Curry Powder",
		Description:     "Seasoning curry powder",
		Category:        model.CategorySpice,
		MeasurementType: model.MeasureScale,
		PricePerUnit:    400,
		CostPrice:       250,
		CurrentStock:    45,
		MinStockLevel:   10,
		Supplier:        "Spice World Distributors",
	},
	{
		Name:            "Dried Crayfish",
		Description:     "Ground dried crayfish",
		Category:        model.CategorySpice,
		MeasurementType: model.MeasureScale,
		PricePerUnit:    2000,
		CostPrice:       1600,
		CurrentStock:    30,
		MinStockLevel:   8,
		Supplier:        "Riverside Traders",
	},
}

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	// 2. Setup Database
	db := database.ConnectDB()

	// 3. Find the admin user to own the seeded catalog
	var admin model.User
	if err := db.Where("role = ?", model.RoleSuperAdmin).First(&admin).Error; err != nil {
		log.Fatalf("No SUPER-ADMIN user found, run the API once to seed it: %v", err)
	}

	// 4. Skip when the catalog already has rows
	var count int64
	db.Model(&model.StoreProduct{}).Count(&count)
	if count > 0 {
		log.Printf("Catalog already has %d products, nothing to do", count)
		return
	}

	// 5. Insert
	adminID := admin.ID.String()
	for i := range storeProducts {
		p := &storeProducts[i]
		p.IsActive = true
		p.CreatedBy = adminID
		p.UpdatedBy = adminID
		p.CreatedByUserID = &adminID

		if err := db.Create(p).Error; err != nil {
			log.Fatalf("Failed to seed product %q: %v", p.Name, err)
		}
	}

	log.Printf("Success! Seeded %d products", len(storeProducts))
}
