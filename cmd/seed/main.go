package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/nexora/nexora-backend/config"
	"github.com/nexora/nexora-backend/internal/app/model"
	"github.com/nexora/nexora-backend/internal/app/repository"
	"github.com/nexora/nexora-backend/internal/app/service"
	"github.com/nexora/nexora-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Imports the product catalog from an XLSX export.
// Expected columns: name, description, price, category, stock, image_url.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	productRepo := repository.NewProductRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, err := readProductsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products to import: %d\n", len(products))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 500
	if err := productRepo.BulkCreate(products, batchSize); err != nil {
		log.Fatal("Failed to bulk create products:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", len(products))
}

func readProductsFromXLSX(filePath string) ([]model.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var products []model.Product
	seenSlugs := make(map[string]bool)
	skippedCount := 0

	// First row is the header
	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 5 {
			skippedCount++
			continue
		}

		name := strings.TrimSpace(row[0])
		description := strings.TrimSpace(row[1])
		priceRaw := strings.TrimSpace(row[2])
		category := strings.ToLower(strings.TrimSpace(row[3]))
		stockRaw := strings.TrimSpace(row[4])

		var imageURL string
		if len(row) > 5 {
			imageURL = strings.TrimSpace(row[5])
		}

		if name == "" || priceRaw == "" {
			skippedCount++
			continue
		}

		price, err := strconv.ParseFloat(priceRaw, 64)
		if err != nil || price <= 0 {
			skippedCount++
			continue
		}

		stock, err := strconv.Atoi(stockRaw)
		if err != nil {
			stock = 0
		}

		slug := service.Slugify(name)
		if slug == "" || seenSlugs[slug] {
			skippedCount++
			continue
		}
		seenSlugs[slug] = true

		products = append(products, model.Product{
			Name:          name,
			Slug:          slug,
			Description:   description,
			Price:         price,
			Category:      model.ProductCategory(category),
			StockQuantity: stock,
			ImageURL:      imageURL,
		})
	}

	if skippedCount > 0 {
		fmt.Printf("Skipped %d rows with missing or invalid data\n", skippedCount)
	}

	return products, nil
}
