package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/bitebakers/brownie-backend/config"
	"github.com/bitebakers/brownie-backend/internal/app/model"
	"github.com/bitebakers/brownie-backend/internal/app/repository"
	"github.com/bitebakers/brownie-backend/internal/db"
)

// Imports the brownie catalog from an XLSX sheet with columns:
// name | description | category | image_url | variant_name | price | stock
// Rows sharing a product name become variants of one product.
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
	products, err := readCatalogFromXLSX(filePath)
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

	imported := 0
	for i := range products {
		if err := productRepo.Create(&products[i]); err != nil {
			fmt.Printf("Failed to import %q: %v\n", products[i].Name, err)
			continue
		}
		imported++
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", imported)
}

func readCatalogFromXLSX(filePath string) ([]model.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}
	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	byName := make(map[string]*model.Product)
	var order []string
	skipped := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}
		if len(row) < 7 {
			skipped++
			continue
		}

		name := strings.TrimSpace(row[0])
		description := strings.TrimSpace(row[1])
		category := model.ProductCategory(strings.ToLower(strings.TrimSpace(row[2])))
		imageURL := strings.TrimSpace(row[3])
		variantName := strings.TrimSpace(row[4])

		if name == "" || variantName == "" {
			skipped++
			continue
		}
		if !model.ValidCategory(category) {
			fmt.Printf("Row %d: unknown category %q, skipping\n", i+1, category)
			skipped++
			continue
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(row[5]), 64)
		if err != nil || price <= 0 {
			fmt.Printf("Row %d: invalid price %q, skipping\n", i+1, row[5])
			skipped++
			continue
		}
		stock, err := strconv.Atoi(strings.TrimSpace(row[6]))
		if err != nil || stock < 0 {
			stock = 0
		}

		product, ok := byName[name]
		if !ok {
			product = &model.Product{
				Name:        name,
				Description: description,
				Category:    category,
				ImageURL:    imageURL,
				IsAvailable: true,
			}
			byName[name] = product
			order = append(order, name)
		}

		variant := model.Variant{Name: variantName, Price: price}
		variant.SetStock(stock)
		product.Variants = append(product.Variants, variant)
	}

	if skipped > 0 {
		fmt.Printf("Skipped %d rows\n", skipped)
	}

	products := make([]model.Product, 0, len(order))
	for _, name := range order {
		products = append(products, *byName[name])
	}
	return products, nil
}
