package services

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/go-gescom/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// unique in-memory DB per test name to avoid leakage via shared cache
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(&models.Contact{}, &models.Product{}, &models.SalesOrder{},
		&models.SalesOrderLine{}, &models.Invoice{}, &models.InvoiceOrderLine{})
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedClient(t *testing.T, db *gorm.DB) models.Contact {
	t.Helper()
	c := models.Contact{
		FirstName: "Jean", LastName: "Dupont", Email: "jean@example.com",
		Type: models.ContactTypeClient, Phone: "0600000000",
		Address: "1 rue de la Paix", City: "Paris", ZipCode: "75002",
	}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return c
}

func seedSupplier(t *testing.T, db *gorm.DB) models.Contact {
	t.Helper()
	c := models.Contact{
		FirstName: "Marc", LastName: "Martin", Email: "marc@example.com",
		Type: models.ContactTypeFournisseur,
	}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("seed supplier: %v", err)
	}
	return c
}

func seedSellableProduct(t *testing.T, db *gorm.DB) models.Product {
	t.Helper()
	p := models.Product{
		Description: "Prestation conseil", PriceHT: 100, Tax: 20, PriceIT: 120,
		Type: models.ProductTypeVente,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func newOrderService(db *gorm.DB) *SalesOrderService {
	return NewSalesOrderService(db, "test-secret", 7*24*time.Hour)
}

func seedQuote(t *testing.T, db *gorm.DB, contactID uint) *models.SalesOrder {
	t.Helper()
	svc := newOrderService(db)
	order, err := svc.Create(SalesOrderInput{ContactID: contactID, Genre: "Conseil", Type: models.OrderTypeDevis})
	if err != nil {
		t.Fatalf("seed quote: %v", err)
	}
	return order
}

func seedLine(t *testing.T, db *gorm.DB, orderID, productID uint) *models.SalesOrderLine {
	t.Helper()
	svc := NewSalesOrderLineService(db)
	line, err := svc.Create(SalesOrderLineInput{
		SalesOrderID: orderID, ProductID: productID,
		PriceHT: 100, Tax: 20, Quantity: 2, Date: time.Now(), Genre: "Conseil",
	})
	if err != nil {
		t.Fatalf("seed line: %v", err)
	}
	return line
}
