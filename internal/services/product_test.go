package services

import (
	"errors"
	"testing"
	"time"

	"github.com/diewo77/go-gescom/internal/models"
)

func TestCreateProductPriceFormula(t *testing.T) {
	db := openTestDB(t)
	svc := NewProductService(db)

	p, err := svc.Create(ProductInput{
		Description: "Clavier", PriceHT: 100, Tax: 20, PriceIT: 120,
		Type: models.ProductTypeVente,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.PriceIT != 120 {
		t.Fatalf("expected price_it 120, got %v", p.PriceIT)
	}

	_, err = svc.Create(ProductInput{
		Description: "Souris", PriceHT: 100, Tax: 20, PriceIT: 119,
		Type: models.ProductTypeVente,
	})
	verr, ok := AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Violations["price_it"] != "does_not_match_formula" {
		t.Fatalf("unexpected violations: %v", verr.Violations)
	}
}

func TestCreateProductToleratesRounding(t *testing.T) {
	db := openTestDB(t)
	svc := NewProductService(db)

	// 33.33 × 1.2 = 39.996 → stored as 40.00, within the cent tolerance
	if _, err := svc.Create(ProductInput{
		Description: "Forfait", PriceHT: 33.33, Tax: 20, PriceIT: 40.00,
		Type: models.ProductTypeVente,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
}

func TestCreateProductBounds(t *testing.T) {
	db := openTestDB(t)
	svc := NewProductService(db)

	_, err := svc.Create(ProductInput{
		Description: "Cassé", PriceHT: -1, Tax: 150, PriceIT: 0, Type: "autre",
	})
	verr, ok := AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, field := range []string{"price_ht", "tax", "type"} {
		if _, present := verr.Violations[field]; !present {
			t.Fatalf("missing violation for %s: %v", field, verr.Violations)
		}
	}
}

func TestCreateProductDuplicateDescription(t *testing.T) {
	db := openTestDB(t)
	svc := NewProductService(db)
	seedSellableProduct(t, db)

	_, err := svc.Create(ProductInput{
		Description: "Prestation conseil", PriceHT: 50, Tax: 20, PriceIT: 60,
		Type: models.ProductTypeVente,
	})
	verr, ok := AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Violations["description"] != "already_exists" {
		t.Fatalf("unexpected violations: %v", verr.Violations)
	}
}

func TestDeleteProductInUse(t *testing.T) {
	db := openTestDB(t)
	client := seedClient(t, db)
	product := seedSellableProduct(t, db)
	order := seedQuote(t, db, client.ID)
	seedLine(t, db, order.ID, product.ID)

	svc := NewProductService(db)
	if err := svc.Delete(product.ID); !errors.Is(err, ErrProductInUse) {
		t.Fatalf("expected ErrProductInUse, got %v", err)
	}
}

func TestListSellable(t *testing.T) {
	db := openTestDB(t)
	svc := NewProductService(db)

	purchase := models.Product{Description: "Matière première", PriceHT: 10, Tax: 20, PriceIT: 12, Type: models.ProductTypeAchat}
	if err := db.Create(&purchase).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	seedSellableProduct(t, db)

	sellable, err := svc.ListSellable()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sellable) != 1 {
		t.Fatalf("expected 1 sellable product, got %d", len(sellable))
	}
	if sellable[0].Type == models.ProductTypeAchat {
		t.Fatal("purchase-only product listed as sellable")
	}
}

func TestSalesOrderLineRejectsUnsellableProduct(t *testing.T) {
	db := openTestDB(t)
	client := seedClient(t, db)
	order := seedQuote(t, db, client.ID)

	purchase := models.Product{Description: "Matière première", PriceHT: 10, Tax: 20, PriceIT: 12, Type: models.ProductTypeAchat}
	if err := db.Create(&purchase).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc := NewSalesOrderLineService(db)
	_, err := svc.Create(SalesOrderLineInput{
		SalesOrderID: order.ID, ProductID: purchase.ID,
		PriceHT: 10, Tax: 20, Quantity: 1, Date: time.Now(), Genre: "Achat",
	})
	verr, ok := AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Violations["product_id"] != "product_not_for_sale" {
		t.Fatalf("unexpected violations: %v", verr.Violations)
	}
}

func TestSalesOrderLineComputesTotalOnce(t *testing.T) {
	db := openTestDB(t)
	client := seedClient(t, db)
	product := seedSellableProduct(t, db)
	order := seedQuote(t, db, client.ID)

	line := seedLine(t, db, order.ID, product.ID)
	if line.PriceIT != 240 {
		t.Fatalf("expected 100×2×1.2 = 240, got %v", line.PriceIT)
	}
	if line.ContactID != client.ID {
		t.Fatalf("line must copy the order's contact, got %d", line.ContactID)
	}
	if line.TotalHT() != 200 {
		t.Fatalf("expected total HT 200, got %v", line.TotalHT())
	}
}
