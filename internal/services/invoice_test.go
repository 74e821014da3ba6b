package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/go-gescom/internal/models"
)

func TestConvertFromSalesOrderRequiresLines(t *testing.T) {
	db := openTestDB(t)
	client := seedClient(t, db)
	order := seedQuote(t, db, client.ID)

	svc := NewInvoiceService(db)
	if _, err := svc.ConvertFromSalesOrder(order.ID); !errors.Is(err, ErrNoLines) {
		t.Fatalf("expected ErrNoLines, got %v", err)
	}
	var count int64
	if err := db.Model(&models.Invoice{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("failed conversion must leave nothing behind, got %d invoices", count)
	}
}

func TestConvertFromSalesOrder(t *testing.T) {
	db := openTestDB(t)
	client := seedClient(t, db)
	product := seedSellableProduct(t, db)
	order := seedQuote(t, db, client.ID)
	line := seedLine(t, db, order.ID, product.ID)

	svc := NewInvoiceService(db)
	inv, err := svc.ConvertFromSalesOrder(order.ID)
	require.NoError(t, err)

	assert.Equal(t, models.InvoiceStatusPending, inv.Status)
	assert.Equal(t, client.ID, inv.ContactID)
	require.NotNil(t, inv.SalesOrderID)
	assert.Equal(t, order.ID, *inv.SalesOrderID)

	// contact profile snapshotted onto the invoice
	assert.Equal(t, client.FullName(), inv.Name)
	assert.Equal(t, client.Address, inv.Address)
	assert.Equal(t, client.City, inv.City)
	assert.Equal(t, client.ZipCode, inv.ZipCode)
	assert.Equal(t, client.Email, inv.Email)

	lines, err := svc.Lines(inv.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, line.PriceHT, lines[0].PriceHT)
	assert.Equal(t, line.Tax, lines[0].Tax)
	assert.Equal(t, line.PriceIT, lines[0].PriceTax)
	assert.Equal(t, line.Quantity, lines[0].Quantity)

	// source order untouched
	orderSvc := newOrderService(db)
	after, err := orderSvc.Get(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusSent, after.Status)
}

func TestConvertSnapshotSurvivesContactEdit(t *testing.T) {
	db := openTestDB(t)
	client := seedClient(t, db)
	product := seedSellableProduct(t, db)
	order := seedQuote(t, db, client.ID)
	seedLine(t, db, order.ID, product.ID)

	svc := NewInvoiceService(db)
	inv, err := svc.ConvertFromSalesOrder(order.ID)
	require.NoError(t, err)

	contactSvc := NewContactService(db)
	_, err = contactSvc.Update(client.ID, ContactInput{
		FirstName: "Jeanne", LastName: "Durand", Email: "jeanne@example.com",
		Type: models.ContactTypeClient,
	})
	require.NoError(t, err)

	reloaded, err := svc.Get(inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jean Dupont", reloaded.Name)
	assert.Equal(t, "jean@example.com", reloaded.Email)
}

func TestUpdateInvoiceStatus(t *testing.T) {
	db := openTestDB(t)
	client := seedClient(t, db)
	product := seedSellableProduct(t, db)
	order := seedQuote(t, db, client.ID)
	seedLine(t, db, order.ID, product.ID)

	svc := NewInvoiceService(db)
	inv, err := svc.ConvertFromSalesOrder(order.ID)
	require.NoError(t, err)

	paid, err := svc.UpdateStatus(inv.ID, models.InvoiceStatusPaid)
	require.NoError(t, err)
	assert.True(t, paid.Paid())

	_, err = svc.UpdateStatus(inv.ID, "archived")
	verr, ok := AsValidation(err)
	require.True(t, ok, "expected validation error, got %v", err)
	assert.Equal(t, "invalid_value", verr.Violations["status"])
}

func TestUpdateBillingDate(t *testing.T) {
	db := openTestDB(t)
	client := seedClient(t, db)
	product := seedSellableProduct(t, db)
	order := seedQuote(t, db, client.ID)
	seedLine(t, db, order.ID, product.ID)

	svc := NewInvoiceService(db)
	inv, err := svc.ConvertFromSalesOrder(order.ID)
	require.NoError(t, err)

	newDate := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	updated, err := svc.UpdateBillingDate(inv.ID, newDate)
	require.NoError(t, err)
	assert.Equal(t, 2026, updated.CreatedAt.Year())
	assert.Equal(t, time.March, updated.CreatedAt.Month())
}

func TestDeleteInvoiceRemovesLines(t *testing.T) {
	db := openTestDB(t)
	client := seedClient(t, db)
	product := seedSellableProduct(t, db)
	order := seedQuote(t, db, client.ID)
	seedLine(t, db, order.ID, product.ID)

	svc := NewInvoiceService(db)
	inv, err := svc.ConvertFromSalesOrder(order.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(inv.ID))
	var count int64
	require.NoError(t, db.Model(&models.InvoiceOrderLine{}).Where("invoice_id = ?", inv.ID).Count(&count).Error)
	assert.Zero(t, count)
	assert.ErrorIs(t, svc.Delete(inv.ID), ErrNotFound)
}
