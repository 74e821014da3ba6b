package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/go-gescom/internal/models"
	"github.com/diewo77/go-gescom/internal/validation"
)

// InvoiceService handles invoices and their lines, plus the one-way
// conversion pipeline that turns a quote/order into an invoice.
type InvoiceService struct{ DB *gorm.DB }

func NewInvoiceService(db *gorm.DB) *InvoiceService { return &InvoiceService{DB: db} }

var invoiceStatuses = []string{
	models.InvoiceStatusPending, models.InvoiceStatusPaid,
	models.InvoiceStatusInstallments, models.InvoiceStatusCancelled,
}

func (s *InvoiceService) Get(id uint) (*models.Invoice, error) {
	var inv models.Invoice
	err := s.DB.Preload("Contact").First(&inv, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (s *InvoiceService) List() ([]models.Invoice, error) {
	var invs []models.Invoice
	if err := s.DB.Preload("Contact").Order("id").Find(&invs).Error; err != nil {
		return nil, err
	}
	return invs, nil
}

func (s *InvoiceService) ListByContact(contactID uint) ([]models.Invoice, error) {
	var invs []models.Invoice
	if err := s.DB.Preload("Contact").Where("contact_id = ?", contactID).Order("id").Find(&invs).Error; err != nil {
		return nil, err
	}
	return invs, nil
}

func (s *InvoiceService) Lines(invoiceID uint) ([]models.InvoiceOrderLine, error) {
	var lines []models.InvoiceOrderLine
	err := s.DB.Preload("Product").Where("invoice_id = ?", invoiceID).Order("id").Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// UpdateStatus moves the payment status; the legacy values stay accepted.
func (s *InvoiceService) UpdateStatus(id uint, status string) (*models.Invoice, error) {
	inv, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	v := make(validation.Violations)
	validation.OneOf("status", status, invoiceStatuses, v)
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}
	if err := s.DB.Model(inv).Update("status", status).Error; err != nil {
		return nil, err
	}
	return s.Get(id)
}

// UpdateBillingDate adjusts CreatedAt, which doubles as the billing date
// used for revenue-period bucketing.
func (s *InvoiceService) UpdateBillingDate(id uint, date time.Time) (*models.Invoice, error) {
	inv, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Model(inv).Update("created_at", date).Error; err != nil {
		return nil, err
	}
	return s.Get(id)
}

func (s *InvoiceService) Delete(id uint) error {
	res := s.DB.Delete(&models.Invoice{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return s.DB.Where("invoice_id = ?", id).Delete(&models.InvoiceOrderLine{}).Error
}

// ConvertFromSalesOrder copies a quote/order's lines into a brand-new
// invoice built from the order's contact profile. Requires at least one
// line; never mutates the sales order. Everything happens in one
// transaction so a failed copy leaves nothing behind.
func (s *InvoiceService) ConvertFromSalesOrder(orderID uint) (*models.Invoice, error) {
	var order models.SalesOrder
	err := s.DB.Preload("Contact").First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var lines []models.SalesOrderLine
	if err := s.DB.Where("sales_order_id = ?", orderID).Order("id").Find(&lines).Error; err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrNoLines
	}

	contact := order.Contact
	inv := models.Invoice{
		ContactID:    contact.ID,
		SalesOrderID: &order.ID,
		Name:         contact.FullName(),
		Address:      contact.Address,
		City:         contact.City,
		State:        contact.State,
		ZipCode:      contact.ZipCode,
		SIRET:        contact.SIRET,
		Email:        contact.Email,
		Phone:        contact.Phone,
		Status:       models.InvoiceStatusPending,
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&inv).Error; err != nil {
			return err
		}
		invLines := make([]models.InvoiceOrderLine, 0, len(lines))
		for _, l := range lines {
			invLines = append(invLines, models.InvoiceOrderLine{
				InvoiceID: inv.ID,
				ProductID: l.ProductID,
				ContactID: l.ContactID,
				PriceHT:   l.PriceHT,
				Tax:       l.Tax,
				PriceTax:  l.PriceIT,
				Quantity:  l.Quantity,
				Date:      l.Date,
			})
		}
		return tx.Create(&invLines).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(inv.ID)
}
