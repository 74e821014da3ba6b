package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/go-gescom/internal/models"
	"github.com/diewo77/go-gescom/internal/validation"
)

// SalesOrderLineService handles the line items of quotes/orders.
type SalesOrderLineService struct{ DB *gorm.DB }

func NewSalesOrderLineService(db *gorm.DB) *SalesOrderLineService {
	return &SalesOrderLineService{DB: db}
}

type SalesOrderLineInput struct {
	SalesOrderID uint
	ProductID    uint
	PriceHT      float64
	Tax          float64
	Quantity     int
	Date         time.Time
	Genre        string
}

// Create re-checks order and product existence, product sellability and the
// pricing bounds, then stores the line with its tax-inclusive total computed
// once. The line duplicates the order's contact reference.
func (s *SalesOrderLineService) Create(in SalesOrderLineInput) (*models.SalesOrderLine, error) {
	v := make(validation.Violations)
	validation.NonNegativeFloat("price_ht", in.PriceHT, v)
	validation.RangeFloat("tax", in.Tax, 0, 100, v)
	validation.PositiveInt("quantity", in.Quantity, v)
	validation.Required("genre", in.Genre, v)

	var order models.SalesOrder
	err := s.DB.First(&order, in.SalesOrderID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		v["sales_order_id"] = "unknown_sales_order"
	case err != nil:
		return nil, err
	}

	var product models.Product
	err = s.DB.First(&product, in.ProductID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		v["product_id"] = "unknown_product"
	case err != nil:
		return nil, err
	case !product.Sellable():
		v["product_id"] = "product_not_for_sale"
	}

	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}

	line := models.SalesOrderLine{
		SalesOrderID: in.SalesOrderID,
		ProductID:    in.ProductID,
		ContactID:    order.ContactID,
		PriceHT:      in.PriceHT,
		Tax:          in.Tax,
		PriceIT:      models.LinePriceIncludingTax(in.PriceHT, in.Tax, in.Quantity),
		Quantity:     in.Quantity,
		Date:         in.Date,
		Genre:        in.Genre,
	}
	if err := s.DB.Create(&line).Error; err != nil {
		return nil, err
	}
	return s.Get(line.ID)
}

func (s *SalesOrderLineService) Get(id uint) (*models.SalesOrderLine, error) {
	var line models.SalesOrderLine
	err := s.DB.Preload("Product").Preload("Contact").First(&line, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (s *SalesOrderLineService) ListByOrder(salesOrderID uint) ([]models.SalesOrderLine, error) {
	var lines []models.SalesOrderLine
	err := s.DB.Preload("Product").Where("sales_order_id = ?", salesOrderID).
		Order("id").Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *SalesOrderLineService) Delete(id uint) error {
	res := s.DB.Delete(&models.SalesOrderLine{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
