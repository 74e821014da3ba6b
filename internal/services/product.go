package services

import (
	"errors"
	"math"

	"gorm.io/gorm"

	"github.com/diewo77/go-gescom/internal/models"
	"github.com/diewo77/go-gescom/internal/validation"
)

// priceITTolerance absorbs rounding differences between the stored
// tax-inclusive price and the derived formula.
const priceITTolerance = 0.01

// ProductService handles the catalogue.
type ProductService struct{ DB *gorm.DB }

func NewProductService(db *gorm.DB) *ProductService { return &ProductService{DB: db} }

type ProductInput struct {
	Description string
	PriceHT     float64
	Tax         float64
	PriceIT     float64
	Type        string
}

func validateProduct(in ProductInput) error {
	v := make(validation.Violations)
	validation.Required("description", in.Description, v)
	validation.NonNegativeFloat("price_ht", in.PriceHT, v)
	validation.RangeFloat("tax", in.Tax, 0, 100, v)
	validation.OneOf("type", in.Type, []string{models.ProductTypeAchat, models.ProductTypeVente, models.ProductTypeAchatVente}, v)
	if _, ok := v["tax"]; !ok {
		expected := models.PriceIncludingTax(in.PriceHT, in.Tax)
		if math.Abs(in.PriceIT-expected) > priceITTolerance {
			v["price_it"] = "does_not_match_formula"
		}
	}
	if !v.Empty() {
		return &ValidationError{Violations: v}
	}
	return nil
}

func (s *ProductService) Create(in ProductInput) (*models.Product, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}
	var count int64
	if err := s.DB.Model(&models.Product{}).Where("description = ?", in.Description).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, &ValidationError{Violations: validation.Violations{"description": "already_exists"}}
	}
	product := models.Product{
		Description: in.Description,
		PriceHT:     in.PriceHT,
		Tax:         in.Tax,
		PriceIT:     in.PriceIT,
		Type:        in.Type,
	}
	if err := s.DB.Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductService) Get(id uint) (*models.Product, error) {
	var product models.Product
	err := s.DB.First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductService) List() ([]models.Product, error) {
	var products []models.Product
	if err := s.DB.Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListSellable returns products that may appear on a quote/order line.
func (s *ProductService) ListSellable() ([]models.Product, error) {
	var products []models.Product
	err := s.DB.Where("type IN ?", []string{models.ProductTypeVente, models.ProductTypeAchatVente}).
		Order("id").Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductService) Update(id uint, in ProductInput) (*models.Product, error) {
	product, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := validateProduct(in); err != nil {
		return nil, err
	}
	var count int64
	if err := s.DB.Model(&models.Product{}).Where("description = ? AND id <> ?", in.Description, id).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, &ValidationError{Violations: validation.Violations{"description": "already_exists"}}
	}
	updates := map[string]any{
		"description": in.Description, "price_ht": in.PriceHT,
		"tax": in.Tax, "price_it": in.PriceIT, "type": in.Type,
	}
	if err := s.DB.Model(product).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Delete refuses to remove a product still referenced by any sales-order
// line or invoice line.
func (s *ProductService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	var count int64
	if err := s.DB.Model(&models.SalesOrderLine{}).Where("product_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrProductInUse
	}
	if err := s.DB.Model(&models.InvoiceOrderLine{}).Where("product_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrProductInUse
	}
	return s.DB.Delete(&models.Product{}, id).Error
}
