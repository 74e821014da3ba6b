package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/diewo77/go-gescom/internal/models"
	"github.com/diewo77/go-gescom/internal/validation"
)

// ContactService handles clients and suppliers.
type ContactService struct{ DB *gorm.DB }

func NewContactService(db *gorm.DB) *ContactService { return &ContactService{DB: db} }

type ContactInput struct {
	FirstName string
	LastName  string
	Email     string
	Type      string
	SIRET     string
	Phone     string
	Address   string
	City      string
	State     string
	ZipCode   string
}

func validateContact(in ContactInput) error {
	v := make(validation.Violations)
	validation.Required("first_name", in.FirstName, v)
	validation.Required("last_name", in.LastName, v)
	validation.OneOf("type", in.Type, []string{models.ContactTypeClient, models.ContactTypeFournisseur}, v)
	validation.SIRET("siret", in.SIRET, v)
	validation.Email("email", in.Email, v)
	if !v.Empty() {
		return &ValidationError{Violations: v}
	}
	return nil
}

func (s *ContactService) Create(in ContactInput) (*models.Contact, error) {
	if err := validateContact(in); err != nil {
		return nil, err
	}
	contact := models.Contact{
		FirstName: in.FirstName, LastName: in.LastName, Email: in.Email,
		Type: in.Type, SIRET: in.SIRET, Phone: in.Phone,
		Address: in.Address, City: in.City, State: in.State, ZipCode: in.ZipCode,
	}
	if err := s.DB.Create(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

func (s *ContactService) Get(id uint) (*models.Contact, error) {
	var contact models.Contact
	err := s.DB.First(&contact, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (s *ContactService) List() ([]models.Contact, error) {
	var contacts []models.Contact
	if err := s.DB.Order("id").Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func (s *ContactService) ListByType(contactType string) ([]models.Contact, error) {
	var contacts []models.Contact
	if err := s.DB.Where("type = ?", contactType).Order("id").Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func (s *ContactService) Update(id uint, in ContactInput) (*models.Contact, error) {
	contact, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := validateContact(in); err != nil {
		return nil, err
	}
	updates := map[string]any{
		"first_name": in.FirstName, "last_name": in.LastName, "email": in.Email,
		"type": in.Type, "siret": in.SIRET, "phone": in.Phone,
		"address": in.Address, "city": in.City, "state": in.State, "zip_code": in.ZipCode,
	}
	if err := s.DB.Model(contact).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(id)
}

func (s *ContactService) Delete(id uint) error {
	res := s.DB.Delete(&models.Contact{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
