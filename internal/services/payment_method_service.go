package services

import (
	"spebit-service/internal/models"

	"gorm.io/gorm"
)

type PaymentMethodService struct {
	DB *gorm.DB
}

func NewPaymentMethodService(db *gorm.DB) *PaymentMethodService {
	return &PaymentMethodService{DB: db}
}

func (s *PaymentMethodService) ListActive() ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	err := s.DB.Where("is_active = ?", true).Order("name ASC").Find(&methods).Error
	return methods, err
}

func (s *PaymentMethodService) List() ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	err := s.DB.Order("name ASC").Find(&methods).Error
	return methods, err
}

func (s *PaymentMethodService) GetActive(id string) (*models.PaymentMethod, error) {
	var method models.PaymentMethod
	if err := s.DB.Where("id = ? AND is_active = ?", id, true).First(&method).Error; err != nil {
		return nil, err
	}
	return &method, nil
}

// Create validates the typed detail fields before persisting.
func (s *PaymentMethodService) Create(method *models.PaymentMethod) error {
	if err := method.ValidateDetails(); err != nil {
		return err
	}
	return s.DB.Create(method).Error
}

// Update replaces the method's details wholesale. The full record is
// re-validated so a method can never drift into a mixed shape.
func (s *PaymentMethodService) Update(id string, updated *models.PaymentMethod) (*models.PaymentMethod, error) {
	var method models.PaymentMethod
	if err := s.DB.First(&method, "id = ?", id).Error; err != nil {
		return nil, err
	}

	method.Name = updated.Name
	method.MethodType = updated.MethodType
	method.IconURL = updated.IconURL
	method.IsActive = updated.IsActive
	method.UpiID = updated.UpiID
	method.EmailID = updated.EmailID
	method.BankName = updated.BankName
	method.AccountHolderName = updated.AccountHolderName
	method.AccountNumber = updated.AccountNumber
	method.IfscCode = updated.IfscCode

	if err := method.ValidateDetails(); err != nil {
		return nil, err
	}
	if err := s.DB.Save(&method).Error; err != nil {
		return nil, err
	}
	return &method, nil
}

func (s *PaymentMethodService) Delete(id string) error {
	res := s.DB.Delete(&models.PaymentMethod{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
