package service

import (
	"context"
	"strings"

	"github.com/sangkips/storepos-api/internal/domain/entity"
	"github.com/sangkips/storepos-api/internal/domain/repository"
	"github.com/sangkips/storepos-api/pkg/apperror"
	"gorm.io/datatypes"
)

// StoreService handles the store profile printed on receipts
type StoreService struct {
	storeRepo repository.StoreProfileRepository
}

// NewStoreService creates a new store service
func NewStoreService(storeRepo repository.StoreProfileRepository) *StoreService {
	return &StoreService{storeRepo: storeRepo}
}

// GetProfile retrieves the store profile, creating a default one if none exists
func (s *StoreService) GetProfile(ctx context.Context) (*entity.StoreProfile, error) {
	profile, err := s.storeRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if profile == nil {
		profile = &entity.StoreProfile{
			Name:          "My Store",
			ReceiptFooter: "Thank you for your purchase!",
			Settings:      datatypes.JSONMap{"show_cashier": true},
		}
		if err := s.storeRepo.Save(ctx, profile); err != nil {
			return nil, err
		}
	}

	return profile, nil
}

// UpdateProfileInput represents the input for updating the store profile
type UpdateProfileInput struct {
	Name          string
	Address       string
	Phone         string
	Email         string
	TaxID         string
	ReceiptFooter string
	Settings      map[string]interface{}
}

// UpdateProfile replaces the store profile fields
func (s *StoreService) UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.StoreProfile, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewFieldError("name", "is required")
	}

	profile, err := s.GetProfile(ctx)
	if err != nil {
		return nil, err
	}

	profile.Name = name
	profile.Address = input.Address
	profile.Phone = input.Phone
	profile.Email = input.Email
	profile.TaxID = input.TaxID
	profile.ReceiptFooter = input.ReceiptFooter
	if input.Settings != nil {
		profile.Settings = datatypes.JSONMap(input.Settings)
	}

	if err := s.storeRepo.Save(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}
