package service

import (
	"errors"
	"fmt"

	"agriconnect/internal/model"
	"agriconnect/internal/repository"
	"agriconnect/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrListingExists  = errors.New("listing already exists for this seller and product")
	ErrNotListingUser = errors.New("listing belongs to another seller")
)

type CatalogService interface {
	CreateProduct(req *CreateProductRequest) (*model.Product, error)
	GetProducts() ([]model.Product, error)
	GetProduct(id uuid.UUID) (*model.Product, error)
	UpdateProduct(id uuid.UUID, patch *ProductPatch) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error

	CreateListing(sellerID uuid.UUID, req *CreateListingRequest) (*model.Listing, error)
	GetListings() ([]model.Listing, error)
	GetListing(userID, productID uuid.UUID) (*model.Listing, error)
	GetListingsByUser(userID uuid.UUID) ([]model.Listing, error)
	UpdateListing(sellerID, userID, productID uuid.UUID, patch *ListingPatch) (*model.Listing, error)
	DeleteListing(sellerID, userID, productID uuid.UUID) error
}

type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	BasePrice   decimal.Decimal `json:"base_price" validate:"dec_gt_zero"`
}

// ProductPatch is the allow-listed partial update for a product. Only fields
// present in the request body change; the strict JSON decoder in the handler
// rejects anything outside this set.
type ProductPatch struct {
	Name        *string          `json:"name" validate:"omitempty,min=1"`
	Description *string          `json:"description"`
	BasePrice   *decimal.Decimal `json:"base_price"`
}

type CreateListingRequest struct {
	ProductID     uuid.UUID       `json:"product_id" validate:"uuid_required"`
	Price         decimal.Decimal `json:"price" validate:"dec_gt_zero"`
	StockQuantity int             `json:"stock_quantity" validate:"gte=0"`
}

// ListingPatch is the allow-listed partial update for a listing.
type ListingPatch struct {
	Price         *decimal.Decimal `json:"price"`
	StockQuantity *int             `json:"stock_quantity" validate:"omitempty,gte=0"`
}

type catalogService struct {
	productRepo repository.ProductRepository
	listingRepo repository.ListingRepository
}

func NewCatalogService(productRepo repository.ProductRepository, listingRepo repository.ListingRepository) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		listingRepo: listingRepo,
	}
}

func (s *catalogService) CreateProduct(req *CreateProductRequest) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}

	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		BasePrice:   req.BasePrice,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *catalogService) GetProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *catalogService) GetProduct(id uuid.UUID) (*model.Product, error) {
	return s.productRepo.FindByID(id)
}

func (s *catalogService) UpdateProduct(id uuid.UUID, patch *ProductPatch) (*model.Product, error) {
	if errs := validator.ValidateStruct(patch); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.BasePrice != nil {
		if !patch.BasePrice.IsPositive() {
			return nil, fmt.Errorf("%w: base_price must be positive", ErrValidation)
		}
		product.BasePrice = *patch.BasePrice
	}

	if err := s.productRepo.Save(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *catalogService) DeleteProduct(id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		return err
	}
	return s.productRepo.Delete(id)
}

func (s *catalogService) CreateListing(sellerID uuid.UUID, req *CreateListingRequest) (*model.Listing, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}

	// The product must exist before anyone can list it.
	if _, err := s.productRepo.FindByID(req.ProductID); err != nil {
		return nil, err
	}

	if existing, _ := s.listingRepo.Find(sellerID, req.ProductID); existing != nil {
		return nil, ErrListingExists
	}

	listing := &model.Listing{
		UserID:        sellerID,
		ProductID:     req.ProductID,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
	}
	if err := s.listingRepo.Create(listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (s *catalogService) GetListings() ([]model.Listing, error) {
	return s.listingRepo.FindAll()
}

func (s *catalogService) GetListing(userID, productID uuid.UUID) (*model.Listing, error) {
	return s.listingRepo.Find(userID, productID)
}

func (s *catalogService) GetListingsByUser(userID uuid.UUID) ([]model.Listing, error) {
	return s.listingRepo.FindByUser(userID)
}

// UpdateListing applies a partial patch to the listing keyed
// (userID, productID). sellerID is the session user: only the owner may
// change their own listing.
func (s *catalogService) UpdateListing(sellerID, userID, productID uuid.UUID, patch *ListingPatch) (*model.Listing, error) {
	if errs := validator.ValidateStruct(patch); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}

	listing, err := s.listingRepo.Find(userID, productID)
	if err != nil {
		return nil, err
	}
	if listing.UserID != sellerID {
		return nil, ErrNotListingUser
	}

	if patch.Price != nil {
		if !patch.Price.IsPositive() {
			return nil, fmt.Errorf("%w: price must be positive", ErrValidation)
		}
		listing.Price = *patch.Price
	}
	if patch.StockQuantity != nil {
		listing.StockQuantity = *patch.StockQuantity
	}

	if err := s.listingRepo.Save(listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (s *catalogService) DeleteListing(sellerID, userID, productID uuid.UUID) error {
	listing, err := s.listingRepo.Find(userID, productID)
	if err != nil {
		return err
	}
	if listing.UserID != sellerID {
		return ErrNotListingUser
	}
	return s.listingRepo.Delete(userID, productID)
}
