package repository

import (
	"agriconnect/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate adds a row lock where the dialect supports it. SQLite (used
// in tests) has no FOR UPDATE; its single-writer model serializes stock
// mutation anyway.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

type ListingRepository interface {
	Create(listing *model.Listing) error
	Find(userID, productID uuid.UUID) (*model.Listing, error)
	FindAll() ([]model.Listing, error)
	FindByUser(userID uuid.UUID) ([]model.Listing, error)
	Save(listing *model.Listing) error
	Delete(userID, productID uuid.UUID) error

	// Transactional variants used by the order workflow. They take the
	// enclosing tx so stock reads and writes share one lock scope.
	FindByProductForUpdate(tx *gorm.DB, productID uuid.UUID) (*model.Listing, error)
	FindForUpdate(tx *gorm.DB, userID, productID uuid.UUID) (*model.Listing, error)
	UpdateStock(tx *gorm.DB, userID, productID uuid.UUID, newStock int) error
}

type listingRepo struct {
	db *gorm.DB
}

func NewListingRepo(db *gorm.DB) ListingRepository {
	return &listingRepo{db}
}

func (r *listingRepo) Create(listing *model.Listing) error {
	return r.db.Create(listing).Error
}

func (r *listingRepo) Find(userID, productID uuid.UUID) (*model.Listing, error) {
	var listing model.Listing
	err := r.db.Preload("Product").
		First(&listing, "user_id = ? AND product_id = ?", userID, productID).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepo) FindAll() ([]model.Listing, error) {
	var listings []model.Listing
	err := r.db.Preload("Product").Find(&listings).Error
	return listings, err
}

func (r *listingRepo) FindByUser(userID uuid.UUID) ([]model.Listing, error) {
	var listings []model.Listing
	err := r.db.Preload("Product").Where("user_id = ?", userID).Find(&listings).Error
	return listings, err
}

func (r *listingRepo) Save(listing *model.Listing) error {
	return r.db.Save(listing).Error
}

func (r *listingRepo) Delete(userID, productID uuid.UUID) error {
	return r.db.Delete(&model.Listing{}, "user_id = ? AND product_id = ?", userID, productID).Error
}

// FindByProductForUpdate resolves a listing by product alone. When several
// sellers list the same product the first by seller id wins; see the order
// service for why the lookup is not seller-scoped.
func (r *listingRepo) FindByProductForUpdate(tx *gorm.DB, productID uuid.UUID) (*model.Listing, error) {
	var listing model.Listing
	err := lockForUpdate(tx).Order("user_id").
		First(&listing, "product_id = ?", productID).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepo) FindForUpdate(tx *gorm.DB, userID, productID uuid.UUID) (*model.Listing, error) {
	var listing model.Listing
	err := lockForUpdate(tx).
		First(&listing, "user_id = ? AND product_id = ?", userID, productID).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// UpdateStock runs inside the caller's tx so the write stays under the row
// lock taken by the ForUpdate lookups.
func (r *listingRepo) UpdateStock(tx *gorm.DB, userID, productID uuid.UUID, newStock int) error {
	return tx.Model(&model.Listing{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("stock_quantity", newStock).Error
}
