package repository

import (
	"agriconnect/internal/model"

	"gorm.io/gorm"
)

type UserTypeRepository interface {
	FindAll() ([]model.UserType, error)
	FindByID(id uint) (*model.UserType, error)
	FindByName(name string) (*model.UserType, error)
	SeedDefaults() error
}

type userTypeRepo struct {
	db *gorm.DB
}

func NewUserTypeRepo(db *gorm.DB) UserTypeRepository {
	return &userTypeRepo{db}
}

func (r *userTypeRepo) FindAll() ([]model.UserType, error) {
	var types []model.UserType
	err := r.db.Order("id").Find(&types).Error
	return types, err
}

func (r *userTypeRepo) FindByID(id uint) (*model.UserType, error) {
	var t model.UserType
	if err := r.db.First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *userTypeRepo) FindByName(name string) (*model.UserType, error) {
	var t model.UserType
	if err := r.db.First(&t, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// SeedDefaults creates the static user types if they don't exist yet.
func (r *userTypeRepo) SeedDefaults() error {
	defaults := []string{model.UserTypeFarmer, model.UserTypeBuyer}
	for _, name := range defaults {
		var existing model.UserType
		err := r.db.First(&existing, "name = ?", name).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := r.db.Create(&model.UserType{Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}
