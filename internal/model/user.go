package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserType is a static lookup table ("farmer", "buyer"), seeded at startup.
type UserType struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
}

// Well-known user type names.
const (
	UserTypeFarmer = "farmer"
	UserTypeBuyer  = "buyer"
)

// User represents an account in the marketplace. A user sells through
// Listings and buys through Orders; nothing in the schema forces one role
// per account.
type User struct {
	BaseModel
	Name       string    `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Email      string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password   string    `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	UserTypeID uint      `gorm:"not null" json:"user_type_id" validate:"required"`
	UserType   *UserType `gorm:"foreignKey:UserTypeID" json:"user_type,omitempty"`

	Listings []Listing `gorm:"foreignKey:UserID" json:"listings,omitempty"`
	Orders   []Order   `gorm:"foreignKey:UserID" json:"orders,omitempty"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	UserType  string    `json:"user_type"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	typeName := ""
	if u.UserType != nil {
		typeName = u.UserType.Name
	}
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		UserType:  typeName,
		CreatedAt: u.CreatedAt,
	}
}
