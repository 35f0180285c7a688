package model

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserRole mirrors the store staffing hierarchy.
type UserRole string

const (
	RoleSuperAdmin UserRole = "SUPER-ADMIN"
	RoleAdmin      UserRole = "ADMIN"
	RoleManager    UserRole = "MANAGER"
	RoleStaff      UserRole = "STAFF"
	RoleCustomer   UserRole = "CUSTOMER"
)

// User represents an authenticated user in the system
type User struct {
	BaseModel
	Email       string   `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password    string   `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	FirstName   string   `gorm:"type:varchar(100);not null" json:"first_name" validate:"required"`
	LastName    string   `gorm:"type:varchar(100);not null" json:"last_name" validate:"required"`
	Role        UserRole `gorm:"type:varchar(20);not null;default:'STAFF';index" json:"role" validate:"omitempty,oneof=SUPER-ADMIN ADMIN MANAGER STAFF CUSTOMER"`
	Position    string   `gorm:"type:varchar(100)" json:"position,omitempty"`
	PhoneNumber string   `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	IsActive    bool     `gorm:"default:true" json:"is_active"`
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

// FullName joins first and last name for display and audit stamps.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Role        UserRole  `json:"role"`
	Position    string    `json:"position,omitempty"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	IsActive    bool      `json:"is_active"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        u.Role,
		Position:    u.Position,
		PhoneNumber: u.PhoneNumber,
		IsActive:    u.IsActive,
	}
}
