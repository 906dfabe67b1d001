package accounts

import (
	"fmt"
	"time"

	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// Status represents whether an account is allowed to authenticate.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

// RoleType represents an account role either at platform or tenant level
type RoleType string

const (
	// Platform-level role, held by Admin accounts only
	RolePlatformAdmin RoleType = "platform_admin"

	// Tenant-level roles, held by User accounts
	RoleManager RoleType = "manager"
	RoleUser    RoleType = "user"
)

// passwordHashCost is the bcrypt cost factor used for all stored credentials.
const passwordHashCost = 10

// User is a tenant-side account. Email is unique within the user table only;
// an Admin may hold the same email.
type User struct {
	ID           string    `json:"id,omitempty"`         // Unique identifier for the user
	Email        string    `json:"email,omitempty"`      // User's email address
	PasswordHash string    `json:"-"`                    // Hashed version of the user's password - never serialize
	FirstName    string    `json:"first_name,omitempty"` // First name of the user
	LastName     string    `json:"last_name,omitempty"`  // Last name of the user
	Role         RoleType  `json:"role,omitempty"`       // Tenant-level role
	Status       Status    `json:"status,omitempty"`     // active or suspended
	TenantID     *string   `json:"tenant_id,omitempty"`  // Property the user belongs to, if any
	CreatedAt    time.Time `json:"created_at,omitempty"` // Date and time when the user registered
}

// Admin is a platform operator account, stored disjointly from Users.
type Admin struct {
	ID           string    `json:"id,omitempty"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	Role         RoleType  `json:"role,omitempty"`
	Status       Status    `json:"status,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// Active reports whether the user may authenticate.
func (u *User) Active() bool {
	return u.Status == StatusActive
}

// Active reports whether the admin may authenticate.
func (a *Admin) Active() bool {
	return a.Status == StatusActive
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
