// api/model/user.go
package model

import (
	"time"

	"gorm.io/datatypes"
)

// User is an account of the system. Credentials and session state are
// serialized so the record can be cached for login, but HTTP handlers only
// ever return View().
type User struct {
	Base
	FirstName    string `json:"first_name" gorm:"size:100;not null"`
	LastName     string `json:"last_name" gorm:"size:100;not null"`
	Email        string `json:"email" gorm:"size:255;uniqueIndex;not null"`
	RUT          string `json:"rut" gorm:"size:12;uniqueIndex;not null"`
	PasswordHash string `json:"password_hash" gorm:"not null"`
	Role         Role   `json:"role" gorm:"size:20;not null;default:User;index"`
	StaffType    string `json:"staff_type" gorm:"size:50"`
	Department   string `json:"department" gorm:"size:100"`
	Position     string `json:"position" gorm:"size:100"`
	Phone        string `json:"phone" gorm:"size:20"`
	Address      string `json:"address" gorm:"size:255"`
	// EmergencyContact is free text: name and phone of the person to call.
	EmergencyContact string `json:"emergency_contact" gorm:"size:255"`
	IsActive         bool   `json:"is_active" gorm:"not null;default:true;index"`

	LastLogin        *time.Time `json:"last_login"`
	LoginAttempts    int        `json:"login_attempts" gorm:"not null;default:0"`
	LastLoginAttempt *time.Time `json:"last_login_attempt"`

	// RefreshTokens is the set of SHA-256 hashes of refresh tokens that may
	// still be rotated. Version guards concurrent changes to it.
	RefreshTokens datatypes.JSONSlice[string] `json:"refresh_tokens"`
	Version       int                         `json:"version" gorm:"not null;default:0"`
}

// FullName returns "first last".
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// HasRefreshToken reports whether hash is in the account's valid set.
func (u *User) HasRefreshToken(hash string) bool {
	for _, h := range u.RefreshTokens {
		if h == hash {
			return true
		}
	}
	return false
}

// UserView is the public projection of a User.
type UserView struct {
	ID               string     `json:"id"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Email            string     `json:"email"`
	RUT              string     `json:"rut"`
	Role             Role       `json:"role"`
	StaffType        string     `json:"staff_type,omitempty"`
	Department       string     `json:"department,omitempty"`
	Position         string     `json:"position,omitempty"`
	Phone            string     `json:"phone,omitempty"`
	Address          string     `json:"address,omitempty"`
	EmergencyContact string     `json:"emergency_contact,omitempty"`
	IsActive         bool       `json:"is_active"`
	LastLogin        *time.Time `json:"last_login,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (u *User) View() UserView {
	return UserView{
		ID:               u.ID,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Email:            u.Email,
		RUT:              u.RUT,
		Role:             u.Role,
		StaffType:        u.StaffType,
		Department:       u.Department,
		Position:         u.Position,
		Phone:            u.Phone,
		Address:          u.Address,
		EmergencyContact: u.EmergencyContact,
		IsActive:         u.IsActive,
		LastLogin:        u.LastLogin,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

// UserInput is the payload accepted when creating or updating a user.
type UserInput struct {
	FirstName  string `json:"first_name" validate:"required,max=100"`
	LastName   string `json:"last_name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email"`
	RUT        string `json:"rut" validate:"required,rut"`
	Password   string `json:"password,omitempty"`
	Role       Role   `json:"role,omitempty"`
	StaffType  string `json:"staff_type" validate:"max=50"`
	Department string `json:"department" validate:"max=100"`
	Position   string `json:"position" validate:"max=100"`
	Phone      string `json:"phone" validate:"max=20"`
	Address    string `json:"address" validate:"max=255"`
}

// ProfileInput is the subset of fields a user may change on their own account.
type ProfileInput struct {
	Phone            *string `json:"phone" validate:"omitempty,max=20"`
	Address          *string `json:"address" validate:"omitempty,max=255"`
	EmergencyContact *string `json:"emergency_contact" validate:"omitempty,max=255"`
}

// UserFilter selects users in list queries.
type UserFilter struct {
	Role       *Role   `form:"role"`
	IsActive   *bool   `form:"isActive"`
	Department *string `form:"department"`
}

func (f UserFilter) Conditions() map[string]any {
	c := map[string]any{}
	if f.Role != nil {
		c["role"] = *f.Role
	}
	if f.IsActive != nil {
		c["is_active"] = *f.IsActive
	}
	if f.Department != nil {
		c["department"] = *f.Department
	}
	return c
}

func (f UserFilter) Params() map[string]any {
	return map[string]any{
		"role":       f.Role,
		"isActive":   f.IsActive,
		"department": f.Department,
	}
}
