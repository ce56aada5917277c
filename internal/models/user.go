package models

import "time"

// Role controls which price a user pays and which order operations it may run.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleDealer   Role = "DEALER"
	RoleCustomer Role = "CUSTOMER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleDealer, RoleCustomer:
		return true
	}
	return false
}

type User struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	PasswordHash  string    `json:"-"`
	Role          Role      `json:"role"`
	IsActive      bool      `json:"is_active"`
	MarginPercent float64   `json:"margin_percent,omitempty"`
	Address       string    `json:"address,omitempty"`
	GSTNumber     string    `json:"gst_number,omitempty"`
	ProfileImage  string    `json:"profile_image,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
