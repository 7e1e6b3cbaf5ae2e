package models

import (
	"time"
)

// Tenant represents a renter who may hold leases on several shops
type Tenant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FullName  string    `gorm:"not null" json:"full_name"`
	Phone     string    `gorm:"index" json:"phone"`
	Identity  string    `json:"identity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Leases []Lease `gorm:"foreignKey:TenantID" json:"leases,omitempty"`
}

// TableName specifies the table name for Tenant
func (Tenant) TableName() string {
	return "tenants"
}

// TenantResponse is the JSON response format for tenants
type TenantResponse struct {
	ID        uint      `json:"id"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Identity  string    `json:"identity"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse converts Tenant to TenantResponse
func (t *Tenant) ToResponse() TenantResponse {
	return TenantResponse{
		ID:        t.ID,
		FullName:  t.FullName,
		Phone:     t.Phone,
		Identity:  maskIdentity(t.Identity),
		CreatedAt: t.CreatedAt,
	}
}

// maskIdentity masks an identity string for privacy
func maskIdentity(identity string) string {
	if len(identity) <= 4 {
		masked := ""
		for range identity {
			masked += "*"
		}
		return masked
	}
	masked := identity[:4]
	for i := 4; i < len(identity)-3; i++ {
		masked += "*"
	}
	masked += identity[len(identity)-3:]
	return masked
}
