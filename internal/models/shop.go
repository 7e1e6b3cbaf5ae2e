package models

import (
	"time"
)

// Owner represents a property owner
type Owner struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FullName  string    `gorm:"not null" json:"full_name"`
	Phone     string    `json:"phone"`
	Email     string    `gorm:"index" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Shops []Shop `gorm:"foreignKey:OwnerID" json:"shops,omitempty"`
}

// TableName specifies the table name for Owner
func (Owner) TableName() string {
	return "owners"
}

// Shop represents a rentable unit belonging to an owner
type Shop struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OwnerID   uint      `gorm:"not null;index" json:"owner_id"`
	Name      string    `gorm:"not null" json:"name"`
	Address   *string   `json:"address"`
	Status    string    `gorm:"default:vacant;not null;index" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Owner  Owner   `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Leases []Lease `gorm:"foreignKey:ShopID" json:"leases,omitempty"`
}

// TableName specifies the table name for Shop
func (Shop) TableName() string {
	return "shops"
}

// Shop status constants
const (
	ShopStatusVacant   = "vacant"
	ShopStatusOccupied = "occupied"
)

// IsVacant returns true if the shop has no active lease
func (s *Shop) IsVacant() bool {
	return s.Status == ShopStatusVacant
}

// ShopResponse is the JSON response format for shops
type ShopResponse struct {
	ID        uint      `json:"id"`
	OwnerID   uint      `json:"owner_id"`
	OwnerName string    `json:"owner_name,omitempty"`
	Name      string    `json:"name"`
	Address   *string   `json:"address"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse converts Shop to ShopResponse
func (s *Shop) ToResponse() ShopResponse {
	resp := ShopResponse{
		ID:        s.ID,
		OwnerID:   s.OwnerID,
		Name:      s.Name,
		Address:   s.Address,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
	}
	if s.Owner.ID != 0 {
		resp.OwnerName = s.Owner.FullName
	}
	return resp
}
