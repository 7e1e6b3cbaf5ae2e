package repository

import (
	"context"

	"github.com/rentora/rentora-api/internal/models"
	"gorm.io/gorm"
)

// OwnerRepository defines the interface for owner data access
type OwnerRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Owner, error)
	Create(ctx context.Context, owner *models.Owner) error
	List(ctx context.Context, query *ListQuery) ([]models.Owner, int64, error)
}

type ownerRepository struct {
	db *gorm.DB
}

// NewOwnerRepository creates a new owner repository
func NewOwnerRepository(db *gorm.DB) OwnerRepository {
	return &ownerRepository{db: db}
}

func (r *ownerRepository) FindByID(ctx context.Context, id uint) (*models.Owner, error) {
	var owner models.Owner
	err := r.db.WithContext(ctx).First(&owner, id).Error
	if err != nil {
		return nil, err
	}
	return &owner, nil
}

func (r *ownerRepository) Create(ctx context.Context, owner *models.Owner) error {
	return r.db.WithContext(ctx).Create(owner).Error
}

func (r *ownerRepository) List(ctx context.Context, query *ListQuery) ([]models.Owner, int64, error) {
	var owners []models.Owner
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Owner{})
	if query.Search != "" {
		db = db.Where("full_name ILIKE ?", "%"+query.Search+"%")
	}
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := db.Order("full_name ASC").Offset(query.Offset()).Limit(query.PerPage).Find(&owners).Error
	return owners, total, err
}

// ShopRepository defines the interface for shop data access
type ShopRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Shop, error)
	Create(ctx context.Context, shop *models.Shop) error
	Update(ctx context.Context, shop *models.Shop) error
	List(ctx context.Context, query *ShopQuery) ([]models.Shop, int64, error)
}

// ShopQuery extends ListQuery with shop-specific filters
type ShopQuery struct {
	*ListQuery
	OwnerID uint
	Status  string
}

type shopRepository struct {
	db *gorm.DB
}

// NewShopRepository creates a new shop repository
func NewShopRepository(db *gorm.DB) ShopRepository {
	return &shopRepository{db: db}
}

func (r *shopRepository) FindByID(ctx context.Context, id uint) (*models.Shop, error) {
	var shop models.Shop
	err := r.db.WithContext(ctx).First(&shop, id).Error
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *shopRepository) Create(ctx context.Context, shop *models.Shop) error {
	return r.db.WithContext(ctx).Create(shop).Error
}

func (r *shopRepository) Update(ctx context.Context, shop *models.Shop) error {
	return r.db.WithContext(ctx).Save(shop).Error
}

func (r *shopRepository) List(ctx context.Context, query *ShopQuery) ([]models.Shop, int64, error) {
	var shops []models.Shop
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Shop{})
	if query.OwnerID != 0 {
		db = db.Where("owner_id = ?", query.OwnerID)
	}
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}
	if query.Search != "" {
		db = db.Where("name ILIKE ?", "%"+query.Search+"%")
	}
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := db.Joins("Owner").Order("shops.name ASC").Offset(query.Offset()).Limit(query.PerPage).Find(&shops).Error
	return shops, total, err
}
