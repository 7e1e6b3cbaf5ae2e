package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rentora/rentora-api/internal/models"
	"github.com/rentora/rentora-api/internal/repository"
)

// Owners, shops and tenants are plain directory records. Their handlers go
// straight to the repositories; all business rules live on the lease side.

type OwnerHandler struct {
	repo repository.OwnerRepository
}

func NewOwnerHandler(repo repository.OwnerRepository) *OwnerHandler {
	return &OwnerHandler{repo: repo}
}

func (h *OwnerHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")

	owners, total, err := h.repo.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"owners": owners, "pagination": gin.H{"total": total}})
}

type CreateOwnerRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

func (h *OwnerHandler) Create(c *gin.Context) {
	var req CreateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	owner := &models.Owner{
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    req.Email,
	}
	if err := h.repo.Create(c.Request.Context(), owner); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Owner created", "owner": owner})
}

type ShopHandler struct {
	repo repository.ShopRepository
}

func NewShopHandler(repo repository.ShopRepository) *ShopHandler {
	return &ShopHandler{repo: repo}
}

func (h *ShopHandler) Index(c *gin.Context) {
	query := &repository.ShopQuery{ListQuery: repository.NewListQuery()}
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.Status = c.Query("status")
	if ownerID, err := strconv.ParseUint(c.Query("owner_id"), 10, 32); err == nil {
		query.OwnerID = uint(ownerID)
	}

	shops, total, err := h.repo.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	var responses []interface{}
	for i := range shops {
		responses = append(responses, shops[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"shops": responses, "pagination": gin.H{"total": total}})
}

func (h *ShopHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("shop_id"), 10, 32)
	shop, err := h.repo.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shop": shop.ToResponse()})
}

type CreateShopRequest struct {
	OwnerID uint    `json:"owner_id" binding:"required"`
	Name    string  `json:"name" binding:"required"`
	Address *string `json:"address"`
}

func (h *ShopHandler) Create(c *gin.Context) {
	var req CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shop := &models.Shop{
		OwnerID: req.OwnerID,
		Name:    req.Name,
		Address: req.Address,
		Status:  models.ShopStatusVacant,
	}
	if err := h.repo.Create(c.Request.Context(), shop); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Shop created", "shop": shop.ToResponse()})
}

type TenantHandler struct {
	repo repository.TenantRepository
}

func NewTenantHandler(repo repository.TenantRepository) *TenantHandler {
	return &TenantHandler{repo: repo}
}

func (h *TenantHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")

	tenants, total, err := h.repo.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	var responses []interface{}
	for i := range tenants {
		responses = append(responses, tenants[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"tenants": responses, "pagination": gin.H{"total": total}})
}

func (h *TenantHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("tenant_id"), 10, 32)
	tenant, err := h.repo.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tenant": tenant.ToResponse()})
}

type CreateTenantRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone"`
	Identity string `json:"identity"`
}

func (h *TenantHandler) Create(c *gin.Context) {
	var req CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tenant := &models.Tenant{
		FullName: req.FullName,
		Phone:    req.Phone,
		Identity: req.Identity,
	}
	if err := h.repo.Create(c.Request.Context(), tenant); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Tenant created", "tenant": tenant.ToResponse()})
}
