package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rentora/rentora-api/internal/repository"
	"github.com/rentora/rentora-api/internal/services"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Index returns a paginated list of payments
func (h *PaymentHandler) Index(c *gin.Context) {
	query := &repository.PaymentQuery{ListQuery: repository.NewListQuery()}
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if leaseID, err := strconv.ParseUint(c.Query("lease_id"), 10, 32); err == nil {
		query.LeaseID = uint(leaseID)
	}
	if tenantID, err := strconv.ParseUint(c.Query("tenant_id"), 10, 32); err == nil {
		query.TenantID = uint(tenantID)
	}
	query.IncludeDeleted = c.Query("include_deleted") == "true"

	payments, total, err := h.paymentService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	var responses []interface{}
	for i := range payments {
		responses = append(responses, payments[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"payments": responses,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

type CreatePaymentRequest struct {
	LeaseID     uint    `json:"lease_id" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	PaymentDate string  `json:"payment_date" binding:"required"`
	RentMonths  *string `json:"rent_months"`
	Note        *string `json:"note"`
}

// Create records a payment against a lease and reconciles it
func (h *PaymentHandler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	paymentDate, err := time.Parse("2006-01-02", req.PaymentDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment_date must be YYYY-MM-DD"})
		return
	}

	payment, err := h.paymentService.Create(c.Request.Context(), services.CreatePaymentInput{
		LeaseID:     req.LeaseID,
		Amount:      req.Amount,
		PaymentDate: paymentDate,
		RentMonths:  req.RentMonths,
		Note:        req.Note,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Payment recorded",
		"payment": payment.ToResponse(),
	})
}

type DeletePaymentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// Delete soft-deletes a payment; the row stays for history but stops
// counting toward allocation
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("payment_id"), 10, 32)

	var req DeletePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reason is required"})
		return
	}

	if err := h.paymentService.SoftDelete(c.Request.Context(), uint(id), req.Reason); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted"})
}
