package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rentora/rentora-api/internal/ledger"
	"github.com/rentora/rentora-api/internal/services"
)

type SettlementHandler struct {
	settlementService *services.SettlementService
}

func NewSettlementHandler(settlementService *services.SettlementService) *SettlementHandler {
	return &SettlementHandler{settlementService: settlementService}
}

type SettlementRequest struct {
	UseSecurityDeposit bool    `json:"use_security_deposit"`
	CreditTransfer     float64 `json:"credit_transfer"`
	Note               *string `json:"note"`
}

func (r *SettlementRequest) options() ledger.SettlementOptions {
	return ledger.SettlementOptions{
		UseSecurityDeposit: r.UseSecurityDeposit,
		CreditTransfer:     r.CreditTransfer,
	}
}

// Preview computes the settlement without touching the lease
func (h *SettlementHandler) Preview(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("lease_id"), 10, 32)

	var req SettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settlement, err := h.settlementService.Preview(c.Request.Context(), uint(id), req.options())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settlement": settlement})
}

// Confirm recomputes the settlement and terminates the lease
func (h *SettlementHandler) Confirm(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("lease_id"), 10, 32)

	var req SettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.settlementService.Confirm(c.Request.Context(), uint(id), req.options(), req.Note)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Lease terminated",
		"settlement": record.ToResponse(),
	})
}

// Show returns the persisted settlement for a terminated lease
func (h *SettlementHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("lease_id"), 10, 32)

	record, err := h.settlementService.FindByLease(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settlement": record.ToResponse()})
}
