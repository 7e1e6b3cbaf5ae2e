package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rentora/rentora-api/internal/ledger"
	"github.com/rentora/rentora-api/internal/services"
	"gorm.io/gorm"
)

// respondError maps service errors onto HTTP statuses: malformed input is a
// 400, a business rule refusing the request is a 422, a missing record is a
// 404, anything else is a 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrReasonRequired),
		errors.Is(err, ledger.ErrNegativeTransfer):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrLeaseTerminated),
		errors.Is(err, services.ErrShopOccupied),
		errors.Is(err, services.ErrPaymentDeleted),
		errors.Is(err, ledger.ErrNoCredit),
		errors.Is(err, ledger.ErrOverTransfer):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
