package handlers

import (
	"github.com/rentora/rentora-api/internal/repository"
	"github.com/rentora/rentora-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health     *HealthHandler
	Owner      *OwnerHandler
	Shop       *ShopHandler
	Tenant     *TenantHandler
	Lease      *LeaseHandler
	Payment    *PaymentHandler
	Settlement *SettlementHandler
	Job        *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services, repos *repository.Repositories) *Handlers {
	return &Handlers{
		Health:     NewHealthHandler(),
		Owner:      NewOwnerHandler(repos.Owner),
		Shop:       NewShopHandler(repos.Shop),
		Tenant:     NewTenantHandler(repos.Tenant),
		Lease:      NewLeaseHandler(svcs.Lease, svcs.Ledger, svcs.Reconcile),
		Payment:    NewPaymentHandler(svcs.Payment),
		Settlement: NewSettlementHandler(svcs.Settlement),
		Job:        NewJobHandler(svcs.Job),
	}
}
