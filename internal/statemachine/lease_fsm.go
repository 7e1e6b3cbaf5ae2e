package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/rentora/rentora-api/internal/models"
)

// LeaseFSM wraps a lease with its state machine. The expiry states are
// display-time projections of the end date; termination is the only stored,
// one-way transition and is triggered solely by settlement confirmation.
type LeaseFSM struct {
	lease *models.Lease
	fsm   *fsm.FSM
}

// NewLeaseFSM creates a new lease state machine
func NewLeaseFSM(lease *models.Lease) *LeaseFSM {
	lfsm := &LeaseFSM{
		lease: lease,
	}

	lfsm.fsm = fsm.NewFSM(
		lease.Status,
		fsm.Events{
			// active → expiring_soon (end date approaching)
			{Name: "flag_expiring", Src: []string{models.LeaseStatusActive}, Dst: models.LeaseStatusExpiringSoon},

			// active/expiring_soon → expired (end date passed)
			{Name: "expire", Src: []string{models.LeaseStatusActive, models.LeaseStatusExpiringSoon}, Dst: models.LeaseStatusExpired},

			// expiring_soon/expired → active (end date pushed out)
			{Name: "renew", Src: []string{models.LeaseStatusExpiringSoon, models.LeaseStatusExpired}, Dst: models.LeaseStatusActive},

			// any non-terminated state → terminated. Absorbing.
			{Name: "terminate", Src: []string{models.LeaseStatusActive, models.LeaseStatusExpiringSoon, models.LeaseStatusExpired}, Dst: models.LeaseStatusTerminated},
		},
		fsm.Callbacks{},
	)

	return lfsm
}

// FlagExpiring transitions the lease to expiring_soon
func (l *LeaseFSM) FlagExpiring(ctx context.Context) error {
	if err := l.fsm.Event(ctx, "flag_expiring"); err != nil {
		return fmt.Errorf("failed to flag lease expiring: %w", err)
	}

	l.lease.Status = l.fsm.Current()
	return nil
}

// Expire transitions the lease to expired
func (l *LeaseFSM) Expire(ctx context.Context) error {
	if err := l.fsm.Event(ctx, "expire"); err != nil {
		return fmt.Errorf("failed to expire lease: %w", err)
	}

	l.lease.Status = l.fsm.Current()
	return nil
}

// Renew transitions an expiring or expired lease back to active
func (l *LeaseFSM) Renew(ctx context.Context) error {
	if err := l.fsm.Event(ctx, "renew"); err != nil {
		return fmt.Errorf("failed to renew lease: %w", err)
	}

	l.lease.Status = l.fsm.Current()
	return nil
}

// Terminate transitions the lease to its absorbing terminated state
func (l *LeaseFSM) Terminate(ctx context.Context) error {
	if !l.lease.MayTerminate() {
		return fmt.Errorf("lease cannot be terminated in current state: %s", l.lease.Status)
	}

	if err := l.fsm.Event(ctx, "terminate"); err != nil {
		return fmt.Errorf("failed to terminate lease: %w", err)
	}

	l.lease.Status = l.fsm.Current()
	return nil
}

// Current returns the current state
func (l *LeaseFSM) Current() string {
	return l.fsm.Current()
}

// Can checks if a transition is possible
func (l *LeaseFSM) Can(event string) bool {
	return l.fsm.Can(event)
}
