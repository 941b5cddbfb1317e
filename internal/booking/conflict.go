package booking

import (
	"context"
	"fmt"

	"nutribook/internal/slot"
)

// BlockedSlots is the read side of the blocked-slot registry.
type BlockedSlots interface {
	IsBlocked(ctx context.Context, dietitianID, date, clock string) (bool, error)
	BlockedTimes(ctx context.Context, dietitianID, date string) ([]string, error)
}

// ConflictChecker runs the pre-write scheduling checks. It is the fast path
// only; the unique indexes on bookings decide races.
type ConflictChecker struct {
	repo    Repository
	blocked BlockedSlots
}

func NewConflictChecker(repo Repository, blocked BlockedSlots) *ConflictChecker {
	return &ConflictChecker{repo: repo, blocked: blocked}
}

// Check returns the first conflict found, in order: the user's own booking at
// that time, the dietitian's slot being taken, the slot being blocked.
func (c *ConflictChecker) Check(ctx context.Context, userID, dietitianID string, key slot.Key) error {
	own, err := c.repo.FindActiveForUser(ctx, userID, key.Range, key.Time)
	if err != nil {
		return internalError(fmt.Errorf("find user booking: %w", err))
	}
	if own != nil {
		return userConflictError(own.DietitianName, key.DateString, key.Time)
	}

	taken, err := c.repo.FindActiveForDietitian(ctx, dietitianID, key.Range, key.Time)
	if err != nil {
		return internalError(fmt.Errorf("find dietitian booking: %w", err))
	}
	if taken != nil {
		return slotTakenError(nil)
	}

	blocked, err := c.blocked.IsBlocked(ctx, dietitianID, key.DateString, key.Time)
	if err != nil {
		return internalError(fmt.Errorf("check blocked slot: %w", err))
	}
	if blocked {
		return slotBlockedError()
	}

	return nil
}
