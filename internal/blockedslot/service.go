package blockedslot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"nutribook/internal/clock"
	"nutribook/internal/logger"
	"nutribook/internal/metrics"
	"nutribook/internal/slot"
	"nutribook/internal/validation"
)

type Service interface {
	Add(ctx context.Context, dietitianID string, req AddRequest) (*BlockedSlot, error)
	Remove(ctx context.Context, dietitianID, id string) error
	ListForDietitian(ctx context.Context, dietitianID string) ([]BlockedSlot, error)
	IsBlocked(ctx context.Context, dietitianID, date, clock string) (bool, error)
	BlockedTimes(ctx context.Context, dietitianID, date string) ([]string, error)
}

type service struct {
	repo      Repository
	validator *validation.Validator
	clock     clock.Clock
}

func NewService(repo Repository, clk clock.Clock) Service {
	return &service{
		repo:      repo,
		validator: validation.New(),
		clock:     clk,
	}
}

func (s *service) Add(ctx context.Context, dietitianID string, req AddRequest) (*BlockedSlot, error) {
	fields := s.validator.Struct(req)
	if _, err := uuid.Parse(dietitianID); err != nil {
		fields = append(fields, validation.FieldError{Field: "dietitianId", Tag: "uuid", Message: "dietitianId must be a valid identifier"})
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	key, err := slot.Normalize(req.Date, req.Time)
	if err != nil {
		return nil, &ValidationError{Fields: []validation.FieldError{{Field: "date", Tag: "calendardate", Message: err.Error()}}}
	}
	if slot.IsPast(key.Date, s.clock.Now()) {
		return nil, ErrPastDate
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = DefaultReason
	}

	b := &BlockedSlot{
		ID:          uuid.NewString(),
		DietitianID: dietitianID,
		Date:        key.DateString,
		Time:        key.Time,
		Reason:      reason,
		CreatedAt:   s.clock.Now().UTC(),
	}

	if err := s.repo.Create(ctx, b); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("create blocked slot: %w", err)
	}

	metrics.RecordBlockedSlotOperation("add")
	logger.Info("slot blocked", "dietitianId", dietitianID, "date", b.Date, "time", b.Time)
	return b, nil
}

func (s *service) Remove(ctx context.Context, dietitianID, id string) error {
	if !validID(dietitianID) || !validID(id) {
		return ErrNotFound
	}

	if err := s.repo.Delete(ctx, dietitianID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete blocked slot: %w", err)
	}

	metrics.RecordBlockedSlotOperation("remove")
	logger.Info("slot unblocked", "dietitianId", dietitianID, "blockId", id)
	return nil
}

func (s *service) ListForDietitian(ctx context.Context, dietitianID string) ([]BlockedSlot, error) {
	if _, err := uuid.Parse(dietitianID); err != nil {
		return nil, &ValidationError{Fields: []validation.FieldError{{Field: "dietitianId", Tag: "uuid", Message: "dietitianId must be a valid identifier"}}}
	}
	return s.repo.ListByDietitian(ctx, dietitianID)
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// IsBlocked expects a canonical YYYY-MM-DD date.
func (s *service) IsBlocked(ctx context.Context, dietitianID, date, clock string) (bool, error) {
	return s.repo.Exists(ctx, dietitianID, date, clock)
}

func (s *service) BlockedTimes(ctx context.Context, dietitianID, date string) ([]string, error) {
	return s.repo.TimesOn(ctx, dietitianID, date)
}
