package booking

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"nutribook/internal/auth"
	"nutribook/internal/clock"
	"nutribook/internal/logger"
	"nutribook/internal/metrics"
	"nutribook/internal/slot"
	"nutribook/internal/validation"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Notifier delivers booking notifications. Implementations must not block the
// caller on delivery and must swallow their own failures.
type Notifier interface {
	NotifyConfirmed(ctx context.Context, b *Booking)
	NotifyCancelled(ctx context.Context, b *Booking)
}

type Service interface {
	Reserve(ctx context.Context, req ReserveRequest) (*Booking, error)
	GetByID(ctx context.Context, actor Actor, id string) (*Booking, error)
	ListForUser(ctx context.Context, userID string, opts ListOptions) ([]Booking, error)
	ListForDietitian(ctx context.Context, dietitianID string, opts ListOptions) ([]Booking, error)
	Availability(ctx context.Context, dietitianID, date string) (*Availability, error)
	UpdateStatus(ctx context.Context, actor Actor, id string, to Status) (*Booking, error)
	Stats(ctx context.Context, dietitianID, from, to string) ([]DayStats, error)
}

type service struct {
	repo      Repository
	blocked   BlockedSlots
	checker   *ConflictChecker
	guard     *PaymentGuard
	notifier  Notifier
	validator *validation.Validator
	clock     clock.Clock
}

func NewService(repo Repository, blocked BlockedSlots, notifier Notifier, clk clock.Clock) Service {
	return &service{
		repo:      repo,
		blocked:   blocked,
		checker:   NewConflictChecker(repo, blocked),
		guard:     NewPaymentGuard(repo),
		notifier:  notifier,
		validator: validation.New(),
		clock:     clk,
	}
}

func (s *service) Reserve(ctx context.Context, req ReserveRequest) (*Booking, error) {
	b, err := s.reserve(ctx, req)
	if err != nil {
		kind := KindOf(err)
		metrics.RecordReservationRejected(string(kind))
		if kind == KindInternal {
			logger.WithError(err).Error("reservation failed",
				"userId", req.UserID, "dietitianId", req.DietitianID, "date", req.Date, "time", req.Time)
		}
		return nil, err
	}

	metrics.RecordBooking(string(b.Status), string(b.PaymentMethod))
	logger.Info("booking confirmed", "bookingId", b.ID, "dietitianId", b.DietitianID, "date", req.Date, "time", b.Time)
	return b, nil
}

func (s *service) reserve(ctx context.Context, req ReserveRequest) (*Booking, error) {
	if fields := s.validator.Struct(req); len(fields) > 0 {
		return nil, validationError(fields)
	}

	if !emailPattern.MatchString(req.Email) {
		return nil, fieldError("email", "email", "email must be a valid email address")
	}

	key, err := slot.Normalize(req.Date, req.Time)
	if err != nil {
		return nil, fieldError("date", "calendardate", err.Error())
	}
	if slot.IsPast(key.Date, s.clock.Now()) {
		return nil, fieldError("date", "future", msgPastDate)
	}

	if err := s.checker.Check(ctx, req.UserID, req.DietitianID, key); err != nil {
		return nil, err
	}

	if err := s.guard.Ensure(ctx, req.PaymentID); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	b := &Booking{
		ID:                      uuid.NewString(),
		UserID:                  req.UserID,
		Username:                req.Username,
		Email:                   req.Email,
		UserPhone:               optional(req.UserPhone),
		UserAddress:             optional(req.UserAddress),
		DietitianID:             req.DietitianID,
		DietitianName:           req.DietitianName,
		DietitianEmail:          req.DietitianEmail,
		DietitianPhone:          optional(req.DietitianPhone),
		DietitianSpecialization: optional(req.DietitianSpecialization),
		Date:                    key.Date,
		Time:                    key.Time,
		ConsultationType:        ConsultationType(req.ConsultationType),
		Amount:                  *req.Amount,
		PaymentMethod:           PaymentMethod(req.PaymentMethod),
		PaymentID:               req.PaymentID,
		PaymentStatus:           PaymentCompleted,
		Status:                  StatusConfirmed,
		CreatedAt:               now,
		UpdatedAt:               now,
	}

	// The payment is already captured, so a client disconnect must not abort the write.
	if err := s.repo.Create(context.WithoutCancel(ctx), b); err != nil {
		return nil, s.translateCreateError(ctx, req, key, err)
	}

	s.notifier.NotifyConfirmed(ctx, b)
	return b, nil
}

// translateCreateError reports a constraint rejected write the same way the
// pre-write checks would have. The index that fires first depends on the
// store, so the checks are re-run against the committed winner and their
// answer takes precedence over the constraint name.
func (s *service) translateCreateError(ctx context.Context, req ReserveRequest, key slot.Key, err error) error {
	if !errors.Is(err, ErrSlotTaken) && !errors.Is(err, ErrUserSlotTaken) && !errors.Is(err, ErrPaymentIDTaken) {
		return internalError(fmt.Errorf("create booking: %w", err))
	}

	ctx = context.WithoutCancel(ctx)
	if e := recheck(s.checker.Check(ctx, req.UserID, req.DietitianID, key), err); e != nil {
		return e
	}
	if e := recheck(s.guard.Ensure(ctx, req.PaymentID), err); e != nil {
		return e
	}

	switch {
	case errors.Is(err, ErrUserSlotTaken):
		e := userConflictError("another dietitian", key.DateString, key.Time)
		e.Err = err
		return e
	case errors.Is(err, ErrSlotTaken):
		return slotTakenError(err)
	default:
		return paymentReusedError(err)
	}
}

// recheck keeps a conflict found after a failed write, chained to the write
// error. Lookup failures are dropped so the constraint still decides.
func recheck(found, writeErr error) *Error {
	var e *Error
	if !errors.As(found, &e) || e.Kind == KindInternal {
		return nil
	}
	if e.Err == nil {
		e.Err = writeErr
	}
	return e
}

func (s *service) GetByID(ctx context.Context, actor Actor, id string) (*Booking, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fieldError("bookingId", "uuid", "bookingId must be a valid identifier")
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, &Error{Kind: KindNotFound, Message: "Booking not found", Err: err}
		}
		return nil, internalError(fmt.Errorf("get booking: %w", err))
	}

	if actor.Role != auth.RoleAdmin && actor.ID != b.UserID && actor.ID != b.DietitianID {
		return nil, &Error{Kind: KindForbidden, Message: "You can only view your own bookings"}
	}
	return b, nil
}

func (s *service) ListForUser(ctx context.Context, userID string, opts ListOptions) ([]Booking, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, fieldError("userId", "uuid", "userId must be a valid identifier")
	}
	opts, verr := normalizeListOptions(opts)
	if verr != nil {
		return nil, verr
	}

	bookings, err := s.repo.ListByUser(ctx, userID, opts)
	if err != nil {
		logger.WithError(err).Error("failed to list user bookings", "userId", userID)
		return nil, internalError(fmt.Errorf("list user bookings: %w", err))
	}
	return bookings, nil
}

func (s *service) ListForDietitian(ctx context.Context, dietitianID string, opts ListOptions) ([]Booking, error) {
	if _, err := uuid.Parse(dietitianID); err != nil {
		return nil, fieldError("dietitianId", "uuid", "dietitianId must be a valid identifier")
	}
	opts, verr := normalizeListOptions(opts)
	if verr != nil {
		return nil, verr
	}

	bookings, err := s.repo.ListByDietitian(ctx, dietitianID, opts)
	if err != nil {
		logger.WithError(err).Error("failed to list dietitian bookings", "dietitianId", dietitianID)
		return nil, internalError(fmt.Errorf("list dietitian bookings: %w", err))
	}
	return bookings, nil
}

func normalizeListOptions(opts ListOptions) (ListOptions, *Error) {
	var fields []validation.FieldError

	if opts.Status != "" && !opts.Status.Valid() {
		fields = append(fields, validation.FieldError{
			Field:   "status",
			Tag:     "oneof",
			Message: "status must be one of: confirmed, cancelled, completed, no-show",
		})
	}
	if opts.Sort == "" {
		opts.Sort = DefaultSort
	} else if _, ok := sortClauses[opts.Sort]; !ok {
		fields = append(fields, validation.FieldError{
			Field:   "sort",
			Tag:     "oneof",
			Message: "sort must be one of: createdAt, -createdAt, date, -date",
		})
	}

	if len(fields) > 0 {
		return opts, validationError(fields)
	}
	return opts, nil
}

func (s *service) Availability(ctx context.Context, dietitianID, date string) (*Availability, error) {
	var fields []validation.FieldError
	if _, err := uuid.Parse(dietitianID); err != nil {
		fields = append(fields, validation.FieldError{Field: "dietitianId", Tag: "uuid", Message: "dietitianId must be a valid identifier"})
	}
	d, err := slot.ParseDate(date)
	if err != nil {
		fields = append(fields, validation.FieldError{Field: "date", Tag: "calendardate", Message: err.Error()})
	}
	if len(fields) > 0 {
		return nil, validationError(fields)
	}

	dateString := d.Format(slot.DateLayout)

	booked, err := s.repo.ActiveTimesForDietitian(ctx, dietitianID, slot.RangeOf(d))
	if err != nil {
		return nil, internalError(fmt.Errorf("list booked times: %w", err))
	}
	blocked, err := s.blocked.BlockedTimes(ctx, dietitianID, dateString)
	if err != nil {
		return nil, internalError(fmt.Errorf("list blocked times: %w", err))
	}

	return &Availability{
		DietitianID: dietitianID,
		Date:        dateString,
		Booked:      booked,
		Blocked:     blocked,
	}, nil
}

// UpdateStatus moves a confirmed booking to a terminal status. Users may only
// cancel their own bookings; dietitians may close out their own; admins may do
// either.
func (s *service) UpdateStatus(ctx context.Context, actor Actor, id string, to Status) (*Booking, error) {
	if !to.Valid() || to == StatusConfirmed {
		return nil, fieldError("status", "oneof", "status must be one of: cancelled, completed, no-show")
	}

	current, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if !canTransition(actor, current, to) {
		return nil, &Error{Kind: KindForbidden, Message: fmt.Sprintf("You are not allowed to mark this booking as %s", to)}
	}
	if current.Status != StatusConfirmed {
		return nil, fieldError("status", "transition", fmt.Sprintf("booking is already %s", current.Status))
	}

	updated, err := s.repo.UpdateStatus(ctx, id, StatusConfirmed, to, s.clock.Now().UTC())
	if err != nil {
		if errors.Is(err, ErrStaleStatus) {
			return nil, fieldError("status", "transition", "booking status changed, reload and try again")
		}
		return nil, internalError(fmt.Errorf("update booking status: %w", err))
	}

	metrics.RecordStatusTransition(string(StatusConfirmed), string(to))
	logger.Info("booking status changed", "bookingId", id, "from", StatusConfirmed, "to", to, "actorRole", actor.Role)

	if to == StatusCancelled {
		s.notifier.NotifyCancelled(ctx, updated)
	}
	return updated, nil
}

func canTransition(actor Actor, b *Booking, to Status) bool {
	switch actor.Role {
	case auth.RoleAdmin:
		return true
	case auth.RoleDietitian:
		return actor.ID == b.DietitianID
	case auth.RoleUser:
		return actor.ID == b.UserID && to == StatusCancelled
	default:
		return false
	}
}
