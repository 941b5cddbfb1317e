package booking

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"nutribook/internal/slot"
)

// memoryRepository enforces the same unique constraints as the bookings table.
type memoryRepository struct {
	mu       sync.Mutex
	bookings []Booking
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{}
}

func (r *memoryRepository) Create(_ context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.bookings {
		if existing.PaymentID == b.PaymentID {
			return ErrPaymentIDTaken
		}
		if !existing.Status.Active() || !existing.Date.Equal(b.Date) || existing.Time != b.Time {
			continue
		}
		if existing.DietitianID == b.DietitianID {
			return ErrSlotTaken
		}
		if existing.UserID == b.UserID {
			return ErrUserSlotTaken
		}
	}

	r.bookings = append(r.bookings, *b)
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.ID == id {
			found := b
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryRepository) FindActiveForUser(_ context.Context, userID string, day slot.DayRange, clock string) (*Booking, error) {
	return r.findActive(func(b Booking) bool { return b.UserID == userID }, day, clock), nil
}

func (r *memoryRepository) FindActiveForDietitian(_ context.Context, dietitianID string, day slot.DayRange, clock string) (*Booking, error) {
	return r.findActive(func(b Booking) bool { return b.DietitianID == dietitianID }, day, clock), nil
}

func (r *memoryRepository) findActive(owner func(Booking) bool, day slot.DayRange, clock string) *Booking {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if owner(b) && b.Status.Active() && day.Contains(b.Date) && b.Time == clock {
			found := b
			return &found
		}
	}
	return nil
}

func (r *memoryRepository) PaymentIDExists(_ context.Context, paymentID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.PaymentID == paymentID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRepository) ListByUser(_ context.Context, userID string, opts ListOptions) ([]Booking, error) {
	return r.list(func(b Booking) bool { return b.UserID == userID }, opts), nil
}

func (r *memoryRepository) ListByDietitian(_ context.Context, dietitianID string, opts ListOptions) ([]Booking, error) {
	return r.list(func(b Booking) bool { return b.DietitianID == dietitianID }, opts), nil
}

func (r *memoryRepository) list(owner func(Booking) bool, opts ListOptions) []Booking {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []Booking{}
	for _, b := range r.bookings {
		if owner(b) && (opts.Status == "" || b.Status == opts.Status) {
			out = append(out, b)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		switch opts.Sort {
		case "createdAt":
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		case "date":
			return out[i].Date.Before(out[j].Date)
		case "-date":
			return out[i].Date.After(out[j].Date)
		default:
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
	})
	return out
}

func (r *memoryRepository) ActiveTimesForDietitian(_ context.Context, dietitianID string, day slot.DayRange) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	times := []string{}
	for _, b := range r.bookings {
		if b.DietitianID == dietitianID && b.Status.Active() && day.Contains(b.Date) {
			times = append(times, b.Time)
		}
	}
	sort.Strings(times)
	return times, nil
}

func (r *memoryRepository) UpdateStatus(_ context.Context, id string, from, to Status, at time.Time) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.bookings {
		if r.bookings[i].ID == id && r.bookings[i].Status == from {
			r.bookings[i].Status = to
			r.bookings[i].UpdatedAt = at
			updated := r.bookings[i]
			return &updated, nil
		}
	}
	return nil, ErrStaleStatus
}

func (r *memoryRepository) StatsByDay(_ context.Context, dietitianID string, from, to time.Time) ([]DayStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byDay := map[string]*DayStats{}
	for _, b := range r.bookings {
		if b.DietitianID != dietitianID || b.Date.Before(from) || !b.Date.Before(to) {
			continue
		}
		day := b.Date.UTC().Format(slot.DateLayout)
		st, ok := byDay[day]
		if !ok {
			st = &DayStats{Day: day}
			byDay[day] = st
		}
		switch b.Status {
		case StatusConfirmed:
			st.Confirmed++
		case StatusCancelled:
			st.Cancelled++
		case StatusCompleted:
			st.Completed++
		case StatusNoShow:
			st.NoShow++
		}
	}

	stats := []DayStats{}
	for _, st := range byDay {
		stats = append(stats, *st)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Day < stats[j].Day })
	return stats, nil
}

func (r *memoryRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bookings)
}

// memoryBlockedSlots is keyed by dietitianID|date|time.
type memoryBlockedSlots struct {
	mu    sync.Mutex
	slots map[string]bool
}

func newMemoryBlockedSlots() *memoryBlockedSlots {
	return &memoryBlockedSlots{slots: map[string]bool{}}
}

func (m *memoryBlockedSlots) block(dietitianID, date, clock string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[dietitianID+"|"+date+"|"+clock] = true
}

func (m *memoryBlockedSlots) IsBlocked(_ context.Context, dietitianID, date, clock string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slots[dietitianID+"|"+date+"|"+clock], nil
}

func (m *memoryBlockedSlots) BlockedTimes(_ context.Context, dietitianID, date string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	prefix := dietitianID + "|" + date + "|"
	times := []string{}
	for k := range m.slots {
		if strings.HasPrefix(k, prefix) {
			times = append(times, strings.TrimPrefix(k, prefix))
		}
	}
	sort.Strings(times)
	return times, nil
}

// countingNotifier records notifications without delivering them.
type countingNotifier struct {
	mu        sync.Mutex
	confirmed []string
	cancelled []string
}

func (n *countingNotifier) NotifyConfirmed(_ context.Context, b *Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirmed = append(n.confirmed, b.ID)
}

func (n *countingNotifier) NotifyCancelled(_ context.Context, b *Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancelled = append(n.cancelled, b.ID)
}
