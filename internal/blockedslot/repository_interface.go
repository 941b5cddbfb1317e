package blockedslot

import "context"

type Repository interface {
	Create(ctx context.Context, b *BlockedSlot) error
	Delete(ctx context.Context, dietitianID, id string) error
	ListByDietitian(ctx context.Context, dietitianID string) ([]BlockedSlot, error)
	Exists(ctx context.Context, dietitianID, date, clock string) (bool, error)
	TimesOn(ctx context.Context, dietitianID, date string) ([]string, error)
}
