package fanout

import (
	"context"

	"inkwell/internal/core/fanoutqueue"

	"github.com/gofrs/uuid"
)

type FanoutRepository interface {
	Create(ctx context.Context, fanout *fanoutqueue.FanoutQueue) (*fanoutqueue.FanoutQueue, error)
	GetPending(ctx context.Context, limit int) ([]*fanoutqueue.FanoutQueue, error)
	MarkDone(ctx context.Context, id uuid.UUID) error
}
