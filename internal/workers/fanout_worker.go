package workers

import (
	"context"
	"time"

	"inkwell/internal/core/apperr"
	"inkwell/internal/core/fanoutqueue"
	"inkwell/internal/core/post"
	fanoutPort "inkwell/internal/ports/fanoutqueue"
	followerPort "inkwell/internal/ports/follower"
	postPort "inkwell/internal/ports/post"
	timelinePort "inkwell/internal/ports/timeline"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// FanoutWorker drains the fanout queue into followers' timelines.
type FanoutWorker struct {
	FanoutRepo   fanoutPort.FanoutRepository
	FollowerRepo followerPort.FollowerRepository
	PostRepo     postPort.PostRepository
	Timeline     timelinePort.TimelineStore
	BatchSize    int // followers pushed per Redis pipeline and rows read per poll
	Interval     time.Duration
	Logger       *zap.Logger
}

func NewFanoutWorker(
	fanoutRepo fanoutPort.FanoutRepository,
	followerRepo followerPort.FollowerRepository,
	postRepo postPort.PostRepository,
	timeline timelinePort.TimelineStore,
	batchSize int,
	interval time.Duration,
	logger *zap.Logger,
) *FanoutWorker {
	if batchSize <= 0 {
		batchSize = 100
	}
	if interval <= 0 {
		interval = time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FanoutWorker{
		FanoutRepo:   fanoutRepo,
		FollowerRepo: followerRepo,
		PostRepo:     postRepo,
		Timeline:     timeline,
		BatchSize:    batchSize,
		Interval:     interval,
		Logger:       logger,
	}
}

// Run polls the queue until ctx is cancelled.
func (w *FanoutWorker) Run(ctx context.Context) {
	w.Logger.Info("Fanout worker started", zap.Duration("interval", w.Interval))
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		w.Poll(ctx)
		select {
		case <-ctx.Done():
			w.Logger.Info("Fanout worker stopped")
			return
		case <-ticker.C:
		}
	}
}

// Poll processes one batch of pending rows.
func (w *FanoutWorker) Poll(ctx context.Context) {
	pending, err := w.FanoutRepo.GetPending(ctx, w.BatchSize)
	if err != nil {
		w.Logger.Error("Error fetching pending fanouts", zap.Error(err))
		return
	}
	for _, fq := range pending {
		if ctx.Err() != nil {
			return
		}
		w.processFanout(ctx, fq)
	}
}

// processFanout leaves the row pending when a push fails so the next poll retries it.
func (w *FanoutWorker) processFanout(ctx context.Context, fq *fanoutqueue.FanoutQueue) {
	if fq == nil || fq.PostID == uuid.Nil || fq.AuthorID == uuid.Nil {
		w.Logger.Error("Invalid fanout record", zap.Any("record", fq))
		return
	}
	log := w.Logger.With(zap.String("postID", fq.PostID.String()), zap.String("authorID", fq.AuthorID.String()))

	p, err := w.PostRepo.FindByID(ctx, fq.PostID.String())
	switch {
	case apperr.KindOf(err) == apperr.KindNotFound:
		log.Info("Post is gone, skipping fanout")
		w.markDone(ctx, fq)
		return
	case err != nil:
		log.Error("Error loading post", zap.Error(err))
		return
	case p.Status != post.StatusPublished:
		log.Info("Post is not published, skipping fanout")
		w.markDone(ctx, fq)
		return
	}

	followerIDs, err := w.FollowerRepo.FollowerIDs(ctx, fq.AuthorID.String())
	if err != nil {
		log.Error("Error fetching followers", zap.Error(err))
		return
	}

	score := float64(p.CreatedAt.Unix())
	for i := 0; i < len(followerIDs); i += w.BatchSize {
		end := min(i+w.BatchSize, len(followerIDs))
		if err := w.Timeline.Push(ctx, fq.PostID.String(), score, followerIDs[i:end]); err != nil {
			log.Error("Error pushing batch to timelines", zap.Int("from", i), zap.Int("to", end), zap.Error(err))
			return
		}
	}

	log.Info("Fanout done", zap.Int("followers", len(followerIDs)))
	w.markDone(ctx, fq)
}

func (w *FanoutWorker) markDone(ctx context.Context, fq *fanoutqueue.FanoutQueue) {
	if err := w.FanoutRepo.MarkDone(ctx, fq.ID); err != nil {
		w.Logger.Warn("Could not mark fanout done", zap.String("id", fq.ID.String()), zap.Error(err))
	}
}
