package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/tutorium-admin-api/internal/models"
)

const snapshotCacheKey = "snapshot:v1"

type collectionFetcher interface {
	Reports(ctx context.Context) ([]models.Report, error)
	BanLearners(ctx context.Context) ([]models.BanRecord, error)
	BanTeachers(ctx context.Context) ([]models.BanRecord, error)
	PaymentTransactions(ctx context.Context) ([]models.Transaction, error)
	Users(ctx context.Context) ([]models.User, error)
}

// SnapshotService loads the five marketplace collections as one unit.
type SnapshotService struct {
	fetcher collectionFetcher
	cache   *CacheService
	logger  *zap.Logger
	ttl     time.Duration
}

// NewSnapshotService constructs a snapshot service.
func NewSnapshotService(fetcher collectionFetcher, cache *CacheService, ttl time.Duration, logger *zap.Logger) *SnapshotService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &SnapshotService{fetcher: fetcher, cache: cache, logger: logger, ttl: ttl}
}

// Load fetches all five collections concurrently. The load is all-or-nothing:
// the first failure cancels the remaining fetches and no partial snapshot is
// ever returned. The boolean reports cache utilisation.
func (s *SnapshotService) Load(ctx context.Context) (*models.Snapshot, bool, error) {
	if s.cache != nil {
		var cached models.Snapshot
		if hit, err := s.cache.Get(ctx, snapshotCacheKey, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	snap := &models.Snapshot{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Reports, err = s.fetcher.Reports(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.BanLearners, err = s.fetcher.BanLearners(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.BanTeachers, err = s.fetcher.BanTeachers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Transactions, err = s.fetcher.PaymentTransactions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Users, err = s.fetcher.Users(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, snapshotCacheKey, snap, s.ttl); err != nil {
			s.logger.Warn("snapshot cache write failed", zap.Error(err))
		}
	}
	return snap, false, nil
}
