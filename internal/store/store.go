package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"agri-connect/internal/domain"
	"agri-connect/internal/storage"
)

// Store 持有唯一的应用聚合，单写者：所有变更都在锁内
// 走"克隆当前快照 → 改克隆 → 原子替换 → 落盘"四步。
// 读取永远返回深拷贝，外部改不动内部状态。
type Store struct {
	mu    sync.Mutex
	state domain.State
	snap  storage.Snapshotter
	log   *zap.Logger

	// 便于测试替换
	now   func() time.Time
	newID func() string
}

func New(initial domain.State, snap storage.Snapshotter, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		state: initial.Clone(),
		snap:  snap,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Open 从快照恢复聚合；没有快照或快照损坏时退回种子数据。
// 坏快照只告警不中止，这是一个有意的加固（原版会在 load 时直接崩）。
func Open(ctx context.Context, snap storage.Snapshotter, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	st, err := snap.Load(ctx)
	switch {
	case err == nil:
		log.Info("state restored from snapshot",
			zap.Int("products", len(st.Products)),
			zap.Int("orders", len(st.Orders)),
		)
	case errors.Is(err, storage.ErrNotFound):
		st = Seed()
		log.Info("no snapshot found, seeding initial state")
	default:
		st = Seed()
		log.Warn("snapshot unreadable, falling back to seed state", zap.Error(err))
	}
	return New(st, snap, log)
}

// Snapshot 当前聚合的深拷贝
func (s *Store) Snapshot() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// update 单写者核心：fn 返回错误则整个变更作废，聚合保持原样
func (s *Store) update(op string, fn func(st *domain.State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	s.state = next
	s.persist(op)
	return nil
}

// persist 落盘失败只记日志，不重试不回滚（fire-and-forget）
func (s *Store) persist(op string) {
	if s.snap == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.snap.Save(ctx, s.state); err != nil {
		s.log.Warn("snapshot save failed", zap.String("op", op), zap.Error(err))
	}
}
