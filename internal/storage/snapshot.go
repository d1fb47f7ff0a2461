package storage

import (
	"context"
	"errors"

	"agri-connect/internal/domain"
)

// ErrNotFound 表示固定 key 下还没有任何快照（首次启动）
var ErrNotFound = errors.New("storage: snapshot not found")

// Snapshotter 把整个聚合当成一个 JSON blob 读写。
// Save 是 fire-and-forget 语义的落盘：调用方只记日志，不重试。
type Snapshotter interface {
	Save(ctx context.Context, s domain.State) error
	Load(ctx context.Context) (domain.State, error)
}
