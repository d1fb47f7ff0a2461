package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"agri-connect/internal/domain"
)

// FileSnapshotter 把聚合写到单个本地文件，先写临时文件再 rename，
// 避免进程中途挂掉留下半个 JSON
type FileSnapshotter struct {
	Path string
}

func NewFile(path string) *FileSnapshotter { return &FileSnapshotter{Path: path} }

func (f *FileSnapshotter) Save(_ context.Context, s domain.State) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), f.Path)
}

func (f *FileSnapshotter) Load(_ context.Context) (domain.State, error) {
	var s domain.State
	b, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, ErrNotFound
		}
		return s, err
	}
	if err := json.Unmarshal(b, &s); err != nil {
		return s, err
	}
	return s, nil
}
