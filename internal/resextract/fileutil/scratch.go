package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ScratchDir は外部ツールの出力を受け取る一時ディレクトリです。
// Release で中身ごと削除されます。
type ScratchDir struct {
	path     string
	released bool
}

// NewScratchDir は parent 配下に一時ディレクトリを作成します。parent が空の場合はOSの既定を使用します。
func NewScratchDir(parent, prefix string) (*ScratchDir, error) {
	path, err := os.MkdirTemp(parent, prefix+"*")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateScratch, err)
	}
	return &ScratchDir{path: path}, nil
}

// Path はディレクトリのパスを返します
func (d *ScratchDir) Path() string {
	return d.path
}

// Files はディレクトリ直下の通常ファイルを名前順に返します
func (d *ScratchDir) Files() ([]string, error) {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadDirectory, d.path, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		files = append(files, filepath.Join(d.path, entry.Name()))
	}
	return files, nil
}

// Release はディレクトリを削除します。複数回呼んでも安全です。
func (d *ScratchDir) Release() error {
	if d.released {
		return nil
	}
	d.released = true
	return os.RemoveAll(d.path)
}

// WithScratchDir は一時ディレクトリを確保して fn を実行し、戻る際に必ず削除します
func WithScratchDir(parent, prefix string, fn func(dir *ScratchDir) error) (err error) {
	dir, err := NewScratchDir(parent, prefix)
	if err != nil {
		return err
	}
	defer func() {
		if relErr := dir.Release(); relErr != nil {
			err = errors.Join(err, relErr)
		}
	}()

	return fn(dir)
}
