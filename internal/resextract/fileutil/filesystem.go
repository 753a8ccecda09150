package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/shiroemons/go-resextract/internal/resextract/interfaces"
)

// OSFileSystem は実際のOSファイルシステムを使用する実装
type OSFileSystem struct{}

// NewOSFileSystem は新しいOSFileSystemを作成します
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// FileExists はパスに何かが存在するか確認します（壊れたシンボリックリンクも存在扱い）
func (fs *OSFileSystem) FileExists(filename string) bool {
	_, err := os.Lstat(filename)
	return err == nil
}

// ReadFile はファイルを読み込みます
func (fs *OSFileSystem) ReadFile(filename string) ([]byte, error) {
	return os.ReadFile(filename)
}

// WriteFile はファイルを書き込みます
func (fs *OSFileSystem) WriteFile(filename string, data []byte, perm uint32) error {
	return os.WriteFile(filename, data, os.FileMode(perm))
}

// MkdirAll はディレクトリを作成します
func (fs *OSFileSystem) MkdirAll(path string, perm uint32) error {
	return os.MkdirAll(path, os.FileMode(perm))
}

// ReadDir はディレクトリを読み込みます
func (fs *OSFileSystem) ReadDir(dirname string) ([]interfaces.DirEntry, error) {
	entries, err := os.ReadDir(dirname)
	if err != nil {
		return nil, err
	}

	result := make([]interfaces.DirEntry, len(entries))
	for i, entry := range entries {
		result[i] = entry
	}
	return result, nil
}

// Move はファイルを移動します。
// 作業ディレクトリと出力先が別デバイスの場合はコピーしてから元を削除します。
func (fs *OSFileSystem) Move(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !isCrossDevice(err) {
		return fmt.Errorf("%w: %w", ErrMoveFile, err)
	}

	if err := fs.CopyFile(src, dst); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("%w: %w", ErrMoveFile, err)
	}
	return nil
}

// CopyFile はファイルを内容・パーミッション・更新時刻ごとコピーします。
// 既存のファイルは上書きされます。
func (fs *OSFileSystem) CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCopyFile, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCopyFile, err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCopyFile, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("%w: %w", ErrCopyFile, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrCopyFile, err)
	}

	// 既存ファイルを上書きした場合はOpenFileのpermが効かないので明示的に設定
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return fmt.Errorf("%w: %w", ErrCopyFile, err)
	}
	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("%w: %w", ErrCopyFile, err)
	}
	return nil
}

func isCrossDevice(err error) bool {
	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) {
		return false
	}
	return errors.Is(linkErr.Err, syscall.EXDEV)
}
