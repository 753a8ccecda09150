// Package mocks はテスト用のモック実装を提供します
package mocks

import (
	"errors"
	"path/filepath"

	"github.com/shiroemons/go-resextract/internal/resextract/interfaces"
)

// MockFileSystem はテスト用のファイルシステムモック
type MockFileSystem struct {
	Files map[string][]byte
	Dirs  map[string]bool
	Error error
}

// NewMockFileSystem は新しいMockFileSystemを作成します
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		Files: make(map[string][]byte),
		Dirs:  make(map[string]bool),
	}
}

// FileExists はファイルまたはディレクトリが存在するか確認します
func (fs *MockFileSystem) FileExists(filename string) bool {
	if _, exists := fs.Files[filename]; exists {
		return true
	}
	return fs.Dirs[filename]
}

// ReadFile はファイルを読み込みます
func (fs *MockFileSystem) ReadFile(filename string) ([]byte, error) {
	if fs.Error != nil {
		return nil, fs.Error
	}
	data, exists := fs.Files[filename]
	if !exists {
		return nil, errors.New("file not found")
	}
	return data, nil
}

// WriteFile はファイルを書き込みます
func (fs *MockFileSystem) WriteFile(filename string, data []byte, perm uint32) error {
	if fs.Error != nil {
		return fs.Error
	}
	fs.Files[filename] = data
	return nil
}

// MkdirAll はディレクトリを作成します
func (fs *MockFileSystem) MkdirAll(path string, perm uint32) error {
	if fs.Error != nil {
		return fs.Error
	}
	fs.Dirs[path] = true
	return nil
}

// ReadDir はディレクトリを読み込みます
func (fs *MockFileSystem) ReadDir(dirname string) ([]interfaces.DirEntry, error) {
	if fs.Error != nil {
		return nil, fs.Error
	}

	// ディレクトリが存在するか確認
	if !fs.Dirs[dirname] {
		hasFiles := false
		for path := range fs.Files {
			if filepath.Dir(path) == dirname {
				hasFiles = true
				break
			}
		}
		if !hasFiles {
			return nil, errors.New("directory not found")
		}
	}

	var entries []interfaces.DirEntry
	for path := range fs.Files {
		if filepath.Dir(path) == dirname {
			entries = append(entries, &MockDirEntry{name: filepath.Base(path)})
		}
	}
	for path := range fs.Dirs {
		if filepath.Dir(path) == dirname && path != dirname {
			entries = append(entries, &MockDirEntry{name: filepath.Base(path), isDir: true})
		}
	}

	return entries, nil
}

// Move はファイルを移動します
func (fs *MockFileSystem) Move(src, dst string) error {
	if fs.Error != nil {
		return fs.Error
	}
	data, exists := fs.Files[src]
	if !exists {
		return errors.New("file not found")
	}
	delete(fs.Files, src)
	fs.Files[dst] = data
	return nil
}

// CopyFile はファイルをコピーします
func (fs *MockFileSystem) CopyFile(src, dst string) error {
	if fs.Error != nil {
		return fs.Error
	}
	data, exists := fs.Files[src]
	if !exists {
		return errors.New("file not found")
	}
	fs.Files[dst] = append([]byte(nil), data...)
	return nil
}

// MockDirEntry はテスト用のDirEntry実装
type MockDirEntry struct {
	name  string
	isDir bool
}

// Name はエントリ名を返します
func (de *MockDirEntry) Name() string {
	return de.name
}

// IsDir はディレクトリかどうかを返します
func (de *MockDirEntry) IsDir() bool {
	return de.isDir
}
