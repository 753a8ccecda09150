// Package interfaces はresextractコマンドで使用するインターフェースを定義します
package interfaces

import (
	"context"

	"github.com/shiroemons/go-resextract/internal/resextract/models"
)

// FileSystem はファイルシステム操作のインターフェース
type FileSystem interface {
	FileExists(filename string) bool
	ReadFile(filename string) ([]byte, error)
	WriteFile(filename string, data []byte, perm uint32) error
	MkdirAll(path string, perm uint32) error
	ReadDir(dirname string) ([]DirEntry, error)
	Move(src, dst string) error
	CopyFile(src, dst string) error
}

// DirEntry はディレクトリエントリのインターフェース
type DirEntry interface {
	Name() string
	IsDir() bool
}

// ResourceTool は外部のリソース抽出ツールのインターフェースです
type ResourceTool interface {
	// List はコンテナのリソース一覧をツールの出力テキストのまま返します
	List(ctx context.Context, container string) (string, error)
	// Extract は req.OutDir に0個以上のファイルを書き出します
	Extract(ctx context.Context, req models.ExtractRequest) error
}

// Placer は抽出されたファイルを出力ツリーへ配置するインターフェース
type Placer interface {
	Place(file string, entry models.CatalogEntry) (string, error)
}

// Reporter は利用者向けの進捗・診断出力のインターフェース
type Reporter interface {
	Progressf(format string, a ...any)
	Warnf(format string, a ...any)
	Skipf(entry models.CatalogEntry, err error)
}

// Logger はデバッグ出力のインターフェース
type Logger interface {
	Printf(format string, a ...any)
}
