package catalog

import (
	"context"
	"fmt"

	"github.com/shiroemons/go-resextract/internal/resextract/interfaces"
	"github.com/shiroemons/go-resextract/internal/resextract/models"
)

// Lister は外部ツールを使ってコンテナのカタログを取得します
type Lister struct {
	tool   interfaces.ResourceTool
	logger interfaces.Logger
}

// NewLister は新しいListerを作成します
func NewLister(tool interfaces.ResourceTool, logger interfaces.Logger) *Lister {
	return &Lister{tool: tool, logger: logger}
}

// List はコンテナのカタログを列挙順のまま返します。
// 一覧できるリソースがない場合は空のスライスを返し、エラーにはしません。
func (l *Lister) List(ctx context.Context, container string) ([]models.CatalogEntry, error) {
	// コンテキストのキャンセルチェック
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	out, err := l.tool.List(ctx, container)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrListContainer, err)
	}

	entries, err := ParseListing(out)
	if err != nil {
		return nil, err
	}

	l.logger.Printf("%s: %d 件のリソースを検出しました\n", container, len(entries))
	return entries, nil
}
