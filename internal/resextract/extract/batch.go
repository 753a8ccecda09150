package extract

import (
	"context"
	"errors"

	reserrors "github.com/shiroemons/go-resextract/internal/resextract/errors"
	"github.com/shiroemons/go-resextract/internal/resextract/fileutil"
	"github.com/shiroemons/go-resextract/internal/resextract/interfaces"
	"github.com/shiroemons/go-resextract/internal/resextract/models"
	"github.com/shiroemons/go-resextract/internal/resextract/policy"
)

// TypeGroup は同じ種別のエントリのまとまりです
type TypeGroup struct {
	Type    models.ResourceType
	Entries []models.CatalogEntry
}

// GroupByType はエントリを種別ごとにまとめます。グループの順序は種別の初出順です。
func GroupByType(entries []models.CatalogEntry) []TypeGroup {
	var groups []TypeGroup
	index := make(map[string]int)

	for _, entry := range entries {
		i, ok := index[entry.Type.Raw]
		if !ok {
			i = len(groups)
			index[entry.Type.Raw] = i
			groups = append(groups, TypeGroup{Type: entry.Type})
		}
		groups[i].Entries = append(groups[i].Entries, entry)
	}
	return groups
}

// Batch は種別ごとの一括抽出と、対応付けできなかったエントリの単体抽出を行います
type Batch struct {
	tool     interfaces.ResourceTool
	placer   interfaces.Placer
	single   *Single
	scratch  Scratch
	reporter interfaces.Reporter
	logger   interfaces.Logger
}

// NewBatch は新しいBatchを作成します
func NewBatch(tool interfaces.ResourceTool, placer interfaces.Placer, scratch Scratch, reporter interfaces.Reporter, logger interfaces.Logger) *Batch {
	return &Batch{
		tool:     tool,
		placer:   placer,
		single:   NewSingle(tool, placer, scratch, logger),
		scratch:  scratch,
		reporter: reporter,
		logger:   logger,
	}
}

// Process は1コンテナの全エントリを処理します。
// 各種別について一括抽出を1回行い、対応付けできなかったエントリは単体抽出に回します。
// エントリ単位のエラーは報告して処理を続けます。コンテキストのキャンセルのみエラーとして返します。
func (b *Batch) Process(ctx context.Context, container string, entries []models.CatalogEntry) (models.ContainerResult, error) {
	result := models.ContainerResult{Container: container, Entries: len(entries)}

	for _, group := range GroupByType(entries) {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		deferred, err := b.bulk(ctx, container, group, &result)
		if err != nil {
			return result, err
		}

		if len(deferred) > 0 {
			b.logger.Printf("%s: %d 件を単体抽出します\n", group.Type, len(deferred))
		}
		if err := b.each(ctx, container, deferred, &result); err != nil {
			return result, err
		}
	}

	return result, nil
}

// ProcessSingly は一括抽出を使わずに全エントリを単体抽出します
func (b *Batch) ProcessSingly(ctx context.Context, container string, entries []models.CatalogEntry) (models.ContainerResult, error) {
	result := models.ContainerResult{Container: container, Entries: len(entries)}
	err := b.each(ctx, container, entries, &result)
	return result, err
}

// bulk は種別単位で一括抽出し、対応付けできたファイルを配置します。
// 対応付けできなかったエントリを返します。
func (b *Batch) bulk(ctx context.Context, container string, group TypeGroup, result *models.ContainerResult) ([]models.CatalogEntry, error) {
	var deferred []models.CatalogEntry
	matched := false

	err := fileutil.WithScratchDir(b.scratch.Parent, b.scratch.Prefix, func(dir *fileutil.ScratchDir) error {
		req := models.ExtractRequest{
			Container: container,
			Type:      group.Type,
			Raw:       policy.DecodeModeFor(group.Type) == models.DecodeRaw,
			OutDir:    dir.Path(),
		}
		if err := b.tool.Extract(ctx, req); err != nil {
			return err
		}

		files, err := dir.Files()
		if err != nil {
			return err
		}

		claims, rest := Match(group.Entries, files)
		deferred = rest
		matched = true
		b.logger.Printf("%s: %d 個のファイルのうち %d 件を対応付けました\n", group.Type, len(files), len(claims))
		for _, claim := range claims {
			if _, err := b.placer.Place(claim.File, claim.Entry); err != nil {
				b.skip(claim.Entry, err, result)
				continue
			}
			result.BatchPlaced++
		}
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if matched {
			// 配置は済んでいるので作業ディレクトリの削除失敗のみ
			b.reporter.Warnf("failed to clean up scratch directory: %v", err)
			return deferred, nil
		}
		// 一括抽出に失敗した場合は種別内の全エントリを単体抽出に回す
		b.reporter.Warnf("bulk extraction of type %s failed: %v", group.Type, err)
		return group.Entries, nil
	}

	return deferred, nil
}

// each はエントリを1件ずつ単体抽出します
func (b *Batch) each(ctx context.Context, container string, entries []models.CatalogEntry, result *models.ContainerResult) error {
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		dst, err := b.single.ExtractOne(ctx, container, entry)
		if err != nil && dst != "" {
			b.reporter.Warnf("failed to clean up scratch directory: %v", err)
			err = nil
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if errors.Is(err, reserrors.ErrNothingProduced) {
				// ツールが抽出できないリソースは警告せずに数えるだけ
				b.logger.Printf("%s: 抽出できませんでした\n", entry)
				result.Skipped++
				continue
			}
			b.skip(entry, err, result)
			continue
		}
		result.SinglePlaced++
	}
	return nil
}

func (b *Batch) skip(entry models.CatalogEntry, err error, result *models.ContainerResult) {
	b.reporter.Skipf(entry, reserrors.NewEntryError(entry.Type.Raw, entry.Name, err))
	result.Skipped++
}
