// Package app はアプリケーションのメインロジックを実装します
package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/shiroemons/go-resextract/internal/resextract/catalog"
	"github.com/shiroemons/go-resextract/internal/resextract/config"
	"github.com/shiroemons/go-resextract/internal/resextract/console"
	"github.com/shiroemons/go-resextract/internal/resextract/extract"
	"github.com/shiroemons/go-resextract/internal/resextract/fileutil"
	"github.com/shiroemons/go-resextract/internal/resextract/interfaces"
	"github.com/shiroemons/go-resextract/internal/resextract/models"
	"github.com/shiroemons/go-resextract/internal/resextract/policy"
	"github.com/shiroemons/go-resextract/internal/resextract/postprocess"
	"github.com/shiroemons/go-resextract/internal/resextract/wrestool"
)

// App はアプリケーションのメインロジックを管理します
type App struct {
	config   *config.Config
	logger   *config.DebugLogger
	fs       interfaces.FileSystem
	reporter interfaces.Reporter
	lister   *catalog.Lister
	batch    *extract.Batch
}

// Options はAppの設定オプション
type Options struct {
	FileSystem interfaces.FileSystem
	Tool       interfaces.ResourceTool
	Reporter   interfaces.Reporter
	// ScratchParent は作業ディレクトリの作成場所。空の場合はOSの一時ディレクトリ
	ScratchParent string
}

// New は新しいAppを作成します
func New(cfg *config.Config) *App {
	return NewWithOptions(cfg, Options{})
}

// NewWithOptions は新しいAppをオプション付きで作成します
func NewWithOptions(cfg *config.Config, opts Options) *App {
	logger := config.NewDebugLogger(cfg.DebugMode)

	fs := opts.FileSystem
	if fs == nil {
		fs = fileutil.NewOSFileSystem()
	}

	reporter := opts.Reporter
	if reporter == nil {
		reporter = console.New(nil)
	}

	// デフォルトはwrestoolを呼び出す
	tool := opts.Tool
	if tool == nil {
		tool = wrestool.New(cfg.ToolPath, wrestool.Options{
			Reporter: reporter,
			Timeout:  cfg.Timeout,
		})
	}

	scratch := extract.Scratch{
		Parent: opts.ScratchParent,
		Prefix: scratchPrefix(cfg.RunID),
	}
	placer := postprocess.NewPlacer(fs, cfg.OutputDir, logger)

	return &App{
		config:   cfg,
		logger:   logger,
		fs:       fs,
		reporter: reporter,
		lister:   catalog.NewLister(tool, logger),
		batch:    extract.NewBatch(tool, placer, scratch, reporter, logger),
	}
}

// Run は入力ディレクトリ内の全コンテナを処理し、集計を返します。
// コンテナやエントリ単位の失敗は報告して処理を続けます。
func (a *App) Run(ctx context.Context) (models.Summary, error) {
	var summary models.Summary

	// コンテキストのキャンセルチェック
	select {
	case <-ctx.Done():
		return summary, ctx.Err()
	default:
	}

	containers, err := fileutil.FindContainers(a.fs, a.config.InputDir, a.config.ContainerExt)
	if err != nil {
		return summary, fmt.Errorf("%w: %w", ErrScanInput, err)
	}

	if !a.config.DryRun {
		if err := fileutil.EnsureDir(a.fs, a.config.OutputDir); err != nil {
			return summary, fmt.Errorf("%w: %w", ErrCreateOutput, err)
		}
	}

	a.reporter.Progressf("[*] Scanning containers in: %s", a.config.InputDir)
	a.logger.Printf("%d 個のコンテナが見つかりました\n", len(containers))

	for _, container := range containers {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		result, err := a.processContainer(ctx, container)
		summary.Containers = append(summary.Containers, result)
		if err != nil {
			return summary, err
		}
	}

	if !a.config.DryRun {
		summary.Fonts = a.copyFonts()
	}

	a.reporter.Progressf("[✓] Done → %s", a.config.OutputDir)
	return summary, nil
}

// processContainer は1コンテナを処理します。コンテキストのキャンセルのみエラーとして返します。
func (a *App) processContainer(ctx context.Context, container string) (models.ContainerResult, error) {
	result := models.ContainerResult{Container: container}
	a.reporter.Progressf("  → %s", filepath.Base(container))

	entries, err := a.lister.List(ctx, container)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}
		a.reporter.Warnf("%v", err)
		return result, nil
	}

	if len(entries) == 0 {
		a.reporter.Progressf("    (no listable resources)")
		return result, nil
	}

	if a.config.DryRun {
		a.plan(entries)
		result.Entries = len(entries)
		return result, nil
	}

	if a.config.NoBatch {
		result, err = a.batch.ProcessSingly(ctx, container, entries)
	} else {
		result, err = a.batch.Process(ctx, container, entries)
	}
	if err != nil {
		return result, err
	}

	a.reporter.Progressf("    placed %d/%d (batch %d, single %d), skipped %d",
		result.Placed(), result.Entries, result.BatchPlaced, result.SinglePlaced, result.Skipped)
	return result, nil
}

// plan は配置予定を表示します
func (a *App) plan(entries []models.CatalogEntry) {
	for _, entry := range entries {
		rule := policy.Classify(entry.Type, entry.Name)
		a.reporter.Progressf("    %s → %s/%s (%s)", entry, rule.Folder, rule.Filename, rule.Mode)
	}
}

// copyFonts は入力ディレクトリのフォントを出力先にコピーし、コピーした数を返します
func (a *App) copyFonts() int {
	copied, err := fileutil.CopyFonts(a.fs, a.config.InputDir, a.config.OutputDir)
	for _, name := range copied {
		a.reporter.Progressf("font: %s", name)
	}
	if err != nil {
		a.reporter.Warnf("font copy failed: %v", err)
	}
	return len(copied)
}

func scratchPrefix(runID string) string {
	if runID == "" {
		return "resextract-"
	}
	return "resextract-" + runID + "-"
}
