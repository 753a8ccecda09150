package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/shiroemons/go-resextract/internal/resextract/app"
	"github.com/shiroemons/go-resextract/internal/resextract/config"
	"github.com/shiroemons/go-resextract/internal/resextract/console"
	"github.com/shiroemons/go-resextract/internal/resextract/wrestool"
)

func main() {
	// コマンドライン引数の解析
	cfg, err := config.ParseFlags(os.Args[0], os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		if !errors.Is(err, config.ErrMissingInputDir) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(2)
	}

	// バージョン表示の処理
	config.HandleVersion(cfg.ShowVersion)

	logger := config.NewSlogLogger(os.Stderr, cfg.DebugMode, cfg.RunID)
	slog.SetDefault(logger)

	// 外部ツールがなければ何も抽出せずに終了する
	if err := wrestool.CheckAvailable(cfg.ToolPath); err != nil {
		slog.Debug("tool lookup failed", "tool", cfg.ToolPath, "error", err)
		fmt.Fprintf(os.Stderr, "error: required tool '%s' not found in PATH\n", cfg.ToolPath)
		os.Exit(1)
	}

	// SIGINT/SIGTERM でエントリ間の処理を中断する
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reporter := console.New(os.Stdout)
	tool := wrestool.New(cfg.ToolPath, wrestool.Options{
		Runner:   wrestool.NewExecRunner(logger),
		Reporter: reporter,
		Timeout:  cfg.Timeout,
	})

	// アプリケーションの実行
	application := app.NewWithOptions(cfg, app.Options{
		Tool:     tool,
		Reporter: reporter,
	})
	if _, err := application.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
