// Package config はresextractコマンドの設定管理を行います
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

const Version = "0.1.0"

// DefaultOutputDir は出力先が省略された場合のディレクトリ
const DefaultOutputDir = "assets/extracted"

var (
	// ErrMissingInputDir は入力ディレクトリが指定されていない場合のエラー
	ErrMissingInputDir = errors.New("入力ディレクトリを指定してください")

	// ErrTooManyArgs は位置引数が多すぎる場合のエラー
	ErrTooManyArgs = errors.New("引数が多すぎます")
)

// Config はアプリケーションの設定を保持します
type Config struct {
	InputDir     string
	OutputDir    string
	ToolPath     string
	ContainerExt string
	NoBatch      bool
	Timeout      time.Duration
	DebugMode    bool
	DryRun       bool
	ShowVersion  bool
	RunID        string
}

// ParseFlags はコマンドライン引数を解析して設定を返します
func ParseFlags(name string, args []string, output io.Writer) (*Config, error) {
	config := &Config{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)

	// カスタムUsage関数を設定（ダブルハイフン表示）
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [options] <input-dir> [output-dir]\n", name)
		fmt.Fprintln(fs.Output(), "  -o, --out string")
		fmt.Fprintf(fs.Output(), "    \toutput directory (default %q)\n", DefaultOutputDir)
		fmt.Fprintln(fs.Output(), "  --tool string")
		fmt.Fprintln(fs.Output(), "    \tpath to the resource extraction tool (default \"wrestool\")")
		fmt.Fprintln(fs.Output(), "  --ext string")
		fmt.Fprintln(fs.Output(), "    \tcontainer file extension, case-insensitive (default \".gob\")")
		fmt.Fprintln(fs.Output(), "  --no-batch")
		fmt.Fprintln(fs.Output(), "    \textract every resource individually")
		fmt.Fprintln(fs.Output(), "  --timeout duration")
		fmt.Fprintln(fs.Output(), "    \ttimeout for each tool invocation, 0 disables (default 0)")
		fmt.Fprintln(fs.Output(), "  -n, --dry-run")
		fmt.Fprintln(fs.Output(), "    \tlist planned placements without extracting")
		fmt.Fprintln(fs.Output(), "  -d, --debug")
		fmt.Fprintln(fs.Output(), "    \tenable debug output")
		fmt.Fprintln(fs.Output(), "  -v, --version")
		fmt.Fprintln(fs.Output(), "    \tshow version information")
	}

	// 出力ディレクトリ
	fs.StringVar(&config.OutputDir, "out", "", "output directory")
	fs.StringVar(&config.OutputDir, "o", "", "output directory (shorthand)")

	// 外部ツール
	fs.StringVar(&config.ToolPath, "tool", "wrestool", "path to the resource extraction tool")

	// コンテナの拡張子
	fs.StringVar(&config.ContainerExt, "ext", ".gob", "container file extension")

	// 一括抽出の無効化
	fs.BoolVar(&config.NoBatch, "no-batch", false, "extract every resource individually")

	// ツール呼び出しのタイムアウト
	fs.DurationVar(&config.Timeout, "timeout", 0, "timeout for each tool invocation")

	// ドライランモード
	fs.BoolVar(&config.DryRun, "dry-run", false, "list planned placements without extracting")
	fs.BoolVar(&config.DryRun, "n", false, "list planned placements without extracting (shorthand)")

	// デバッグモード
	fs.BoolVar(&config.DebugMode, "debug", false, "enable debug output")
	fs.BoolVar(&config.DebugMode, "d", false, "enable debug output (shorthand)")

	// バージョン表示
	fs.BoolVar(&config.ShowVersion, "version", false, "show version information")
	fs.BoolVar(&config.ShowVersion, "v", false, "show version information (shorthand)")

	// フラグは位置引数の前後どちらにも置ける
	positionals, err := parseInterspersed(fs, args)
	if err != nil {
		return nil, err
	}

	if config.ShowVersion {
		return config, nil
	}

	// 実行ごとの識別子（ログと作業ディレクトリ名に使用）
	config.RunID = uuid.NewString()

	switch {
	case len(positionals) < 1:
		fs.Usage()
		return nil, ErrMissingInputDir
	case len(positionals) > 2:
		fs.Usage()
		return nil, fmt.Errorf("%w: %s", ErrTooManyArgs, strings.Join(positionals[2:], " "))
	}

	config.InputDir = positionals[0]
	if config.OutputDir == "" {
		if len(positionals) > 1 {
			config.OutputDir = positionals[1]
		} else {
			config.OutputDir = DefaultOutputDir
		}
	}

	return config, nil
}

// parseInterspersed は位置引数を取り除きながらフラグの解析を繰り返し、位置引数を順に返します。
// "--" 以降はすべて位置引数として扱います。
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positionals []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			return append(positionals, rest...), nil
		}
		if len(rest) == 0 {
			return positionals, nil
		}
		positionals = append(positionals, rest[0])
		args = rest[1:]
	}
}

// HandleVersion はバージョン表示を処理します
func HandleVersion(showVersion bool) {
	if showVersion {
		fmt.Printf("resextract version %s\n", Version)
		os.Exit(0)
	}
}

// NewSlogLogger は外部プロセスのログ用のslog.Loggerを作成します
func NewSlogLogger(w io.Writer, debug bool, runID string) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("run_id", runID)
}

// DebugLogger はデバッグ出力を管理します
type DebugLogger struct {
	enabled bool
}

// NewDebugLogger は新しいDebugLoggerを作成します
func NewDebugLogger(enabled bool) *DebugLogger {
	return &DebugLogger{enabled: enabled}
}

// Printf はデバッグモードが有効な場合のみメッセージを表示します
func (d *DebugLogger) Printf(format string, a ...any) {
	if d.enabled {
		fmt.Printf(format, a...)
	}
}
