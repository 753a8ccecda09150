// Package wrestool は外部のリソース抽出ツール（wrestool）の呼び出しを扱います
package wrestool

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	reserrors "github.com/shiroemons/go-resextract/internal/resextract/errors"
	"github.com/shiroemons/go-resextract/internal/resextract/interfaces"
	"github.com/shiroemons/go-resextract/internal/resextract/models"
)

// DefaultName は既定のツール名
const DefaultName = "wrestool"

// noiseMarkers は利用者に見せる必要のない標準エラー出力
var noiseMarkers = []string{
	"don't know how to extract resource",
}

// Tool はwrestoolを呼び出すResourceToolの実装です
type Tool struct {
	path     string
	runner   Runner
	reporter interfaces.Reporter
	timeout  time.Duration
}

// Options はToolの設定オプション
type Options struct {
	Runner   Runner
	Reporter interfaces.Reporter
	// Timeout は1回の呼び出しのタイムアウト。0 の場合は無制限
	Timeout time.Duration
}

// New は新しいToolを作成します
func New(path string, opts Options) *Tool {
	if path == "" {
		path = DefaultName
	}
	runner := opts.Runner
	if runner == nil {
		runner = NewExecRunner(nil)
	}
	return &Tool{
		path:     path,
		runner:   runner,
		reporter: opts.Reporter,
		timeout:  opts.Timeout,
	}
}

// CheckAvailable はツールが実行可能か確認します
func CheckAvailable(path string) error {
	if path == "" {
		path = DefaultName
	}
	if _, err := exec.LookPath(path); err != nil {
		return fmt.Errorf("%w: '%s': %w", reserrors.ErrToolNotFound, path, err)
	}
	return nil
}

// List はコンテナのリソース一覧を返します。標準エラー出力は表示しません。
func (t *Tool) List(ctx context.Context, container string) (string, error) {
	stdout, _, err := t.run(ctx, "list", container, ListArgs(container))
	if err != nil {
		return "", err
	}
	return string(stdout), nil
}

// Extract は req に従ってリソースを req.OutDir に書き出します。
// ツールが0以外で終了しても、出力されたファイルは有効なのでエラーにしません。
func (t *Tool) Extract(ctx context.Context, req models.ExtractRequest) error {
	_, stderr, err := t.run(ctx, "extract", req.Container, ExtractArgs(req))
	t.reportStderr(stderr)
	return err
}

// ListArgs は一覧モードの引数を返します
func ListArgs(container string) []string {
	return []string{"-l", container}
}

// ExtractArgs は抽出モードの引数を返します
func ExtractArgs(req models.ExtractRequest) []string {
	args := []string{"-x"}
	if req.Raw {
		args = append(args, "--raw")
	}
	args = append(args, "--type="+req.Type.Raw)
	if req.Name != "" {
		args = append(args, "--name="+req.Name)
	}
	return append(args, "-o", req.OutDir, req.Container)
}

// run はツールを実行します。起動できなかった場合とタイムアウトのみをエラーとして返します。
func (t *Tool) run(ctx context.Context, op, container string, args []string) ([]byte, []byte, error) {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	stdout, stderr, err := t.runner.Run(ctx, t.path, args...)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return stdout, stderr, reserrors.NewToolError(op, container, ctxErr)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdout, stderr, nil
		}
		return stdout, stderr, reserrors.NewToolError(op, container, fmt.Errorf("%w: %w", ErrToolFailed, err))
	}
	return stdout, stderr, nil
}

// reportStderr はツールの診断メッセージを警告として表示します
func (t *Tool) reportStderr(stderr []byte) {
	if t.reporter == nil || len(stderr) == 0 {
		return
	}

	scanner := bufio.NewScanner(bytes.NewReader(stderr))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || isNoise(line) {
			continue
		}
		t.reporter.Warnf("%s", line)
	}
}

func isNoise(line string) bool {
	for _, marker := range noiseMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}
