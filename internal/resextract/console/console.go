// Package console は利用者向けの進捗表示を行います
package console

import (
	"errors"
	"fmt"
	"io"
	"os"

	reserrors "github.com/shiroemons/go-resextract/internal/resextract/errors"
	"github.com/shiroemons/go-resextract/internal/resextract/models"
)

// Console は進捗・警告・スキップを1行ずつ書き出すReporterです
type Console struct {
	out io.Writer
}

// New は新しいConsoleを作成します。out が nil の場合は標準出力に書き出します。
func New(out io.Writer) *Console {
	if out == nil {
		out = os.Stdout
	}
	return &Console{out: out}
}

// Progressf は進捗を1行表示します
func (c *Console) Progressf(format string, a ...any) {
	c.println(fmt.Sprintf(format, a...))
}

// Warnf はツールの診断などの警告を表示します
func (c *Console) Warnf(format string, a ...any) {
	c.println("    [warn] " + fmt.Sprintf(format, a...))
}

// Skipf は配置できなかったエントリを表示します
func (c *Console) Skipf(entry models.CatalogEntry, err error) {
	// EntryError は type:name を含むので理由だけを取り出す
	var entryErr *reserrors.EntryError
	if errors.As(err, &entryErr) {
		err = entryErr.Err
	}
	c.println(fmt.Sprintf("    [skip] %s (%v)", entry, err))
}

func (c *Console) println(line string) {
	fmt.Fprintln(c.out, line)
}
