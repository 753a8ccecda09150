// Package extract は外部ツールによる抽出と、出力ファイルとカタログエントリの対応付けを行います
package extract

import (
	"context"

	reserrors "github.com/shiroemons/go-resextract/internal/resextract/errors"
	"github.com/shiroemons/go-resextract/internal/resextract/fileutil"
	"github.com/shiroemons/go-resextract/internal/resextract/interfaces"
	"github.com/shiroemons/go-resextract/internal/resextract/models"
	"github.com/shiroemons/go-resextract/internal/resextract/policy"
)

// Scratch は作業ディレクトリの作成場所の設定
type Scratch struct {
	Parent string // 空の場合はOSの既定の一時ディレクトリ
	Prefix string
}

// Single は種別と名前を指定して1リソースだけを抽出します
type Single struct {
	tool    interfaces.ResourceTool
	placer  interfaces.Placer
	scratch Scratch
	logger  interfaces.Logger
}

// NewSingle は新しいSingleを作成します
func NewSingle(tool interfaces.ResourceTool, placer interfaces.Placer, scratch Scratch, logger interfaces.Logger) *Single {
	return &Single{tool: tool, placer: placer, scratch: scratch, logger: logger}
}

// ExtractOne は entry を1回のツール呼び出しで抽出して配置し、配置先を返します。
// ツールが何も出力しなかった場合は ErrNothingProduced を返します。
// 配置後に作業ディレクトリの削除だけが失敗した場合は、配置先とエラーの両方を返します。
func (s *Single) ExtractOne(ctx context.Context, container string, entry models.CatalogEntry) (string, error) {
	var dst string

	err := fileutil.WithScratchDir(s.scratch.Parent, s.scratch.Prefix, func(dir *fileutil.ScratchDir) error {
		req := models.ExtractRequest{
			Container: container,
			Type:      entry.Type,
			Name:      entry.Name,
			Raw:       policy.DecodeModeFor(entry.Type) == models.DecodeRaw,
			OutDir:    dir.Path(),
		}
		if err := s.tool.Extract(ctx, req); err != nil {
			return err
		}

		files, err := dir.Files()
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return reserrors.ErrNothingProduced
		}
		if len(files) > 1 {
			s.logger.Printf("%s: %d 個のファイルが出力されました。最初のファイルを使用します\n", entry, len(files))
		}

		placed, err := s.placer.Place(files[0], entry)
		if err != nil {
			return err
		}
		dst = placed
		return nil
	})
	return dst, err
}
