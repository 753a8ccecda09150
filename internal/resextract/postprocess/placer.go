// Package postprocess は抽出されたファイルを種別ごとに加工して出力ツリーへ配置します
package postprocess

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shiroemons/go-resextract/internal/resextract/fileutil"
	"github.com/shiroemons/go-resextract/internal/resextract/interfaces"
	"github.com/shiroemons/go-resextract/internal/resextract/models"
	"github.com/shiroemons/go-resextract/internal/resextract/policy"
)

// StringTableReadme は strings フォルダに置く説明文
const StringTableReadme = "These are raw Win32 STRINGTABLE blocks. The .txt files are a quick UTF-16LE skim.\n"

// Placer は抽出されたファイルを出力ツリーへ移動します
type Placer struct {
	fs      interfaces.FileSystem
	outRoot string
	logger  interfaces.Logger
}

// NewPlacer は新しいPlacerを作成します
func NewPlacer(fs interfaces.FileSystem, outRoot string, logger interfaces.Logger) *Placer {
	return &Placer{fs: fs, outRoot: outRoot, logger: logger}
}

// Place は file を entry の配置ルールに従って移動し、配置先のパスを返します。
// 移動は常に衝突しないパスへ行います。
func (p *Placer) Place(file string, entry models.CatalogEntry) (string, error) {
	rule := policy.Classify(entry.Type, entry.Name)
	dir := filepath.Join(p.outRoot, filepath.FromSlash(rule.Folder))

	if err := fileutil.EnsureDir(p.fs, dir); err != nil {
		return "", err
	}

	// 音声は rule.Filename が既に <base>.wav になっているので他と同じ扱い
	dst := fileutil.UniquePath(p.fs, filepath.Join(dir, rule.Filename))
	if err := p.fs.Move(file, dst); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrPlaceFile, dst, err)
	}
	p.logger.Printf("%s → %s\n", entry, dst)

	if entry.Type.Kind == models.KindStringTable {
		// 文字列の抽出に失敗しても .bin の配置は成功しているので無視する
		if err := p.skimStringTable(dir, dst, rule); err != nil {
			p.logger.Printf("%s: 文字列の抽出に失敗しました: %v\n", entry, err)
		}
	}

	return dst, nil
}

// skimStringTable は配置済みの文字列テーブルから .txt と README.txt を作成します
func (p *Placer) skimStringTable(dir, binPath string, rule models.PlacementRule) error {
	if err := p.fs.WriteFile(filepath.Join(dir, "README.txt"), []byte(StringTableReadme), fileutil.FilePerm); err != nil {
		return err
	}

	data, err := p.fs.ReadFile(binPath)
	if err != nil {
		return err
	}

	text, err := SkimUTF16LE(data, MinRunLength)
	if err != nil {
		return err
	}

	txtName := strings.TrimSuffix(rule.Filename, filepath.Ext(rule.Filename)) + ".txt"
	txtPath := fileutil.UniquePath(p.fs, filepath.Join(dir, txtName))
	return p.fs.WriteFile(txtPath, []byte(text), fileutil.FilePerm)
}
