// Package fileutil はファイル操作のユーティリティ関数を提供します
package fileutil

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/shiroemons/go-resextract/internal/resextract/interfaces"
)

const (
	// DirPerm は出力ディレクトリのパーミッション
	DirPerm = 0755
	// FilePerm は出力ファイルのパーミッション
	FilePerm = 0644

	// FontExt はフォントファイルの拡張子
	FontExt = ".ttf"
	// FontsFolder はフォントの出力先フォルダ
	FontsFolder = "fonts"
)

// EnsureDir はディレクトリを作成します（既に存在する場合は何もしません）
func EnsureDir(fs interfaces.FileSystem, dir string) error {
	if err := fs.MkdirAll(dir, DirPerm); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCreateDirectory, dir, err)
	}
	return nil
}

// UniquePath は既存のファイルと衝突しないパスを返します。
// candidate が存在しなければそのまま、存在すれば拡張子の前に _1, _2, … を付けます。
func UniquePath(fs interfaces.FileSystem, candidate string) string {
	if !fs.FileExists(candidate) {
		return candidate
	}

	dir := filepath.Dir(candidate)
	base := filepath.Base(candidate)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for i := 1; ; i++ {
		alt := filepath.Join(dir, stem+"_"+strconv.Itoa(i)+ext)
		if !fs.FileExists(alt) {
			return alt
		}
	}
}

// FindContainers はディレクトリ内の拡張子が ext のファイルを名前順に返します（大文字小文字を区別しません）
func FindContainers(fs interfaces.FileSystem, dir, ext string) ([]string, error) {
	return findByExt(fs, dir, ext)
}

// CopyFonts は dataDir 直下のフォントファイルを outRoot/fonts にコピーします。
// 同名のファイルは一意化せず上書きします。コピーできたファイル名を返します。
func CopyFonts(fs interfaces.FileSystem, dataDir, outRoot string) ([]string, error) {
	fonts, err := findByExt(fs, dataDir, FontExt)
	if err != nil || len(fonts) == 0 {
		return nil, err
	}

	fontDir := filepath.Join(outRoot, FontsFolder)
	if err := EnsureDir(fs, fontDir); err != nil {
		return nil, err
	}

	var copied []string
	var errs []error
	for _, font := range fonts {
		name := filepath.Base(font)
		if err := fs.CopyFile(font, filepath.Join(fontDir, name)); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		copied = append(copied, name)
	}

	return copied, errors.Join(errs...)
}

// findByExt は指定した拡張子のファイルを検索します
func findByExt(fs interfaces.FileSystem, dir, ext string) ([]string, error) {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	entries, err := fs.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadDirectory, dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}
