package extract

import (
	"path/filepath"
	"strings"

	"github.com/shiroemons/go-resextract/internal/resextract/models"
)

// Claim は一括抽出で出力されたファイルとカタログエントリの対応です
type Claim struct {
	Entry models.CatalogEntry
	File  string
}

// Match は一括抽出で出力されたファイルをカタログエントリに対応付けます。
// ファイル名を "_" と "." で区切ったトークンの中にエントリ名と完全一致するものが
// ちょうど1つのファイルにだけある場合に、そのファイルを確保します。
// 確保したファイルは以降の候補から外れます。候補が0件または複数件のエントリは deferred に入ります。
func Match(entries []models.CatalogEntry, produced []string) (claims []Claim, deferred []models.CatalogEntry) {
	available := make([]string, len(produced))
	copy(available, produced)

	tokens := make(map[string]map[string]struct{}, len(produced))
	for _, file := range produced {
		tokens[file] = Tokenize(filepath.Base(file))
	}

	for _, entry := range entries {
		idx := -1
		count := 0
		for i, file := range available {
			if _, ok := tokens[file][entry.Name]; ok {
				idx = i
				count++
			}
		}

		if count != 1 {
			deferred = append(deferred, entry)
			continue
		}

		claims = append(claims, Claim{Entry: entry, File: available[idx]})
		available = append(available[:idx], available[idx+1:]...)
	}

	return claims, deferred
}

// Tokenize はファイル名を "_" と "." で区切ったトークンの集合を返します
func Tokenize(filename string) map[string]struct{} {
	parts := strings.FieldsFunc(filename, func(r rune) bool {
		return r == '_' || r == '.'
	})

	set := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		set[part] = struct{}{}
	}
	return set
}
