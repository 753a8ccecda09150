// Package catalog はコンテナのリソース一覧を解析します
package catalog

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"

	"github.com/shiroemons/go-resextract/internal/resextract/models"
)

// listingPattern は一覧の1行（--type=<T> --name=<N> --language=<L>）のパターン。
// T と N は引用符付き文字列または裸の識別子・数値です。
var listingPattern = regexp.MustCompile(
	`--type=('[^']*'|"[^"]*"|[A-Za-z0-9_]+)\s+--name=('[^']*'|"[^"]*"|[A-Za-z0-9_]+)\s+--language=([A-Za-z0-9_]+)`,
)

// ParseListing は外部ツールの一覧出力を解析します。
// 文法に一致しない行（診断メッセージなど）は読み飛ばし、出現順を保ちます。
func ParseListing(text string) ([]models.CatalogEntry, error) {
	var entries []models.CatalogEntry

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		entry, ok := ParseLine(scanner.Text())
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanListing, err)
	}

	return entries, nil
}

// ParseLine は一覧の1行を解析します
func ParseLine(line string) (models.CatalogEntry, bool) {
	m := listingPattern.FindStringSubmatch(line)
	if m == nil {
		return models.CatalogEntry{}, false
	}

	name := models.Unquote(m[2])
	if name == "" {
		return models.CatalogEntry{}, false
	}

	return models.CatalogEntry{
		Type:       models.ParseResourceType(m[1]),
		Name:       name,
		LanguageID: m[3],
	}, true
}
