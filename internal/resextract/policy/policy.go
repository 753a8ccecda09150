// Package policy はリソースの配置先とファイル名を決定します
package policy

import (
	"path"
	"strings"

	"github.com/shiroemons/go-resextract/internal/resextract/models"
)

// 出力フォルダ名
const (
	BitmapFolder      = "bitmaps"
	AudioFolder       = "wav"
	StringTableFolder = "strings"
	TableFolder       = "tables"
	RawFolder         = "raw"
)

// BitmapExt はビットマップに付ける拡張子
const BitmapExt = ".BMP"

// Classify は種別と名前から配置ルールを決定します。副作用はありません。
func Classify(typ models.ResourceType, name string) models.PlacementRule {
	rule := models.PlacementRule{Mode: DecodeModeFor(typ)}
	name = sanitize(name)

	switch typ.Kind {
	case models.KindBitmap:
		rule.Folder = BitmapFolder
		if strings.HasSuffix(strings.ToLower(name), strings.ToLower(BitmapExt)) {
			rule.Filename = name
		} else {
			rule.Filename = name + BitmapExt
		}
	case models.KindAudio:
		rule.Folder = AudioFolder
		rule.Filename = AudioBase(name) + ".wav"
	case models.KindStringTable:
		rule.Folder = StringTableFolder
		rule.Filename = "strtbl-" + name + ".bin"
	case models.KindTable:
		rule.Folder = TableFolder
		rule.Filename = name + ".bin"
	default:
		rule.Folder = path.Join(RawFolder, sanitize(strings.ToLower(typ.Raw)))
		rule.Filename = name + ".bin"
	}

	return rule
}

// DecodeModeFor はツールのデコードを使うかどうかを決定します。
// 確実にデコードできるビットマップ以外はすべて生データで取り出します。
func DecodeModeFor(typ models.ResourceType) models.DecodeMode {
	switch typ.Kind {
	case models.KindAudio, models.KindTable, models.KindStringTable:
		return models.DecodeRaw
	case models.KindBitmap:
		return models.DecodeDecoded
	default:
		return models.DecodeRaw
	}
}

// AudioBase は音声リソース名から拡張子を取り除いたベース名を返します。
// 最初の "." 以降をすべて取り除きます（"ambient.raw" → "ambient"）。
// 残りが空になる場合（".raw"）は "_" を返します。
func AudioBase(name string) string {
	if i := strings.Index(name, "."); i >= 0 {
		name = name[:i]
	}
	if name == "" {
		return "_"
	}
	return name
}

// sanitize は出力ツリーの外に出ないようにパス区切りを置き換えます
func sanitize(s string) string {
	s = strings.NewReplacer("/", "_", "\\", "_").Replace(s)
	if s == "" || s == "." || s == ".." {
		return "_" + s
	}
	return s
}
