// Package models はresextractコマンドで使用するデータモデルを定義します
package models

import (
	"fmt"
	"strings"
)

// ResourceKind はリソース種別の閉じた列挙です
type ResourceKind int

const (
	// KindOther は未知の種別
	KindOther ResourceKind = iota
	// KindBitmap はビットマップ (type=2 / BITMAP)
	KindBitmap
	// KindAudio は音声 (WAVE)
	KindAudio
	// KindStringTable は文字列テーブル (type=6 / STRINGTABLE)
	KindStringTable
	// KindTable は汎用テーブル (TABLE)
	KindTable
)

// String は種別名を返します
func (k ResourceKind) String() string {
	switch k {
	case KindBitmap:
		return "bitmap"
	case KindAudio:
		return "audio"
	case KindStringTable:
		return "stringtable"
	case KindTable:
		return "table"
	default:
		return "other"
	}
}

// ResourceType はカタログに記載されたリソース種別です。
// Raw は一覧に出力されたままの識別子で、外部ツールへの指定にも使用します。
type ResourceType struct {
	Raw  string
	Kind ResourceKind
}

// ParseResourceType は数値・記号どちらの表記でも種別を正規化します
func ParseResourceType(raw string) ResourceType {
	raw = Unquote(raw)
	var kind ResourceKind
	switch strings.ToUpper(raw) {
	case "2", "BITMAP":
		kind = KindBitmap
	case "WAVE":
		kind = KindAudio
	case "6", "STRINGTABLE":
		kind = KindStringTable
	case "TABLE":
		kind = KindTable
	default:
		kind = KindOther
	}
	return ResourceType{Raw: raw, Kind: kind}
}

// String は元の識別子を返します
func (t ResourceType) String() string {
	return t.Raw
}

// Unquote は一覧の 'xxx' / "xxx" 形式の引用符を取り除きます
func Unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// CatalogEntry はコンテナの一覧から読み取った1リソースの記述子です
type CatalogEntry struct {
	Type       ResourceType
	Name       string
	LanguageID string
}

// String は type:name 形式の表記を返します
func (e CatalogEntry) String() string {
	return fmt.Sprintf("%s:%s", e.Type.Raw, e.Name)
}

// DecodeMode は外部ツールのデコード指定です
type DecodeMode int

const (
	// DecodeRaw はツールのデコードを使わずに生データを取り出します
	DecodeRaw DecodeMode = iota
	// DecodeDecoded はツールのデコードを使用します
	DecodeDecoded
)

// String はモード名を返します
func (m DecodeMode) String() string {
	if m == DecodeDecoded {
		return "decoded"
	}
	return "raw"
}

// PlacementRule は出力先フォルダとファイル名、デコード指定の組です
type PlacementRule struct {
	Folder   string // 出力ルートからの相対パス（"/" 区切り）
	Filename string
	Mode     DecodeMode
}

// ExtractRequest は外部ツールの抽出呼び出し1回分の指定です
type ExtractRequest struct {
	Container string
	Type      ResourceType
	Name      string // 空の場合は種別単位の一括抽出
	Raw       bool
	OutDir    string
}

// ContainerResult は1コンテナの処理結果の集計です
type ContainerResult struct {
	Container    string
	Entries      int
	BatchPlaced  int
	SinglePlaced int
	Skipped      int
}

// Placed は配置できたエントリ数を返します
func (r ContainerResult) Placed() int {
	return r.BatchPlaced + r.SinglePlaced
}

// Summary は実行全体の集計です
type Summary struct {
	Containers []ContainerResult
	Fonts      int
}
