package postprocess

import (
	"strings"
	"unicode"
	"unicode/utf8"

	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// MinRunLength は抽出する文字列の最小文字数
const MinRunLength = 4

// SkimUTF16LE はバイナリをUTF-16LEとして読み、印字可能な文字が minLen 文字以上
// 続く部分を1行ずつ取り出します。
// 対象はラテン文字と、数字・記号などの共通文字だけです。
// それ以外の文字（バイナリ部分が漢字に見える場合など）は区切りとして扱います。
func SkimUTF16LE(data []byte, minLen int) (string, error) {
	decoder := xunicode.UTF16(xunicode.LittleEndian, xunicode.IgnoreBOM).NewDecoder()
	decoded, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	var run []rune
	flush := func() {
		if len(run) >= minLen {
			builder.WriteString(string(run))
			builder.WriteByte('\n')
		}
		run = run[:0]
	}

	for len(decoded) > 0 {
		r, size := utf8.DecodeRune(decoded)
		decoded = decoded[size:]
		if isSkimRune(r) {
			run = append(run, r)
			continue
		}
		flush()
	}
	flush()

	return builder.String(), nil
}

func isSkimRune(r rune) bool {
	if r == utf8.RuneError {
		return false
	}
	if r == '\t' {
		return true
	}
	return unicode.IsPrint(r) && unicode.In(r, unicode.Latin, unicode.Common)
}
