package postprocess

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	xunicode "golang.org/x/text/encoding/unicode"

	"github.com/shiroemons/go-resextract/internal/resextract/config"
	"github.com/shiroemons/go-resextract/internal/resextract/fileutil"
	"github.com/shiroemons/go-resextract/internal/resextract/mocks"
	"github.com/shiroemons/go-resextract/internal/resextract/models"
)

// stringTableBlock は長さ付きUTF-16LE文字列を並べたブロックを作成します
func stringTableBlock(t *testing.T, strs ...string) []byte {
	t.Helper()
	encoder := xunicode.UTF16(xunicode.LittleEndian, xunicode.IgnoreBOM).NewEncoder()

	var block []byte
	for _, s := range strs {
		encoded, err := encoder.Bytes([]byte(s))
		if err != nil {
			t.Fatal(err)
		}
		block = binary.LittleEndian.AppendUint16(block, uint16(len(encoded)/2))
		block = append(block, encoded...)
	}
	return block
}

func TestSkimUTF16LE(t *testing.T) {
	tests := []struct {
		name string
		data func(t *testing.T) []byte
		want string
	}{
		{
			name: "文字列テーブル",
			data: func(t *testing.T) []byte {
				return stringTableBlock(t, "Hello", "", "Hi", "Goodbye", "", "")
			},
			want: "Hello\nGoodbye\n",
		},
		{
			name: "ラテン文字以外は含めない",
			data: func(t *testing.T) []byte {
				return stringTableBlock(t, "Großbritannien", "帝国主義です")
			},
			want: "Großbritannien\n",
		},
		{
			name: "漢字に見えるバイナリ",
			data: func(t *testing.T) []byte {
				// U+4E00 U+4E2D U+4E8B U+4E09 の後に "Army"
				return []byte{
					0x00, 0x4e, 0x2d, 0x4e, 0x8b, 0x4e, 0x09, 0x4e,
					'A', 0, 'r', 0, 'm', 0, 'y', 0,
				}
			},
			want: "Army\n",
		},
		{
			name: "空データ",
			data: func(t *testing.T) []byte { return nil },
			want: "",
		},
		{
			name: "奇数長の末尾",
			data: func(t *testing.T) []byte {
				return append(stringTableBlock(t, "Tail"), 0x41)
			},
			want: "Tail\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SkimUTF16LE(tt.data(t), MinRunLength)
			if err != nil {
				t.Fatalf("SkimUTF16LE failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("SkimUTF16LE() = %q, want %q", got, tt.want)
			}
		})
	}
}

func writeProduced(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPlacer_Place(t *testing.T) {
	tests := []struct {
		name     string
		typ      string
		resName  string
		produced string
		want     string
	}{
		{name: "ビットマップ", typ: "2", resName: "MAPICON", produced: "a.gob_2_MAPICON.bmp", want: "bitmaps/MAPICON.BMP"},
		{name: "音声", typ: "WAVE", resName: "ambient.raw", produced: "a.gob_WAVE_ambient.raw", want: "wav/ambient.wav"},
		{name: "汎用テーブル", typ: "TABLE", resName: "UNITS", produced: "x", want: "tables/UNITS.bin"},
		{name: "未知の種別", typ: "CURSOR", resName: "7", produced: "y", want: "raw/cursor/7.bin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scratch := t.TempDir()
			out := t.TempDir()
			src := writeProduced(t, scratch, tt.produced, []byte("data"))

			placer := NewPlacer(fileutil.NewOSFileSystem(), out, config.NewDebugLogger(false))
			entry := models.CatalogEntry{Type: models.ParseResourceType(tt.typ), Name: tt.resName}

			dst, err := placer.Place(src, entry)
			if err != nil {
				t.Fatalf("Place failed: %v", err)
			}
			if want := filepath.Join(out, filepath.FromSlash(tt.want)); dst != want {
				t.Errorf("Place() = %s, want %s", dst, want)
			}
			if _, err := os.Stat(src); !os.IsNotExist(err) {
				t.Error("Produced file should be moved, not copied")
			}
		})
	}
}

func TestPlacer_Place_Collision(t *testing.T) {
	out := t.TempDir()
	if err := os.MkdirAll(filepath.Join(out, "bitmaps"), 0755); err != nil {
		t.Fatal(err)
	}
	writeProduced(t, filepath.Join(out, "bitmaps"), "ICON.BMP", []byte("old"))

	src := writeProduced(t, t.TempDir(), "ICON.bmp", []byte("new"))
	placer := NewPlacer(fileutil.NewOSFileSystem(), out, config.NewDebugLogger(false))

	dst, err := placer.Place(src, models.CatalogEntry{Type: models.ParseResourceType("2"), Name: "ICON"})
	if err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if want := filepath.Join(out, "bitmaps", "ICON_1.BMP"); dst != want {
		t.Errorf("Place() = %s, want %s", dst, want)
	}
	old, _ := os.ReadFile(filepath.Join(out, "bitmaps", "ICON.BMP"))
	if string(old) != "old" {
		t.Error("Existing file must not be overwritten")
	}
}

func TestPlacer_Place_StringTable(t *testing.T) {
	out := t.TempDir()
	src := writeProduced(t, t.TempDir(), "a.gob_6_100_1033.bin", stringTableBlock(t, "Turn 1", "Trade"))
	placer := NewPlacer(fileutil.NewOSFileSystem(), out, config.NewDebugLogger(false))
	entry := models.CatalogEntry{Type: models.ParseResourceType("6"), Name: "100"}

	dst, err := placer.Place(src, entry)
	if err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if want := filepath.Join(out, "strings", "strtbl-100.bin"); dst != want {
		t.Errorf("Place() = %s, want %s", dst, want)
	}

	txt, err := os.ReadFile(filepath.Join(out, "strings", "strtbl-100.txt"))
	if err != nil {
		t.Fatalf("skim not written: %v", err)
	}
	if string(txt) != "Turn 1\nTrade\n" {
		t.Errorf("Unexpected skim %q", txt)
	}

	readme, err := os.ReadFile(filepath.Join(out, "strings", "README.txt"))
	if err != nil {
		t.Fatalf("README not written: %v", err)
	}
	if string(readme) != StringTableReadme {
		t.Errorf("Unexpected README %q", readme)
	}

	// 2回目は .bin と .txt が一意化され、README は上書きされる
	src = writeProduced(t, t.TempDir(), "again.bin", stringTableBlock(t, "Again"))
	if _, err := placer.Place(src, entry); err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	for _, name := range []string{"strtbl-100_1.bin", "strtbl-100_1.txt"} {
		if _, err := os.Stat(filepath.Join(out, "strings", name)); err != nil {
			t.Errorf("Expected %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "strings", "README_1.txt")); !os.IsNotExist(err) {
		t.Error("README must not be uniquified")
	}
}

// readFailFS はReadFileだけが失敗するファイルシステム
type readFailFS struct {
	*mocks.MockFileSystem
}

func (fs readFailFS) ReadFile(string) ([]byte, error) {
	return nil, errors.New("read error")
}

func TestPlacer_Place_SkimFailureIsSwallowed(t *testing.T) {
	fs := readFailFS{mocks.NewMockFileSystem()}
	fs.Files["/scratch/blob"] = []byte{0x01, 0x02}

	placer := NewPlacer(fs, "/out", config.NewDebugLogger(false))
	dst, err := placer.Place("/scratch/blob", models.CatalogEntry{Type: models.ParseResourceType("6"), Name: "7"})
	if err != nil {
		t.Fatalf("Skim failure must not fail placement: %v", err)
	}
	if dst != filepath.Join("/out", "strings", "strtbl-7.bin") {
		t.Errorf("Unexpected destination %s", dst)
	}
	if _, ok := fs.Files[dst]; !ok {
		t.Error("Binary should be placed")
	}
}

func TestPlacer_Place_MoveFailure(t *testing.T) {
	fs := mocks.NewMockFileSystem()
	placer := NewPlacer(fs, "/out", config.NewDebugLogger(false))

	_, err := placer.Place("/scratch/missing", models.CatalogEntry{Type: models.ParseResourceType("2"), Name: "X"})
	if !errors.Is(err, ErrPlaceFile) {
		t.Errorf("Expected ErrPlaceFile, got %v", err)
	}
}
