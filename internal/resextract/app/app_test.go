package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shiroemons/go-resextract/internal/resextract/config"
	"github.com/shiroemons/go-resextract/internal/resextract/mocks"
)

const listing = `--type=2 --name='MAPICON' --language=1033 [offset=0x1000 size=1024]
--type='WAVE' --name='ambient.raw' --language=0 [offset=0x2000 size=4096]
--type=6 --name=100 --language=1033 [offset=0x3000 size=64]
--type=TABLE --name=UNITS --language=1033
`

type testEnv struct {
	in       string
	out      string
	scratch  string
	tool     *mocks.MockTool
	reporter *mocks.RecordingReporter
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		in:       t.TempDir(),
		out:      filepath.Join(t.TempDir(), "extracted"),
		scratch:  t.TempDir(),
		tool:     mocks.NewMockTool(),
		reporter: &mocks.RecordingReporter{},
	}

	files := map[string]string{
		"data.gob":     "gob",
		"EMPTY.GOB":    "gob",
		"Imperial.TTF": "font",
		"notes.txt":    "ignored",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(env.in, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	data := filepath.Join(env.in, "data.gob")
	env.tool.Listings[data] = listing
	env.tool.Listings[filepath.Join(env.in, "EMPTY.GOB")] = "wrestool: no resources\n"
	env.tool.Resources[data] = []mocks.MockResource{
		{Type: "2", Name: "MAPICON", FileName: "data.gob_2_MAPICON.bmp", Data: []byte("BM")},
		{Type: "WAVE", Name: "ambient.raw", FileName: "data.gob_WAVE_ambient.raw", Data: []byte("RIFF")},
		{Type: "6", Name: "100", FileName: "data.gob_6_100_1033.bin", Data: []byte{'A', 0, 'B', 0, 'C', 0, 'D', 0}},
		{Type: "TABLE", Name: "UNITS", FileName: "data.gob_TABLE_UNITS", Data: []byte{1, 2, 3}},
	}
	return env
}

func (env *testEnv) app(cfg *config.Config) *App {
	cfg.InputDir = env.in
	cfg.OutputDir = env.out
	if cfg.ContainerExt == "" {
		cfg.ContainerExt = ".gob"
	}
	return NewWithOptions(cfg, Options{
		Tool:          env.tool,
		Reporter:      env.reporter,
		ScratchParent: env.scratch,
	})
}

func TestApp_Run(t *testing.T) {
	env := newTestEnv(t)

	summary, err := env.app(&config.Config{RunID: "run"}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(summary.Containers) != 2 {
		t.Fatalf("Expected 2 containers, got %d", len(summary.Containers))
	}
	// 名前順: EMPTY.GOB, data.gob
	if summary.Containers[0].Entries != 0 {
		t.Errorf("Expected empty container first, got %+v", summary.Containers[0])
	}
	data := summary.Containers[1]
	if data.Entries != 4 || data.Placed() != 4 || data.Skipped != 0 {
		t.Errorf("Unexpected result for data.gob: %+v", data)
	}
	if summary.Fonts != 1 {
		t.Errorf("Expected 1 font, got %d", summary.Fonts)
	}

	for _, rel := range []string{
		"bitmaps/MAPICON.BMP",
		"wav/ambient.wav",
		"strings/strtbl-100.bin",
		"strings/strtbl-100.txt",
		"strings/README.txt",
		"tables/UNITS.bin",
		"fonts/Imperial.TTF",
	} {
		if _, err := os.Stat(filepath.Join(env.out, filepath.FromSlash(rel))); err != nil {
			t.Errorf("Expected %s: %v", rel, err)
		}
	}

	txt, err := os.ReadFile(filepath.Join(env.out, "strings", "strtbl-100.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(txt)) != "ABCD" {
		t.Errorf("Expected skimmed text ABCD, got %q", txt)
	}

	for _, want := range []string{
		"[*] Scanning containers in: " + env.in,
		"  → data.gob",
		"  → EMPTY.GOB",
		"    (no listable resources)",
		"font: Imperial.TTF",
		"[✓] Done → " + env.out,
	} {
		if !env.reporter.ProgressContains(want) {
			t.Errorf("Expected progress line %q in %v", want, env.reporter.Progress)
		}
	}
	if last := env.reporter.Progress[len(env.reporter.Progress)-1]; !strings.HasPrefix(last, "[✓] Done") {
		t.Errorf("Expected completion line last, got %q", last)
	}

	// 作業ディレクトリは実行IDを含む名前で作られ、すべて削除される
	for _, req := range env.tool.ExtractCalls {
		if !strings.HasPrefix(filepath.Base(req.OutDir), "resextract-run-") {
			t.Errorf("Unexpected scratch directory %s", req.OutDir)
		}
	}
	left, _ := os.ReadDir(env.scratch)
	if len(left) != 0 {
		t.Errorf("Expected no scratch directories left, got %d", len(left))
	}
}

func TestApp_Run_SecondRunDoesNotOverwrite(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 2; i++ {
		if _, err := env.app(&config.Config{}).Run(context.Background()); err != nil {
			t.Fatalf("Run %d failed: %v", i, err)
		}
	}

	for _, rel := range []string{
		"bitmaps/MAPICON_1.BMP",
		"wav/ambient_1.wav",
		"strings/strtbl-100_1.bin",
		"strings/strtbl-100_1.txt",
	} {
		if _, err := os.Stat(filepath.Join(env.out, filepath.FromSlash(rel))); err != nil {
			t.Errorf("Expected %s: %v", rel, err)
		}
	}
	// README とフォントは上書き
	if _, err := os.Stat(filepath.Join(env.out, "strings", "README_1.txt")); err == nil {
		t.Error("README.txt must not be uniquified")
	}
	if _, err := os.Stat(filepath.Join(env.out, "fonts", "Imperial_1.TTF")); err == nil {
		t.Error("fonts must not be uniquified")
	}
}

func TestApp_Run_NoBatch(t *testing.T) {
	env := newTestEnv(t)

	summary, err := env.app(&config.Config{NoBatch: true}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if env.tool.BulkCalls() != 0 {
		t.Errorf("Expected no bulk calls, got %d", env.tool.BulkCalls())
	}
	if got := summary.Containers[1].SinglePlaced; got != 4 {
		t.Errorf("Expected 4 single placed, got %d", got)
	}
}

func TestApp_Run_DryRun(t *testing.T) {
	env := newTestEnv(t)

	summary, err := env.app(&config.Config{DryRun: true}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(env.tool.ExtractCalls) != 0 {
		t.Errorf("Dry run must not extract, got %d calls", len(env.tool.ExtractCalls))
	}
	if _, err := os.Stat(env.out); !os.IsNotExist(err) {
		t.Errorf("Dry run must not create the output directory: %v", err)
	}
	if summary.Fonts != 0 {
		t.Errorf("Dry run must not copy fonts, got %d", summary.Fonts)
	}

	for _, want := range []string{
		"    2:MAPICON → bitmaps/MAPICON.BMP (decoded)",
		"    WAVE:ambient.raw → wav/ambient.wav (raw)",
		"    6:100 → strings/strtbl-100.bin (raw)",
		"    TABLE:UNITS → tables/UNITS.bin (raw)",
	} {
		if !env.reporter.ProgressContains(want) {
			t.Errorf("Expected plan line %q in %v", want, env.reporter.Progress)
		}
	}
}

func TestApp_Run_ListFailureContinues(t *testing.T) {
	env := newTestEnv(t)
	env.tool.ListError = errors.New("cannot open")

	summary, err := env.app(&config.Config{}).Run(context.Background())
	if err != nil {
		t.Fatalf("List failures must not abort the run: %v", err)
	}

	if len(env.reporter.Warnings) != 2 {
		t.Errorf("Expected one warning per container, got %v", env.reporter.Warnings)
	}
	if len(summary.Containers) != 2 {
		t.Errorf("Expected both containers to be visited, got %d", len(summary.Containers))
	}
	if !env.reporter.ProgressContains("[✓] Done") {
		t.Error("Expected completion line")
	}
}

func TestApp_Run_InputDirError(t *testing.T) {
	fs := mocks.NewMockFileSystem()
	cfg := &config.Config{InputDir: "/missing", OutputDir: "/out", ContainerExt: ".gob"}

	_, err := NewWithOptions(cfg, Options{
		FileSystem: fs,
		Tool:       mocks.NewMockTool(),
		Reporter:   &mocks.RecordingReporter{},
	}).Run(context.Background())
	if !errors.Is(err, ErrScanInput) {
		t.Errorf("Expected ErrScanInput, got %v", err)
	}
}

func TestScratchPrefix(t *testing.T) {
	if got := scratchPrefix(""); got != "resextract-" {
		t.Errorf("Expected resextract-, got %s", got)
	}
	if got := scratchPrefix("abc"); got != "resextract-abc-" {
		t.Errorf("Expected resextract-abc-, got %s", got)
	}
}
