package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestWithScratchDir_RemovesOnSuccess(t *testing.T) {
	parent := t.TempDir()
	var path string

	err := WithScratchDir(parent, "test-", func(dir *ScratchDir) error {
		path = dir.Path()
		if err := os.WriteFile(filepath.Join(path, "b.bin"), []byte("b"), 0644); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(path, "a.bin"), []byte("a"), 0644); err != nil {
			return err
		}
		if err := os.Mkdir(filepath.Join(path, "nested"), 0755); err != nil {
			return err
		}

		files, err := dir.Files()
		if err != nil {
			return err
		}
		if len(files) != 2 {
			t.Errorf("Expected 2 files, got %v", files)
		}
		if filepath.Base(files[0]) != "a.bin" {
			t.Errorf("Expected files in name order, got %v", files)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithScratchDir failed: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Scratch directory should be removed, stat err = %v", err)
	}
}

func TestWithScratchDir_RemovesOnError(t *testing.T) {
	parent := t.TempDir()
	wantErr := errors.New("boom")
	var path string

	err := WithScratchDir(parent, "test-", func(dir *ScratchDir) error {
		path = dir.Path()
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Expected %v, got %v", wantErr, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Scratch directory should be removed, stat err = %v", err)
	}
}

func TestWithScratchDir_RemovesOnPanic(t *testing.T) {
	parent := t.TempDir()
	var path string

	func() {
		defer func() {
			if recover() == nil {
				t.Error("Expected panic to propagate")
			}
		}()
		_ = WithScratchDir(parent, "test-", func(dir *ScratchDir) error {
			path = dir.Path()
			panic("boom")
		})
	}()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Scratch directory should be removed, stat err = %v", err)
	}
}

func TestScratchDir_ReleaseTwice(t *testing.T) {
	dir, err := NewScratchDir(t.TempDir(), "test-")
	if err != nil {
		t.Fatal(err)
	}
	if err := dir.Release(); err != nil {
		t.Fatalf("first Release failed: %v", err)
	}
	if err := dir.Release(); err != nil {
		t.Fatalf("second Release failed: %v", err)
	}
}

func TestNewScratchDir_MissingParent(t *testing.T) {
	_, err := NewScratchDir(filepath.Join(t.TempDir(), "missing"), "test-")
	if !errors.Is(err, ErrCreateScratch) {
		t.Errorf("Expected ErrCreateScratch, got %v", err)
	}
}
