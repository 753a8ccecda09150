package mocks

import (
	"fmt"
	"strings"

	"github.com/shiroemons/go-resextract/internal/resextract/models"
)

// RecordingReporter は出力を記録するReporterです
type RecordingReporter struct {
	Progress []string
	Warnings []string
	Skips    []string
}

// Progressf は進捗を記録します
func (r *RecordingReporter) Progressf(format string, a ...any) {
	r.Progress = append(r.Progress, fmt.Sprintf(format, a...))
}

// Warnf は警告を記録します
func (r *RecordingReporter) Warnf(format string, a ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, a...))
}

// Skipf はスキップを記録します
func (r *RecordingReporter) Skipf(entry models.CatalogEntry, err error) {
	r.Skips = append(r.Skips, fmt.Sprintf("%s (%v)", entry, err))
}

// ProgressContains は進捗に substr を含む行があるか確認します
func (r *RecordingReporter) ProgressContains(substr string) bool {
	for _, line := range r.Progress {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}
