package mocks

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/shiroemons/go-resextract/internal/resextract/models"
)

// MockResource はMockToolが保持するコンテナ内の1リソース
type MockResource struct {
	Type     string
	Name     string
	FileName string // ツールが出力するファイル名
	Data     []byte // nil の場合は抽出できないリソースとして扱う
}

// MockTool はResourceToolのモック実装です。
// Extract は実際に req.OutDir へファイルを書き出します。
type MockTool struct {
	Listings     map[string]string
	Resources    map[string][]MockResource
	ListError    error
	ExtractError error
	ListCalls    []string
	ExtractCalls []models.ExtractRequest
}

// NewMockTool は新しいMockToolを作成します
func NewMockTool() *MockTool {
	return &MockTool{
		Listings:  make(map[string]string),
		Resources: make(map[string][]MockResource),
	}
}

// List はモック実装です
func (m *MockTool) List(ctx context.Context, container string) (string, error) {
	m.ListCalls = append(m.ListCalls, container)
	if m.ListError != nil {
		return "", m.ListError
	}
	return m.Listings[container], nil
}

// Extract はモック実装です
func (m *MockTool) Extract(ctx context.Context, req models.ExtractRequest) error {
	m.ExtractCalls = append(m.ExtractCalls, req)
	if m.ExtractError != nil {
		return m.ExtractError
	}

	for _, res := range m.Resources[req.Container] {
		if !strings.EqualFold(res.Type, req.Type.Raw) {
			continue
		}
		if req.Name != "" && res.Name != req.Name {
			continue
		}
		if res.Data == nil {
			continue
		}
		if err := os.WriteFile(filepath.Join(req.OutDir, res.FileName), res.Data, 0644); err != nil {
			return err
		}
	}
	return nil
}

// BulkCalls は一括抽出の呼び出し回数を返します
func (m *MockTool) BulkCalls() int {
	n := 0
	for _, req := range m.ExtractCalls {
		if req.Name == "" {
			n++
		}
	}
	return n
}

// SingleCalls は単体抽出の呼び出し回数を返します
func (m *MockTool) SingleCalls() int {
	return len(m.ExtractCalls) - m.BulkCalls()
}
