package mocks

import "context"

// MockRunner は外部コマンド実行のモックです
type MockRunner struct {
	Stdout []byte
	Stderr []byte
	Error  error
	Calls  [][]string // 先頭要素がコマンド名
}

// Run はモック実装です
func (m *MockRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	m.Calls = append(m.Calls, append([]string{name}, args...))
	return m.Stdout, m.Stderr, m.Error
}

// LastArgs は直近の呼び出しの引数を返します
func (m *MockRunner) LastArgs() []string {
	if len(m.Calls) == 0 {
		return nil
	}
	return m.Calls[len(m.Calls)-1][1:]
}
