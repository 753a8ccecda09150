// Package errors はカスタムエラータイプを提供します
package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrToolNotFound は外部ツールが見つからない場合のエラー
	ErrToolNotFound = errors.New("外部ツールが見つかりません")

	// ErrNothingProduced は外部ツールがファイルを出力しなかった場合のエラー
	ErrNothingProduced = errors.New("外部ツールがファイルを出力しませんでした")
)

// ToolError は外部ツールの呼び出しに関するエラー
type ToolError struct {
	Op   string // 実行していた操作
	Path string // コンテナのパス
	Err  error  // 元のエラー
}

// Error はエラーメッセージを返します
func (e *ToolError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap は元のエラーを返します
func (e *ToolError) Unwrap() error {
	return e.Err
}

// NewToolError は新しいToolErrorを作成します
func NewToolError(op, path string, err error) *ToolError {
	return &ToolError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// EntryError は1エントリの配置に関するエラー
type EntryError struct {
	Type string // リソース種別
	Name string // リソース名
	Err  error  // 元のエラー
}

// Error はエラーメッセージを返します
func (e *EntryError) Error() string {
	return fmt.Sprintf("%s:%s: %v", e.Type, e.Name, e.Err)
}

// Unwrap は元のエラーを返します
func (e *EntryError) Unwrap() error {
	return e.Err
}

// NewEntryError は新しいEntryErrorを作成します
func NewEntryError(typ, name string, err error) *EntryError {
	return &EntryError{
		Type: typ,
		Name: name,
		Err:  err,
	}
}
