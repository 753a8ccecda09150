package wrestool

import "errors"

var (
	// ErrToolFailed は外部ツールを起動できなかった場合のエラー
	ErrToolFailed = errors.New("外部ツールの実行に失敗しました")
)
