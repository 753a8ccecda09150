package app

import "errors"

var (
	// ErrScanInput は入力ディレクトリの走査に失敗した場合のエラー
	ErrScanInput = errors.New("入力ディレクトリの走査に失敗しました")

	// ErrCreateOutput は出力ディレクトリの作成に失敗した場合のエラー
	ErrCreateOutput = errors.New("出力ディレクトリの作成に失敗しました")
)
