package fileutil

import "errors"

var (
	// ErrCreateDirectory は出力先ディレクトリの作成に失敗した場合のエラー
	ErrCreateDirectory = errors.New("出力先ディレクトリの作成に失敗しました")

	// ErrReadDirectory はディレクトリ内のファイル一覧を取得できない場合のエラー
	ErrReadDirectory = errors.New("ディレクトリ内のファイル一覧を取得できませんでした")

	// ErrCreateScratch は作業ディレクトリの作成に失敗した場合のエラー
	ErrCreateScratch = errors.New("作業ディレクトリの作成に失敗しました")

	// ErrMoveFile はファイルの移動に失敗した場合のエラー
	ErrMoveFile = errors.New("ファイルの移動に失敗しました")

	// ErrCopyFile はファイルのコピーに失敗した場合のエラー
	ErrCopyFile = errors.New("ファイルのコピーに失敗しました")
)
