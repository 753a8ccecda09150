package catalog

import "errors"

var (
	// ErrScanListing は一覧出力の読み取りに失敗した場合のエラー
	ErrScanListing = errors.New("一覧出力の読み取りに失敗しました")

	// ErrListContainer はコンテナの一覧取得に失敗した場合のエラー
	ErrListContainer = errors.New("コンテナの一覧取得に失敗しました")
)
