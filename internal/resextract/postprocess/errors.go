package postprocess

import "errors"

var (
	// ErrPlaceFile は出力ツリーへの配置に失敗した場合のエラー
	ErrPlaceFile = errors.New("出力ツリーへの配置に失敗しました")
)
