package usecase

import "errors"

// リクエスト検証エラー。ハンドラーはこれらを400に変換します。
var (
	// ErrInvalidInterval は未対応の時間足が指定された場合のエラーです。
	ErrInvalidInterval = errors.New("invalid interval")
	// ErrInvalidDate は日付が YYYY-MM-DD 形式でない場合のエラーです。
	ErrInvalidDate = errors.New("invalid date format")
	// ErrNoSymbols は一括取得で銘柄が1つも指定されていない場合のエラーです。
	ErrNoSymbols = errors.New("no symbols provided")
)

// IsValidationError はerrがリクエスト検証エラーかどうかを返します。
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInterval) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrNoSymbols)
}
