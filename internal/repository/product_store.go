package repository

import (
	"context"

	"app/internal/domain/model"
)

// 商品コレクションの永続化（読み込み・全書き換え）だけを約束。
// コアは特定のバックエンドを仮定しない。
type ProductStore interface {
	// 保存先が無いときは空のコレクションを返す。
	// 壊れたレコードは診断ログを残して読み飛ばす（致命エラーにしない）。
	Load(ctx context.Context) ([]model.Product, error)

	// インメモリのコレクション全体で前の状態を上書きする。
	Save(ctx context.Context, products []model.Product) error
}
