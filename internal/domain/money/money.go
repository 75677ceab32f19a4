package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// 税率（単一税率、19%）
var TaxRate = decimal.NewFromFloat(0.19)

// Round2 は金額を小数2桁に丸める。
// 丸めは四捨五入（halfは0から遠い方へ）。2桁の値に適用しても変わらない。
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Parse は金額文字列をdecimalに変換して2桁に丸める。
func Parse(value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, errors.New("empty amount")
	}

	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, err
	}

	return Round2(d), nil
}

// Format は常に2桁固定のテキスト表現を返す（保存・表示用）。
func Format(d decimal.Decimal) string {
	return Round2(d).StringFixed(2)
}
