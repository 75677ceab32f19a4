package stock

import (
	"errors"
	"fmt"
)

// RejectionKind は操作を弾いた理由の種別。
type RejectionKind string

const (
	KindUnknownProduct     RejectionKind = "UNKNOWN_PRODUCT"
	KindInsufficientStock  RejectionKind = "INSUFFICIENT_STOCK"
	KindDuplicateProduct   RejectionKind = "DUPLICATE_PRODUCT"
	KindDuplicateInvoiceID RejectionKind = "DUPLICATE_INVOICE_ID"
	KindInvoiceNotFound    RejectionKind = "INVOICE_NOT_FOUND"
	KindEmptyInvoice       RejectionKind = "EMPTY_INVOICE"
	KindInvalidQuantity    RejectionKind = "INVALID_QUANTITY"
	KindInvalidPrice       RejectionKind = "INVALID_PRICE"
	KindInvalidStock       RejectionKind = "INVALID_STOCK"
)

// Rejection は回復可能な業務エラー。
// 返したときコレクションは呼び出し前のまま（部分適用なし）。
type Rejection struct {
	Kind      RejectionKind
	Message   string
	ProductID string
	Available int64
	Required  int64
}

func (r *Rejection) Error() string {
	return r.Message
}

func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	ok := errors.As(err, &r)
	return r, ok
}

func NewUnknownProduct(productID string) error {
	return &Rejection{
		Kind:      KindUnknownProduct,
		Message:   fmt.Sprintf("product %q does not exist", productID),
		ProductID: productID,
	}
}

func NewInsufficientStock(productID string, available int64, required int64) error {
	return &Rejection{
		Kind:      KindInsufficientStock,
		Message:   fmt.Sprintf("insufficient stock for product %q: available %d, required %d", productID, available, required),
		ProductID: productID,
		Available: available,
		Required:  required,
	}
}

func NewDuplicateProduct(productID string) error {
	return &Rejection{
		Kind:      KindDuplicateProduct,
		Message:   fmt.Sprintf("product %q already exists", productID),
		ProductID: productID,
	}
}

func NewDuplicateInvoiceID(invoiceID string) error {
	return &Rejection{
		Kind:    KindDuplicateInvoiceID,
		Message: fmt.Sprintf("invoice %q already exists", invoiceID),
	}
}

func NewInvoiceNotFound(invoiceID string) error {
	return &Rejection{
		Kind:    KindInvoiceNotFound,
		Message: fmt.Sprintf("invoice %q not found", invoiceID),
	}
}

func NewEmptyInvoice() error {
	return &Rejection{
		Kind:    KindEmptyInvoice,
		Message: "invoice has no lines",
	}
}

func NewInvalidQuantity(value string) error {
	return &Rejection{
		Kind:    KindInvalidQuantity,
		Message: fmt.Sprintf("invalid quantity %q: must be a positive integer", value),
	}
}

func NewInvalidPrice(value string) error {
	return &Rejection{
		Kind:    KindInvalidPrice,
		Message: fmt.Sprintf("invalid price %q: must be a non-negative amount", value),
	}
}

func NewInvalidStock(value string) error {
	return &Rejection{
		Kind:    KindInvalidStock,
		Message: fmt.Sprintf("invalid stock %q: must be a non-negative integer", value),
	}
}
