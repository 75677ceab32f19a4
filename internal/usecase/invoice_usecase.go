package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"app/internal/domain/model"
	"app/internal/domain/money"
	"app/internal/domain/stock"
	repo "app/internal/repository"
)

// 削除済み商品の表示名フォールバック
const deletedProductName = "(deleted)"

type IDGenerator interface {
	NewID() string
}

type Clock interface {
	Now() time.Time
}

type InvoiceUsecase struct {
	products repo.ProductStore
	invoices repo.InvoiceStore
	idGen    IDGenerator
	clock    Clock
}

// DI
func NewInvoiceUsecase(products repo.ProductStore, invoices repo.InvoiceStore, idGen IDGenerator, clock Clock) *InvoiceUsecase {
	return &InvoiceUsecase{
		products: products,
		invoices: invoices,
		idGen:    idGen,
		clock:    clock,
	}
}

type LineInput struct {
	ProductID string
	Quantity  int64
}

type CreateInvoiceInput struct {
	ID       string // 空ならIDを採番する
	Customer string
	Lines    []LineInput
}

type ReplaceInvoiceLinesInput struct {
	ID    string
	Lines []LineInput
}

type InvoiceItemOutput struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Amount    string `json:"amount"`
}

type InvoiceOutput struct {
	ID       string              `json:"id"`
	Date     time.Time           `json:"date"`
	Customer string              `json:"customer"`
	Items    []InvoiceItemOutput `json:"items"`
	Subtotal string              `json:"subtotal"`
	Tax      string              `json:"tax"`
	Total    string              `json:"total"`
}

type InvoiceSummaryOutput struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	Customer string    `json:"customer"`
	Total    string    `json:"total"`
}

// CreateInvoice は在庫引当と請求書作成を1つの論理トランザクションとして行う。
// 成功したら両方のコレクションをすぐ保存する。
func (u *InvoiceUsecase) CreateInvoice(ctx context.Context, in CreateInvoiceInput) (InvoiceOutput, error) {
	inv, book, err := u.load(ctx)
	if err != nil {
		return InvoiceOutput{}, err
	}

	lines, err := buildLines(inv, in.Lines)
	if err != nil {
		return InvoiceOutput{}, err
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = u.idGen.NewID()
	}

	f, err := stock.CreateInvoice(inv, book, id, strings.TrimSpace(in.Customer), lines, u.clock.Now())
	if err != nil {
		return InvoiceOutput{}, err
	}

	if err := u.saveBoth(ctx, inv, book); err != nil {
		return InvoiceOutput{}, err
	}
	return toInvoiceOutput(*f, inv), nil
}

// ReplaceInvoiceLines は編集。失敗したら元の引当がそのまま残る
// （解放→引当→失敗時は引き当て直しの補償処理はエンジン側）。
// 弾かれたときは何も保存しない。
func (u *InvoiceUsecase) ReplaceInvoiceLines(ctx context.Context, in ReplaceInvoiceLinesInput) (InvoiceOutput, error) {
	inv, book, err := u.load(ctx)
	if err != nil {
		return InvoiceOutput{}, err
	}

	// 請求書の存在を先に確認する。存在しない請求書に対しては
	// 行の中身が何であれInvoiceNotFoundを返す。
	id := strings.TrimSpace(in.ID)
	if _, ok := book.Find(id); !ok {
		return InvoiceOutput{}, stock.NewInvoiceNotFound(id)
	}

	lines, err := buildLines(inv, in.Lines)
	if err != nil {
		return InvoiceOutput{}, err
	}

	f, err := stock.ReplaceInvoiceLines(inv, book, id, lines)
	if err != nil {
		return InvoiceOutput{}, err
	}

	if err := u.saveBoth(ctx, inv, book); err != nil {
		return InvoiceOutput{}, err
	}
	return toInvoiceOutput(*f, inv), nil
}

func (u *InvoiceUsecase) DeleteInvoice(ctx context.Context, id string) error {
	inv, book, err := u.load(ctx)
	if err != nil {
		return err
	}

	if err := stock.DeleteInvoice(inv, book, strings.TrimSpace(id)); err != nil {
		return err
	}

	return u.saveBoth(ctx, inv, book)
}

func (u *InvoiceUsecase) ListInvoices(ctx context.Context) ([]InvoiceSummaryOutput, error) {
	invoices, err := u.invoices.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load invoices: %w", err)
	}

	outs := make([]InvoiceSummaryOutput, 0, len(invoices))
	for _, f := range invoices {
		outs = append(outs, InvoiceSummaryOutput{
			ID:       f.ID,
			Date:     f.Date,
			Customer: f.Customer,
			Total:    money.Format(f.Total),
		})
	}
	return outs, nil
}

func (u *InvoiceUsecase) GetInvoiceDetail(ctx context.Context, id string) (InvoiceOutput, error) {
	inv, book, err := u.load(ctx)
	if err != nil {
		return InvoiceOutput{}, err
	}

	f, ok := book.Find(strings.TrimSpace(id))
	if !ok {
		return InvoiceOutput{}, stock.NewInvoiceNotFound(id)
	}
	return toInvoiceOutput(*f, inv), nil
}

// 行の組み立て。数量と商品の存在はここで弾く。
// 単価のスナップショットもここで取る。
func buildLines(inv *model.Inventory, ins []LineInput) ([]model.InvoiceLine, error) {
	lines := make([]model.InvoiceLine, 0, len(ins))
	for _, in := range ins {
		l, err := stock.NewLine(inv, strings.TrimSpace(in.ProductID), in.Quantity)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, nil
}

func (u *InvoiceUsecase) load(ctx context.Context) (*model.Inventory, *model.InvoiceBook, error) {
	products, err := u.products.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load products: %w", err)
	}
	invoices, err := u.invoices.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load invoices: %w", err)
	}
	return model.NewInventory(products), model.NewInvoiceBook(invoices), nil
}

// 変更が成立したら即保存。請求書→在庫の順。
func (u *InvoiceUsecase) saveBoth(ctx context.Context, inv *model.Inventory, book *model.InvoiceBook) error {
	if err := u.invoices.Save(ctx, book.Invoices()); err != nil {
		return fmt.Errorf("save invoices: %w", err)
	}
	if err := u.products.Save(ctx, inv.Products()); err != nil {
		return fmt.Errorf("save products: %w", err)
	}
	return nil
}

func toInvoiceOutput(f model.Invoice, inv *model.Inventory) InvoiceOutput {
	items := make([]InvoiceItemOutput, 0, len(f.Lines))
	for _, l := range f.Lines {
		name := deletedProductName
		if p, ok := inv.Get(l.ProductID); ok {
			name = p.Name
		}
		items = append(items, InvoiceItemOutput{
			ProductID: l.ProductID,
			Name:      name,
			Quantity:  l.Quantity,
			UnitPrice: money.Format(l.UnitPrice),
			Amount:    money.Format(l.Amount()),
		})
	}

	return InvoiceOutput{
		ID:       f.ID,
		Date:     f.Date,
		Customer: f.Customer,
		Items:    items,
		Subtotal: money.Format(f.Subtotal),
		Tax:      money.Format(f.Tax),
		Total:    money.Format(f.Total),
	}
}
