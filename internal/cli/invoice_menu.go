package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"app/internal/usecase"
)

func (c *CLI) runInvoiceMenu(ctx context.Context) bool {
	for {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "--- Invoices ---")
		fmt.Fprintln(c.out, "1) List invoices")
		fmt.Fprintln(c.out, "2) Invoice detail")
		fmt.Fprintln(c.out, "3) Create invoice")
		fmt.Fprintln(c.out, "4) Edit invoice lines")
		fmt.Fprintln(c.out, "5) Delete invoice")
		fmt.Fprintln(c.out, "0) Back")

		choice, ok := c.prompt("> ")
		if !ok {
			return false
		}

		switch choice {
		case "1":
			c.listInvoices(ctx)
		case "2":
			if !c.invoiceDetail(ctx) {
				return false
			}
		case "3":
			if !c.createInvoice(ctx) {
				return false
			}
		case "4":
			if !c.editInvoice(ctx) {
				return false
			}
		case "5":
			if !c.deleteInvoice(ctx) {
				return false
			}
		case "0":
			return true
		default:
			fmt.Fprintln(c.out, "invalid option")
		}
	}
}

func (c *CLI) listInvoices(ctx context.Context) {
	invoices, err := c.invoices.ListInvoices(ctx)
	if err != nil {
		c.printErr(err)
		return
	}
	if len(invoices) == 0 {
		fmt.Fprintln(c.out, "no invoices")
		return
	}

	fmt.Fprintf(c.out, "%-10s %-20s %-25s %12s\n", "ID", "Date", "Customer", "Total")
	for _, f := range invoices {
		fmt.Fprintf(c.out, "%-10s %-20s %-25s %12s\n", f.ID, f.Date.Format("2006-01-02 15:04:05"), f.Customer, f.Total)
	}
}

func (c *CLI) invoiceDetail(ctx context.Context) bool {
	id, ok := c.promptNonEmpty("invoice ID: ")
	if !ok {
		return false
	}

	f, err := c.invoices.GetInvoiceDetail(ctx, id)
	if err != nil {
		c.printErr(err)
		return true
	}
	c.printInvoice(f)
	return true
}

func (c *CLI) createInvoice(ctx context.Context) bool {
	id, ok := c.prompt("invoice ID (ENTER to auto-generate): ")
	if !ok {
		return false
	}
	customer, ok := c.promptNonEmpty("customer name: ")
	if !ok {
		return false
	}

	lines, ok := c.readLines(ctx)
	if !ok {
		return false
	}

	f, err := c.invoices.CreateInvoice(ctx, usecase.CreateInvoiceInput{
		ID:       id,
		Customer: customer,
		Lines:    lines,
	})
	if err != nil {
		c.printErr(err)
		return true
	}

	fmt.Fprintln(c.out, "invoice created")
	c.printInvoice(f)
	return true
}

func (c *CLI) editInvoice(ctx context.Context) bool {
	id, ok := c.promptNonEmpty("invoice ID to edit: ")
	if !ok {
		return false
	}

	fmt.Fprintln(c.out, "entering new lines (ENTER with no lines cancels the edit)")
	lines, ok := c.readLines(ctx)
	if !ok {
		return false
	}

	f, err := c.invoices.ReplaceInvoiceLines(ctx, usecase.ReplaceInvoiceLinesInput{
		ID:    id,
		Lines: lines,
	})
	if err != nil {
		c.printErr(err)
		return true
	}

	fmt.Fprintln(c.out, "invoice updated")
	c.printInvoice(f)
	return true
}

func (c *CLI) deleteInvoice(ctx context.Context) bool {
	id, ok := c.promptNonEmpty("invoice ID to delete: ")
	if !ok {
		return false
	}

	if err := c.invoices.DeleteInvoice(ctx, id); err != nil {
		c.printErr(err)
		return true
	}
	fmt.Fprintln(c.out, "invoice deleted (stock released)")
	return true
}

// 行入力ループ。商品IDが空になるまで繰り返す。
// 存在チェックと数量チェックはここで軽く弾いて再入力させる
// （最終判断はコア側）。
func (c *CLI) readLines(ctx context.Context) ([]usecase.LineInput, bool) {
	var lines []usecase.LineInput
	for {
		pid, ok := c.prompt("product ID (ENTER to finish): ")
		if !ok {
			return nil, false
		}
		if pid == "" {
			return lines, true
		}

		if _, err := c.inventory.GetProduct(ctx, pid); err != nil {
			c.printErr(err)
			continue
		}

		qtyStr, ok := c.promptNonEmpty("quantity: ")
		if !ok {
			return nil, false
		}
		qty, err := strconv.ParseInt(qtyStr, 10, 64)
		if err != nil || qty <= 0 {
			fmt.Fprintln(c.out, "invalid quantity")
			continue
		}

		lines = append(lines, usecase.LineInput{ProductID: pid, Quantity: qty})
	}
}

func (c *CLI) printInvoice(f usecase.InvoiceOutput) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "--- INVOICE ---")
	fmt.Fprintf(c.out, "ID: %s | Date: %s | Customer: %s\n", f.ID, f.Date.Format("2006-01-02 15:04:05"), f.Customer)
	fmt.Fprintf(c.out, "%-10s %-25s %5s %10s %12s\n", "ProdID", "Name", "Qty", "Unit", "Amount")
	for _, it := range f.Items {
		fmt.Fprintf(c.out, "%-10s %-25s %5d %10s %12s\n", it.ProductID, it.Name, it.Quantity, it.UnitPrice, it.Amount)
	}
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "Subtotal: %s\n", f.Subtotal)
	fmt.Fprintf(c.out, "Tax 19%%:  %s\n", f.Tax)
	fmt.Fprintf(c.out, "Total:    %s\n", f.Total)
	fmt.Fprintln(c.out, strings.Repeat("-", 15))
}
