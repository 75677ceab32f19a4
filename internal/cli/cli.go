// Package cli は対話メニュー層。
// プロンプトと表示だけを担当し、業務ルールは一切持たない。
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"app/internal/domain/stock"
	"app/internal/usecase"
)

type CLI struct {
	inventory *usecase.InventoryUsecase
	invoices  *usecase.InvoiceUsecase
	in        *bufio.Scanner
	out       io.Writer
}

// DI
func New(inventory *usecase.InventoryUsecase, invoices *usecase.InvoiceUsecase, in io.Reader, out io.Writer) *CLI {
	return &CLI{
		inventory: inventory,
		invoices:  invoices,
		in:        bufio.NewScanner(in),
		out:       out,
	}
}

func (c *CLI) Run(ctx context.Context) error {
	for {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "=== Inventory & Invoicing ===")
		fmt.Fprintln(c.out, "1) Inventory")
		fmt.Fprintln(c.out, "2) Invoices")
		fmt.Fprintln(c.out, "0) Exit")

		choice, ok := c.prompt("> ")
		if !ok {
			return nil
		}

		switch choice {
		case "1":
			if !c.runInventoryMenu(ctx) {
				return nil
			}
		case "2":
			if !c.runInvoiceMenu(ctx) {
				return nil
			}
		case "0":
			return nil
		default:
			fmt.Fprintln(c.out, "invalid option")
		}
	}
}

// promptは1行読む。入力が尽きたらfalse。
func (c *CLI) prompt(msg string) (string, bool) {
	fmt.Fprint(c.out, msg)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

// 空入力を許さないプロンプト
func (c *CLI) promptNonEmpty(msg string) (string, bool) {
	for {
		s, ok := c.prompt(msg)
		if !ok {
			return "", false
		}
		if s != "" {
			return s, true
		}
		fmt.Fprintln(c.out, "input is empty, try again")
	}
}

func (c *CLI) printErr(err error) {
	if r, ok := stock.AsRejection(err); ok {
		fmt.Fprintln(c.out, r.Message)
		return
	}
	fmt.Fprintf(c.out, "error: %v\n", err)
}
