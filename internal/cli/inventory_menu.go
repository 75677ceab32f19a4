package cli

import (
	"context"
	"fmt"
	"strings"

	"app/internal/usecase"
)

// 戻り値は「続行するか」。入力が尽きたらfalse。
func (c *CLI) runInventoryMenu(ctx context.Context) bool {
	for {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "--- Inventory ---")
		fmt.Fprintln(c.out, "1) List products")
		fmt.Fprintln(c.out, "2) Search")
		fmt.Fprintln(c.out, "3) Add product")
		fmt.Fprintln(c.out, "4) Update product")
		fmt.Fprintln(c.out, "5) Delete product")
		fmt.Fprintln(c.out, "0) Back")

		choice, ok := c.prompt("> ")
		if !ok {
			return false
		}

		switch choice {
		case "1":
			c.listProducts(ctx)
		case "2":
			if !c.searchProducts(ctx) {
				return false
			}
		case "3":
			if !c.addProduct(ctx) {
				return false
			}
		case "4":
			if !c.updateProduct(ctx) {
				return false
			}
		case "5":
			if !c.deleteProduct(ctx) {
				return false
			}
		case "0":
			return true
		default:
			fmt.Fprintln(c.out, "invalid option")
		}
	}
}

func (c *CLI) listProducts(ctx context.Context) {
	products, err := c.inventory.ListProducts(ctx)
	if err != nil {
		c.printErr(err)
		return
	}
	if len(products) == 0 {
		fmt.Fprintln(c.out, "no products in inventory")
		return
	}

	fmt.Fprintf(c.out, "%-10s %-25s %10s %8s\n", "ID", "Name", "Price", "Stock")
	for _, p := range products {
		fmt.Fprintf(c.out, "%-10s %-25s %10s %8d\n", p.ID, p.Name, p.Price, p.Stock)
	}
}

func (c *CLI) searchProducts(ctx context.Context) bool {
	query, ok := c.promptNonEmpty("search by ID or name contains: ")
	if !ok {
		return false
	}

	products, err := c.inventory.SearchProducts(ctx, query)
	if err != nil {
		c.printErr(err)
		return true
	}
	if len(products) == 0 {
		fmt.Fprintln(c.out, "no matches")
		return true
	}

	for _, p := range products {
		fmt.Fprintf(c.out, "- %s | %s | $%s | stock: %d\n", p.ID, p.Name, p.Price, p.Stock)
	}
	return true
}

func (c *CLI) addProduct(ctx context.Context) bool {
	id, ok := c.promptNonEmpty("product ID (unique): ")
	if !ok {
		return false
	}
	name, ok := c.promptNonEmpty("name: ")
	if !ok {
		return false
	}
	price, ok := c.promptNonEmpty("price (e.g. 19999.99): ")
	if !ok {
		return false
	}
	stockStr, ok := c.promptNonEmpty("stock (integer >= 0): ")
	if !ok {
		return false
	}

	_, err := c.inventory.AddProduct(ctx, usecase.AddProductInput{
		ID:    id,
		Name:  name,
		Price: price,
		Stock: stockStr,
	})
	if err != nil {
		c.printErr(err)
		return true
	}

	fmt.Fprintln(c.out, "product added")
	return true
}

func (c *CLI) updateProduct(ctx context.Context) bool {
	id, ok := c.promptNonEmpty("product ID to update: ")
	if !ok {
		return false
	}

	p, err := c.inventory.GetProduct(ctx, id)
	if err != nil {
		c.printErr(err)
		return true
	}
	fmt.Fprintf(c.out, "current: %s | %s | $%s | stock %d\n", p.ID, p.Name, p.Price, p.Stock)

	fmt.Fprintln(c.out, "what do you want to update?")
	fmt.Fprintln(c.out, "1) Price")
	fmt.Fprintln(c.out, "2) Stock")

	choice, ok := c.promptNonEmpty("> ")
	if !ok {
		return false
	}

	switch choice {
	case "1":
		price, ok := c.promptNonEmpty("new price: ")
		if !ok {
			return false
		}
		if err := c.inventory.UpdatePrice(ctx, id, price); err != nil {
			c.printErr(err)
			return true
		}
		fmt.Fprintln(c.out, "price updated")
	case "2":
		stockStr, ok := c.promptNonEmpty("new stock: ")
		if !ok {
			return false
		}
		if err := c.inventory.UpdateStock(ctx, id, stockStr); err != nil {
			c.printErr(err)
			return true
		}
		fmt.Fprintln(c.out, "stock updated")
	default:
		fmt.Fprintln(c.out, "invalid option")
	}
	return true
}

func (c *CLI) deleteProduct(ctx context.Context) bool {
	id, ok := c.promptNonEmpty("product ID to delete: ")
	if !ok {
		return false
	}

	p, err := c.inventory.GetProduct(ctx, id)
	if err != nil {
		c.printErr(err)
		return true
	}

	confirm, ok := c.promptNonEmpty(fmt.Sprintf("delete %q? (y/n): ", p.Name))
	if !ok {
		return false
	}
	if strings.ToLower(confirm) != "y" {
		fmt.Fprintln(c.out, "canceled")
		return true
	}

	if err := c.inventory.DeleteProduct(ctx, id); err != nil {
		c.printErr(err)
		return true
	}
	fmt.Fprintln(c.out, "product deleted")
	return true
}
