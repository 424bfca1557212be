package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/yourusername/rc-shop-bot/internal/domain/catalog"
	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
	"github.com/yourusername/rc-shop-bot/internal/infrastructure/parser"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Работа с файлами каталога",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check <file>",
		Short: "Разобрать каталог (.xlsx/.yaml) и вывести сводку",
		Args:  cobra.ExactArgs(1),
		RunE:  runCatalogCheck,
	})
	return cmd
}

func runCatalogCheck(cmd *cobra.Command, args []string) error {
	p := parser.NewCatalogParser(zerolog.Nop())
	c, err := p.ParseCatalog(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if len(c.Products) == 0 {
		return fmt.Errorf("%s: no products found", args[0])
	}
	printCatalogSummary(cmd.OutOrStdout(), c)
	return nil
}

// printCatalogSummary tur bo'yicha sonlar va narx oralig'i
func printCatalogSummary(w io.Writer, c *entity.ProductCatalog) {
	counts := make(map[string]int)
	minPrice, maxPrice := c.Products[0].Price, c.Products[0].Price
	for _, p := range c.Products {
		counts[p.Type]++
		minPrice = min(minPrice, p.Price)
		maxPrice = max(maxPrice, p.Price)
	}

	fmt.Fprintf(w, "source: %s\n", c.Source)
	fmt.Fprintf(w, "products: %d\n", len(c.Products))
	fmt.Fprintf(w, "price range: %d..%d RUB\n", minPrice, maxPrice)
	for _, t := range catalog.Types(c.Products)[1:] {
		fmt.Fprintf(w, "  %s: %d\n", t, counts[t])
	}
}
