// Command rcshop radio-boshqariladigan modellar do'koni boti.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rcshop",
		Short:         "Telegram-магазин радиоуправляемых моделей",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.AddCommand(newServeCmd(), newCatalogCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "rcshop:", err)
		os.Exit(1)
	}
}
