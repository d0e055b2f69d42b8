package wire

import (
	"storefront/internal/adaptor"

	"github.com/spf13/cobra"
)

func wireProduct(root *cobra.Command, productHandler *adaptor.ProductHandler, g guards) {
	products := &cobra.Command{
		Use:   "products",
		Short: "Browse and manage the catalog",
	}
	root.AddCommand(products)

	// ==================== PUBLIC COMMANDS ====================
	products.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every product",
		Args:  exactArgs(0),
		RunE:  g.public(productHandler.List),
	})
	products.AddCommand(&cobra.Command{
		Use:   "search [text]",
		Short: "Find products whose name or description contains text",
		Args:  cobra.ArbitraryArgs,
		RunE:  g.public(productHandler.Search),
	})
	products.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one product",
		Args:  exactArgs(1),
		RunE:  g.public(productHandler.Show),
	})

	// ==================== ADMIN COMMANDS ====================
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a product",
		Args:  exactArgs(0),
		RunE:  g.adminOnly(productHandler.Add),
	}
	adaptor.AddProductFlags(add)
	products.AddCommand(add)

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a product; omitted fields keep their value",
		Args:  exactArgs(1),
		RunE:  g.adminOnly(productHandler.Update),
	}
	adaptor.AddProductFlags(update)
	products.AddCommand(update)

	products.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a product",
		Args:  exactArgs(1),
		RunE:  g.adminOnly(productHandler.Delete),
	})
}
