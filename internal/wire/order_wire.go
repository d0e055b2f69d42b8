package wire

import (
	"storefront/internal/adaptor"

	"github.com/spf13/cobra"
)

func wireOrder(root *cobra.Command, orderHandler *adaptor.OrderHandler, g guards) {
	orders := &cobra.Command{
		Use:   "orders",
		Short: "Place and manage orders",
	}
	root.AddCommand(orders)

	// ==================== CLIENT COMMANDS ====================
	orders.AddCommand(&cobra.Command{
		Use:   "place <product-id> <quantity>",
		Short: "Order a quantity of a product",
		Args:  exactArgs(2),
		RunE:  g.clientOnly(orderHandler.Place),
	})

	// ==================== PROTECTED COMMANDS ====================
	orders.AddCommand(&cobra.Command{
		Use:   "mine",
		Short: "List your orders",
		Args:  exactArgs(0),
		RunE:  g.authenticated(orderHandler.Mine),
	})
	orders.AddCommand(&cobra.Command{
		Use:   "cancel <order-id>",
		Short: "Cancel an order and restore its stock",
		Args:  exactArgs(1),
		RunE:  g.authenticated(orderHandler.Cancel),
	})

	// ==================== ADMIN COMMANDS ====================
	orders.AddCommand(&cobra.Command{
		Use:   "all",
		Short: "List every order",
		Args:  exactArgs(0),
		RunE:  g.adminOnly(orderHandler.All),
	})
}
