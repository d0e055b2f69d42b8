package wire

import (
	"storefront/internal/adaptor"

	"github.com/spf13/cobra"
)

func wireAuth(root *cobra.Command, authHandler *adaptor.AuthHandler, g guards) {
	// ==================== PUBLIC COMMANDS ====================
	root.AddCommand(&cobra.Command{
		Use:   "register <username> <password>",
		Short: "Create a client account",
		Args:  exactArgs(2),
		RunE:  g.public(authHandler.Register),
	})

	// ==================== PROTECTED COMMANDS ====================
	root.AddCommand(&cobra.Command{
		Use:   "login",
		Short: "Check credentials and print the resolved identity",
		Args:  exactArgs(0),
		RunE:  g.authenticated(authHandler.Login),
	})
	root.AddCommand(&cobra.Command{
		Use:   "whoami",
		Short: "Show the stored account for the given credentials",
		Args:  exactArgs(0),
		RunE:  g.authenticated(authHandler.WhoAmI),
	})
}
