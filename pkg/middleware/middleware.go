package middleware

import "github.com/spf13/cobra"

// HandlerFunc matches cobra's RunE.
type HandlerFunc func(cmd *cobra.Command, args []string) error

type Middleware func(next HandlerFunc) HandlerFunc

// Chain wraps h so that mws[0] runs first.
func Chain(h HandlerFunc, mws ...Middleware) HandlerFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
