package middleware

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ErrPanic is returned in place of a recovered panic.
var ErrPanic = errors.New("internal error")

// Recover middleware
func Recover(logger *zap.Logger) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(cmd *cobra.Command, args []string) (err error) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("PANIC recovered",
						zap.Any("error", rec),
						zap.String("command", cmd.CommandPath()),
						zap.Stack("stack"),
					)
					err = ErrPanic
				}
			}()
			return next(cmd, args)
		}
	}
}
