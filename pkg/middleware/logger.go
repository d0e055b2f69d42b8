package middleware

import (
	"time"

	"storefront/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Logger tags the invocation with a request id and logs its outcome.
func Logger(logger *zap.Logger) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(cmd *cobra.Command, args []string) error {
			start := time.Now()

			requestID := utils.GenerateRequestID()
			cmd.SetContext(utils.SetRequestIDContext(cmd.Context(), requestID))

			err := next(cmd, args)

			fields := []zap.Field{
				zap.String("request_id", requestID),
				zap.String("command", cmd.CommandPath()),
				zap.Int("args", len(args)),
				zap.Duration("duration", time.Since(start)),
			}
			if identity, ok := utils.GetIdentityFromContext(cmd.Context()); ok {
				fields = append(fields,
					zap.Int64("user_id", identity.ID),
					zap.Stringer("role", identity.Role))
			}

			if err != nil {
				logger.Info("Command failed", append(fields, zap.Error(err))...)
				return err
			}

			logger.Info("Command completed", fields...)
			return nil
		}
	}
}
