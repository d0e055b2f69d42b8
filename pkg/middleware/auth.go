package middleware

import (
	"context"
	"fmt"

	"storefront/internal/data/entity"
	"storefront/internal/dto/request"
	"storefront/pkg/apperr"
	"storefront/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Authenticator resolves credentials to an identity.
type Authenticator interface {
	Authenticate(ctx context.Context, req *request.LoginRequest) (*entity.Identity, error)
}

// CredentialsFunc supplies the username and password for the invocation.
type CredentialsFunc func(cmd *cobra.Command) (username, password string)

// AuthSession authenticates the caller and stores the identity in the
// command context.
func AuthSession(auth Authenticator, credentials CredentialsFunc, logger *zap.Logger) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(cmd *cobra.Command, args []string) error {
			username, password := credentials(cmd)
			if username == "" || password == "" {
				return fmt.Errorf("authentication required: pass --user and --password: %w", apperr.ErrInvalidCredentials)
			}

			identity, err := auth.Authenticate(cmd.Context(), &request.LoginRequest{
				Username: username,
				Password: password,
			})
			if err != nil {
				logger.Warn("Authentication failed",
					zap.String("username", username),
					zap.String("command", cmd.CommandPath()),
					zap.Error(err))
				return err
			}

			cmd.SetContext(utils.SetIdentityContext(cmd.Context(), *identity))
			return next(cmd, args)
		}
	}
}

// Admin lets only administrators through. Must run after AuthSession.
func Admin(logger *zap.Logger) Middleware {
	return requireRole(entity.RoleAdmin, logger)
}

// Client lets only clients through. Must run after AuthSession.
func Client(logger *zap.Logger) Middleware {
	return requireRole(entity.RoleClient, logger)
}

func requireRole(role entity.Role, logger *zap.Logger) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(cmd *cobra.Command, args []string) error {
			identity, ok := utils.GetIdentityFromContext(cmd.Context())
			if !ok {
				return fmt.Errorf("authentication required: %w", apperr.ErrInvalidCredentials)
			}

			if identity.Role != role {
				logger.Warn("Role check: access denied",
					zap.Int64("user_id", identity.ID),
					zap.Stringer("role", identity.Role),
					zap.Stringer("required", role),
					zap.String("command", cmd.CommandPath()))
				return fmt.Errorf("%s access required: %w", role, apperr.ErrForbidden)
			}

			return next(cmd, args)
		}
	}
}
