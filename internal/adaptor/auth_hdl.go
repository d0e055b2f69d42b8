package adaptor

import (
	"storefront/internal/dto/request"
	"storefront/internal/dto/response"
	"storefront/internal/usecase"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	opts    *Options
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, opts *Options, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		opts:    opts,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Register handles `register <username> <password>`
func (h *AuthHandler) Register(cmd *cobra.Command, args []string) error {
	req := request.RegisterRequest{
		Username: args[0],
		Password: args[1],
	}

	user, err := h.service.Register(cmd.Context(), &req)
	if err != nil {
		return err
	}

	return render(cmd, h.opts, "Registration successful", user)
}

// Login handles `login` (authenticated)
func (h *AuthHandler) Login(cmd *cobra.Command, args []string) error {
	identity, err := currentIdentity(cmd)
	if err != nil {
		return err
	}

	return render(cmd, h.opts, "Login successful", response.IdentityToResponse(identity))
}

// WhoAmI handles `whoami` (authenticated)
func (h *AuthHandler) WhoAmI(cmd *cobra.Command, args []string) error {
	identity, err := currentIdentity(cmd)
	if err != nil {
		return err
	}

	user, err := h.service.GetUser(cmd.Context(), identity.ID)
	if err != nil {
		return err
	}

	return render(cmd, h.opts, "Current user", user)
}
