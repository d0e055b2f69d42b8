package adaptor

import (
	"fmt"

	"storefront/internal/data/entity"
	"storefront/internal/usecase"
	"storefront/pkg/apperr"
	"storefront/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Options holds the global flags shared by every command.
type Options struct {
	ConfigPath string
	Format     string
	Username   string
	Password   string
}

type Handler struct {
	Auth    *AuthHandler
	Product *ProductHandler
	Order   *OrderHandler
}

func NewHandler(service *usecase.Service, opts *Options, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, opts, log),
		Product: NewProductHandler(service.Product, opts, log),
		Order:   NewOrderHandler(service.Order, opts, log),
	}
}

func render(cmd *cobra.Command, opts *Options, message string, data any) error {
	return utils.ResponseSuccess(cmd.OutOrStdout(), opts.Format, message, data)
}

func currentIdentity(cmd *cobra.Command) (entity.Identity, error) {
	identity, ok := utils.GetIdentityFromContext(cmd.Context())
	if !ok {
		return entity.Identity{}, fmt.Errorf("authentication required: %w", apperr.ErrInvalidCredentials)
	}
	return identity, nil
}

func parseID(field, value string) (int64, error) {
	id, err := utils.ParseID(value)
	if err != nil {
		return 0, apperr.InvalidField(field, err.Error())
	}
	return id, nil
}
