package adaptor

import (
	"fmt"

	"storefront/internal/data/entity"
	"storefront/internal/dto/request"
	"storefront/internal/dto/response"
	"storefront/internal/usecase"
	"storefront/pkg/apperr"
	"storefront/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type OrderHandler struct {
	service usecase.OrderService
	opts    *Options
	log     *zap.Logger
}

func NewOrderHandler(service usecase.OrderService, opts *Options, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		opts:    opts,
		log:     log.With(zap.String("handler", "order")),
	}
}

// Place handles `orders place <product-id> <quantity>` (client only)
func (h *OrderHandler) Place(cmd *cobra.Command, args []string) error {
	identity, err := currentIdentity(cmd)
	if err != nil {
		return err
	}

	productID, err := parseID("product_id", args[0])
	if err != nil {
		return err
	}
	quantity, err := utils.ParseQuantity(args[1])
	if err != nil {
		return apperr.InvalidField("quantity", err.Error())
	}

	req := request.PlaceOrderRequest{
		ProductID: productID,
		Quantity:  quantity,
	}

	order, err := h.service.PlaceOrder(cmd.Context(), identity.ID, &req)
	if err != nil {
		return err
	}

	return render(cmd, h.opts, "Order placed", order)
}

// Mine handles `orders mine` (authenticated)
func (h *OrderHandler) Mine(cmd *cobra.Command, args []string) error {
	identity, err := currentIdentity(cmd)
	if err != nil {
		return err
	}

	orders, err := h.service.OrdersForUser(cmd.Context(), identity.ID)
	if err != nil {
		return err
	}

	return render(cmd, h.opts, "Your orders", orders)
}

// Cancel handles `orders cancel <order-id>` (authenticated). Clients may
// only cancel their own orders; administrators may cancel any.
func (h *OrderHandler) Cancel(cmd *cobra.Command, args []string) error {
	identity, err := currentIdentity(cmd)
	if err != nil {
		return err
	}

	orderID, err := parseID("order_id", args[0])
	if err != nil {
		return err
	}

	var order *response.OrderResponse
	switch identity.Role {
	case entity.RoleAdmin:
		order, err = h.service.CancelOrder(cmd.Context(), orderID)
	case entity.RoleClient:
		order, err = h.service.CancelUserOrder(cmd.Context(), identity.ID, orderID)
	default:
		return fmt.Errorf("role %s cannot cancel orders: %w", identity.Role, apperr.ErrForbidden)
	}
	if err != nil {
		return err
	}

	return render(cmd, h.opts, "Order cancelled", order)
}

// ==================== ADMIN COMMANDS ====================

// All handles `orders all` (admin only)
func (h *OrderHandler) All(cmd *cobra.Command, args []string) error {
	orders, err := h.service.AllOrders(cmd.Context())
	if err != nil {
		return err
	}

	return render(cmd, h.opts, "All orders", orders)
}
