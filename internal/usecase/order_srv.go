package usecase

import (
	"context"

	"storefront/internal/data/repository"
	"storefront/internal/dto/request"
	"storefront/internal/dto/response"
	"storefront/pkg/apperr"
	"storefront/pkg/utils"

	"go.uber.org/zap"
)

type OrderService interface {
	// Client
	PlaceOrder(ctx context.Context, userID int64, req *request.PlaceOrderRequest) (*response.OrderResponse, error)
	CancelUserOrder(ctx context.Context, userID, orderID int64) (*response.OrderResponse, error)
	OrdersForUser(ctx context.Context, userID int64) (response.OrderListResponse, error)

	// Admin
	CancelOrder(ctx context.Context, orderID int64) (*response.OrderResponse, error)
	AllOrders(ctx context.Context) (response.OrderListResponse, error)
}

type orderService struct {
	repo *repository.Repository // orders plus product lookups for responses
	log  *zap.Logger
}

func NewOrderService(repo *repository.Repository, log *zap.Logger) OrderService {
	return &orderService{
		repo: repo,
		log:  log.With(zap.String("service", "order")),
	}
}

func (s *orderService) PlaceOrder(ctx context.Context, userID int64, req *request.PlaceOrderRequest) (*response.OrderResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Place order validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation(errs)
	}
	if userID <= 0 {
		return nil, apperr.InvalidField("user_id", "Must be greater than 0")
	}

	order, err := s.repo.Order.Place(ctx, userID, req.ProductID, req.Quantity)
	if err != nil {
		s.log.Warn("Place order failed",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int64("product_id", req.ProductID),
			zap.Int("quantity", req.Quantity),
		)
		return nil, err
	}

	s.log.Info("Order placed",
		zap.Int64("order_id", order.ID),
		zap.Int64("user_id", userID),
		zap.Int64("product_id", order.ProductID),
		zap.Int("quantity", order.Quantity),
		zap.String("total_price", order.TotalPrice.String()),
	)

	resp := response.OrderToResponse(order)
	if product, _ := s.repo.Product.FindByID(ctx, order.ProductID); product != nil {
		resp.ProductName = product.Name
	}
	return &resp, nil
}

// CancelUserOrder cancels an order only if it belongs to userID. Another
// user's order is reported as not found.
func (s *orderService) CancelUserOrder(ctx context.Context, userID, orderID int64) (*response.OrderResponse, error) {
	if userID <= 0 {
		return nil, apperr.InvalidField("user_id", "Must be greater than 0")
	}
	return s.cancel(ctx, orderID, &userID)
}

func (s *orderService) CancelOrder(ctx context.Context, orderID int64) (*response.OrderResponse, error) {
	return s.cancel(ctx, orderID, nil)
}

func (s *orderService) cancel(ctx context.Context, orderID int64, ownerID *int64) (*response.OrderResponse, error) {
	if orderID <= 0 {
		return nil, apperr.InvalidField("order_id", "Must be greater than 0")
	}

	order, err := s.repo.Order.Cancel(ctx, orderID, ownerID)
	if err != nil {
		s.log.Warn("Cancel order failed",
			zap.Error(err),
			zap.Int64("order_id", orderID),
		)
		return nil, err
	}

	s.log.Info("Order cancelled",
		zap.Int64("order_id", order.ID),
		zap.Int64("user_id", order.UserID),
		zap.Int64("product_id", order.ProductID),
		zap.Int("restored_quantity", order.Quantity),
	)

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) OrdersForUser(ctx context.Context, userID int64) (response.OrderListResponse, error) {
	views, err := s.repo.Order.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.log.Debug("User orders retrieved",
		zap.Int64("user_id", userID),
		zap.Int("count", len(views)))
	return response.OrderViewsToResponse(views), nil
}

func (s *orderService) AllOrders(ctx context.Context) (response.OrderListResponse, error) {
	views, err := s.repo.Order.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	s.log.Debug("All orders retrieved", zap.Int("count", len(views)))
	return response.OrderViewsToResponse(views), nil
}
