package adaptor

import (
	"strings"

	"storefront/internal/dto/request"
	"storefront/internal/usecase"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	flagName        = "name"
	flagDescription = "description"
	flagPrice       = "price"
	flagQuantity    = "quantity"
)

type ProductHandler struct {
	service usecase.ProductService
	opts    *Options
	log     *zap.Logger
}

func NewProductHandler(service usecase.ProductService, opts *Options, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		opts:    opts,
		log:     log.With(zap.String("handler", "product")),
	}
}

// AddProductFlags registers the editable product fields on cmd.
func AddProductFlags(cmd *cobra.Command) {
	cmd.Flags().String(flagName, "", "product name")
	cmd.Flags().String(flagDescription, "", "product description")
	cmd.Flags().Float64(flagPrice, 0, "unit price")
	cmd.Flags().Int(flagQuantity, 0, "units in stock")
}

// ==================== PUBLIC COMMANDS ====================

// List handles `products list`
func (h *ProductHandler) List(cmd *cobra.Command, args []string) error {
	products, err := h.service.ListProducts(cmd.Context())
	if err != nil {
		return err
	}

	return render(cmd, h.opts, "Products", products)
}

// Search handles `products search <text>`
func (h *ProductHandler) Search(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")

	products, err := h.service.SearchProducts(cmd.Context(), text)
	if err != nil {
		return err
	}

	return render(cmd, h.opts, "Products", products)
}

// Show handles `products show <id>`
func (h *ProductHandler) Show(cmd *cobra.Command, args []string) error {
	id, err := parseID("id", args[0])
	if err != nil {
		return err
	}

	product, err := h.service.GetProduct(cmd.Context(), id)
	if err != nil {
		return err
	}

	return render(cmd, h.opts, "Product", product)
}

// ==================== ADMIN COMMANDS ====================

// Add handles `products add` (admin only)
func (h *ProductHandler) Add(cmd *cobra.Command, args []string) error {
	var req request.ProductRequest
	if err := h.readFlags(cmd, &req); err != nil {
		return err
	}

	product, err := h.service.AddProduct(cmd.Context(), &req)
	if err != nil {
		return err
	}

	return render(cmd, h.opts, "Product created", product)
}

// Update handles `products update <id>` (admin only). Fields whose flag is
// not given keep their stored value.
func (h *ProductHandler) Update(cmd *cobra.Command, args []string) error {
	id, err := parseID("id", args[0])
	if err != nil {
		return err
	}

	current, err := h.service.GetProduct(cmd.Context(), id)
	if err != nil {
		return err
	}

	req := request.ProductRequest{
		Name:        current.Name,
		Description: current.Description,
		Price:       current.Price.InexactFloat64(),
		Quantity:    current.Quantity,
	}
	if err := h.readFlags(cmd, &req); err != nil {
		return err
	}

	product, err := h.service.UpdateProduct(cmd.Context(), id, &req)
	if err != nil {
		return err
	}

	return render(cmd, h.opts, "Product updated", product)
}

// Delete handles `products delete <id>` (admin only)
func (h *ProductHandler) Delete(cmd *cobra.Command, args []string) error {
	id, err := parseID("id", args[0])
	if err != nil {
		return err
	}

	if err := h.service.DeleteProduct(cmd.Context(), id); err != nil {
		return err
	}

	return render(cmd, h.opts, "Product deleted", nil)
}

// readFlags copies every flag the user set into req.
func (h *ProductHandler) readFlags(cmd *cobra.Command, req *request.ProductRequest) error {
	flags := cmd.Flags()

	if flags.Changed(flagName) {
		v, err := flags.GetString(flagName)
		if err != nil {
			return err
		}
		req.Name = v
	}
	if flags.Changed(flagDescription) {
		v, err := flags.GetString(flagDescription)
		if err != nil {
			return err
		}
		req.Description = v
	}
	if flags.Changed(flagPrice) {
		v, err := flags.GetFloat64(flagPrice)
		if err != nil {
			return err
		}
		req.Price = v
	}
	if flags.Changed(flagQuantity) {
		v, err := flags.GetInt(flagQuantity)
		if err != nil {
			return err
		}
		req.Quantity = v
	}
	return nil
}
