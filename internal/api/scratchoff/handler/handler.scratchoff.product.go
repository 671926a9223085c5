package scratchoffhdl

import (
	"fmt"

	basehdl "scratch_portal/internal/api/base/handler"
	scratchoffdto "scratch_portal/internal/api/scratchoff/dto"
	scratchoffmodels "scratch_portal/internal/api/scratchoff/models"
	scratchoffsvc "scratch_portal/internal/api/scratchoff/service"

	"github.com/gofiber/fiber/v3"
)

// ProductHandler xử lý request danh mục sản phẩm vé số cào.
type ProductHandler struct {
	*basehdl.BaseHandler[scratchoffmodels.Product, scratchoffdto.ProductCreateInput, scratchoffdto.ProductUpdateInput]
	productService *scratchoffsvc.ProductService
}

// NewProductHandler tạo instance mới của ProductHandler
func NewProductHandler() (*ProductHandler, error) {
	productService, err := scratchoffsvc.NewProductService()
	if err != nil {
		return nil, fmt.Errorf("failed to create product service: %v", err)
	}
	return &ProductHandler{
		BaseHandler:    basehdl.NewBaseHandler[scratchoffmodels.Product, scratchoffdto.ProductCreateInput, scratchoffdto.ProductUpdateInput](productService),
		productService: productService,
	}, nil
}

// HandleUpsertProduct tạo hoặc cập nhật sản phẩm từ catalog upload.
func (h *ProductHandler) HandleUpsertProduct(c fiber.Ctx) error {
	var input scratchoffdto.ProductUpsertInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	product, err := h.productService.UpsertProduct(c.Context(), &input)
	h.HandleResponse(c, product, err)
	return nil
}
