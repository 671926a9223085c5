package scratchoffhdl

import (
	"fmt"

	basehdl "scratch_portal/internal/api/base/handler"
	scratchoffdto "scratch_portal/internal/api/scratchoff/dto"
	scratchoffmodels "scratch_portal/internal/api/scratchoff/models"
	scratchoffsvc "scratch_portal/internal/api/scratchoff/service"
	"scratch_portal/internal/common"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CalculationHandler xử lý request đối soát bán vé theo ca.
type CalculationHandler struct {
	*basehdl.BaseHandler[scratchoffmodels.Calculation, scratchoffdto.RecalculateInput, scratchoffdto.RecalculateInput]
	calculationService *scratchoffsvc.CalculationService
}

// NewCalculationHandler tạo instance mới của CalculationHandler
func NewCalculationHandler() (*CalculationHandler, error) {
	calculationService, err := scratchoffsvc.NewCalculationService()
	if err != nil {
		return nil, fmt.Errorf("failed to create calculation service: %v", err)
	}
	return &CalculationHandler{
		BaseHandler:        basehdl.NewBaseHandler[scratchoffmodels.Calculation, scratchoffdto.RecalculateInput, scratchoffdto.RecalculateInput](calculationService),
		calculationService: calculationService,
	}, nil
}

// HandleRecalculate tính lại kết quả đối soát của một ca.
// Gọi nhiều lần trên cùng dữ liệu cho cùng kết quả.
func (h *CalculationHandler) HandleRecalculate(c fiber.Ctx) error {
	var input scratchoffdto.RecalculateInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	shiftReportID, err := primitive.ObjectIDFromHex(input.ShiftReportID)
	if err != nil {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat,
			"shiftReportId không đúng định dạng", common.StatusBadRequest, err))
		return nil
	}
	storeID := primitive.NilObjectID
	if activeStoreID := h.GetActiveStoreID(c); activeStoreID != nil {
		storeID = *activeStoreID
	}
	calc, err := h.calculationService.Recalculate(c.Context(), shiftReportID, storeID)
	h.HandleResponse(c, calc, err)
	return nil
}

// HandleListDiscrepancies liệt kê các ca có kết quả đối soát cần chú ý.
func (h *CalculationHandler) HandleListDiscrepancies(c fiber.Ctx) error {
	storeID := primitive.NilObjectID
	if activeStoreID := h.GetActiveStoreID(c); activeStoreID != nil {
		storeID = *activeStoreID
	}
	calcs, err := h.calculationService.ListDiscrepancies(c.Context(), storeID)
	h.HandleResponse(c, calcs, err)
	return nil
}
