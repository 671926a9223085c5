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

// SlotHandler xử lý request quản lý slot máy bán vé.
type SlotHandler struct {
	*basehdl.BaseHandler[scratchoffmodels.Slot, scratchoffdto.SlotCreateInput, scratchoffdto.SlotUpdateInput]
	slotService *scratchoffsvc.SlotService
}

// NewSlotHandler tạo instance mới của SlotHandler
func NewSlotHandler() (*SlotHandler, error) {
	slotService, err := scratchoffsvc.NewSlotService()
	if err != nil {
		return nil, fmt.Errorf("failed to create slot service: %v", err)
	}
	return &SlotHandler{
		BaseHandler: basehdl.NewBaseHandler[scratchoffmodels.Slot, scratchoffdto.SlotCreateInput, scratchoffdto.SlotUpdateInput](slotService),
		slotService: slotService,
	}, nil
}

// HandleCreateSlot tạo slot mới. Không truyền slotNumber thì lấy số trống nhỏ nhất.
func (h *SlotHandler) HandleCreateSlot(c fiber.Ctx) error {
	var input scratchoffdto.SlotCreateInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	storeID, err := resolveStoreID(c, input.StoreID)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	slot, err := h.slotService.CreateSlot(c.Context(), storeID, &input)
	h.HandleResponse(c, slot, err)
	return nil
}

// HandleInitSlots lấp các số slot còn thiếu 1..32 cho cửa hàng.
func (h *SlotHandler) HandleInitSlots(c fiber.Ctx) error {
	var input scratchoffdto.InitSlotsInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	storeID, err := resolveStoreID(c, input.StoreID)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	slots, err := h.slotService.InitSlots(c.Context(), storeID)
	h.HandleResponse(c, slots, err)
	return nil
}

// HandleUpdateSlot áp patch lên slot theo id trên path.
// Truyền defaultProductId rỗng để xóa default product.
func (h *SlotHandler) HandleUpdateSlot(c fiber.Ctx) error {
	slotID, err := primitive.ObjectIDFromHex(h.GetIDFromContext(c))
	if err != nil {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat,
			"id slot không đúng định dạng", common.StatusBadRequest, err))
		return nil
	}
	if err := h.ValidateStoreAccess(c, slotID.Hex()); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	var input scratchoffdto.SlotUpdateInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	slot, err := h.slotService.UpdateSlot(c.Context(), slotID, &input)
	h.HandleResponse(c, slot, err)
	return nil
}
