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

// PackHandler xử lý request vòng đời pack: kích hoạt, trả đại lý, lịch sử.
type PackHandler struct {
	*basehdl.BaseHandler[scratchoffmodels.Pack, scratchoffdto.PackActivateInput, scratchoffdto.PackActivateInput]
	packService *scratchoffsvc.PackService
}

// NewPackHandler tạo instance mới của PackHandler
func NewPackHandler() (*PackHandler, error) {
	packService, err := scratchoffsvc.NewPackService()
	if err != nil {
		return nil, fmt.Errorf("failed to create pack service: %v", err)
	}
	return &PackHandler{
		BaseHandler: basehdl.NewBaseHandler[scratchoffmodels.Pack, scratchoffdto.PackActivateInput, scratchoffdto.PackActivateInput](packService),
		packService: packService,
	}, nil
}

// HandleActivatePack kích hoạt pack mới trên slot.
// Slot đang có pack hoạt động trả về Conflict.
func (h *PackHandler) HandleActivatePack(c fiber.Ctx) error {
	var input scratchoffdto.PackActivateInput
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
	pack, err := h.packService.ActivatePack(c.Context(), storeID, currentUserID(c), &input)
	h.HandleResponse(c, pack, err)
	return nil
}

// HandleReturnPack trả pack về đại lý, bắt buộc kèm file biên nhận.
func (h *PackHandler) HandleReturnPack(c fiber.Ctx) error {
	var input scratchoffdto.PackReturnInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	storeID := primitive.NilObjectID
	if activeStoreID := h.GetActiveStoreID(c); activeStoreID != nil {
		storeID = *activeStoreID
	}
	pack, err := h.packService.ReturnPack(c.Context(), storeID, currentUserID(c), &input)
	h.HandleResponse(c, pack, err)
	return nil
}

// HandleCreatePackEvent ghi sự kiện vào lịch sử pack.
// Nhân viên bán hàng chỉ được ghi return_receipt.
func (h *PackHandler) HandleCreatePackEvent(c fiber.Ctx) error {
	var input scratchoffdto.PackEventCreateInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	storeID := primitive.NilObjectID
	if activeStoreID := h.GetActiveStoreID(c); activeStoreID != nil {
		storeID = *activeStoreID
	}
	event, err := h.packService.CreatePackEvent(c.Context(), storeID, currentUserID(c), currentRole(c), &input)
	h.HandleResponse(c, event, err)
	return nil
}

// HandlePackEvents liệt kê lịch sử của một pack, mới nhất trước.
func (h *PackHandler) HandlePackEvents(c fiber.Ctx) error {
	packID, err := primitive.ObjectIDFromHex(h.GetIDFromContext(c))
	if err != nil {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat,
			"id pack không đúng định dạng", common.StatusBadRequest, err))
		return nil
	}
	if err := h.ValidateStoreAccess(c, packID.Hex()); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	events, err := h.packService.PackEvents(c.Context(), packID)
	h.HandleResponse(c, events, err)
	return nil
}
