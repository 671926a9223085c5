package scratchoffhdl

import (
	"fmt"

	basehdl "scratch_portal/internal/api/base/handler"
	scratchoffdto "scratch_portal/internal/api/scratchoff/dto"
	scratchoffmodels "scratch_portal/internal/api/scratchoff/models"
	scratchoffsvc "scratch_portal/internal/api/scratchoff/service"

	"github.com/gofiber/fiber/v3"
)

// SnapshotHandler xử lý request ghi nhận snapshot kiểm kê.
type SnapshotHandler struct {
	*basehdl.BaseHandler[scratchoffmodels.Snapshot, scratchoffdto.ShiftSnapshotCreateInput, scratchoffdto.ShiftSnapshotCreateInput]
	snapshotService *scratchoffsvc.SnapshotService
}

// NewSnapshotHandler tạo instance mới của SnapshotHandler
func NewSnapshotHandler() (*SnapshotHandler, error) {
	snapshotService, err := scratchoffsvc.NewSnapshotService()
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshot service: %v", err)
	}
	return &SnapshotHandler{
		BaseHandler:     basehdl.NewBaseHandler[scratchoffmodels.Snapshot, scratchoffdto.ShiftSnapshotCreateInput, scratchoffdto.ShiftSnapshotCreateInput](snapshotService),
		snapshotService: snapshotService,
	}, nil
}

// HandleCreateBaseline lập baseline toàn cửa hàng (manager trở lên).
func (h *SnapshotHandler) HandleCreateBaseline(c fiber.Ctx) error {
	var input scratchoffdto.BaselineSnapshotCreateInput
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
	result, err := h.snapshotService.CreateBaselineSnapshot(c.Context(), storeID, currentUserID(c), &input)
	h.HandleResponse(c, result, err)
	return nil
}

// HandleCreateShiftSnapshot ghi snapshot đầu hoặc kết ca.
// Snapshot kết ca bị từ chối nguyên bản nếu phát hiện pack bị thay giữa ca,
// response kèm danh sách slot cần kích hoạt pack mới.
func (h *SnapshotHandler) HandleCreateShiftSnapshot(c fiber.Ctx) error {
	var input scratchoffdto.ShiftSnapshotCreateInput
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
	result, err := h.snapshotService.CreateShiftSnapshot(c.Context(), storeID, currentUserID(c), &input)
	h.HandleResponse(c, result, err)
	return nil
}
