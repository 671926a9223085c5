package scratchoffhdl

import (
	"fmt"

	basehdl "scratch_portal/internal/api/base/handler"
	basesvc "scratch_portal/internal/api/base/service"
	scratchoffdto "scratch_portal/internal/api/scratchoff/dto"
	scratchoffmodels "scratch_portal/internal/api/scratchoff/models"
	"scratch_portal/internal/common"
	"scratch_portal/internal/global"
)

// PackEventHandler phục vụ tra cứu lịch sử sự kiện pack (append-only,
// chỉ có surface đọc; ghi sự kiện đi qua PackHandler.HandleCreatePackEvent).
type PackEventHandler struct {
	*basehdl.BaseHandler[scratchoffmodels.PackEvent, scratchoffdto.PackEventCreateInput, scratchoffdto.PackEventCreateInput]
}

// NewPackEventHandler tạo instance mới của PackEventHandler
func NewPackEventHandler() (*PackEventHandler, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ScratchoffPackEvents)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.ScratchoffPackEvents, common.ErrNotFound)
	}
	svc := basesvc.NewBaseServiceMongo[scratchoffmodels.PackEvent](coll)
	return &PackEventHandler{
		BaseHandler: basehdl.NewBaseHandler[scratchoffmodels.PackEvent, scratchoffdto.PackEventCreateInput, scratchoffdto.PackEventCreateInput](svc),
	}, nil
}

// SnapshotItemHandler phục vụ tra cứu từng dòng snapshot theo slot.
type SnapshotItemHandler struct {
	*basehdl.BaseHandler[scratchoffmodels.SnapshotItem, scratchoffdto.SnapshotItemInput, scratchoffdto.SnapshotItemInput]
}

// NewSnapshotItemHandler tạo instance mới của SnapshotItemHandler
func NewSnapshotItemHandler() (*SnapshotItemHandler, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ScratchoffSnapshotItems)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.ScratchoffSnapshotItems, common.ErrNotFound)
	}
	svc := basesvc.NewBaseServiceMongo[scratchoffmodels.SnapshotItem](coll)
	return &SnapshotItemHandler{
		BaseHandler: basehdl.NewBaseHandler[scratchoffmodels.SnapshotItem, scratchoffdto.SnapshotItemInput, scratchoffdto.SnapshotItemInput](svc),
	}, nil
}
