package scratchoffsvc

import (
	"context"

	"scratch_portal/internal/api/events"
	scratchoffmodels "scratch_portal/internal/api/scratchoff/models"
	"scratch_portal/internal/global"
	"scratch_portal/internal/logger"
)

// RegisterDataChangeHooks đăng ký các phản ứng theo thay đổi dữ liệu.
// Gọi một lần khi khởi động server, sau khi registry collection đã sẵn sàng.
//
//   - Catalog sản phẩm đổi: chạy lại mọi calculation đang bị flag thiếu
//     sản phẩm, các ca từng thiếu giá tự lành.
//   - Pack mới kích hoạt: log thông báo vận hành.
func RegisterDataChangeHooks() error {
	calculationService, err := NewCalculationService()
	if err != nil {
		return err
	}

	events.OnDataChanged(func(ctx context.Context, e events.DataChangeEvent) {
		switch e.CollectionName {
		case global.MongoDB_ColNames.ScratchoffProducts:
			calculationService.RecalculateFlagged(context.WithoutCancel(ctx))
		case global.MongoDB_ColNames.ScratchoffPacks:
			if e.Operation != events.OpInsert {
				return
			}
			if pack, ok := e.Document.(scratchoffmodels.Pack); ok {
				logger.GetAppLogger().
					WithField("pack_id", pack.ID.Hex()).
					WithField("store_id", pack.StoreID.Hex()).
					WithField("pack_code", pack.PackCode).
					Info("Pack mới được kích hoạt")
			}
		}
	})
	return nil
}
