package scratchoffsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	basesvc "scratch_portal/internal/api/base/service"
	scratchoffmodels "scratch_portal/internal/api/scratchoff/models"
	"scratch_portal/internal/common"
	"scratch_portal/internal/global"
	"scratch_portal/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
)

// CalculationService tính và lưu kết quả đối soát bán vé theo ca.
type CalculationService struct {
	*basesvc.BaseServiceMongoImpl[scratchoffmodels.Calculation]

	snapshotService *SnapshotService
	packService     *PackService
	productService  *ProductService
	slotService     *SlotService
}

// NewCalculationService tạo CalculationService mới.
func NewCalculationService() (*CalculationService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ScratchoffCalculations)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.ScratchoffCalculations, common.ErrNotFound)
	}
	snapshotService, err := NewSnapshotService()
	if err != nil {
		return nil, err
	}
	packService, err := NewPackService()
	if err != nil {
		return nil, err
	}
	productService, err := NewProductService()
	if err != nil {
		return nil, err
	}
	slotService, err := NewSlotService()
	if err != nil {
		return nil, err
	}
	return &CalculationService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[scratchoffmodels.Calculation](coll),
		snapshotService:      snapshotService,
		packService:          packService,
		productService:       productService,
		slotService:          slotService,
	}, nil
}

// toReadings chuyển dòng snapshot sang dạng đọc số của bước đối soát.
func toReadings(items []scratchoffmodels.SnapshotItem) []SlotReading {
	readings := make([]SlotReading, 0, len(items))
	for _, item := range items {
		readings = append(readings, SlotReading{
			SlotID:      item.SlotID,
			TicketValue: item.TicketValue,
			PackID:      item.PackID,
		})
	}
	return readings
}

// gatherInput nạp toàn bộ dữ liệu cần cho một lần đối soát:
// mốc đầu ca, snapshot kết ca, slot, pack và sản phẩm liên quan.
func (s *CalculationService) gatherInput(ctx context.Context, shiftReportID primitive.ObjectID, storeID primitive.ObjectID) (CalculationInput, error) {
	endSnapshot, err := s.snapshotService.findShiftSnapshot(ctx, shiftReportID, scratchoffmodels.SnapshotTypeEnd)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return CalculationInput{}, common.NewError(common.ErrCodePrecondition,
				"Ca làm việc chưa có snapshot kết ca", common.StatusPreconditionFailed, nil)
		}
		return CalculationInput{}, err
	}
	if storeID.IsZero() {
		storeID = endSnapshot.StoreID
	}

	_, startItems, err := s.snapshotService.ResolveEffectiveStart(ctx, shiftReportID, storeID)
	if err != nil {
		return CalculationInput{}, err
	}
	endItems, err := s.snapshotService.SnapshotItems(ctx, endSnapshot.ID)
	if err != nil {
		return CalculationInput{}, err
	}

	_, numberBySlot, err := s.slotService.ActivePackBySlot(ctx, storeID)
	if err != nil {
		return CalculationInput{}, err
	}

	packIDSet := make(map[primitive.ObjectID]bool)
	for _, item := range startItems {
		if item.PackID != nil {
			packIDSet[*item.PackID] = true
		}
	}
	for _, item := range endItems {
		if item.PackID != nil {
			packIDSet[*item.PackID] = true
		}
	}
	packIDs := make([]primitive.ObjectID, 0, len(packIDSet))
	for id := range packIDSet {
		packIDs = append(packIDs, id)
	}
	packByID, err := s.packService.PacksByIds(ctx, packIDs)
	if err != nil {
		return CalculationInput{}, err
	}

	productIDSet := make(map[primitive.ObjectID]bool, len(packByID))
	for _, pack := range packByID {
		productIDSet[pack.ProductID] = true
	}
	productIDs := make([]primitive.ObjectID, 0, len(productIDSet))
	for id := range productIDSet {
		productIDs = append(productIDs, id)
	}
	productByID, err := s.productService.ProductsByIds(ctx, productIDs)
	if err != nil {
		return CalculationInput{}, err
	}

	return CalculationInput{
		ShiftReportID:  shiftReportID,
		StoreID:        storeID,
		StartReadings:  toReadings(startItems),
		EndReadings:    toReadings(endItems),
		SlotNumberByID: numberBySlot,
		PackByID:       packByID,
		ProductByID:    productByID,
	}, nil
}

// Recalculate tính lại kết quả đối soát của một ca và upsert theo
// (shiftReportId, storeId). Gọi nhiều lần trên cùng dữ liệu cho cùng kết quả;
// slot thiếu sản phẩm được flag và loại khỏi tổng thay vì làm hỏng cả ca.
func (s *CalculationService) Recalculate(ctx context.Context, shiftReportID primitive.ObjectID, storeID primitive.ObjectID) (*scratchoffmodels.Calculation, error) {
	in, err := s.gatherInput(ctx, shiftReportID, storeID)
	if err != nil {
		return nil, err
	}
	calc := BuildCalculation(in)
	calc.ComputedAt = time.Now().UnixMilli()

	saved, err := s.Upsert(ctx, bson.M{"shiftReportId": calc.ShiftReportID, "storeId": calc.StoreID}, calc)
	if err != nil {
		return nil, err
	}
	logger.GetAppLogger().
		WithField("shift_report_id", calc.ShiftReportID.Hex()).
		WithField("store_id", calc.StoreID.Hex()).
		WithField("flags", len(calc.Flags)).
		Info("Đã đối soát ca")
	return &saved, nil
}

// ListDiscrepancies liệt kê các calculation cần chú ý: có flag thiếu
// sản phẩm hoặc có dòng bán âm (số kết nhỏ hơn số đầu lọt qua đối chiếu).
func (s *CalculationService) ListDiscrepancies(ctx context.Context, storeID primitive.ObjectID) ([]scratchoffmodels.Calculation, error) {
	filter := bson.M{"$or": []bson.M{
		{"flags.0": bson.M{"$exists": true}},
		{"lines.soldTickets": bson.M{"$lt": 0}},
	}}
	if !storeID.IsZero() {
		filter = bson.M{"$and": []bson.M{{"storeId": storeID}, filter}}
	}
	opts := mongoopts.Find().SetSort(bson.D{{Key: "computedAt", Value: -1}})
	calcs, err := s.Find(ctx, filter, opts)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}
	return calcs, nil
}

// RecalculateFlagged chạy lại mọi calculation đang có flag.
// Được gọi khi catalog sản phẩm thay đổi để các ca từng thiếu giá
// tự lành mà không cần thao tác tay.
func (s *CalculationService) RecalculateFlagged(ctx context.Context) {
	flagged, err := s.Find(ctx, bson.M{"flags.0": bson.M{"$exists": true}}, nil)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			logger.GetAppLogger().WithError(err).Error("Không nạp được danh sách calculation bị flag")
		}
		return
	}
	for _, calc := range flagged {
		if _, err := s.Recalculate(ctx, calc.ShiftReportID, calc.StoreID); err != nil {
			logger.GetAppLogger().WithError(err).
				WithField("shift_report_id", calc.ShiftReportID.Hex()).
				Warn("Tính lại calculation bị flag thất bại")
		}
	}
}
