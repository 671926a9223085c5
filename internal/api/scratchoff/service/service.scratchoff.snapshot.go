package scratchoffsvc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	basesvc "scratch_portal/internal/api/base/service"
	scratchoffdto "scratch_portal/internal/api/scratchoff/dto"
	scratchoffmodels "scratch_portal/internal/api/scratchoff/models"
	"scratch_portal/internal/common"
	"scratch_portal/internal/global"
	"scratch_portal/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
)

// SnapshotService ghi nhận snapshot kiểm kê: baseline của cửa hàng và
// snapshot đầu/kết ca. Snapshot đã ghi là bất biến.
type SnapshotService struct {
	*basesvc.BaseServiceMongoImpl[scratchoffmodels.Snapshot]
	itemService *basesvc.BaseServiceMongoImpl[scratchoffmodels.SnapshotItem]

	slotService *SlotService
}

// NewSnapshotService tạo SnapshotService mới.
func NewSnapshotService() (*SnapshotService, error) {
	snapColl, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ScratchoffSnapshots)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.ScratchoffSnapshots, common.ErrNotFound)
	}
	itemColl, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ScratchoffSnapshotItems)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.ScratchoffSnapshotItems, common.ErrNotFound)
	}
	slotService, err := NewSlotService()
	if err != nil {
		return nil, err
	}
	return &SnapshotService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[scratchoffmodels.Snapshot](snapColl),
		itemService:          basesvc.NewBaseServiceMongo[scratchoffmodels.SnapshotItem](itemColl),
		slotService:          slotService,
	}, nil
}

// normalizedItem một dòng đọc số vé đã chuẩn hóa.
type normalizedItem struct {
	SlotID      primitive.ObjectID
	TicketValue string
}

// normalizeItems chuẩn hóa input: trim giá trị vé, bỏ dòng rỗng,
// parse slotId, chặn slot lặp trong cùng một lần nộp.
func normalizeItems(items []scratchoffdto.SnapshotItemInput) ([]normalizedItem, error) {
	seen := make(map[primitive.ObjectID]bool, len(items))
	result := make([]normalizedItem, 0, len(items))
	for _, item := range items {
		value := strings.TrimSpace(item.TicketValue)
		if value == "" {
			continue
		}
		slotID, err := primitive.ObjectIDFromHex(item.SlotID)
		if err != nil {
			return nil, common.NewError(common.ErrCodeValidationFormat,
				fmt.Sprintf("slotId %q không đúng định dạng", item.SlotID), common.StatusBadRequest, err)
		}
		if seen[slotID] {
			return nil, common.NewError(common.ErrCodeValidationInput,
				fmt.Sprintf("slot %s xuất hiện nhiều lần trong snapshot", slotID.Hex()), common.StatusBadRequest, nil)
		}
		seen[slotID] = true
		result = append(result, normalizedItem{SlotID: slotID, TicketValue: value})
	}
	if len(result) == 0 {
		return nil, common.NewError(common.ErrCodeValidationInput,
			"Snapshot phải có ít nhất một dòng có giá trị vé", common.StatusBadRequest, nil)
	}
	return result, nil
}

// persistSnapshot ghi snapshot và các dòng của nó, gắn pack đang hoạt động
// của từng slot vào dòng tương ứng.
func (s *SnapshotService) persistSnapshot(ctx context.Context, snapshot scratchoffmodels.Snapshot, items []normalizedItem, activeBySlot map[primitive.ObjectID]primitive.ObjectID) (*scratchoffmodels.SnapshotWithItems, error) {
	created, err := s.InsertOne(ctx, snapshot)
	if err != nil {
		if errors.Is(err, common.ErrMongoDuplicate) {
			if snapshot.SnapshotType == scratchoffmodels.SnapshotTypeEnd {
				return nil, common.ErrEndSnapshotExists
			}
			return nil, common.ErrDuplicateSnapshot
		}
		return nil, err
	}

	docs := make([]scratchoffmodels.SnapshotItem, 0, len(items))
	for _, item := range items {
		doc := scratchoffmodels.SnapshotItem{
			SnapshotID:  created.ID,
			SlotID:      item.SlotID,
			TicketValue: item.TicketValue,
		}
		if packID, ok := activeBySlot[item.SlotID]; ok {
			packIDCopy := packID
			doc.PackID = &packIDCopy
		}
		docs = append(docs, doc)
	}
	inserted, err := s.itemService.InsertMany(ctx, docs)
	if err != nil {
		return nil, err
	}
	return &scratchoffmodels.SnapshotWithItems{Snapshot: created, Items: inserted}, nil
}

// CreateBaselineSnapshot lập baseline toàn cửa hàng.
// Baseline mới nhất thay thế baseline cũ làm mốc đối chiếu mặc định,
// các baseline cũ vẫn giữ nguyên làm lịch sử.
func (s *SnapshotService) CreateBaselineSnapshot(ctx context.Context, storeID primitive.ObjectID, userID primitive.ObjectID, input *scratchoffdto.BaselineSnapshotCreateInput) (*scratchoffmodels.SnapshotWithItems, error) {
	items, err := normalizeItems(input.Items)
	if err != nil {
		return nil, err
	}
	activeBySlot, _, err := s.slotService.ActivePackBySlot(ctx, storeID)
	if err != nil {
		return nil, err
	}

	snapshot := scratchoffmodels.Snapshot{
		StoreID:      storeID,
		SnapshotType: scratchoffmodels.SnapshotTypeStart,
		IsBaseline:   true,
	}
	if !userID.IsZero() {
		snapshot.EmployeeUserID = &userID
	}
	result, err := s.persistSnapshot(ctx, snapshot, items, activeBySlot)
	if err != nil {
		return nil, err
	}
	logger.GetAppLogger().
		WithField("store_id", storeID.Hex()).
		WithField("snapshot_id", result.Snapshot.ID.Hex()).
		Info("Đã lập baseline cửa hàng")
	return result, nil
}

// findShiftSnapshot tìm snapshot của một ca theo loại.
func (s *SnapshotService) findShiftSnapshot(ctx context.Context, shiftReportID primitive.ObjectID, snapshotType string) (scratchoffmodels.Snapshot, error) {
	return s.FindOne(ctx, bson.M{"shiftReportId": shiftReportID, "snapshotType": snapshotType}, nil)
}

// SnapshotItems nạp các dòng của một snapshot.
func (s *SnapshotService) SnapshotItems(ctx context.Context, snapshotID primitive.ObjectID) ([]scratchoffmodels.SnapshotItem, error) {
	items, err := s.itemService.Find(ctx, bson.M{"snapshotId": snapshotID}, nil)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}
	return items, nil
}

// ResolveEffectiveStart tìm mốc đầu ca để đối chiếu cho một ca:
// snapshot đầu ca của chính ca đó, không có thì baseline mới nhất của
// cửa hàng, không có nốt thì trả về ErrBaselineRequired.
func (s *SnapshotService) ResolveEffectiveStart(ctx context.Context, shiftReportID primitive.ObjectID, storeID primitive.ObjectID) (scratchoffmodels.Snapshot, []scratchoffmodels.SnapshotItem, error) {
	var shiftStart *scratchoffmodels.Snapshot
	found, err := s.findShiftSnapshot(ctx, shiftReportID, scratchoffmodels.SnapshotTypeStart)
	if err == nil {
		shiftStart = &found
	} else if !errors.Is(err, common.ErrNotFound) {
		return scratchoffmodels.Snapshot{}, nil, err
	}

	var baselines []scratchoffmodels.Snapshot
	if shiftStart == nil {
		opts := mongoopts.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(1)
		baselines, err = s.Find(ctx, bson.M{"storeId": storeID, "isBaseline": true}, opts)
		if err != nil && !errors.Is(err, common.ErrNotFound) {
			return scratchoffmodels.Snapshot{}, nil, err
		}
	}

	start, err := PickEffectiveStart(shiftStart, baselines)
	if err != nil {
		return scratchoffmodels.Snapshot{}, nil, err
	}
	items, err := s.SnapshotItems(ctx, start.ID)
	if err != nil {
		return scratchoffmodels.Snapshot{}, nil, err
	}
	return start, items, nil
}

// CreateShiftSnapshot ghi snapshot đầu hoặc kết ca.
// Với snapshot kết ca, toàn bộ bản nộp được đối chiếu với mốc đầu ca trước:
// phát hiện pack bị thay giữa ca (số vé kết < số vé đầu trên cùng pack)
// thì từ chối nguyên bản nộp với danh sách slot bị ảnh hưởng, không ghi gì cả.
func (s *SnapshotService) CreateShiftSnapshot(ctx context.Context, storeID primitive.ObjectID, userID primitive.ObjectID, input *scratchoffdto.ShiftSnapshotCreateInput) (*scratchoffmodels.SnapshotWithItems, error) {
	shiftReportID, err := primitive.ObjectIDFromHex(input.ShiftReportID)
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, "shiftReportId không đúng định dạng", common.StatusBadRequest, err)
	}
	items, err := normalizeItems(input.Items)
	if err != nil {
		return nil, err
	}

	// Unique partial index (shiftReportId, snapshotType) là chốt chặn cuối,
	// check trước để trả lỗi rõ ràng thay vì lỗi duplicate key.
	if _, err := s.findShiftSnapshot(ctx, shiftReportID, input.SnapshotType); err == nil {
		if input.SnapshotType == scratchoffmodels.SnapshotTypeEnd {
			return nil, common.ErrEndSnapshotExists
		}
		return nil, common.ErrDuplicateSnapshot
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	activeBySlot, numberBySlot, err := s.slotService.ActivePackBySlot(ctx, storeID)
	if err != nil {
		return nil, err
	}

	if input.SnapshotType == scratchoffmodels.SnapshotTypeEnd {
		_, startItems, err := s.ResolveEffectiveStart(ctx, shiftReportID, storeID)
		if err != nil {
			return nil, err
		}
		startReadings := make([]SlotReading, 0, len(startItems))
		for _, item := range startItems {
			startReadings = append(startReadings, SlotReading{
				SlotID:      item.SlotID,
				TicketValue: item.TicketValue,
				PackID:      item.PackID,
			})
		}
		endReadings := make([]SlotReading, 0, len(items))
		for _, item := range items {
			endReadings = append(endReadings, SlotReading{SlotID: item.SlotID, TicketValue: item.TicketValue})
		}
		rolled := DetectRollovers(startReadings, endReadings, activeBySlot, numberBySlot)
		if len(rolled) > 0 {
			logger.GetAppLogger().
				WithField("shift_report_id", shiftReportID.Hex()).
				WithField("rolled_slots", len(rolled)).
				Warn("Từ chối snapshot kết ca: phát hiện pack bị thay giữa ca")
			return nil, common.NewRolloverError(map[string]any{"slots": rolled})
		}
	}

	snapshot := scratchoffmodels.Snapshot{
		ShiftReportID: &shiftReportID,
		StoreID:       storeID,
		SnapshotType:  input.SnapshotType,
	}
	if !userID.IsZero() {
		snapshot.EmployeeUserID = &userID
	}
	return s.persistSnapshot(ctx, snapshot, items, activeBySlot)
}
