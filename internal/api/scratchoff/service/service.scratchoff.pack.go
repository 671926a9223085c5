package scratchoffsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

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

// PackService quản lý vòng đời pack: kích hoạt, trả về đại lý, lịch sử sự kiện.
type PackService struct {
	*basesvc.BaseServiceMongoImpl[scratchoffmodels.Pack]
	eventService *basesvc.BaseServiceMongoImpl[scratchoffmodels.PackEvent]

	slotService    *SlotService
	productService *ProductService
}

// NewPackService tạo PackService mới.
func NewPackService() (*PackService, error) {
	packColl, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ScratchoffPacks)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.ScratchoffPacks, common.ErrNotFound)
	}
	eventColl, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ScratchoffPackEvents)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.ScratchoffPackEvents, common.ErrNotFound)
	}
	slotService, err := NewSlotService()
	if err != nil {
		return nil, err
	}
	productService, err := NewProductService()
	if err != nil {
		return nil, err
	}
	return &PackService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[scratchoffmodels.Pack](packColl),
		eventService:         basesvc.NewBaseServiceMongo[scratchoffmodels.PackEvent](eventColl),
		slotService:          slotService,
		productService:       productService,
	}, nil
}

// appendEvent ghi một dòng lịch sử cho pack. Lỗi ghi event không
// rollback thao tác chính, chỉ log lại.
func (s *PackService) appendEvent(ctx context.Context, packID primitive.ObjectID, userID primitive.ObjectID, eventType, note, fileID string) {
	_, err := s.eventService.InsertOne(ctx, scratchoffmodels.PackEvent{
		PackID:          packID,
		EventType:       eventType,
		CreatedByUserID: userID,
		Note:            note,
		FileID:          fileID,
	})
	if err != nil {
		logger.GetAppLogger().WithError(err).
			WithField("pack_id", packID.Hex()).
			WithField("event_type", eventType).
			Error("Không ghi được sự kiện pack")
	}
}

// ActivatePack kích hoạt pack mới trên slot:
// tra mệnh giá ra kích thước pack, suy ra số vé kết thúc, rồi chiếm slot
// bằng CAS — slot đang bận trả về Conflict và không ghi gì cả.
func (s *PackService) ActivatePack(ctx context.Context, storeID primitive.ObjectID, userID primitive.ObjectID, input *scratchoffdto.PackActivateInput) (*scratchoffmodels.Pack, error) {
	slotID, err := primitive.ObjectIDFromHex(input.SlotID)
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, "slotId không đúng định dạng", common.StatusBadRequest, err)
	}
	productID, err := primitive.ObjectIDFromHex(input.ProductID)
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, "productId không đúng định dạng", common.StatusBadRequest, err)
	}
	if input.ReceiptFileID == "" {
		return nil, common.ErrReceiptRequired
	}

	slot, err := s.slotService.FindOneById(ctx, slotID)
	if err != nil {
		return nil, common.NewNotFoundError("slot", input.SlotID)
	}
	if slot.StoreID != storeID {
		return nil, common.ErrNoPermission
	}

	product, err := s.productService.FindOneById(ctx, productID)
	if err != nil {
		return nil, common.NewNotFoundError("sản phẩm", input.ProductID)
	}
	packSize, err := PackSizeForPrice(product.Price)
	if err != nil {
		return nil, err
	}
	endTicket, err := ComputeEndTicket(input.StartTicket, packSize)
	if err != nil {
		return nil, err
	}

	pack, err := s.InsertOne(ctx, scratchoffmodels.Pack{
		StoreID:           storeID,
		SlotID:            slotID,
		ProductID:         productID,
		PackCode:          input.PackCode,
		StartTicket:       input.StartTicket,
		EndTicket:         endTicket,
		Status:            scratchoffmodels.PackStatusActive,
		ActivatedByUserID: userID,
		ActivatedAt:       time.Now().UnixMilli(),
		ReceiptFileID:     input.ReceiptFileID,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.slotService.ClaimSlotForPack(ctx, slotID, pack.ID); err != nil {
		// Slot đã bị pack khác chiếm: pack vừa ghi chuyển sang ended,
		// không được xóa vì collection no-delete.
		_, endErr := s.UpdateById(ctx, pack.ID, &basesvc.UpdateData{Set: map[string]interface{}{
			"status": scratchoffmodels.PackStatusEnded,
		}})
		if endErr != nil {
			logger.GetAppLogger().WithError(endErr).
				WithField("pack_id", pack.ID.Hex()).
				Error("Không đánh dấu được pack thua CAS là ended")
		}
		return nil, err
	}

	s.appendEvent(ctx, pack.ID, userID, scratchoffmodels.PackEventActivated,
		fmt.Sprintf("Kích hoạt trên slot %d, vé %s-%s", slot.SlotNumber, input.StartTicket, endTicket),
		input.ReceiptFileID)

	logger.GetAppLogger().
		WithField("pack_id", pack.ID.Hex()).
		WithField("slot_id", slotID.Hex()).
		WithField("store_id", storeID.Hex()).
		Info("Đã kích hoạt pack")
	return &pack, nil
}

// ReturnPack trả pack về đại lý. Bắt buộc có file biên nhận.
// Chỉ pack đang active mới trả được; con trỏ trên slot được gỡ nếu còn trỏ pack này.
func (s *PackService) ReturnPack(ctx context.Context, storeID primitive.ObjectID, userID primitive.ObjectID, input *scratchoffdto.PackReturnInput) (*scratchoffmodels.Pack, error) {
	if input.ReceiptFileID == "" {
		return nil, common.ErrReceiptRequired
	}
	packID, err := primitive.ObjectIDFromHex(input.PackID)
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, "packId không đúng định dạng", common.StatusBadRequest, err)
	}

	filter := bson.M{"_id": packID, "status": scratchoffmodels.PackStatusActive}
	if !storeID.IsZero() {
		filter["storeId"] = storeID
	}
	update := &basesvc.UpdateData{Set: map[string]interface{}{
		"status": scratchoffmodels.PackStatusReturned,
	}}
	pack, err := s.FindOneAndUpdate(ctx, filter, update, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewError(common.ErrCodeBusinessState,
				"Pack không tồn tại hoặc không còn ở trạng thái active", common.StatusConflict, nil)
		}
		return nil, err
	}
	pack.Status = scratchoffmodels.PackStatusReturned

	if err := s.slotService.ReleaseSlotFromPack(ctx, pack.SlotID, pack.ID); err != nil {
		logger.GetAppLogger().WithError(err).
			WithField("slot_id", pack.SlotID.Hex()).
			Error("Không gỡ được con trỏ active pack khỏi slot")
	}

	s.appendEvent(ctx, pack.ID, userID, scratchoffmodels.PackEventReturned, input.Note, input.ReceiptFileID)
	return &pack, nil
}

// CreatePackEvent ghi sự kiện vào lịch sử pack theo quyền của người gọi.
// Sự kiện ended/returned qua đường này cũng chuyển trạng thái pack và gỡ slot.
func (s *PackService) CreatePackEvent(ctx context.Context, storeID primitive.ObjectID, userID primitive.ObjectID, role string, input *scratchoffdto.PackEventCreateInput) (*scratchoffmodels.PackEvent, error) {
	if err := ValidatePackEventInput(input.EventType, input.FileID); err != nil {
		return nil, err
	}
	if !CanCreatePackEvent(role, input.EventType) {
		return nil, common.ErrNoPermission
	}
	packID, err := primitive.ObjectIDFromHex(input.PackID)
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, "packId không đúng định dạng", common.StatusBadRequest, err)
	}
	pack, err := s.FindOneById(ctx, packID)
	if err != nil {
		return nil, common.NewNotFoundError("pack", input.PackID)
	}
	if !storeID.IsZero() && pack.StoreID != storeID {
		return nil, common.ErrNoPermission
	}

	switch input.EventType {
	case scratchoffmodels.PackEventEnded, scratchoffmodels.PackEventReturned:
		if input.EventType == scratchoffmodels.PackEventReturned && input.FileID == "" {
			return nil, common.ErrReceiptRequired
		}
		if pack.Status != scratchoffmodels.PackStatusActive {
			return nil, common.NewError(common.ErrCodeBusinessState,
				"Pack không còn ở trạng thái active", common.StatusConflict, nil)
		}
		newStatus := scratchoffmodels.PackStatusEnded
		if input.EventType == scratchoffmodels.PackEventReturned {
			newStatus = scratchoffmodels.PackStatusReturned
		}
		if _, err := s.UpdateById(ctx, packID, &basesvc.UpdateData{Set: map[string]interface{}{
			"status": newStatus,
		}}); err != nil {
			return nil, err
		}
		if err := s.slotService.ReleaseSlotFromPack(ctx, pack.SlotID, pack.ID); err != nil {
			logger.GetAppLogger().WithError(err).
				WithField("slot_id", pack.SlotID.Hex()).
				Error("Không gỡ được con trỏ active pack khỏi slot")
		}
	}

	event, err := s.eventService.InsertOne(ctx, scratchoffmodels.PackEvent{
		PackID:          packID,
		EventType:       input.EventType,
		CreatedByUserID: userID,
		Note:            input.Note,
		FileID:          input.FileID,
	})
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// PackEvents liệt kê lịch sử của một pack, mới nhất trước.
func (s *PackService) PackEvents(ctx context.Context, packID primitive.ObjectID) ([]scratchoffmodels.PackEvent, error) {
	opts := mongoopts.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	events, err := s.eventService.Find(ctx, bson.M{"packId": packID}, opts)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}
	return events, nil
}

// PacksByIds nạp map id -> pack cho bước đối chiếu.
func (s *PackService) PacksByIds(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]scratchoffmodels.Pack, error) {
	result := make(map[primitive.ObjectID]scratchoffmodels.Pack, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	packs, err := s.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, nil)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}
	for _, p := range packs {
		result[p.ID] = p
	}
	return result, nil
}
