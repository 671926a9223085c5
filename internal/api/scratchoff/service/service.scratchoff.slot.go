// Package scratchoffsvc - Service slot máy bán vé số cào (scratchoff_slots).
package scratchoffsvc

import (
	"context"
	"errors"
	"fmt"

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

// SlotService xử lý slot: tạo, khởi tạo hàng loạt, patch, và con trỏ active pack.
type SlotService struct {
	*basesvc.BaseServiceMongoImpl[scratchoffmodels.Slot]
}

// NewSlotService tạo SlotService mới.
func NewSlotService() (*SlotService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ScratchoffSlots)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.ScratchoffSlots, common.ErrNotFound)
	}
	return &SlotService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[scratchoffmodels.Slot](coll),
	}, nil
}

// existingSlotNumbers lấy danh sách số slot hiện có của cửa hàng.
func (s *SlotService) existingSlotNumbers(ctx context.Context, storeID primitive.ObjectID) ([]int, error) {
	slots, err := s.Find(ctx, bson.M{"storeId": storeID}, nil)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}
	numbers := make([]int, 0, len(slots))
	for _, slot := range slots {
		numbers = append(numbers, slot.SlotNumber)
	}
	return numbers, nil
}

// CreateSlot tạo slot mới cho cửa hàng.
// slotNumber 0 nghĩa là tự lấy số trống nhỏ nhất; số đã dùng trả về Conflict,
// số vượt quá MaxSlots trả về lỗi validation.
func (s *SlotService) CreateSlot(ctx context.Context, storeID primitive.ObjectID, input *scratchoffdto.SlotCreateInput) (*scratchoffmodels.Slot, error) {
	slotNumber := input.SlotNumber
	if slotNumber > scratchoffmodels.MaxSlots {
		return nil, common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Số slot tối đa là %d", scratchoffmodels.MaxSlots), common.StatusBadRequest, nil)
	}
	if slotNumber == 0 {
		existing, err := s.existingSlotNumbers(ctx, storeID)
		if err != nil {
			return nil, err
		}
		slotNumber, err = NextFreeSlotNumber(existing, scratchoffmodels.MaxSlots)
		if err != nil {
			return nil, err
		}
	}

	slot := scratchoffmodels.Slot{
		StoreID:    storeID,
		SlotNumber: slotNumber,
		Label:      input.Label,
		IsActive:   true,
	}
	if input.DefaultProductID != "" {
		productID, err := primitive.ObjectIDFromHex(input.DefaultProductID)
		if err != nil {
			return nil, common.NewError(common.ErrCodeValidationFormat, "defaultProductId không đúng định dạng", common.StatusBadRequest, err)
		}
		slot.DefaultProductID = &productID
	}

	created, err := s.InsertOne(ctx, slot)
	if err != nil {
		// Unique index (storeId, slotNumber) chặn số trùng, kể cả hai request đồng thời
		if errors.Is(err, common.ErrMongoDuplicate) {
			return nil, common.ErrSlotNumberTaken
		}
		return nil, err
	}
	return &created, nil
}

// InitSlots lấp các số slot còn thiếu 1..MaxSlots cho cửa hàng.
// Chạy lại trên cửa hàng đã đủ slot không tạo gì; slot hiện có không bị đụng tới.
func (s *SlotService) InitSlots(ctx context.Context, storeID primitive.ObjectID) ([]scratchoffmodels.Slot, error) {
	existing, err := s.existingSlotNumbers(ctx, storeID)
	if err != nil {
		return nil, err
	}
	missing := PlanMissingSlotNumbers(existing, scratchoffmodels.MaxSlots)
	if len(missing) > 0 {
		newSlots := make([]scratchoffmodels.Slot, 0, len(missing))
		for _, n := range missing {
			newSlots = append(newSlots, scratchoffmodels.Slot{
				StoreID:    storeID,
				SlotNumber: n,
				IsActive:   true,
			})
		}
		if _, err := s.InsertMany(ctx, newSlots); err != nil {
			return nil, err
		}
		logger.GetAppLogger().WithField("store_id", storeID.Hex()).
			Infof("InitSlots: đã tạo %d slot còn thiếu", len(missing))
	}

	opts := mongoopts.Find().SetSort(bson.D{{Key: "slotNumber", Value: 1}})
	return s.Find(ctx, bson.M{"storeId": storeID}, opts)
}

// BuildSlotPatch dựng update document từ patch input.
// Field không truyền giữ nguyên; defaultProductId truyền null (hoặc chuỗi
// rỗng) nghĩa là xóa default product bằng $unset.
func BuildSlotPatch(input *scratchoffdto.SlotUpdateInput) (*basesvc.UpdateData, error) {
	patch := &basesvc.UpdateData{Set: map[string]interface{}{}}
	if input.Label != nil {
		patch.Set["label"] = *input.Label
	}
	if input.IsActive != nil {
		patch.Set["isActive"] = *input.IsActive
	}
	if input.DefaultProductID.Present {
		if input.DefaultProductID.Null || input.DefaultProductID.Value == "" {
			patch.Unset = map[string]interface{}{"defaultProductId": ""}
		} else {
			productID, err := primitive.ObjectIDFromHex(input.DefaultProductID.Value)
			if err != nil {
				return nil, common.NewError(common.ErrCodeValidationFormat, "defaultProductId không đúng định dạng", common.StatusBadRequest, err)
			}
			patch.Set["defaultProductId"] = productID
		}
	}
	if len(patch.Set) == 0 && len(patch.Unset) == 0 {
		return nil, common.ErrInvalidInput
	}
	return patch, nil
}

// UpdateSlot áp patch lên slot. Patch rỗng trả về lỗi validation.
func (s *SlotService) UpdateSlot(ctx context.Context, slotID primitive.ObjectID, input *scratchoffdto.SlotUpdateInput) (*scratchoffmodels.Slot, error) {
	patch, err := BuildSlotPatch(input)
	if err != nil {
		return nil, err
	}
	updated, err := s.UpdateById(ctx, slotID, patch)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewNotFoundError("slot", slotID.Hex())
		}
		return nil, err
	}
	return &updated, nil
}

// ClaimSlotForPack gắn pack vào slot bằng compare-and-swap:
// chỉ thành công khi slot chưa có active pack. Hai kích hoạt đồng thời trên
// cùng slot sẽ có đúng một cái thắng, cái còn lại nhận ErrActivePackExists.
func (s *SlotService) ClaimSlotForPack(ctx context.Context, slotID primitive.ObjectID, packID primitive.ObjectID) (*scratchoffmodels.Slot, error) {
	filter := bson.M{
		"_id": slotID,
		"$or": []bson.M{
			{"activePackId": nil},
			{"activePackId": bson.M{"$exists": false}},
		},
	}
	update := &basesvc.UpdateData{Set: map[string]interface{}{
		"activePackId": packID,
	}}
	opts := mongoopts.FindOneAndUpdate().SetReturnDocument(mongoopts.After)
	slot, err := s.FindOneAndUpdate(ctx, filter, update, opts)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Phân biệt slot không tồn tại với slot đang bận
			if _, findErr := s.FindOneById(ctx, slotID); findErr != nil {
				return nil, common.NewNotFoundError("slot", slotID.Hex())
			}
			return nil, common.ErrActivePackExists
		}
		return nil, err
	}
	return &slot, nil
}

// ReleaseSlotFromPack xóa con trỏ active pack, nhưng chỉ khi nó còn trỏ
// đúng pack này — pack khác đã chiếm slot thì không đụng tới.
func (s *SlotService) ReleaseSlotFromPack(ctx context.Context, slotID primitive.ObjectID, packID primitive.ObjectID) error {
	filter := bson.M{"_id": slotID, "activePackId": packID}
	update := &basesvc.UpdateData{Unset: map[string]interface{}{
		"activePackId": "",
	}}
	_, err := s.UpdateOne(ctx, filter, update, nil)
	if err != nil && errors.Is(err, common.ErrNotFound) {
		// Con trỏ đã trỏ pack khác hoặc đã trống, coi như xong
		return nil
	}
	return err
}

// ActivePackBySlot trả về map slotId -> packId đang hoạt động của cửa hàng.
// Dùng cho phát hiện rollover khi nộp snapshot kết ca.
func (s *SlotService) ActivePackBySlot(ctx context.Context, storeID primitive.ObjectID) (map[primitive.ObjectID]primitive.ObjectID, map[primitive.ObjectID]int, error) {
	slots, err := s.Find(ctx, bson.M{"storeId": storeID}, nil)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, nil, err
	}
	activeBySlot := make(map[primitive.ObjectID]primitive.ObjectID)
	numberBySlot := make(map[primitive.ObjectID]int, len(slots))
	for _, slot := range slots {
		numberBySlot[slot.ID] = slot.SlotNumber
		if slot.ActivePackID != nil {
			activeBySlot[slot.ID] = *slot.ActivePackID
		}
	}
	return activeBySlot, numberBySlot, nil
}
