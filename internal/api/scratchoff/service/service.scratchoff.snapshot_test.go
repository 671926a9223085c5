// Package scratchoffsvc - Test chuẩn hóa dòng snapshot.
package scratchoffsvc

import (
	"errors"
	"testing"

	scratchoffdto "scratch_portal/internal/api/scratchoff/dto"
	scratchoffmodels "scratch_portal/internal/api/scratchoff/models"
	"scratch_portal/internal/common"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalizeItems_TrimVaBoDongRong(t *testing.T) {
	slotA := primitive.NewObjectID()
	slotB := primitive.NewObjectID()

	items, err := normalizeItems([]scratchoffdto.SnapshotItemInput{
		{SlotID: slotA.Hex(), TicketValue: "  0120 "},
		{SlotID: slotB.Hex(), TicketValue: "   "},
	})
	if err != nil {
		t.Fatalf("normalizeItems trả về lỗi: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Dòng giá trị rỗng phải bị bỏ, được %d dòng", len(items))
	}
	if items[0].SlotID != slotA || items[0].TicketValue != "0120" {
		t.Errorf("Dòng phải được trim, được %+v", items[0])
	}
}

func TestNormalizeItems_SlotLapBiTuChoi(t *testing.T) {
	slotID := primitive.NewObjectID()
	_, err := normalizeItems([]scratchoffdto.SnapshotItemInput{
		{SlotID: slotID.Hex(), TicketValue: "0001"},
		{SlotID: slotID.Hex(), TicketValue: "0002"},
	})
	if err == nil {
		t.Error("Slot xuất hiện hai lần trong cùng snapshot phải bị từ chối")
	}
}

func TestNormalizeItems_ToanDongRongBiTuChoi(t *testing.T) {
	_, err := normalizeItems([]scratchoffdto.SnapshotItemInput{
		{SlotID: primitive.NewObjectID().Hex(), TicketValue: ""},
	})
	if err == nil {
		t.Error("Snapshot không còn dòng nào sau chuẩn hóa phải bị từ chối")
	}
}

func TestNormalizeItems_SlotIdHongBiTuChoi(t *testing.T) {
	_, err := normalizeItems([]scratchoffdto.SnapshotItemInput{
		{SlotID: "not-hex", TicketValue: "0001"},
	})
	if err == nil {
		t.Error("slotId không phải hex phải bị từ chối")
	}
}

func TestPickEffectiveStart_UuTienSnapshotDauCa(t *testing.T) {
	shiftStart := scratchoffmodels.Snapshot{
		ID:           primitive.NewObjectID(),
		SnapshotType: scratchoffmodels.SnapshotTypeStart,
		CreatedAt:    1000,
	}
	baseline := scratchoffmodels.Snapshot{
		ID:         primitive.NewObjectID(),
		IsBaseline: true,
		CreatedAt:  2000,
	}

	// Có snapshot đầu ca thì dùng nó, kể cả khi baseline mới hơn
	picked, err := PickEffectiveStart(&shiftStart, []scratchoffmodels.Snapshot{baseline})
	if err != nil {
		t.Fatalf("không mong đợi lỗi, nhận được %v", err)
	}
	if picked.ID != shiftStart.ID {
		t.Error("phải ưu tiên snapshot đầu ca trước baseline")
	}
}

func TestPickEffectiveStart_BaselineMoiNhatThang(t *testing.T) {
	older := scratchoffmodels.Snapshot{ID: primitive.NewObjectID(), IsBaseline: true, CreatedAt: 1000}
	newer := scratchoffmodels.Snapshot{ID: primitive.NewObjectID(), IsBaseline: true, CreatedAt: 3000}
	middle := scratchoffmodels.Snapshot{ID: primitive.NewObjectID(), IsBaseline: true, CreatedAt: 2000}

	picked, err := PickEffectiveStart(nil, []scratchoffmodels.Snapshot{older, newer, middle})
	if err != nil {
		t.Fatalf("không mong đợi lỗi, nhận được %v", err)
	}
	if picked.ID != newer.ID {
		t.Error("không có snapshot đầu ca thì baseline mới nhất phải thắng")
	}
}

func TestPickEffectiveStart_KhongCoMocNaoBaoLoi(t *testing.T) {
	_, err := PickEffectiveStart(nil, nil)
	if !errors.Is(err, common.ErrBaselineRequired) {
		t.Errorf("mong đợi ErrBaselineRequired, nhận được %v", err)
	}
}
