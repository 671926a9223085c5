// Package scratchoffsvc - Test patch builder của slot.
package scratchoffsvc

import (
	"encoding/json"
	"errors"
	"testing"

	scratchoffdto "scratch_portal/internal/api/scratchoff/dto"
	"scratch_portal/internal/common"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func optStr(s string) scratchoffdto.OptionalString {
	return scratchoffdto.OptionalString{Present: true, Value: s}
}

func optNull() scratchoffdto.OptionalString {
	return scratchoffdto.OptionalString{Present: true, Null: true}
}

func TestBuildSlotPatch_TruongKhongTruyenGiuNguyen(t *testing.T) {
	patch, err := BuildSlotPatch(&scratchoffdto.SlotUpdateInput{Label: strPtr("Quầy 1")})
	if err != nil {
		t.Fatalf("BuildSlotPatch trả về lỗi: %v", err)
	}
	if len(patch.Set) != 1 || patch.Set["label"] != "Quầy 1" {
		t.Errorf("Set = %v, muốn chỉ có label", patch.Set)
	}
	if len(patch.Unset) != 0 {
		t.Errorf("Không truyền defaultProductId thì không được Unset, được %v", patch.Unset)
	}
}

func TestBuildSlotPatch_NullXoaDefaultProduct(t *testing.T) {
	patch, err := BuildSlotPatch(&scratchoffdto.SlotUpdateInput{DefaultProductID: optNull()})
	if err != nil {
		t.Fatalf("BuildSlotPatch trả về lỗi: %v", err)
	}
	if _, ok := patch.Unset["defaultProductId"]; !ok {
		t.Errorf("defaultProductId null phải thành $unset, được Set=%v Unset=%v", patch.Set, patch.Unset)
	}
}

func TestBuildSlotPatch_ChuoiRongXoaDefaultProduct(t *testing.T) {
	patch, err := BuildSlotPatch(&scratchoffdto.SlotUpdateInput{DefaultProductID: optStr("")})
	if err != nil {
		t.Fatalf("BuildSlotPatch trả về lỗi: %v", err)
	}
	if _, ok := patch.Unset["defaultProductId"]; !ok {
		t.Errorf("defaultProductId rỗng phải thành $unset, được Set=%v Unset=%v", patch.Set, patch.Unset)
	}
}

func TestBuildSlotPatch_GanDefaultProduct(t *testing.T) {
	productID := primitive.NewObjectID()
	patch, err := BuildSlotPatch(&scratchoffdto.SlotUpdateInput{
		DefaultProductID: optStr(productID.Hex()),
		IsActive:         boolPtr(false),
	})
	if err != nil {
		t.Fatalf("BuildSlotPatch trả về lỗi: %v", err)
	}
	if patch.Set["defaultProductId"] != productID {
		t.Errorf("defaultProductId = %v, muốn %v", patch.Set["defaultProductId"], productID)
	}
	if patch.Set["isActive"] != false {
		t.Errorf("isActive = %v, muốn false", patch.Set["isActive"])
	}
}

func TestBuildSlotPatch_PatchRongBiTuChoi(t *testing.T) {
	if _, err := BuildSlotPatch(&scratchoffdto.SlotUpdateInput{}); !errors.Is(err, common.ErrInvalidInput) {
		t.Errorf("Patch rỗng phải trả về ErrInvalidInput, được: %v", err)
	}
}

func TestBuildSlotPatch_IdHongBiTuChoi(t *testing.T) {
	if _, err := BuildSlotPatch(&scratchoffdto.SlotUpdateInput{DefaultProductID: optStr("xyz")}); err == nil {
		t.Error("defaultProductId không phải hex phải bị từ chối")
	}
}

func TestSlotUpdateInput_JSONNullLaXoa(t *testing.T) {
	// Ba trạng thái JSON của defaultProductId phải phân biệt được sau decode
	var untouched scratchoffdto.SlotUpdateInput
	if err := json.Unmarshal([]byte(`{"label":"Quầy 1"}`), &untouched); err != nil {
		t.Fatalf("unmarshal lỗi: %v", err)
	}
	if untouched.DefaultProductID.Present {
		t.Error("không truyền defaultProductId thì Present phải là false")
	}

	var cleared scratchoffdto.SlotUpdateInput
	if err := json.Unmarshal([]byte(`{"defaultProductId":null}`), &cleared); err != nil {
		t.Fatalf("unmarshal lỗi: %v", err)
	}
	if !cleared.DefaultProductID.Present || !cleared.DefaultProductID.Null {
		t.Errorf("defaultProductId null phải decode thành Present+Null, được %+v", cleared.DefaultProductID)
	}

	productID := primitive.NewObjectID()
	var assigned scratchoffdto.SlotUpdateInput
	if err := json.Unmarshal([]byte(`{"defaultProductId":"`+productID.Hex()+`"}`), &assigned); err != nil {
		t.Fatalf("unmarshal lỗi: %v", err)
	}
	if !assigned.DefaultProductID.Present || assigned.DefaultProductID.Null || assigned.DefaultProductID.Value != productID.Hex() {
		t.Errorf("defaultProductId có giá trị phải decode thành Present+Value, được %+v", assigned.DefaultProductID)
	}
}
