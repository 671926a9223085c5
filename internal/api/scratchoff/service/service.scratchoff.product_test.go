package scratchoffsvc

import (
	"testing"

	scratchoffdto "scratch_portal/internal/api/scratchoff/dto"
)

func floatPtr(f float64) *float64 { return &f }

func TestBuildProductPatchChiGia(t *testing.T) {
	// Upsert chỉ có giá: không được đụng tới name hay isActive
	patch := BuildProductPatch(&scratchoffdto.ProductUpsertInput{
		ID:    "665f1f77bcf86cd799439011",
		Price: floatPtr(10),
	})
	if got := patch.Set["price"]; got != float64(10) {
		t.Errorf("price phải là 10, nhận được %v", got)
	}
	if _, ok := patch.Set["name"]; ok {
		t.Error("name rỗng không được đưa vào patch")
	}
	if _, ok := patch.Set["isActive"]; ok {
		t.Error("isActive nil không được đưa vào patch")
	}
}

func TestBuildProductPatchDayDu(t *testing.T) {
	patch := BuildProductPatch(&scratchoffdto.ProductUpsertInput{
		ID:       "665f1f77bcf86cd799439011",
		Name:     "Lucky 7s",
		Price:    floatPtr(5),
		IsActive: boolPtr(false),
	})
	if got := patch.Set["name"]; got != "Lucky 7s" {
		t.Errorf("name phải là Lucky 7s, nhận được %v", got)
	}
	if got := patch.Set["price"]; got != float64(5) {
		t.Errorf("price phải là 5, nhận được %v", got)
	}
	if got := patch.Set["isActive"]; got != false {
		t.Errorf("isActive phải là false, nhận được %v", got)
	}
}

func TestValidatePrice(t *testing.T) {
	cases := []struct {
		name    string
		price   float64
		wantErr bool
	}{
		{"giá hợp lệ", 5, false},
		{"giá 0", 0, false},
		{"giá âm", -1, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validatePrice(tc.price)
			if tc.wantErr && err == nil {
				t.Error("mong đợi lỗi nhưng nhận được nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("không mong đợi lỗi, nhận được %v", err)
			}
		})
	}
}
