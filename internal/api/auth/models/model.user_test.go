package models

import (
	"reflect"
	"strings"
	"testing"

	basesvc "scratch_portal/internal/api/base/service"
	scratchoffmodels "scratch_portal/internal/api/scratchoff/models"
)

// Guard xóa user đếm sự kiện pack theo field thật trong collection;
// tên field trong tag phải khớp bson tag của PackEvent, lệch một ký tự
// là guard không bao giờ match và user nào cũng xóa được.
func TestUserRelationshipTagKhopFieldPackEvent(t *testing.T) {
	rels := basesvc.ParseRelationshipTag(reflect.TypeOf(User{}))
	if len(rels) == 0 {
		t.Fatal("User phải khai báo ít nhất một quan hệ guard xóa")
	}

	var guard *basesvc.RelationshipDefinition
	for i := range rels {
		if rels[i].CollectionName == "scratchoff_pack_events" {
			guard = &rels[i]
			break
		}
	}
	if guard == nil {
		t.Fatal("User phải có guard trên collection scratchoff_pack_events")
	}

	field, ok := reflect.TypeOf(scratchoffmodels.PackEvent{}).FieldByName("CreatedByUserID")
	if !ok {
		t.Fatal("PackEvent phải có field CreatedByUserID")
	}
	bsonName := strings.Split(field.Tag.Get("bson"), ",")[0]
	if guard.FieldName != bsonName {
		t.Errorf("guard trỏ field %q nhưng PackEvent lưu tác giả dưới %q", guard.FieldName, bsonName)
	}
}
