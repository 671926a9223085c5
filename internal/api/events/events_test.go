package events

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEmitDataChangedHandlerPanicKhongLanSang(t *testing.T) {
	received := make(chan DataChangeEvent, 1)

	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		if e.CollectionName == "scratchoff_products" {
			panic("handler hỏng")
		}
	})
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		if e.CollectionName == "scratchoff_products" {
			received <- e
		}
	})

	EmitDataChanged(context.Background(), DataChangeEvent{
		CollectionName: "scratchoff_products",
		Operation:      OpUpdate,
	})

	// Handler panic phải được recover, handler còn lại vẫn nhận event
	select {
	case e := <-received:
		if e.Operation != OpUpdate {
			t.Errorf("operation = %q, muốn %q", e.Operation, OpUpdate)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("handler thứ hai không nhận được event sau khi handler khác panic")
	}
}

func TestGetStoreIDFromDocument(t *testing.T) {
	type withStore struct {
		StoreID primitive.ObjectID
	}
	storeID := primitive.NewObjectID()

	if got := GetStoreIDFromDocument(withStore{StoreID: storeID}); got != storeID {
		t.Errorf("GetStoreIDFromDocument = %v, muốn %v", got, storeID)
	}
	if got := GetStoreIDFromDocument(nil); !got.IsZero() {
		t.Errorf("document nil phải trả về zero ObjectID, được %v", got)
	}
	type noStore struct{ Name string }
	if got := GetStoreIDFromDocument(noStore{Name: "x"}); !got.IsZero() {
		t.Errorf("document không có StoreID phải trả về zero ObjectID, được %v", got)
	}
}
