package main

import (
	"reflect"

	"scratch_portal/config"
	basesvc "scratch_portal/internal/api/base/service"
	"scratch_portal/internal/global"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

func InitRegistry() {

	logrus.Info("Initialized registry") // Ghi log thông báo đã khởi tạo registry

	// Khởi tạo registry và đăng ký các collections
	err := InitCollections(global.MongoDB_Session, global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to initialize collections: %v", err)
	}
	logrus.Info("Initialized collection registry")

	// Đánh dấu mức bảo vệ ghi cho các collection lịch sử
	initCollectionProtections()
}

// InitCollections khởi tạo và đăng ký các collections MongoDB.
// Danh sách tên lấy từ global.MongoDB_ColNames để không lệch với initColNames.
func InitCollections(client *mongo.Client, cfg *config.Configuration) error {
	db := client.Database(cfg.MongoDB_DBName_Data)

	colNames := []string{}
	v := reflect.ValueOf(global.MongoDB_ColNames)
	for i := 0; i < v.NumField(); i++ {
		colNames = append(colNames, v.Field(i).String())
	}

	for _, name := range colNames {
		registered, err := global.RegistryCollections.Register(name, db.Collection(name))
		if err != nil {
			logrus.Errorf("Failed to register collection %s: %v", name, err)
			return err
		}

		if registered {
			logrus.Infof("Collection %s registered successfully", name)
		} else {
			logrus.Errorf("Collection %s already registered", name)
		}

	}

	return nil
}

// initCollectionProtections khóa các collection lịch sử:
// snapshot, dòng snapshot và sự kiện pack là append-only;
// pack không bao giờ bị xóa, chỉ chuyển trạng thái.
func initCollectionProtections() {
	basesvc.MarkCollectionAppendOnly(global.MongoDB_ColNames.ScratchoffSnapshots)
	basesvc.MarkCollectionAppendOnly(global.MongoDB_ColNames.ScratchoffSnapshotItems)
	basesvc.MarkCollectionAppendOnly(global.MongoDB_ColNames.ScratchoffPackEvents)
	basesvc.MarkCollectionNoDelete(global.MongoDB_ColNames.ScratchoffPacks)
	logrus.Info("Initialized collection write protections")
}
