package main

import (
	"context"

	"scratch_portal/config"
	authmodels "scratch_portal/internal/api/auth/models"
	scratchoffmodels "scratch_portal/internal/api/scratchoff/models"
	"scratch_portal/internal/database"
	"scratch_portal/internal/global"

	"github.com/sirupsen/logrus"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	global.MongoDB_ColNames.Users = "auth_users"

	// Module Scratchoff (tiền tố scratchoff_)
	global.MongoDB_ColNames.ScratchoffSlots = "scratchoff_slots"
	global.MongoDB_ColNames.ScratchoffProducts = "scratchoff_products"
	global.MongoDB_ColNames.ScratchoffPacks = "scratchoff_packs"
	global.MongoDB_ColNames.ScratchoffPackEvents = "scratchoff_pack_events"
	global.MongoDB_ColNames.ScratchoffSnapshots = "scratchoff_snapshots"
	global.MongoDB_ColNames.ScratchoffSnapshotItems = "scratchoff_snapshot_items"
	global.MongoDB_ColNames.ScratchoffCalculations = "scratchoff_calculations"

	logrus.Info("Initialized collection names") // Ghi log thông báo đã khởi tạo tên các collection
}

// Hàm khởi tạo validator (dùng global.InitValidator để đăng ký custom validators: no_xss, ticket_number, ...)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator") // Ghi log thông báo đã khởi tạo validator
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil") // Ghi log lỗi nếu khởi tạo cấu hình thất bại
	}
	logrus.Info("Initialized server config") // Ghi log thông báo đã khởi tạo cấu hình server
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err) // Ghi log lỗi nếu kết nối database thất bại
	}
	logrus.Info("Connected to MongoDB") // Ghi log thông báo đã kết nối database thành công

	// Khởi tạo các db và collections nếu chưa có
	database.EnsureDatabaseAndCollections(global.MongoDB_Session)
	logrus.Info("Ensured database and collections") // Ghi log thông báo đã đảm bảo database và các collection

	// Khơi tạo các index cho các collection
	dbName := global.MongoDB_ServerConfig.MongoDB_DBName_Data
	db := global.MongoDB_Session.Database(dbName)
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Users), authmodels.User{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.ScratchoffSlots), scratchoffmodels.Slot{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.ScratchoffProducts), scratchoffmodels.Product{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.ScratchoffPacks), scratchoffmodels.Pack{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.ScratchoffPackEvents), scratchoffmodels.PackEvent{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.ScratchoffSnapshots), scratchoffmodels.Snapshot{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.ScratchoffSnapshotItems), scratchoffmodels.SnapshotItem{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.ScratchoffCalculations), scratchoffmodels.Calculation{})

	// Các index không biểu diễn được bằng tag (partial unique cho snapshot theo ca, ...)
	if err := database.CreateScratchoffAdditionalIndexes(context.TODO(), db); err != nil {
		logrus.Errorf("Failed to create scratchoff additional indexes: %v", err)
	}
}
