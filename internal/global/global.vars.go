package global

import (
	"scratch_portal/config"
	"scratch_portal/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	Users string // Tên collection cho người dùng

	// Scratch-off Inventory Collections
	ScratchoffSlots         string // Tên collection cho slot máy bán vé số cào
	ScratchoffProducts      string // Tên collection cho sản phẩm vé số cào
	ScratchoffPacks         string // Tên collection cho pack vé số cào
	ScratchoffPackEvents    string // Tên collection cho lịch sử sự kiện pack
	ScratchoffSnapshots     string // Tên collection cho snapshot kiểm kê
	ScratchoffSnapshotItems string // Tên collection cho từng dòng snapshot theo slot
	ScratchoffCalculations  string // Tên collection cho kết quả đối soát theo ca
}

// Các biến toàn cục
var Validate *validator.Validate               // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client              // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration // Cấu hình của server
var MongoDB_ColNames MongoDB_CollectionName    // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases
