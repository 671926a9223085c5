// Package database - Index bổ sung cho scratch-off (partial, compound) không thể định nghĩa qua model tags.
package database

import (
	"context"
	"strings"

	"scratch_portal/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateScratchoffAdditionalIndexes tạo các index bổ sung cho scratch-off.
// Gọi sau CreateIndexes cho từng collection scratch-off.
//
// Index quan trọng nhất là unique (shiftReportId, snapshotType) dạng partial:
// mỗi ca chỉ có tối đa một snapshot mỗi loại, hai submission đồng thời từ cùng
// một thiết bị sẽ có đúng một cái thành công. Baseline không gắn với ca nào
// (không có shiftReportId) nên phải dùng partial filter để loại khỏi ràng buộc.
func CreateScratchoffAdditionalIndexes(ctx context.Context, db *mongo.Database) error {
	// scratchoff_snapshots: unique (shiftReportId, snapshotType) - chỉ áp dụng cho snapshot có shiftReportId
	snapshots := db.Collection(global.MongoDB_ColNames.ScratchoffSnapshots)
	if _, err := snapshots.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "shiftReportId", Value: 1},
			{Key: "snapshotType", Value: 1},
		},
		Options: options.Index().
			SetName("snapshot_shift_type_unique").
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"shiftReportId": bson.M{"$exists": true}}),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// scratchoff_snapshots: (storeId, isBaseline, createdAt) — tìm baseline mới nhất của cửa hàng
	if _, err := snapshots.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "storeId", Value: 1},
			{Key: "isBaseline", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("snapshot_store_baseline_created"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// scratchoff_snapshot_items: unique (snapshotId, slotId) — mỗi snapshot tối đa một dòng mỗi slot
	items := db.Collection(global.MongoDB_ColNames.ScratchoffSnapshotItems)
	if _, err := items.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "snapshotId", Value: 1},
			{Key: "slotId", Value: 1},
		},
		Options: options.Index().SetName("snapshot_item_snapshot_slot_unique").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// scratchoff_packs: (slotId, status) — tra cứu pack đang hoạt động theo slot
	packs := db.Collection(global.MongoDB_ColNames.ScratchoffPacks)
	if _, err := packs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "slotId", Value: 1},
			{Key: "status", Value: 1},
		},
		Options: options.Index().SetName("pack_slot_status"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
