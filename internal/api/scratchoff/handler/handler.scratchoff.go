// Package scratchoffhdl - handler HTTP cho domain vé số cào:
// slot, sản phẩm, pack, snapshot kiểm kê và đối soát theo ca.
package scratchoffhdl

import (
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"scratch_portal/internal/common"
)

// resolveStoreID xác định cửa hàng đang thao tác: ưu tiên store context
// từ middleware, admin chưa chọn cửa hàng có thể truyền storeId trong body.
func resolveStoreID(c fiber.Ctx, inputStoreID string) (primitive.ObjectID, error) {
	if storeIDStr, ok := c.Locals("store_id").(string); ok && storeIDStr != "" {
		storeID, err := primitive.ObjectIDFromHex(storeIDStr)
		if err == nil {
			return storeID, nil
		}
	}
	if inputStoreID != "" {
		if role, _ := c.Locals("user_role").(string); role != "admin" {
			return primitive.NilObjectID, common.ErrNoPermission
		}
		storeID, err := primitive.ObjectIDFromHex(inputStoreID)
		if err != nil {
			return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat,
				"storeId không đúng định dạng", common.StatusBadRequest, err)
		}
		return storeID, nil
	}
	return primitive.NilObjectID, common.NewError(common.ErrCodeValidationInput,
		"Thiếu thông tin cửa hàng", common.StatusBadRequest, nil)
}

// currentUserID lấy id người dùng đã xác thực từ context.
func currentUserID(c fiber.Ctx) primitive.ObjectID {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok {
		return primitive.NilObjectID
	}
	userID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		return primitive.NilObjectID
	}
	return userID
}

// currentRole lấy role của người dùng đã xác thực từ context.
func currentRole(c fiber.Ctx) string {
	role, _ := c.Locals("user_role").(string)
	return role
}
