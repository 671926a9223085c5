package middleware

import (
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "scratch_portal/internal/api/auth/models"
	"scratch_portal/internal/common"
)

// StoreContextMiddleware middleware để quản lý store context
// - Đọc X-Store-ID từ header để xác định cửa hàng đang thao tác
// - Admin được phép chuyển sang bất kỳ cửa hàng nào
// - Manager và associate bị khóa vào cửa hàng của chính họ
// - Không có header thì dùng cửa hàng mặc định của user
// Lưu store_id vào context để handler áp filter theo cửa hàng.
func StoreContextMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Lấy thông tin user từ context (đã được set bởi AuthMiddleware)
		userRole, _ := c.Locals("user_role").(string)
		userStoreID, _ := c.Locals("user_store_id").(string)

		requestedStoreID := c.Get("X-Store-ID")

		if requestedStoreID != "" {
			if _, err := primitive.ObjectIDFromHex(requestedStoreID); err != nil {
				HandleErrorResponse(c, common.NewError(
					common.ErrCodeValidationFormat,
					"X-Store-ID không đúng định dạng",
					common.StatusBadRequest,
					nil,
				))
				return nil
			}

			// Người dùng thường chỉ được thao tác trên cửa hàng của mình
			if userRole != models.RoleAdmin && requestedStoreID != userStoreID {
				HandleErrorResponse(c, common.NewError(
					common.ErrCodeAuthRole,
					"Không có quyền thao tác trên cửa hàng khác",
					common.StatusForbidden,
					nil,
				))
				return nil
			}

			c.Locals("store_id", requestedStoreID)
			return c.Next()
		}

		// Không có header: dùng cửa hàng mặc định của user.
		// Admin không có cửa hàng mặc định thì thao tác trên toàn hệ thống.
		if userStoreID != "" {
			c.Locals("store_id", userStoreID)
			return c.Next()
		}

		if userRole != models.RoleAdmin {
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuthRole,
				"Tài khoản chưa được gán cửa hàng. Vui lòng liên hệ quản trị viên.",
				common.StatusForbidden,
				nil,
			))
			return nil
		}

		return c.Next()
	}
}
