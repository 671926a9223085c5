// Package middleware - xác thực và phân quyền theo vai trò.
package middleware

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	models "scratch_portal/internal/api/auth/models"
	authsvc "scratch_portal/internal/api/auth/service"
	"scratch_portal/internal/common"
	"scratch_portal/internal/logger"
	"scratch_portal/internal/utility"
)

// AuthManager quản lý xác thực và phân quyền người dùng
type AuthManager struct {
	UserCRUD *authsvc.UserService
	Cache    *utility.Cache
}

var (
	authManagerInstance *AuthManager
	authManagerOnce     sync.Once
)

// GetAuthManager trả về instance duy nhất của AuthManager (singleton pattern)
func GetAuthManager() *AuthManager {
	authManagerOnce.Do(func() {
		var err error
		authManagerInstance, err = newAuthManager()
		if err != nil {
			panic(err)
		}
	})
	return authManagerInstance
}

// newAuthManager khởi tạo một instance mới của AuthManager (private constructor)
func newAuthManager() (*AuthManager, error) {
	newManager := new(AuthManager)

	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}
	newManager.UserCRUD = userService

	// Khởi tạo cache với thời gian sống 5 phút và thời gian dọn dẹp 10 phút
	newManager.Cache = utility.NewCache(5*time.Minute, 10*time.Minute)

	return newManager, nil
}

// associateAllowedActions các permission ghi mà nhân viên bán hàng được phép,
// ngoài các permission dạng ".Read".
var associateAllowedActions = map[string]bool{
	"Scratchoff.Pack.Activate":    true,
	"Scratchoff.Snapshot.Insert":  true,
	"Scratchoff.PackEvent.Insert": true,
}

// roleHasPermission kiểm tra vai trò có được thực hiện permission không.
// admin: toàn quyền. manager: mọi thao tác trừ quản trị user.
// associate: chỉ đọc cộng một số thao tác vận hành trong ca.
func roleHasPermission(role string, permission string) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleManager:
		// Quản trị tài khoản (block, set role, tạo user) chỉ dành cho admin
		if strings.HasPrefix(permission, "User.") || strings.HasPrefix(permission, "Init.") {
			return false
		}
		return true
	case models.RoleAssociate:
		if strings.HasSuffix(permission, ".Read") {
			return true
		}
		return associateAllowedActions[permission]
	}
	return false
}

// findUserByToken tìm user theo token, có cache để giảm truy vấn lặp lại.
func (am *AuthManager) findUserByToken(token string) (models.User, error) {
	cacheKey := "user_token:" + token
	if cached, found := am.Cache.Get(cacheKey); found {
		return cached.(models.User), nil
	}

	// Ưu tiên query field "token" (token mới nhất) trước vì nó được cập nhật mỗi lần login
	// Nếu không tìm thấy, query trong array "tokens" (tokens theo hwid)
	user, err := am.UserCRUD.FindOne(context.Background(), bson.M{"token": token}, nil)
	if err != nil {
		user, err = am.UserCRUD.FindOne(context.Background(), bson.M{"tokens.jwtToken": token}, nil)
		if err != nil {
			return models.User{}, err
		}
	}

	am.Cache.Set(cacheKey, user)
	return user, nil
}

// AuthMiddleware middleware xác thực cho Fiber.
// requirePermission rỗng nghĩa là chỉ cần đăng nhập, không cần quyền cụ thể.
func AuthMiddleware(requirePermission string) fiber.Handler {
	// Sử dụng singleton instance của AuthManager
	authManager := GetAuthManager()

	return func(c fiber.Ctx) error {
		// Lấy token từ header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("❌ [AUTH] Missing Authorization header")
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		// Kiểm tra định dạng token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		token := parts[1]

		user, err := authManager.findUserByToken(token)
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Warn("❌ [AUTH] Token not found in database")
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		// Kiểm tra user có bị block không
		if user.IsBlock {
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuth,
				"Tài khoản đã bị khóa: "+user.BlockNote,
				common.StatusForbidden,
				nil,
			))
			return nil
		}

		// Lưu thông tin user vào context
		c.Locals("user_id", user.ID.Hex())
		c.Locals("user", user)
		c.Locals("user_role", user.Role)
		if !user.StoreID.IsZero() {
			c.Locals("user_store_id", user.StoreID.Hex())
		}

		// Nếu không yêu cầu permission cụ thể, chỉ cần xác thực là đủ
		if requirePermission == "" {
			return c.Next()
		}

		if !roleHasPermission(user.Role, requirePermission) {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"user_id":             user.ID.Hex(),
				"user_role":           user.Role,
				"required_permission": requirePermission,
				"path":                c.Path(),
			}).Warn("❌ [AUTH] User does not have required permission")
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuthRole,
				"Không có quyền thực hiện thao tác này. Vui lòng liên hệ quản trị viên.",
				common.StatusForbidden,
				nil,
			))
			return nil
		}

		// Lưu permission name vào context để handler sử dụng
		c.Locals("permission_name", requirePermission)
		return c.Next()
	}
}
