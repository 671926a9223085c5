// Package authsvc - service quản trị (Admin): block user, gán vai trò.
package authsvc

import (
	"context"
	"fmt"

	models "scratch_portal/internal/api/auth/models"
	basesvc "scratch_portal/internal/api/base/service"
	"scratch_portal/internal/common"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminService là cấu trúc chứa các phương thức liên quan đến admin
type AdminService struct {
	userService *UserService
}

// NewAdminService tạo mới AdminService
func NewAdminService() (*AdminService, error) {
	userService, err := NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	return &AdminService{
		userService: userService,
	}, nil
}

// SetRole gán vai trò (và cửa hàng nếu có) cho User dựa trên Email
func (s *AdminService) SetRole(ctx context.Context, email string, role string, storeID string) (*models.User, error) {
	if !models.IsValidRole(role) {
		return nil, common.NewError(common.ErrCodeValidationInput, "Vai trò không hợp lệ: "+role, common.StatusBadRequest, nil)
	}

	filter := bson.M{"email": email}
	user, err := s.userService.FindOne(ctx, filter, nil)
	if err != nil {
		return nil, err
	}

	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{"role": role},
	}
	if storeID != "" {
		objID, err := primitive.ObjectIDFromHex(storeID)
		if err != nil {
			return nil, common.NewError(common.ErrCodeValidationFormat, "storeId không đúng định dạng", common.StatusBadRequest, err)
		}
		updateData.Set["storeId"] = objID
	}

	updatedUser, err := s.userService.UpdateById(ctx, user.ID, updateData)
	if err != nil {
		return nil, err
	}
	return &updatedUser, nil
}

// BlockUser chặn hoặc bỏ chặn User dựa trên Email và trạng thái Block.
// Token hiện có bị thu hồi khi chặn để phiên đang đăng nhập mất hiệu lực ngay.
func (s *AdminService) BlockUser(ctx context.Context, email string, block bool, note string) (*models.User, error) {
	filter := bson.M{"email": email}
	user, err := s.userService.FindOne(ctx, filter, nil)
	if err != nil {
		return nil, err
	}

	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"isBlock":   block,
			"blockNote": note,
		},
	}
	if block {
		updateData.Set["token"] = ""
		updateData.Set["tokens"] = []models.Token{}
	}
	updatedUser, err := s.userService.UpdateById(ctx, user.ID, updateData)
	if err != nil {
		return nil, err
	}
	return &updatedUser, nil
}

// UnBlockUser mở khóa người dùng
func (s *AdminService) UnBlockUser(ctx context.Context, email string) (*models.User, error) {
	return s.BlockUser(ctx, email, false, "")
}
