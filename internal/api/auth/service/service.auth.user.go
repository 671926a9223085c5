// Package authsvc - service người dùng (User).
package authsvc

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	authdto "scratch_portal/internal/api/auth/dto"
	models "scratch_portal/internal/api/auth/models"
	basesvc "scratch_portal/internal/api/base/service"
	"scratch_portal/internal/common"
	"scratch_portal/internal/global"
	"scratch_portal/internal/utility"

	"github.com/sirupsen/logrus"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService là cấu trúc chứa các phương thức liên quan đến người dùng
type UserService struct {
	*basesvc.BaseServiceMongoImpl[models.User]
}

// NewUserService tạo mới UserService
func NewUserService() (*UserService, error) {
	userCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("failed to get users collection: %v", common.ErrNotFound)
	}

	return &UserService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.User](userCollection),
	}, nil
}

// Create tạo tài khoản người dùng mới với mật khẩu đã băm.
// Nếu đây là user đầu tiên trong hệ thống thì tự động gán role admin.
func (s *UserService) Create(ctx context.Context, input *authdto.UserCreateInput) (*models.User, error) {
	salt, err := utility.GenerateSalt()
	if err != nil {
		return nil, common.NewError(common.ErrCodeInternalServer, "Không thể sinh salt", common.StatusInternalServerError, err)
	}

	role := input.Role
	if role == "" {
		role = models.RoleAssociate
	}
	if !models.IsValidRole(role) {
		return nil, common.NewError(common.ErrCodeValidationInput, "Vai trò không hợp lệ: "+role, common.StatusBadRequest, nil)
	}

	// User đầu tiên trong hệ thống trở thành admin
	count, err := s.BaseServiceMongoImpl.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	if count == 0 {
		role = models.RoleAdmin
		logrus.Info("Create user: chưa có user nào, gán role admin cho user đầu tiên")
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: utility.HashPassword(input.Password, salt),
		Salt:     salt,
		Phone:    input.Phone,
		Role:     role,
		Tokens:   []models.Token{},
	}
	if input.StoreID != "" {
		storeID, err := primitive.ObjectIDFromHex(input.StoreID)
		if err != nil {
			return nil, common.NewError(common.ErrCodeValidationFormat, "storeId không đúng định dạng", common.StatusBadRequest, err)
		}
		user.StoreID = storeID
	}

	created, err := s.BaseServiceMongoImpl.InsertOne(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrMongoDuplicate) {
			return nil, common.NewError(common.ErrCodeBusinessState, "Email đã được sử dụng", common.StatusConflict, nil)
		}
		return nil, err
	}
	return &created, nil
}

// Login xác thực email/mật khẩu và phát hành JWT token theo hwid.
func (s *UserService) Login(ctx context.Context, input *authdto.UserLoginInput) (*models.User, error) {
	user, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"email": input.Email}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewError(common.ErrCodeAuth, "Email hoặc mật khẩu không đúng", common.StatusUnauthorized, nil)
		}
		return nil, err
	}

	if !utility.ComparePassword(input.Password, user.Salt, user.Password) {
		logrus.WithFields(logrus.Fields{"email": input.Email}).Warn("Login: Sai mật khẩu")
		return nil, common.NewError(common.ErrCodeAuth, "Email hoặc mật khẩu không đúng", common.StatusUnauthorized, nil)
	}

	if user.IsBlock {
		return nil, common.NewError(common.ErrCodeAuth, "Tài khoản đã bị khóa: "+user.BlockNote, common.StatusForbidden, nil)
	}

	rdNumber := rand.Intn(100)
	currentTime := time.Now().Unix()
	tokenMap, err := utility.CreateToken(global.MongoDB_ServerConfig.JwtSecret, user.ID.Hex(), strconv.FormatInt(currentTime, 16), strconv.Itoa(rdNumber))
	if err != nil {
		return nil, err
	}

	user.Token = tokenMap["token"]
	// Mỗi hwid giữ một token riêng, login lại trên cùng thiết bị sẽ thay token cũ
	idTokenExist := -1
	for i, t := range user.Tokens {
		if t.Hwid == input.Hwid {
			idTokenExist = i
			break
		}
	}
	if idTokenExist == -1 {
		user.Tokens = append(user.Tokens, models.Token{Hwid: input.Hwid, JwtToken: tokenMap["token"]})
	} else {
		user.Tokens[idTokenExist].JwtToken = tokenMap["token"]
	}

	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"token":  user.Token,
			"tokens": user.Tokens,
		},
	}
	updatedUser, err := s.BaseServiceMongoImpl.UpdateById(ctx, user.ID, updateData)
	if err != nil {
		logrus.WithFields(logrus.Fields{"user_id": user.ID.Hex(), "error": err.Error()}).Error("Login: Lỗi khi cập nhật token vào user")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"user_id": updatedUser.ID.Hex(), "email": updatedUser.Email}).Info("Login: Đăng nhập thành công")
	return &updatedUser, nil
}

// Logout đăng xuất người dùng (xóa token theo hwid)
func (s *UserService) Logout(ctx context.Context, userID primitive.ObjectID, input *authdto.UserLogoutInput) error {
	user, err := s.BaseServiceMongoImpl.FindOneById(ctx, userID)
	if err != nil {
		return err
	}
	newTokens := make([]models.Token, 0)
	for _, t := range user.Tokens {
		if t.Hwid != input.Hwid {
			newTokens = append(newTokens, t)
		}
	}
	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"tokens": newTokens,
			"token":  "",
		},
	}
	_, err = s.BaseServiceMongoImpl.UpdateById(ctx, userID, updateData)
	return err
}

// ChangePassword đổi mật khẩu sau khi xác thực mật khẩu cũ.
// Toàn bộ token hiện có bị thu hồi, người dùng phải đăng nhập lại.
func (s *UserService) ChangePassword(ctx context.Context, userID primitive.ObjectID, input *authdto.UserChangePasswordInput) error {
	user, err := s.BaseServiceMongoImpl.FindOneById(ctx, userID)
	if err != nil {
		return err
	}

	if !utility.ComparePassword(input.OldPassword, user.Salt, user.Password) {
		return common.NewError(common.ErrCodeAuth, "Mật khẩu cũ không đúng", common.StatusUnauthorized, nil)
	}

	salt, err := utility.GenerateSalt()
	if err != nil {
		return common.NewError(common.ErrCodeInternalServer, "Không thể sinh salt", common.StatusInternalServerError, err)
	}

	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"password": utility.HashPassword(input.NewPassword, salt),
			"salt":     salt,
			"token":    "",
			"tokens":   []models.Token{},
		},
	}
	_, err = s.BaseServiceMongoImpl.UpdateById(ctx, userID, updateData)
	return err
}
