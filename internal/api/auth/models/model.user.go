// Package models - model người dùng (User) thuộc domain auth.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các vai trò hợp lệ của người dùng trong hệ thống.
const (
	RoleAdmin     = "admin"     // Quản trị toàn hệ thống, truy cập mọi cửa hàng
	RoleManager   = "manager"   // Quản lý cửa hàng
	RoleAssociate = "associate" // Nhân viên bán hàng
)

// User định nghĩa mô hình người dùng
// Token chứa token xác thực mới nhất của người dùng
// Tokens chứa danh sách các token, mỗi thiết bị khác nhau sẽ có một token riêng để xác thực (bằng hwid)
// StoreID là cửa hàng mặc định của người dùng; admin không bị giới hạn theo cửa hàng
type User struct {
	_Relationships struct{}           `relationship:"collection:scratchoff_pack_events,field:createdByUserId,message:Không thể xóa user vì có %d sự kiện pack đã được ghi bởi user này.,optional:true"`
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Email          string             `json:"email,omitempty" bson:"email,omitempty" index:"unique,sparse"`
	Password       string             `json:"-" bson:"password,omitempty"`
	Salt           string             `json:"-" bson:"salt,omitempty"`
	Phone          string             `json:"phone,omitempty" bson:"phone,omitempty" index:"unique,sparse"`
	StoreID        primitive.ObjectID `json:"storeId,omitempty" bson:"storeId,omitempty" index:"single"`
	Role           string             `json:"role" bson:"role" default:"associate"`
	Token          string             `json:"token" bson:"token"`
	Tokens         []Token            `json:"-" bson:"tokens"`
	IsBlock        bool               `json:"-" bson:"isBlock"`
	BlockNote      string             `json:"-" bson:"blockNote"`
	CreatedAt      int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt      int64              `json:"updatedAt" bson:"updatedAt"`
}

// UserPaginateResult đại diện cho kết quả phân trang User
type UserPaginateResult struct {
	Page      int64  `json:"page" bson:"page"`
	Limit     int64  `json:"limit" bson:"limit"`
	ItemCount int64  `json:"itemCount" bson:"itemCount"`
	Items     []User `json:"items" bson:"items"`
}

// IsValidRole kiểm tra role có thuộc danh sách vai trò hợp lệ không.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleAssociate:
		return true
	}
	return false
}
