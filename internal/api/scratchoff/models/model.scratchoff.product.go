// Package models - Product thuộc domain scratchoff (scratchoff_products).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product sản phẩm vé số cào (scratchoff_products).
// Price quyết định kích thước pack qua bảng quy đổi cố định tại thời điểm kích hoạt.
type Product struct {
	_Relationships struct{}           `relationship:"collection:scratchoff_packs,field:productId,message:Không thể xóa sản phẩm vì có %d pack tham chiếu tới sản phẩm này."`
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Price          float64            `json:"price" bson:"price" index:"single:1"`
	IsActive       bool               `json:"isActive" bson:"isActive" default:"true"`
	CreatedAt      int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt      int64              `json:"updatedAt" bson:"updatedAt"`
}
