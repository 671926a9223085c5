// Package models - Pack thuộc domain scratchoff (scratchoff_packs).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái vòng đời của pack.
const (
	PackStatusActive   = "active"
	PackStatusEnded    = "ended"
	PackStatusReturned = "returned"
)

// Pack một tập vé số cào được nạp vào slot (scratchoff_packs).
// StartTicket/EndTicket là chuỗi số vé in trên pack, giữ nguyên số 0 đệm trái.
// Pack không bao giờ bị xóa, chỉ chuyển trạng thái (collection được đánh dấu no-delete).
type Pack struct {
	ID                primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	StoreID           primitive.ObjectID `json:"storeId" bson:"storeId" index:"single:1"`
	SlotID            primitive.ObjectID `json:"slotId" bson:"slotId" index:"single:1"`
	ProductID         primitive.ObjectID `json:"productId" bson:"productId" index:"single:1"`
	PackCode          string             `json:"packCode" bson:"packCode" index:"single:1"`
	StartTicket       string             `json:"startTicket" bson:"startTicket"`
	EndTicket         string             `json:"endTicket" bson:"endTicket"`
	Status            string             `json:"status" bson:"status" default:"active"`
	ActivatedByUserID primitive.ObjectID `json:"activatedByUserId,omitempty" bson:"activatedByUserId,omitempty"`
	ActivatedAt       int64              `json:"activatedAt" bson:"activatedAt"`
	ReceiptFileID     string             `json:"receiptFileId,omitempty" bson:"receiptFileId,omitempty"`
	CreatedAt         int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt         int64              `json:"updatedAt" bson:"updatedAt"`
}

// PackPaginateResult kết quả phân trang Pack.
type PackPaginateResult struct {
	Page      int64  `json:"page" bson:"page"`
	Limit     int64  `json:"limit" bson:"limit"`
	ItemCount int64  `json:"itemCount" bson:"itemCount"`
	Items     []Pack `json:"items" bson:"items"`
}
