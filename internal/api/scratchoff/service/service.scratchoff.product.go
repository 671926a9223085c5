package scratchoffsvc

import (
	"context"
	"errors"
	"fmt"
	"math"

	basesvc "scratch_portal/internal/api/base/service"
	scratchoffdto "scratch_portal/internal/api/scratchoff/dto"
	scratchoffmodels "scratch_portal/internal/api/scratchoff/models"
	"scratch_portal/internal/common"
	"scratch_portal/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductService quản lý danh mục sản phẩm vé số cào.
type ProductService struct {
	*basesvc.BaseServiceMongoImpl[scratchoffmodels.Product]
}

// NewProductService tạo ProductService mới.
func NewProductService() (*ProductService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ScratchoffProducts)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.ScratchoffProducts, common.ErrNotFound)
	}
	return &ProductService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[scratchoffmodels.Product](coll),
	}, nil
}

// validatePrice kiểm tra giá hợp lệ: hữu hạn và không âm.
func validatePrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return common.NewError(common.ErrCodeValidationInput, "Giá sản phẩm không hợp lệ", common.StatusBadRequest, nil)
	}
	return nil
}

// BuildProductPatch dựng patch cập nhật sản phẩm.
// Chỉ đưa vào patch những trường client thực sự gửi lên: name rỗng và
// isActive nil được giữ nguyên, upsert chỉ-giá không xóa tên hay
// kích hoạt lại sản phẩm đã tắt.
func BuildProductPatch(input *scratchoffdto.ProductUpsertInput) *basesvc.UpdateData {
	set := map[string]interface{}{}
	if input.Price != nil {
		set["price"] = *input.Price
	}
	if input.Name != "" {
		set["name"] = input.Name
	}
	if input.IsActive != nil {
		set["isActive"] = *input.IsActive
	}
	return &basesvc.UpdateData{Set: set}
}

// UpsertProduct tạo hoặc cập nhật sản phẩm từ catalog upload.
// Có id thì cập nhật theo id, không có thì tạo mới.
// Thay đổi catalog kích hoạt tính lại các calculation đang bị flag
// thiếu sản phẩm (xem hooks).
func (s *ProductService) UpsertProduct(ctx context.Context, input *scratchoffdto.ProductUpsertInput) (*scratchoffmodels.Product, error) {
	if input.Price == nil {
		return nil, common.ErrRequiredField
	}
	if err := validatePrice(*input.Price); err != nil {
		return nil, err
	}

	if input.ID != "" {
		productID, err := primitive.ObjectIDFromHex(input.ID)
		if err != nil {
			return nil, common.NewError(common.ErrCodeValidationFormat, "id sản phẩm không đúng định dạng", common.StatusBadRequest, err)
		}
		updated, err := s.UpdateById(ctx, productID, BuildProductPatch(input))
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil, common.NewNotFoundError("sản phẩm", input.ID)
			}
			return nil, err
		}
		return &updated, nil
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	created, err := s.InsertOne(ctx, scratchoffmodels.Product{
		Name:     input.Name,
		Price:    *input.Price,
		IsActive: isActive,
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ProductsByIds nạp map id -> product cho bước tính revenue.
func (s *ProductService) ProductsByIds(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]scratchoffmodels.Product, error) {
	result := make(map[primitive.ObjectID]scratchoffmodels.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	products, err := s.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, nil)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}
	for _, p := range products {
		result[p.ID] = p
	}
	return result, nil
}
