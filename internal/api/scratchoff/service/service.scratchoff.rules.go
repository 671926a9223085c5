// Package scratchoffsvc - các quy tắc nghiệp vụ thuần của domain vé số cào:
// quy đổi kích thước pack, số vé giữ đệm số 0, phát hiện rollover, toán đối soát.
// Các hàm trong file này không chạm database để có thể test độc lập.
package scratchoffsvc

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	authmodels "scratch_portal/internal/api/auth/models"
	scratchoffmodels "scratch_portal/internal/api/scratchoff/models"
	"scratch_portal/internal/common"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// packSizeByPrice bảng quy đổi mệnh giá -> số vé trong pack.
// Đây là quy tắc nghiệp vụ cố định của nhà phát hành, phải giữ đúng từng dòng.
var packSizeByPrice = map[float64]int{
	40: 30,
	30: 30,
	25: 30,
	20: 30,
	10: 50,
	5:  80,
	3:  100,
	2:  100,
	1:  240,
}

// PackSizeForPrice trả về số vé trong pack theo mệnh giá.
// Mệnh giá ngoài bảng trả về ErrUnsupportedPrice, không bao giờ mặc định ngầm.
func PackSizeForPrice(price float64) (int, error) {
	size, ok := packSizeByPrice[price]
	if !ok {
		return 0, common.ErrUnsupportedPrice
	}
	return size, nil
}

// TicketNumber số vé in trên pack: giá trị số kèm độ rộng gốc của chuỗi.
// Số vé là dữ liệu nghiệp vụ dạng chuỗi ("000120"), không phải số nguyên thuần:
// khi cộng trừ phải render lại với đúng số chữ số 0 đệm trái ban đầu.
type TicketNumber struct {
	Value int64
	Width int
}

// ParseTicketNumber parse chuỗi số vé, giữ lại độ rộng gốc.
// Chuỗi rỗng hoặc không phải số nguyên không âm trả về ErrInvalidStartTicket.
func ParseTicketNumber(s string) (TicketNumber, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return TicketNumber{}, common.ErrInvalidStartTicket
	}
	value, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil || value < 0 {
		return TicketNumber{}, common.ErrInvalidStartTicket
	}
	return TicketNumber{Value: value, Width: len(trimmed)}, nil
}

// Add cộng n vào số vé, giữ nguyên độ rộng (chỉ nới khi giá trị vượt quá).
func (t TicketNumber) Add(n int64) TicketNumber {
	return TicketNumber{Value: t.Value + n, Width: t.Width}
}

// String render lại số vé với số 0 đệm trái theo độ rộng gốc.
func (t TicketNumber) String() string {
	return fmt.Sprintf("%0*d", t.Width, t.Value)
}

// ComputeEndTicket tính số vé cuối của pack: start + size - 1, giữ độ rộng.
// Ví dụ "000120" với pack 50 vé -> "000169".
func ComputeEndTicket(startTicket string, packSize int) (string, error) {
	start, err := ParseTicketNumber(startTicket)
	if err != nil {
		return "", err
	}
	return start.Add(int64(packSize) - 1).String(), nil
}

// SlotReading một dòng đọc số vé của một slot, đầu vào cho phát hiện rollover.
type SlotReading struct {
	SlotID      primitive.ObjectID
	TicketValue string
	PackID      *primitive.ObjectID
}

// RolledSlot slot bị phát hiện rollover, trả về cho caller để kích hoạt pack mới.
type RolledSlot struct {
	SlotID     primitive.ObjectID `json:"slotId"`
	SlotNumber int                `json:"slotNumber"`
}

// DetectRollovers phát hiện pack bị thay giữa ca mà không ghi nhận kích hoạt.
// Với mỗi slot có mặt trong cả snapshot đầu ca hiệu lực và các dòng kết ca:
//   - Giá trị không parse được thì bỏ qua slot đó (không coi là rollover).
//   - endValue < startValue VÀ pack đang hoạt động của slot vẫn là pack của
//     dòng đầu ca -> số vé tụt xuống chỉ có thể do pack vật lý đã bị thay,
//     đây là rollover.
//
// Đây là chốt chặn đúng đắn trung tâm của engine: không bao giờ diễn giải
// một lần thay pack thành "bán âm vé". Danh sách trả về sắp theo slotNumber
// để thông báo lỗi ổn định.
func DetectRollovers(startReadings []SlotReading, endReadings []SlotReading, activePackBySlot map[primitive.ObjectID]primitive.ObjectID, slotNumberByID map[primitive.ObjectID]int) []RolledSlot {
	startBySlot := make(map[primitive.ObjectID]SlotReading, len(startReadings))
	for _, r := range startReadings {
		startBySlot[r.SlotID] = r
	}

	var rolled []RolledSlot
	for _, end := range endReadings {
		start, ok := startBySlot[end.SlotID]
		if !ok {
			continue
		}
		startValue, err := ParseTicketNumber(start.TicketValue)
		if err != nil {
			continue
		}
		endValue, err := ParseTicketNumber(end.TicketValue)
		if err != nil {
			continue
		}
		if endValue.Value >= startValue.Value {
			continue
		}
		if start.PackID == nil {
			continue
		}
		activePack, ok := activePackBySlot[end.SlotID]
		if !ok || activePack != *start.PackID {
			// Pack đã đổi và đã được ghi nhận kích hoạt, không phải rollover
			continue
		}
		rolled = append(rolled, RolledSlot{SlotID: end.SlotID, SlotNumber: slotNumberByID[end.SlotID]})
	}

	sort.Slice(rolled, func(i, j int) bool {
		if rolled[i].SlotNumber != rolled[j].SlotNumber {
			return rolled[i].SlotNumber < rolled[j].SlotNumber
		}
		return rolled[i].SlotID.Hex() < rolled[j].SlotID.Hex()
	})
	return rolled
}

// MissingProductFlag tên flag gắn cho slot không giải được giá sản phẩm.
func MissingProductFlag(slotID primitive.ObjectID) string {
	return "missing_product_" + slotID.Hex()
}

// CalculationInput toàn bộ dữ liệu cần cho một lần đối soát.
type CalculationInput struct {
	ShiftReportID  primitive.ObjectID
	StoreID        primitive.ObjectID
	StartReadings  []SlotReading
	EndReadings    []SlotReading
	SlotNumberByID map[primitive.ObjectID]int
	PackByID       map[primitive.ObjectID]scratchoffmodels.Pack
	ProductByID    map[primitive.ObjectID]scratchoffmodels.Product
}

// BuildCalculation tính đối soát bán vé cho một ca từ cặp snapshot đầu/kết ca.
// Vé trong pack bán theo thứ tự số tăng dần nên số vé bán = endValue - startValue.
// Doanh thu = số vé bán x giá sản phẩm của pack tại thời điểm snapshot; slot
// không giải được giá bị gắn flag missing_product_<slotId> và loại khỏi tổng
// thay vì làm hỏng cả phép tính.
// Hàm thuần và thứ tự dòng/flag ổn định: hai lần chạy trên cùng đầu vào cho
// kết quả giống hệt nhau.
func BuildCalculation(in CalculationInput) scratchoffmodels.Calculation {
	startBySlot := make(map[primitive.ObjectID]SlotReading, len(in.StartReadings))
	for _, r := range in.StartReadings {
		startBySlot[r.SlotID] = r
	}

	calc := scratchoffmodels.Calculation{
		ShiftReportID: in.ShiftReportID,
		StoreID:       in.StoreID,
		Lines:         []scratchoffmodels.CalculationLine{},
		Flags:         []string{},
	}

	for _, end := range in.EndReadings {
		start, ok := startBySlot[end.SlotID]
		if !ok {
			continue
		}
		startValue, err := ParseTicketNumber(start.TicketValue)
		if err != nil {
			continue
		}
		endValue, err := ParseTicketNumber(end.TicketValue)
		if err != nil {
			continue
		}

		line := scratchoffmodels.CalculationLine{
			SlotID:      end.SlotID,
			SlotNumber:  in.SlotNumberByID[end.SlotID],
			StartValue:  startValue.Value,
			EndValue:    endValue.Value,
			SoldTickets: endValue.Value - startValue.Value,
		}

		// Giải giá từ pack gắn với dòng snapshot (ưu tiên dòng kết ca)
		packID := end.PackID
		if packID == nil {
			packID = start.PackID
		}
		price, productID, priceOK := resolvePrice(packID, in.PackByID, in.ProductByID)
		if priceOK {
			line.PackID = packID
			line.ProductID = productID
			line.Revenue = float64(line.SoldTickets) * price
			calc.TotalSold += line.SoldTickets
			calc.TotalRevenue += line.Revenue
		} else {
			line.PackID = packID
			calc.Flags = append(calc.Flags, MissingProductFlag(end.SlotID))
		}
		calc.Lines = append(calc.Lines, line)
	}

	sort.Slice(calc.Lines, func(i, j int) bool {
		if calc.Lines[i].SlotNumber != calc.Lines[j].SlotNumber {
			return calc.Lines[i].SlotNumber < calc.Lines[j].SlotNumber
		}
		return calc.Lines[i].SlotID.Hex() < calc.Lines[j].SlotID.Hex()
	})
	sort.Strings(calc.Flags)

	// Làm tròn tổng doanh thu về 2 chữ số thập phân để kết quả ổn định
	calc.TotalRevenue = math.Round(calc.TotalRevenue*100) / 100
	return calc
}

// resolvePrice giải giá sản phẩm từ pack: pack -> product -> price.
func resolvePrice(packID *primitive.ObjectID, packByID map[primitive.ObjectID]scratchoffmodels.Pack, productByID map[primitive.ObjectID]scratchoffmodels.Product) (float64, *primitive.ObjectID, bool) {
	if packID == nil {
		return 0, nil, false
	}
	pack, ok := packByID[*packID]
	if !ok {
		return 0, nil, false
	}
	product, ok := productByID[pack.ProductID]
	if !ok {
		return 0, nil, false
	}
	productID := product.ID
	return product.Price, &productID, true
}

// PlanMissingSlotNumbers trả về các số slot còn thiếu trong 1..max, tăng dần.
// Dùng cho InitSlots: chỉ lấp chỗ trống, không bao giờ tạo trùng.
func PlanMissingSlotNumbers(existing []int, max int) []int {
	taken := make(map[int]bool, len(existing))
	for _, n := range existing {
		taken[n] = true
	}
	var missing []int
	for n := 1; n <= max; n++ {
		if !taken[n] {
			missing = append(missing, n)
		}
	}
	return missing
}

// NextFreeSlotNumber trả về số slot trống nhỏ nhất trong 1..max.
func NextFreeSlotNumber(existing []int, max int) (int, error) {
	missing := PlanMissingSlotNumbers(existing, max)
	if len(missing) == 0 {
		return 0, common.NewError(common.ErrCodeBusinessState,
			fmt.Sprintf("Cửa hàng đã đủ %d slot", max), common.StatusConflict, nil)
	}
	return missing[0], nil
}

// CanCreatePackEvent kiểm tra vai trò có được ghi loại sự kiện này không.
// Nhân viên bán hàng chỉ được đính biên nhận trả pack (return_receipt);
// correction/note/ended dành cho manager trở lên.
func CanCreatePackEvent(role string, eventType string) bool {
	switch role {
	case authmodels.RoleAdmin, authmodels.RoleManager:
		return true
	default:
		return eventType == scratchoffmodels.PackEventReturnReceipt
	}
}

// ValidatePackEventInput kiểm tra ràng buộc dữ liệu theo loại sự kiện.
func ValidatePackEventInput(eventType string, fileID string) error {
	if !scratchoffmodels.IsValidPackEventType(eventType) {
		return common.NewError(common.ErrCodeValidationInput,
			"Loại sự kiện không hợp lệ: "+eventType, common.StatusBadRequest, nil)
	}
	if eventType == scratchoffmodels.PackEventReturnReceipt && fileID == "" {
		return common.ErrReceiptRequired
	}
	return nil
}

// PickEffectiveStart chọn mốc đầu ca để đối chiếu kết ca.
// Thứ tự ưu tiên: snapshot đầu ca của chính ca đó, rồi tới baseline
// mới nhất của cửa hàng (createdAt lớn nhất); không có cả hai thì
// trả về ErrBaselineRequired.
func PickEffectiveStart(shiftStart *scratchoffmodels.Snapshot, baselines []scratchoffmodels.Snapshot) (scratchoffmodels.Snapshot, error) {
	if shiftStart != nil {
		return *shiftStart, nil
	}
	if len(baselines) == 0 {
		return scratchoffmodels.Snapshot{}, common.ErrBaselineRequired
	}
	latest := baselines[0]
	for _, b := range baselines[1:] {
		if b.CreatedAt > latest.CreatedAt {
			latest = b
		}
	}
	return latest, nil
}
