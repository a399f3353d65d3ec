package httperr

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type mapping struct {
	status  int
	message string
}

// known maps business codes to status and user-facing message.
var known = map[string]mapping{
	"invalid_transition":     {http.StatusConflict, "Không thể chuyển sang trạng thái này."},
	"invalid_status":         {http.StatusBadRequest, "Trạng thái không hợp lệ."},
	"invalid_date_or_time":   {http.StatusBadRequest, "Ngày hoặc giờ không hợp lệ."},
	"too_soon":               {http.StatusBadRequest, "Thời gian hẹn quá gần."},
	"outside_working_hours":  {http.StatusBadRequest, "Ngoài giờ làm việc của studio."},
	"time_conflict":          {http.StatusConflict, "Trùng lịch hẹn."},
	"customer_exists":        {http.StatusConflict, "Số điện thoại đã tồn tại."},
	"invalid_phone":          {http.StatusBadRequest, "Số điện thoại không hợp lệ."},
	"no_notes":               {http.StatusBadRequest, "Khách hàng chưa có ghi chú."},
	"summary_unavailable":    {http.StatusBadGateway, "Lỗi kết nối, vui lòng thử lại."},
	"summary_disabled":       {http.StatusServiceUnavailable, "Tính năng tóm tắt chưa được cấu hình."},
	"invalid_amount":         {http.StatusBadRequest, "Số tiền không hợp lệ."},
	"overpayment":            {http.StatusBadRequest, "Số tiền vượt quá số còn lại của hợp đồng."},
	"invalid_discount":       {http.StatusBadRequest, "Giảm giá vượt quá tổng tiền."},
	"total_below_paid":       {http.StatusConflict, "Tổng tiền không thể nhỏ hơn số đã thanh toán."},
	"contract_closed":        {http.StatusConflict, "Hợp đồng đã đóng."},
	"already_recorded":       {http.StatusConflict, "Giao dịch đã được ghi nhận."},
	"already_paid":           {http.StatusConflict, "Hợp đồng đã thanh toán đủ."},
	"payments_disabled":      {http.StatusServiceUnavailable, "Thanh toán trực tuyến chưa được cấu hình."},
	"payment_provider_error": {http.StatusBadGateway, "Lỗi kết nối cổng thanh toán."},
	"invalid_image":          {http.StatusBadRequest, "Ảnh không hợp lệ."},
	"storage_error":          {http.StatusBadGateway, "Không thể lưu ảnh."},
	"staff_inactive":         {http.StatusBadRequest, "Nhân viên đã nghỉ việc."},
	"invalid_period":         {http.StatusBadRequest, "Kỳ không hợp lệ."},
	"customer_has_contracts": {http.StatusConflict, "Khách hàng đang có hợp đồng."},
	"catalog_item_in_use":    {http.StatusConflict, "Dịch vụ đang được dùng trong hợp đồng."},
	"retouch_completed":      {http.StatusConflict, "Hạng mục hậu kỳ đã hoàn thành."},
	"email_exists":           {http.StatusConflict, "Email đã được sử dụng."},
	"slug_exists":            {http.StatusConflict, "Tên studio đã được sử dụng."},
	"linked_transaction":     {http.StatusConflict, "Giao dịch gắn với hợp đồng, hãy sửa trên hợp đồng."},
	"reserved_category":      {http.StatusBadRequest, "Danh mục này chỉ dùng cho thanh toán hợp đồng."},
	"invalid_credentials":    {http.StatusUnauthorized, "Email hoặc mật khẩu không đúng."},
}

// FromError writes err as an HTTP error. Business errors use the known table,
// "*_not_found" codes become 404 and "missing_*" codes 400. Anything else is
// reported as an internal error with fallbackCode.
func FromError(c *gin.Context, err error, fallbackCode string) {
	code := BusinessCode(err)
	if code == "" {
		if IsExclusionConflict(err) {
			Conflict(c, "time_conflict", known["time_conflict"].message)
			return
		}
		_ = c.Error(err)
		Internal(c, fallbackCode, "Đã xảy ra lỗi, vui lòng thử lại.")
		return
	}

	if m, ok := known[code]; ok {
		Write(c, m.status, code, m.message)
		return
	}

	switch {
	case strings.HasSuffix(code, "_not_found"):
		NotFound(c, code, "Không tìm thấy dữ liệu.")
	case strings.HasPrefix(code, "missing_"):
		BadRequest(c, code, "Vui lòng nhập đầy đủ thông tin bắt buộc.")
	default:
		BadRequest(c, code, "Dữ liệu không hợp lệ.")
	}
}
