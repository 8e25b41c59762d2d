package intent

import (
	"fmt"
	"time"
)

// buildExtractionPrompt asks the model for a JSON object using the exact
// ParsedIntent field names and defaults, so decoded output can be merged
// straight over the defaults.
func buildExtractionPrompt(message string, now time.Time) string {
	return fmt.Sprintf(`Phân tích tin nhắn người dùng và trích xuất thông tin lịch. Trả về JSON với format:
{
    "action": "create_event|create_deadline|list_events|delete_event|none",
    "title": "tên sự kiện",
    "date": "YYYY-MM-DD",
    "time": "HH:MM",
    "description": "mô tả chi tiết",
    "duration_minutes": số_phút,
    "reminder_minutes": số_phút_trước_khi_nhắc,
    "confidence": 0.0-1.0
}

Tin nhắn: %q

Lưu ý:
- Ngày hiện tại là %s
- Nếu không có thời gian cụ thể, mặc định là 09:00
- Nếu không có ngày cụ thể, mặc định là ngày mai
- duration_minutes mặc định là 60 phút
- reminder_minutes mặc định là 15 phút trước
- Nếu chỉ đề cập "deadline" không có thời gian, tạo event cả ngày
- Confidence cao nếu có đầy đủ thông tin ngày giờ
- Chỉ trả về JSON, không giải thích thêm`, message, now.Format("2006-01-02 (Monday)"))
}
