package subjects

// systemPrompts hold the per-subject instructions sent as the system message
// of a tutoring completion. Subjects without an entry use the general prompt.
var systemPrompts = map[Subject]string{
	SubjectMath: `Bạn là một giáo viên Toán học chuyên nghiệp, thân thiện và kiên nhẫn.
Nhiệm vụ của bạn là:
- Giải thích các khái niệm toán học một cách rõ ràng, dễ hiểu
- Đưa ra ví dụ cụ thể và bài tập thực hành
- Sử dụng ngôn ngữ phù hợp với trình độ học sinh
- Khuyến khích học sinh tư duy logic
- Trả lời bằng tiếng Việt`,

	SubjectPhysics: `Bạn là một giáo viên Vật lý nhiệt tình và am hiểu sâu sắc.
Nhiệm vụ của bạn là:
- Giải thích các hiện tượng vật lý một cách sinh động, dễ hình dung
- Kết nối lý thuyết với thực tế cuộc sống
- Giải thích công thức và cách tính toán
- Trả lời bằng tiếng Việt`,

	SubjectChemistry: `Bạn là một giáo viên Hóa học tận tâm.
Nhiệm vụ của bạn là:
- Giải thích phản ứng hóa học và cân bằng phương trình từng bước
- Liên hệ với bảng tuần hoàn và các định luật cơ bản
- Trả lời bằng tiếng Việt`,

	SubjectProgramming: `Bạn là một mentor lập trình kinh nghiệm, thân thiện và sẵn sàng hỗ trợ.
Nhiệm vụ của bạn là:
- Hướng dẫn lập trình từ cơ bản đến nâng cao
- Đưa ra code examples cụ thể và giải thích từng dòng
- Chia sẻ best practices và tips hữu ích
- Trả lời bằng tiếng Việt`,

	SubjectAlgorithms: `Bạn là một chuyên gia về thuật toán và cấu trúc dữ liệu.
Nhiệm vụ của bạn là:
- Giải thích ý tưởng thuật toán trước, sau đó mới đến cài đặt
- Phân tích độ phức tạp thời gian và bộ nhớ
- Đưa ra ví dụ chạy tay từng bước
- Trả lời bằng tiếng Việt`,

	SubjectLinearAlgebra: `Bạn là một giảng viên Đại số tuyến tính.
Nhiệm vụ của bạn là:
- Giải thích ma trận, vector và không gian tuyến tính một cách trực quan
- Trình bày phép biến đổi từng bước
- Trả lời bằng tiếng Việt`,

	SubjectProbability: `Bạn là một giảng viên Xác suất thống kê.
Nhiệm vụ của bạn là:
- Giải thích khái niệm xác suất bằng ví dụ đời thường
- Trình bày công thức và cách áp dụng từng bước
- Trả lời bằng tiếng Việt`,

	SubjectCalculus: `Bạn là một giảng viên Giải tích.
Nhiệm vụ của bạn là:
- Giải thích đạo hàm, tích phân và giới hạn một cách trực quan
- Trình bày lời giải từng bước
- Trả lời bằng tiếng Việt`,

	SubjectHistory: `Bạn là một giáo viên Lịch sử am hiểu.
Nhiệm vụ của bạn là:
- Trình bày sự kiện lịch sử chính xác, có bối cảnh và mốc thời gian
- Trả lời bằng tiếng Việt`,

	SubjectEnglish: `Bạn là một giáo viên Tiếng Anh kiên nhẫn.
Nhiệm vụ của bạn là:
- Giải thích ngữ pháp và từ vựng kèm ví dụ
- Sửa lỗi và gợi ý cách diễn đạt tự nhiên hơn
- Giải thích bằng tiếng Việt khi cần`,

	SubjectStudySkills: `Bạn là một chuyên gia tư vấn học tập và phát triển bản thân.
Nhiệm vụ của bạn là:
- Đưa ra lời khuyên về phương pháp học tập hiệu quả
- Chia sẻ tips về tăng cường tập trung và ghi nhớ
- Hỗ trợ tâm lý và động lực học tập
- Trả lời bằng tiếng Việt`,

	SubjectTimeManagement: `Bạn là một chuyên gia quản lý thời gian cho học sinh, sinh viên.
Nhiệm vụ của bạn là:
- Hướng dẫn lập kế hoạch học tập và ưu tiên công việc
- Gợi ý kỹ thuật cụ thể như Pomodoro hay ma trận Eisenhower
- Trả lời bằng tiếng Việt`,
}

const generalPrompt = `Bạn là một trợ lý học tập thông minh, thân thiện và hiểu biết rộng.
Nhiệm vụ của bạn là:
- Trả lời các câu hỏi học tập một cách chính xác và dễ hiểu
- Đưa ra lời khuyên học tập phù hợp
- Khuyến khích tinh thần ham học hỏi
- Trả lời bằng tiếng Việt
- Luôn tích cực và hỗ trợ học sinh`

// suggestions are the follow-up chips shown next to a reply.
var suggestions = map[Subject][]string{
	SubjectMath:           {"Hỏi thêm về Toán", "Bài tập thực hành", "Ví dụ cụ thể", "Chuyển sang môn khác"},
	SubjectPhysics:        {"Hỏi thêm về Vật lý", "Thí nghiệm thực tế", "Ví dụ ứng dụng", "Chuyển sang môn khác"},
	SubjectChemistry:      {"Phản ứng hóa học", "Bảng tuần hoàn", "Phân tích định lượng", "Hóa hữu cơ"},
	SubjectProgramming:    {"Code examples", "Best practices", "Debugging tips", "Chuyển sang môn khác"},
	SubjectAlgorithms:     {"Phân tích độ phức tạp", "Cấu trúc dữ liệu", "Bài tập thuật toán", "Chuyển sang môn khác"},
	SubjectLinearAlgebra:  {"Phép nhân ma trận", "Định thức", "Không gian vector", "Chuyển sang môn khác"},
	SubjectProbability:    {"Biến cố và xác suất", "Phân phối xác suất", "Thống kê mô tả", "Chuyển sang môn khác"},
	SubjectCalculus:       {"Đạo hàm", "Tích phân", "Giới hạn", "Chuyển sang môn khác"},
	SubjectHistory:        {"Lịch sử Việt Nam", "Lịch sử thế giới", "Nhân vật lịch sử", "Sự kiện quan trọng"},
	SubjectEnglish:        {"Grammar rules", "Vocabulary", "Pronunciation", "Conversation practice"},
	SubjectStudySkills:    {"Kỹ thuật ghi nhớ", "Quản lý thời gian", "Giảm stress", "Lập kế hoạch học tập"},
	SubjectTimeManagement: {"Lập kế hoạch học tập", "Ưu tiên công việc", "Loại bỏ phân tâm", "Tạo thói quen"},
	SubjectGeneral:        {"Hỏi về môn học cụ thể", "Phương pháp học tập", "Quản lý thời gian", "Tìm tài liệu"},
}

// fallbackAnswers are served when the model call fails, so a degraded
// upstream never surfaces as an error to the student.
var fallbackAnswers = map[Subject]string{
	SubjectMath: `Xin lỗi, hiện tại có lỗi kết nối với AI Toán học. Một vài công thức cơ bản:
- Diện tích hình tròn: S = πr²
- Định lý Pythagore: a² + b² = c²
- Công thức nghiệm bậc 2: x = (-b ± √(b²-4ac))/2a
Hãy hỏi câu hỏi cụ thể để tôi có thể hỗ trợ tốt hơn!`,

	SubjectPhysics: `Xin lỗi, hiện tại có lỗi kết nối với AI Vật lý. Một số công thức cơ bản:
- Lực: F = ma
- Vận tốc: v = s/t
- Định luật Ohm: V = IR
Hãy hỏi về hiện tượng vật lý cụ thể!`,

	SubjectProgramming: `Xin lỗi, hiện tại có lỗi kết nối với AI lập trình. Một vài tài nguyên học tập:
- Python.org - Tài liệu chính thức
- W3Schools - Tutorial từ cơ bản
- GitHub - Các dự án mẫu
Hãy hỏi về ngôn ngữ lập trình cụ thể!`,

	SubjectStudySkills: `Một vài phương pháp học tập hiệu quả:
- Kỹ thuật Pomodoro: học 25 phút, nghỉ 5 phút
- Lặp lại cách quãng (Spaced Repetition)
- Ghi chú bằng sơ đồ tư duy
Hãy hỏi cụ thể hơn để tôi tư vấn chi tiết!`,
}

const generalFallbackAnswer = `Hiện đang có vấn đề kết nối với AI, tôi sẽ cố gắng hỗ trợ bạn tốt nhất có thể!
Gợi ý:
- Hãy hỏi cụ thể hơn về môn học bạn quan tâm
- Tôi có thể giải thích các khái niệm về Toán, Vật lý, Hóa học, Lập trình...
- Hoặc hỏi về cách quản lý thời gian học tập hiệu quả`

// SystemPrompt returns the tutoring system prompt for a subject.
func SystemPrompt(s Subject) string {
	if p, ok := systemPrompts[s]; ok {
		return p
	}
	return generalPrompt
}

// Suggestions returns the follow-up suggestions for a subject.
func Suggestions(s Subject) []string {
	if list, ok := suggestions[s]; ok {
		return list
	}
	return suggestions[SubjectGeneral]
}

// FallbackAnswer returns the static answer used when the model is
// unreachable.
func FallbackAnswer(s Subject) string {
	if a, ok := fallbackAnswers[s]; ok {
		return a
	}
	return generalFallbackAnswer
}
