package subjects

import "strings"

// Subject identifies which tutoring prompt and suggestion list accompanies a
// reply. It is computed fresh per question and never persisted.
type Subject string

const (
	SubjectAlgorithms     Subject = "algorithms"
	SubjectLinearAlgebra  Subject = "linear_algebra"
	SubjectProbability    Subject = "probability_statistics"
	SubjectCalculus       Subject = "calculus"
	SubjectProgramming    Subject = "programming"
	SubjectMath           Subject = "math"
	SubjectPhysics        Subject = "physics"
	SubjectChemistry      Subject = "chemistry"
	SubjectHistory        Subject = "history"
	SubjectEnglish        Subject = "english"
	SubjectStudySkills    Subject = "study"
	SubjectTimeManagement Subject = "time_management"
	SubjectGeneral        Subject = "general"
)

// Rule maps trigger keywords to a subject. Includes match on substring
// against the lower-cased question; a rule is skipped when any Excludes term
// is present.
type Rule struct {
	Tag      Subject
	Includes []string
	Excludes []string
}

// rules is evaluated top to bottom and the first match wins, so ordering is
// part of the contract. Keyword families that contain another subject's
// trigger as a substring must come first: "thuật toán" contains "toán" and
// "tuyến tính" contains "tính", so the algorithm and math-subfield rules
// precede the broad math rule, and math additionally excludes the algorithm
// family. Reordering this table changes classification outcomes.
var rules = []Rule{
	{
		Tag:      SubjectAlgorithms,
		Includes: []string{"thuật toán", "algorithm", "cấu trúc dữ liệu", "data structure", "độ phức tạp", "quy hoạch động", "đệ quy"},
	},
	{
		Tag:      SubjectLinearAlgebra,
		Includes: []string{"đại số tuyến tính", "tuyến tính", "ma trận", "matrix", "định thức", "linear algebra", "vector"},
	},
	{
		Tag:      SubjectProbability,
		Includes: []string{"xác suất", "thống kê", "probability", "statistic", "phân phối"},
	},
	{
		Tag:      SubjectCalculus,
		Includes: []string{"giải tích", "đạo hàm", "tích phân", "giới hạn", "calculus", "derivative", "integral"},
	},
	{
		Tag:      SubjectProgramming,
		Includes: []string{"lập trình", "programming", "code", "python", "javascript"},
	},
	{
		Tag:      SubjectMath,
		Includes: []string{"toán", "math", "công thức", "tính", "phương trình"},
		Excludes: []string{"thuật toán", "algorithm"},
	},
	{
		Tag:      SubjectPhysics,
		Includes: []string{"vật lý", "physics", "lực", "năng lượng", "tốc độ"},
	},
	{
		Tag:      SubjectChemistry,
		Includes: []string{"hóa học", "chemistry", "phản ứng", "nguyên tố"},
	},
	{
		Tag:      SubjectHistory,
		Includes: []string{"lịch sử", "history", "việt nam", "thế giới"},
	},
	{
		Tag:      SubjectEnglish,
		Includes: []string{"tiếng anh", "english", "grammar", "vocabulary"},
	},
	{
		Tag:      SubjectStudySkills,
		Includes: []string{"học", "ôn thi", "thi cử", "kiểm tra", "mẹo", "phương pháp"},
	},
	{
		Tag:      SubjectTimeManagement,
		Includes: []string{"thời gian", "kế hoạch", "lịch trình", "quản lý"},
	},
}

// Classify maps a question to a subject. Pure function of the input text and
// the static rule table; unmatched questions fall through to general.
func Classify(question string) Subject {
	q := strings.ToLower(question)
	for _, r := range rules {
		if containsAny(q, r.Includes) && !containsAny(q, r.Excludes) {
			return r.Tag
		}
	}
	return SubjectGeneral
}

// Rules exposes the priority table for inspection in tests.
func Rules() []Rule {
	return rules
}

func containsAny(text string, values []string) bool {
	for _, v := range values {
		if strings.Contains(text, v) {
			return true
		}
	}
	return false
}
