package corpus

import "strings"

// reference_type 코드 <-> 표시 라벨
var refDisplay = map[string]string{
	"table_ref": "표 설명 문장",
	"row_ref":   "행 설명 문장",
	"col_ref":   "열 설명 문장",
	"cell_ref":  "불연속 영역 설명 문장",
}

var refCode = map[string]string{
	"표설명문장":     "table_ref",
	"행설명문장":     "row_ref",
	"열설명문장":     "col_ref",
	"불연속영역설명문장": "cell_ref",
}

// 일부 회차 엑셀에서 쓰인 축약 라벨
var customCode = map[string]string{
	"표설명":  "table_ref",
	"행설명":  "row_ref",
	"열설명":  "col_ref",
	"셀설명":  "cell_ref",
	"영역설명": "cell_ref",
}

// 공백/밑줄 변형 흡수용 (tableref -> table_ref)
var codeAlias = map[string]string{
	"tableref": "table_ref",
	"rowref":   "row_ref",
	"colref":   "col_ref",
	"cellref":  "cell_ref",
}

// ToDisplay reference_type 코드를 표시 라벨로 변환
// 모르는 입력은 그대로 돌려준다
func ToDisplay(code string) string {
	if d, ok := refDisplay[strings.TrimSpace(code)]; ok {
		return d
	}
	return code
}

// ToCode 표시 라벨을 reference_type 코드로 변환
// 공백/밑줄 변형과 축약 라벨을 허용하고, 매칭 실패 시 입력을 그대로 돌려준다
// (호출자는 실패를 오류가 아니라 "비매칭 라벨"로 처리한다)
func ToCode(display string) string {
	s := strings.TrimSpace(display)
	if s == "" {
		return ""
	}

	key := normalizeLabel(s)

	// 이미 코드인 경우
	if code, ok := codeAlias[strings.ToLower(key)]; ok {
		return code
	}
	if code, ok := refCode[key]; ok {
		return code
	}
	if code, ok := customCode[key]; ok {
		return code
	}
	// "불연속 영역"은 회차마다 축약 방식이 달라 접두 매칭으로 흡수
	if strings.HasPrefix(key, "불연속") {
		return "cell_ref"
	}
	return display
}

func normalizeLabel(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '_', '　':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
