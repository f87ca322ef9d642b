package corpus

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// MetaOrder metadata 셀에 표시할 키 순서 (입력 맵의 순서와 무관하게 고정)
var MetaOrder = []string{
	"note", "image", "copyright", "term_id", "Major_category",
	"title", "url", "Medium_category", "domain", "media_id",
	"publisher", "term", "source_id",
}

var noteRE = regexp.MustCompile(`(?s)"note"\s*:\s*"(.*?)"`)

// CleanURL url 값을 꺼내 정리
// 단일 원소 리스트는 풀고, 따옴표로 감싸진 문자열은 벗긴다
func CleanURL(v any) string {
	var s string
	switch x := v.(type) {
	case nil:
		return ""
	case []any:
		if len(x) == 0 {
			return ""
		}
		s = Stringify(x[0])
	default:
		s = Stringify(v)
	}
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			s = strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}

// FormatMetadata metadata 맵을 멀티라인 표시 문자열로 만들고 url을 분리해 반환
func FormatMetadata(meta map[string]any) (display, url string) {
	url = CleanURL(meta["url"])

	lines := make([]string, 0, len(MetaOrder)+2)
	lines = append(lines, "metadata : {")
	for i, k := range MetaOrder {
		v := Stringify(meta[k])
		if k == "url" && url != "" {
			v = url
		}
		if i < len(MetaOrder)-1 {
			lines = append(lines, fmt.Sprintf("  %q: %q,", k, v))
		} else {
			lines = append(lines, fmt.Sprintf("  %q: %q", k, v))
		}
	}
	lines = append(lines, "}")
	return strings.Join(lines, "\n"), url
}

// ParseMetadata 엑셀 metadata 셀의 표시 문자열을 부분 맵으로 되돌린다
// 가장 바깥 중괄호 구간을 JSON으로 파싱하고, 엑셀 왕복 과정에서 생긴
// 이중 따옴표("")를 접어서 재시도한다. 전부 실패하면 note만 정규식으로 건진다
// 복구 불가 시 빈 맵 (오류 아님)
func ParseMetadata(cell string) map[string]any {
	s := strings.TrimSpace(cell)
	if s == "" {
		return map[string]any{}
	}

	i, j := strings.Index(s, "{"), strings.LastIndex(s, "}")
	if i == -1 || j == -1 || i >= j {
		return noteOnly(strings.ReplaceAll(s, `""`, `"`))
	}

	blob := strings.TrimSpace(s[i : j+1])
	for _, candidate := range []string{blob, strings.ReplaceAll(blob, `""`, `"`)} {
		var m map[string]any
		if err := json.Unmarshal([]byte(candidate), &m); err == nil {
			return m
		}
	}
	return noteOnly(strings.ReplaceAll(blob, `""`, `"`))
}

func noteOnly(s string) map[string]any {
	if m := noteRE.FindStringSubmatch(s); m != nil {
		return map[string]any{"note": m[1]}
	}
	return map[string]any{}
}
