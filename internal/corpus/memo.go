package corpus

import (
	"encoding/json"
	"sort"
	"strings"
)

// reference_type 코드 자체가 memo 값으로 섞여 들어오는 경우가 있어 걸러낸다
var typeTags = map[string]bool{
	"table_ref": true,
	"row_ref":   true,
	"col_ref":   true,
	"cell_ref":  true,
}

// ReduceMemos mdfcn_infos에서 value 문자열만 추출해 하나의 표시 문자열로 줄인다
// JSON 인코딩된 memo 페이로드는 풀어서 재귀 탐색, 중복은 첫 등장 순서를 유지하며 제거
func ReduceMemos(raw any) string {
	var values []string
	walkMemo(raw, &values)

	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return strings.Join(out, "\n")
}

func walkMemo(x any, values *[]string) {
	switch v := x.(type) {
	case nil:
		return
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return
		}
		if s[0] == '[' || s[0] == '{' {
			var nested any
			if err := json.Unmarshal([]byte(s), &nested); err == nil {
				walkMemo(nested, values)
				return
			}
		}
		if !typeTags[s] {
			*values = append(*values, s)
		}
	case map[string]any:
		if val, ok := v["value"].(string); ok {
			if s := strings.TrimSpace(val); s != "" {
				*values = append(*values, s)
			}
		}
		if mm, ok := v["mdfcn_memo"].(string); ok {
			if s := strings.TrimSpace(mm); s != "" {
				var nested any
				if err := json.Unmarshal([]byte(s), &nested); err == nil {
					walkMemo(nested, values)
				} else if !typeTags[s] {
					// JSON이 아닌 자유 텍스트 memo는 그대로 채택
					*values = append(*values, s)
				}
			}
		}
		// 맵 순회 순서가 불안정하므로 키를 정렬해 출력 순서를 고정
		keys := make([]string, 0, len(v))
		for k := range v {
			if k == "value" || k == "mdfcn_memo" {
				continue
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			switch v[k].(type) {
			case []any, map[string]any:
				walkMemo(v[k], values)
			}
		}
	case []any:
		for _, it := range v {
			walkMemo(it, values)
		}
	}
}
