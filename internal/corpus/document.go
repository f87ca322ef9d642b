package corpus

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Corpus 업로드된 말뭉치 JSON 한 건의 파싱 결과
// 요청 단위로 생성되고, 역반영 시 제자리에서 수정된다
type Corpus struct {
	Root map[string]any
}

// Parse JSON 바이트를 파싱
func Parse(data []byte) (*Corpus, error) {
	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("JSON 파싱 실패: %w", err)
	}
	return &Corpus{Root: root}, nil
}

// Documents 최상위 document 배열. 배열이 아니면 nil
func (c *Corpus) Documents() []map[string]any {
	raw, ok := c.Root["document"].([]any)
	if !ok {
		return nil
	}
	docs := make([]map[string]any, 0, len(raw))
	for _, d := range raw {
		if m, ok := d.(map[string]any); ok {
			docs = append(docs, m)
		}
	}
	return docs
}

// Marshal 들여쓰기 2칸, 비ASCII 이스케이프 없이 직렬화
func (c *Corpus) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c.Root); err != nil {
		return nil, fmt.Errorf("JSON 직렬화 실패: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Stringify JSON 스칼라 값을 표시용 문자열로 변환
// float64로 디코딩된 정수는 소수점 없이 출력한다
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		if x == float64(int64(x)) {
			return fmt.Sprintf("%d", int64(x))
		}
		return fmt.Sprintf("%g", x)
	case bool:
		if x {
			return "true"
		}
		return "false"
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprintf("%v", x)
		}
		return string(b)
	}
}
