package corpus

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// exp_sentence가 역사적으로 거쳐 온 물리 형태:
//
//	(a) 구형 리스트: [ {자유 키: ["문장", ...] | "문장"}, ... ]
//	(b) 신형 딕셔너리: { "설명 문장1": {"feature": "[유형]", "sent": "..."}, ... }
//	(c) 문자열 하나가 통째로 슬롯
//
// 세 형태를 같은 핸들(Slot)로 감싸 읽기/본문 교체/유형 교체/삭제를 제공한다.

var bracketRE = regexp.MustCompile(`^\s*\[(.+?)\]\s*(.*)$`)

type slotKind int

const (
	kindString slotKind = iota // (a)(c) 및 삽입 지점: "[유형] 본문" 문자열 하나
	kindStruct                 // (b): {feature, sent} 객체
)

// Slot 설명 문장 슬롯 핸들
// 값의 소유자(맵)와 키를 들고 있어 삭제/교체 시 형제 슬롯을 건드리지 않는다
type Slot struct {
	kind   slotKind
	owner  map[string]any // 값을 소유한 맵 (item / exp / ex)
	key    string
	idx    int // inList일 때 리스트 내 위치
	inList bool

	// RefType 이 슬롯이 속한 EX의 reference_type (읽기 전용 참고용)
	RefType string
}

// Snapshot 역반영 대조용 (핸들 + 수정 전 값)
type Snapshot struct {
	Slot  *Slot
	Label string
	Text  string
}

// SplitBracket "[유형] 본문" 형태에서 (유형, 본문)을 분리
// 대괄호가 없으면 유형은 빈 문자열
func SplitBracket(s string) (label, body string) {
	if m := bracketRE.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return "", strings.TrimSpace(s)
}

func stripBrackets(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		return strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

// composeBracket 유형이 있으면 "[유형] 본문", 없으면 본문만
func composeBracket(label, body string) string {
	label = stripBrackets(label)
	if label == "" {
		return strings.TrimSpace(body)
	}
	return strings.TrimSpace(fmt.Sprintf("[%s] %s", label, body))
}

// sortOrdinalKeys "설명 문장1", "설명 문장2" 류의 키를 숫자 기준으로 정렬
var ordinalRE = regexp.MustCompile(`(\d+)`)

func sortOrdinalKeys(keys []string) []string {
	sort.SliceStable(keys, func(i, j int) bool {
		mi := ordinalRE.FindString(keys[i])
		mj := ordinalRE.FindString(keys[j])
		if mi != "" && mj != "" {
			ni, _ := strconv.Atoi(mi)
			nj, _ := strconv.Atoi(mj)
			if ni != nj {
				return ni < nj
			}
			return keys[i] < keys[j]
		}
		if (mi != "") != (mj != "") {
			return mi != "" // 숫자 있는 키 우선
		}
		return keys[i] < keys[j]
	})
	return keys
}

// isStructExp 신형(딕셔너리 안에 feature/sent 객체) 여부 판정
func isStructExp(exp map[string]any) bool {
	for _, v := range exp {
		if obj, ok := v.(map[string]any); ok {
			if _, has := obj["sent"]; has {
				return true
			}
			if _, has := obj["feature"]; has {
				return true
			}
		}
	}
	return false
}

// SlotsOf 문서의 EX[*].exp_sentence를 순회해 슬롯 핸들을 순서대로 수집
// 컨테이너가 없거나 null인 EX에는 빈 문자열 슬롯(삽입 지점) 하나를 합성하고,
// 알 수 없는 형태도 문자열 슬롯 하나로 강제한다 (형태 드리프트에 대한 방어)
func SlotsOf(doc map[string]any) []*Slot {
	var out []*Slot
	exList, ok := doc["EX"].([]any)
	if !ok {
		return out
	}

	for _, exAny := range exList {
		ex, ok := exAny.(map[string]any)
		if !ok {
			continue
		}
		refType := ""
		if ref, ok := ex["reference"].(map[string]any); ok {
			refType = Stringify(ref["reference_type"])
		}

		switch exp := ex["exp_sentence"].(type) {
		case []any:
			for _, itemAny := range exp {
				item, ok := itemAny.(map[string]any)
				if !ok {
					// 리스트에 직접 문자열이 들어온 경우는 과거에도 버려졌다
					continue
				}
				for _, k := range sortOrdinalKeys(mapKeys(item)) {
					if vv, ok := item[k].([]any); ok {
						for i := range vv {
							out = append(out, &Slot{kind: kindString, owner: item, key: k, idx: i, inList: true, RefType: refType})
						}
					} else {
						out = append(out, &Slot{kind: kindString, owner: item, key: k, RefType: refType})
					}
				}
			}
		case map[string]any:
			if isStructExp(exp) {
				for _, k := range sortOrdinalKeys(mapKeys(exp)) {
					if _, ok := exp[k].(map[string]any); !ok {
						continue
					}
					out = append(out, &Slot{kind: kindStruct, owner: exp, key: k, RefType: refType})
				}
			} else {
				for _, k := range sortOrdinalKeys(mapKeys(exp)) {
					if vv, ok := exp[k].([]any); ok {
						for i := range vv {
							out = append(out, &Slot{kind: kindString, owner: exp, key: k, idx: i, inList: true, RefType: refType})
						}
					} else {
						out = append(out, &Slot{kind: kindString, owner: exp, key: k, RefType: refType})
					}
				}
			}
		default:
			// 문자열, 부재(null 포함), 그 외 전부: ex 바로 아래 스칼라 슬롯 하나
			out = append(out, &Slot{kind: kindString, owner: ex, key: "exp_sentence", RefType: refType})
		}
	}
	return out
}

// SnapshotsOf 수정 전 값을 함께 떠 둔 슬롯 목록
func SnapshotsOf(doc map[string]any) []Snapshot {
	slots := SlotsOf(doc)
	snaps := make([]Snapshot, len(slots))
	for i, s := range slots {
		label, text := s.Read()
		snaps[i] = Snapshot{Slot: s, Label: label, Text: text}
	}
	return snaps
}

// Read 현재 (유형, 본문)을 반환
func (s *Slot) Read() (label, text string) {
	switch s.kind {
	case kindStruct:
		obj, ok := s.owner[s.key].(map[string]any)
		if !ok {
			return "", ""
		}
		return stripBrackets(Stringify(obj["feature"])), strings.TrimSpace(Stringify(obj["sent"]))
	default:
		return SplitBracket(s.rawString())
	}
}

func (s *Slot) rawString() string {
	if s.inList {
		vv, ok := s.owner[s.key].([]any)
		if !ok || s.idx < 0 || s.idx >= len(vv) {
			return ""
		}
		return Stringify(vv[s.idx])
	}
	return Stringify(s.owner[s.key])
}

// WriteText 본문만 교체. 기존 유형은 유지
func (s *Slot) WriteText(text string) {
	text = strings.TrimSpace(text)
	switch s.kind {
	case kindStruct:
		s.structObj()["sent"] = text
	default:
		label, _ := SplitBracket(s.rawString())
		s.assignString(composeBracket(label, text))
	}
}

// WriteLabel 유형만 교체. 기존 본문은 유지
// 신형 슬롯은 feature 필드를 "[유형]"으로 저장하며 이중 대괄호를 방지한다
func (s *Slot) WriteLabel(label string) {
	label = stripBrackets(label)
	switch s.kind {
	case kindStruct:
		obj := s.structObj()
		if label == "" {
			obj["feature"] = ""
		} else {
			obj["feature"] = "[" + label + "]"
		}
	default:
		old, body := SplitBracket(s.rawString())
		if label == "" {
			label = old
		}
		s.assignString(composeBracket(label, body))
	}
}

// Delete 슬롯을 제거. 형제 슬롯의 핸들은 같은 순회 안에서 계속 유효해야 하므로
// 호출 측은 역순(큰 인덱스부터)으로 삭제한다
func (s *Slot) Delete() {
	if s.kind == kindStruct {
		delete(s.owner, s.key)
		return
	}
	if s.inList {
		vv, ok := s.owner[s.key].([]any)
		if !ok || s.idx < 0 || s.idx >= len(vv) {
			return
		}
		s.owner[s.key] = append(vv[:s.idx:s.idx], vv[s.idx+1:]...)
		return
	}
	delete(s.owner, s.key)
}

func (s *Slot) structObj() map[string]any {
	obj, ok := s.owner[s.key].(map[string]any)
	if !ok {
		obj = map[string]any{}
		s.owner[s.key] = obj
	}
	return obj
}

func (s *Slot) assignString(v string) {
	if s.inList {
		if vv, ok := s.owner[s.key].([]any); ok && s.idx >= 0 && s.idx < len(vv) {
			vv[s.idx] = v
		}
		return
	}
	s.owner[s.key] = v
}

func mapKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// CleanupDoc 빈 문자열/빈 리스트/빈 객체를 걷어내 exp_sentence 구조를 정리
// 반복 편집을 거쳐도 빈 값 찌꺼기가 누적되지 않게 한다 (빈 컨테이너는 키 자체 제거)
func CleanupDoc(doc map[string]any) {
	exList, ok := doc["EX"].([]any)
	if !ok {
		return
	}

	for _, exAny := range exList {
		ex, ok := exAny.(map[string]any)
		if !ok {
			continue
		}

		switch exp := ex["exp_sentence"].(type) {
		case []any:
			newExp := make([]any, 0, len(exp))
			for _, itemAny := range exp {
				item, ok := itemAny.(map[string]any)
				if !ok {
					continue
				}
				newItem := map[string]any{}
				for k, v := range item {
					if vv, ok := v.([]any); ok {
						kept := make([]any, 0, len(vv))
						for _, sv := range vv {
							if s := strings.TrimSpace(Stringify(sv)); s != "" {
								kept = append(kept, s)
							}
						}
						if len(kept) > 0 {
							newItem[k] = kept
						}
					} else if s := strings.TrimSpace(Stringify(v)); s != "" {
						newItem[k] = s
					}
				}
				if len(newItem) > 0 {
					newExp = append(newExp, newItem)
				}
			}
			if len(newExp) > 0 {
				ex["exp_sentence"] = newExp
			} else {
				delete(ex, "exp_sentence")
			}

		case map[string]any:
			if isStructExp(exp) {
				newExp := map[string]any{}
				for k, v := range exp {
					obj, ok := v.(map[string]any)
					if !ok {
						continue
					}
					feature := strings.TrimSpace(Stringify(obj["feature"]))
					sent := strings.TrimSpace(Stringify(obj["sent"]))
					if feature == "" && sent == "" {
						continue
					}
					newExp[k] = map[string]any{"feature": feature, "sent": sent}
				}
				if len(newExp) > 0 {
					ex["exp_sentence"] = newExp
				} else {
					delete(ex, "exp_sentence")
				}
				continue
			}
			newExp := map[string]any{}
			for k, v := range exp {
				if vv, ok := v.([]any); ok {
					kept := make([]any, 0, len(vv))
					for _, sv := range vv {
						if s := strings.TrimSpace(Stringify(sv)); s != "" {
							kept = append(kept, s)
						}
					}
					if len(kept) > 0 {
						newExp[k] = kept
					}
				} else if s := strings.TrimSpace(Stringify(v)); s != "" {
					newExp[k] = s
				}
			}
			if len(newExp) > 0 {
				ex["exp_sentence"] = newExp
			} else {
				delete(ex, "exp_sentence")
			}

		case string:
			if strings.TrimSpace(exp) == "" {
				delete(ex, "exp_sentence")
			}
		case nil:
			delete(ex, "exp_sentence")
		}
	}
}
