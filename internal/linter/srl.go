// Package linter SRL argument 정리 규칙을 적용하는 배치 도구
//
// 규칙:
//   - argument.label이 비어 있고(없음/null/공백) 해당 argument가 커버하는
//     단어들 중 morph.label == "VX"가 하나라도 있으면 그 argument를 삭제
//   - argument가 모두 사라진 SRL 항목은 통째로 삭제
//   - SRL 값이 리스트가 아니면 빈 리스트로 정규화
package linter

import (
	"strings"

	"datalyhub/internal/corpus"
)

// LogRow 정리 로그 한 건 (Excel 리포트의 Log 시트 한 행)
type LogRow struct {
	File          string
	SentenceID    string
	PredicateForm string
	ArgumentForm  string
	Action        string
}

// Result 파일 하나에 대한 정리 결과
type Result struct {
	File    string
	Changed bool
	Log     []LogRow
}

// Clean 말뭉치 한 건에 정리 규칙을 적용 (제자리 수정)
func Clean(c *corpus.Corpus, fileName string) *Result {
	res := &Result{File: fileName}

	for _, doc := range c.Documents() {
		sents, ok := doc["sentence"].([]any)
		if !ok {
			continue
		}
		for _, sentAny := range sents {
			sent, ok := sentAny.(map[string]any)
			if !ok {
				continue
			}
			cleanSentence(sent, fileName, res)
		}
	}
	return res
}

func cleanSentence(sent map[string]any, fileName string, res *Result) {
	srlList, ok := sent["SRL"].([]any)
	if !ok {
		// 리스트가 아닌 SRL 값은 빈 리스트로 정규화
		if v, has := sent["SRL"]; has && v != nil {
			sent["SRL"] = []any{}
			res.Changed = true
		}
		return
	}
	if len(srlList) == 0 {
		return
	}

	morphByWord := morphLabelsByWord(sent)
	sentID := corpus.Stringify(sent["id"])

	newSRL := make([]any, 0, len(srlList))
	changed := false

	for _, srlAny := range srlList {
		srl, ok := srlAny.(map[string]any)
		if !ok {
			changed = true
			continue
		}

		args, _ := srl["argument"].([]any)
		kept := make([]any, 0, len(args))
		removed := 0

		for _, argAny := range args {
			arg, ok := argAny.(map[string]any)
			if !ok {
				removed++
				continue
			}
			if emptyLabel(arg) && argumentHasVX(arg, sent, morphByWord) {
				removed++
				res.Log = append(res.Log, LogRow{
					File:          fileName,
					SentenceID:    sentID,
					PredicateForm: predicateSurface(srl),
					ArgumentForm:  corpus.Stringify(arg["form"]),
					Action:        "argument_removed_empty_label_with_VX",
				})
				continue
			}
			kept = append(kept, argAny)
		}

		if removed > 0 {
			changed = true
		}
		if len(kept) == 0 {
			res.Log = append(res.Log, LogRow{
				File:          fileName,
				SentenceID:    sentID,
				PredicateForm: predicateSurface(srl),
				Action:        "srl_removed_no_arguments",
			})
			continue
		}

		srl["argument"] = kept
		newSRL = append(newSRL, srlAny)
	}

	if changed || len(newSRL) != len(srlList) {
		res.Changed = true
	}
	sent["SRL"] = newSRL
}

func emptyLabel(arg map[string]any) bool {
	v, has := arg["label"]
	if !has || v == nil {
		return true
	}
	return strings.TrimSpace(corpus.Stringify(v)) == ""
}

func predicateSurface(srl map[string]any) string {
	switch pred := srl["predicate"].(type) {
	case []any:
		if len(pred) > 0 {
			if p, ok := pred[0].(map[string]any); ok {
				return corpus.Stringify(p["form"])
			}
		}
	case map[string]any:
		return corpus.Stringify(pred["form"])
	}
	return ""
}

func toInt(v any) (int, bool) {
	switch x := v.(type) {
	case float64:
		return int(x), true
	case int:
		return x, true
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		n := 0
		for _, r := range s {
			if r < '0' || r > '9' {
				return 0, false
			}
			n = n*10 + int(r-'0')
		}
		return n, true
	}
	return 0, false
}

// morphLabelsByWord word_id -> 형태소 라벨 목록
func morphLabelsByWord(sent map[string]any) map[int][]string {
	out := map[int][]string{}
	morphs, ok := sent["morph"].([]any)
	if !ok {
		return out
	}
	for _, mAny := range morphs {
		m, ok := mAny.(map[string]any)
		if !ok {
			continue
		}
		wid, ok := toInt(m["word_id"])
		if !ok {
			continue
		}
		lab, has := m["label"]
		if !has || lab == nil {
			continue
		}
		out[wid] = append(out[wid], corpus.Stringify(lab))
	}
	return out
}

// argWordIDs argument가 커버하는 word id 집합
// word_id 필드가 우선, 없으면 begin/end 구간으로 단어를 포함 판정
func argWordIDs(arg map[string]any, sent map[string]any) map[int]bool {
	out := map[int]bool{}

	if widVal, has := arg["word_id"]; has {
		switch v := widVal.(type) {
		case []any:
			for _, e := range v {
				if iv, ok := toInt(e); ok {
					out[iv] = true
				}
			}
		default:
			if iv, ok := toInt(v); ok {
				out[iv] = true
			}
		}
	}
	if len(out) > 0 {
		return out
	}

	ab, okB := toInt(arg["begin"])
	ae, okE := toInt(arg["end"])
	if !okB || !okE {
		return out
	}
	words, _ := sent["word"].([]any)
	for _, wAny := range words {
		w, ok := wAny.(map[string]any)
		if !ok {
			continue
		}
		wid, ok1 := toInt(w["id"])
		wb, ok2 := toInt(w["begin"])
		we, ok3 := toInt(w["end"])
		if !ok1 || !ok2 || !ok3 {
			continue
		}
		if wb >= ab && we <= ae {
			out[wid] = true
		}
	}
	return out
}

func argumentHasVX(arg, sent map[string]any, morphByWord map[int][]string) bool {
	for wid := range argWordIDs(arg, sent) {
		for _, lab := range morphByWord[wid] {
			if lab == "VX" {
				return true
			}
		}
	}
	return false
}
