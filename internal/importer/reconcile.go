package importer

import (
	"fmt"
	"sort"
	"strings"

	"datalyhub/internal/corpus"
)

// pair 편집된 (유형, 설명 문장) 한 쌍
type pair struct {
	label    string
	sentence string
}

// editIndex 역반영에 필요한 형태로 엑셀 행을 재조직한 결과
type editIndex struct {
	seen    map[string]bool   // 엑셀에 등장한 id (빈 그룹 포함)
	pairs   map[string][]pair // id -> (유형, 문장) 시퀀스 (행 순서 유지)
	meta    map[string]map[string]any
	medium  map[string]string
	note    map[string]string
}

// buildIndex 행을 id별로 묶는다
// 세로 병합 때문에 빈 id/유형 셀은 직전 값으로 forward-fill.
// skipBlank이면 설명 문장이 빈 행은 시퀀스에서 제외한다
func buildIndex(rows []EditRow, skipBlank bool) *editIndex {
	idx := &editIndex{
		seen:   map[string]bool{},
		pairs:  map[string][]pair{},
		meta:   map[string]map[string]any{},
		medium: map[string]string{},
		note:   map[string]string{},
	}

	prevID, prevLabel, prevCategory := "", "", ""
	for _, r := range rows {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			id = prevID
		} else {
			prevID = id
		}
		label := strings.TrimSpace(r.Label)
		if label == "" {
			label = prevLabel
		} else {
			prevLabel = label
		}
		category := strings.TrimSpace(r.Category)
		if category == "" {
			category = prevCategory
		} else {
			prevCategory = category
		}

		if id == "" {
			continue
		}
		idx.seen[id] = true

		// 문서 수준 컬럼: id마다 비어 있지 않은 첫 값을 채택
		if _, ok := idx.meta[id]; !ok {
			if m := corpus.ParseMetadata(r.Metadata); len(m) > 0 {
				idx.meta[id] = m
				if note := strings.TrimSpace(corpus.Stringify(m["note"])); note != "" {
					if _, ok := idx.note[id]; !ok {
						idx.note[id] = note
					}
				}
			}
		}
		if _, ok := idx.medium[id]; !ok && category != "" {
			idx.medium[id] = category
		}

		sentence := strings.TrimSpace(r.Sentence)
		if skipBlank && sentence == "" {
			continue
		}
		idx.pairs[id] = append(idx.pairs[id], pair{label: label, sentence: sentence})
	}
	return idx
}

// Reconcile 편집된 엑셀 행을 말뭉치에 역반영 (제자리 수정)
//
// id별 규칙:
//   - 엑셀에 해당 id가 아예 없으면 그 문서는 손대지 않는다 (미검수로 간주)
//   - 그룹은 있으나 문장 시퀀스가 비면 슬롯은 그대로 두고 문서 수준 값만 반영
//   - 슬롯과 행을 순서대로 1:1 대응: 유형/문장 둘 다 빈 행은 삭제 지시,
//     한쪽만 비면 비어 있지 않은 쪽만 교체 (부분 수정, 빈 쪽은 기존 값 유지)
//   - 행 수 < 슬롯 수면 남는 꼬리 슬롯을 삭제해 개수를 엑셀과 맞춘다
//   - 삭제는 역순으로 수행한 뒤 빈 컨테이너를 정리
//   - 슬롯이 전혀 없던 문서에 행이 있으면 신형 구조로 슬롯을 새로 만든다
func Reconcile(c *corpus.Corpus, rows []EditRow, skipBlank bool) error {
	idx := buildIndex(rows, skipBlank)

	for _, doc := range c.Documents() {
		id := strings.TrimSpace(corpus.Stringify(doc["id"]))
		if id == "" || !idx.seen[id] {
			continue
		}

		applyDocFields(doc, idx, id)

		seq := idx.pairs[id]
		if len(seq) == 0 {
			continue
		}

		snaps := corpus.SnapshotsOf(doc)
		if len(snaps) == 0 {
			createSlots(doc, seq)
			corpus.CleanupDoc(doc)
			continue
		}

		n := len(seq)
		if len(snaps) < n {
			n = len(snaps)
		}

		var deletions []int
		for i := 0; i < n; i++ {
			snap := snaps[i]
			label := strings.TrimSpace(seq[i].label)
			sentence := strings.TrimSpace(seq[i].sentence)

			if label == "" && sentence == "" {
				deletions = append(deletions, i)
				continue
			}

			if sentence != "" && sentence != snap.Text {
				snap.Slot.WriteText(sentence)
			}
			if label != "" {
				// 슬롯 자체에 유형이 없으면 EX의 reference_type 표시 라벨이
				// 화면에 나갔던 값이므로 그것과 비교해야 무편집 왕복이 안정된다
				eff := snap.Label
				if eff == "" {
					eff = corpus.ToDisplay(snap.Slot.RefType)
				}
				if corpus.ToCode(label) != corpus.ToCode(eff) {
					snap.Slot.WriteLabel(corpus.ToDisplay(corpus.ToCode(label)))
				}
			}
		}

		// 엑셀 행 수보다 슬롯이 많으면 꼬리부터 삭제해 개수 일치
		for i := n; i < len(snaps); i++ {
			deletions = append(deletions, i)
		}

		sort.Sort(sort.Reverse(sort.IntSlice(deletions)))
		for _, i := range deletions {
			snaps[i].Slot.Delete()
		}

		corpus.CleanupDoc(doc)
	}
	return nil
}

// applyDocFields 문서 수준 컬럼(metadata, Medium_category, note)을 반영
// 그룹에 비어 있지 않은 값이 있을 때만 덮어쓴다
func applyDocFields(doc map[string]any, idx *editIndex, id string) {
	metaFromSheet := idx.meta[id]
	medium := idx.medium[id]
	note := idx.note[id]
	if metaFromSheet == nil && medium == "" && note == "" {
		return
	}

	meta, ok := doc["metadata"].(map[string]any)
	if !ok {
		meta = map[string]any{}
		doc["metadata"] = meta
	}
	for k, v := range metaFromSheet {
		meta[k] = v
	}
	if medium != "" {
		meta["Medium_category"] = medium
	}
	if note != "" {
		meta["note"] = note
	}
}

// createSlots 슬롯이 전혀 없던 문서에 신형 구조로 설명 문장을 생성
func createSlots(doc map[string]any, seq []pair) {
	exList, ok := doc["EX"].([]any)
	if !ok || len(exList) == 0 {
		exList = []any{map[string]any{"exp_sentence": map[string]any{}}}
		doc["EX"] = exList
	}
	ex, ok := exList[0].(map[string]any)
	if !ok {
		return
	}
	exp, ok := ex["exp_sentence"].(map[string]any)
	if !ok {
		exp = map[string]any{}
		ex["exp_sentence"] = exp
	}

	i := 1
	for _, p := range seq {
		label := strings.TrimSpace(p.label)
		sentence := strings.TrimSpace(p.sentence)
		if label == "" && sentence == "" {
			continue
		}
		feature := ""
		if label != "" {
			if strings.HasPrefix(label, "[") && strings.HasSuffix(label, "]") {
				label = strings.TrimSpace(label[1 : len(label)-1])
			}
			if label != "" {
				feature = "[" + label + "]"
			}
		}
		exp[fmt.Sprintf("설명 문장%d", i)] = map[string]any{"feature": feature, "sent": sentence}
		i++
	}
}
