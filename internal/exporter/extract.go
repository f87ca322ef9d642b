package exporter

import (
	"datalyhub/internal/corpus"
	"datalyhub/internal/model"
)

// Extract 말뭉치를 행 목록으로 평탄화
// (document, EX, 설명 문장 슬롯) 하나당 한 행. 슬롯이 없는 EX도
// 삽입 지점 슬롯 덕에 빈 행 하나로 표현되어 id 그룹에서 빠지지 않는다
func Extract(c *corpus.Corpus) []model.Row {
	var rows []model.Row

	for _, doc := range c.Documents() {
		id := corpus.Stringify(doc["id"])
		worker := corpus.Stringify(doc["worker_id_cnst"])

		meta, _ := doc["metadata"].(map[string]any)
		if meta == nil {
			meta = map[string]any{}
		}
		category := corpus.Stringify(meta["Medium_category"])
		mdText, mdURL := corpus.FormatMetadata(meta)

		memoRaw := doc["mdfcn_infos"]
		if memoRaw == nil {
			// 일부 회차 산출물은 키 이름이 다르다
			memoRaw = doc["mdfcn_memo"]
		}
		memo := corpus.ReduceMemos(memoRaw)

		slots := corpus.SlotsOf(doc)
		if len(slots) == 0 {
			// EX가 아예 없는 문서도 한 행으로 표현
			rows = append(rows, model.Row{
				ID: id, Worker: worker, Category: category,
				Metadata: mdText, MetaURL: mdURL, Memo: memo,
			})
			continue
		}

		for _, slot := range slots {
			label, text := slot.Read()
			if label == "" {
				label = corpus.ToDisplay(slot.RefType)
			}
			rows = append(rows, model.Row{
				ID:       id,
				Worker:   worker,
				Category: category,
				Label:    label,
				Sentence: text,
				Metadata: mdText,
				MetaURL:  mdURL,
				Memo:     memo,
			})
		}
	}
	return rows
}
