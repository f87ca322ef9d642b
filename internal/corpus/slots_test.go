package corpus_test

import (
	"testing"

	"datalyhub/internal/corpus"
)

func parseDoc(t *testing.T, jsonText string) (map[string]any, *corpus.Corpus) {
	t.Helper()
	c, err := corpus.Parse([]byte(jsonText))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	docs := c.Documents()
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	return docs[0], c
}

func TestSlotsOfListShape(t *testing.T) {
	doc, _ := parseDoc(t, `{"document":[{"id":"D1","EX":[
		{"reference":{"reference_type":"table_ref"},
		 "exp_sentence":[{"문장":["[대상] 첫 문장","둘째 문장"]},{"기타":"셋째 문장"}]}
	]}]}`)

	slots := corpus.SlotsOf(doc)
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}

	label, text := slots[0].Read()
	if label != "대상" || text != "첫 문장" {
		t.Fatalf("slot0=(%q,%q)", label, text)
	}
	label, text = slots[1].Read()
	if label != "" || text != "둘째 문장" {
		t.Fatalf("slot1=(%q,%q)", label, text)
	}
	label, text = slots[2].Read()
	if label != "" || text != "셋째 문장" {
		t.Fatalf("slot2=(%q,%q)", label, text)
	}
	if slots[0].RefType != "table_ref" {
		t.Fatalf("RefType=%q", slots[0].RefType)
	}
}

func TestSlotsOfStructShape(t *testing.T) {
	doc, _ := parseDoc(t, `{"document":[{"id":"D1","EX":[
		{"exp_sentence":{
			"설명 문장2":{"feature":"[배경]","sent":"두 번째"},
			"설명 문장1":{"feature":"[대상 식별 문장]","sent":"첫 번째"}
		}}
	]}]}`)

	slots := corpus.SlotsOf(doc)
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}

	// 키의 숫자 기준 정렬: 설명 문장1 먼저
	label, text := slots[0].Read()
	if label != "대상 식별 문장" || text != "첫 번째" {
		t.Fatalf("slot0=(%q,%q)", label, text)
	}
	label, text = slots[1].Read()
	if label != "배경" || text != "두 번째" {
		t.Fatalf("slot1=(%q,%q)", label, text)
	}
}

func TestSlotsOfBareStringAndSeed(t *testing.T) {
	doc, _ := parseDoc(t, `{"document":[{"id":"D1","EX":[
		{"exp_sentence":"[유형] 통째 문장"},
		{"reference":{"reference_type":"row_ref"}}
	]}]}`)

	slots := corpus.SlotsOf(doc)
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots (bare string + seed), got %d", len(slots))
	}
	label, text := slots[0].Read()
	if label != "유형" || text != "통째 문장" {
		t.Fatalf("bare slot=(%q,%q)", label, text)
	}
	// 컨테이너가 없는 EX에는 삽입 지점 슬롯이 합성된다
	label, text = slots[1].Read()
	if label != "" || text != "" {
		t.Fatalf("seed slot must be empty, got (%q,%q)", label, text)
	}

	// 삽입 지점에 쓰면 문자열 슬롯이 실제로 생긴다
	slots[1].WriteText("새 문장")
	slots = corpus.SlotsOf(doc)
	if _, text := slots[1].Read(); text != "새 문장" {
		t.Fatalf("seed write failed: %q", text)
	}
}

func TestWriteTextKeepsLabel(t *testing.T) {
	doc, _ := parseDoc(t, `{"document":[{"id":"D1","EX":[
		{"exp_sentence":[{"문장":["[대상] 옛 문장"]}]}
	]}]}`)

	slots := corpus.SlotsOf(doc)
	slots[0].WriteText("새 문장")
	label, text := slots[0].Read()
	if label != "대상" || text != "새 문장" {
		t.Fatalf("after WriteText=(%q,%q)", label, text)
	}
}

func TestWriteLabelKeepsText(t *testing.T) {
	doc, _ := parseDoc(t, `{"document":[{"id":"D1","EX":[
		{"exp_sentence":[{"문장":["[대상] 문장 본문"]}]}
	]}]}`)

	slots := corpus.SlotsOf(doc)
	slots[0].WriteLabel("[배경]") // 이중 대괄호 방지 확인
	label, text := slots[0].Read()
	if label != "배경" || text != "문장 본문" {
		t.Fatalf("after WriteLabel=(%q,%q)", label, text)
	}
}

func TestStructSlotWrites(t *testing.T) {
	doc, _ := parseDoc(t, `{"document":[{"id":"D1","EX":[
		{"exp_sentence":{"설명 문장1":{"feature":"[대상]","sent":"원본"}}}
	]}]}`)

	slots := corpus.SlotsOf(doc)
	slots[0].WriteLabel("배경")
	slots[0].WriteText("수정본")

	ex := doc["EX"].([]any)[0].(map[string]any)
	obj := ex["exp_sentence"].(map[string]any)["설명 문장1"].(map[string]any)
	if obj["feature"] != "[배경]" {
		t.Fatalf("feature=%v", obj["feature"])
	}
	if obj["sent"] != "수정본" {
		t.Fatalf("sent=%v", obj["sent"])
	}
}

func TestDeleteReverseOrderKeepsSiblings(t *testing.T) {
	doc, _ := parseDoc(t, `{"document":[{"id":"D1","EX":[
		{"exp_sentence":[{"문장":["하나","둘","셋"]}]}
	]}]}`)

	slots := corpus.SlotsOf(doc)
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}
	// 역순 삭제: 2번, 0번 제거 → "둘"만 남는다
	slots[2].Delete()
	slots[0].Delete()

	remain := corpus.SlotsOf(doc)
	if len(remain) != 1 {
		t.Fatalf("expected 1 slot after deletes, got %d", len(remain))
	}
	if _, text := remain[0].Read(); text != "둘" {
		t.Fatalf("survivor=%q", text)
	}
}

func TestCleanupDocRemovesEmptyContainers(t *testing.T) {
	doc, _ := parseDoc(t, `{"document":[{"id":"D1","EX":[
		{"exp_sentence":[{"문장":["", "  "]},{"기타":""}]},
		{"exp_sentence":{"설명 문장1":{"feature":"","sent":""}}},
		{"exp_sentence":"   "}
	]}]}`)

	corpus.CleanupDoc(doc)

	for i, exAny := range doc["EX"].([]any) {
		ex := exAny.(map[string]any)
		if _, has := ex["exp_sentence"]; has {
			t.Fatalf("EX[%d] exp_sentence must be removed after cleanup", i)
		}
	}
}

func TestCleanupDocKeepsNonEmpty(t *testing.T) {
	doc, _ := parseDoc(t, `{"document":[{"id":"D1","EX":[
		{"exp_sentence":[{"문장":["살릴 문장",""]}]}
	]}]}`)

	corpus.CleanupDoc(doc)

	slots := corpus.SlotsOf(doc)
	if len(slots) != 1 {
		t.Fatalf("expected 1 surviving slot, got %d", len(slots))
	}
	if _, text := slots[0].Read(); text != "살릴 문장" {
		t.Fatalf("survivor=%q", text)
	}
}

func TestSnapshotsOfCapturesPriorValues(t *testing.T) {
	doc, _ := parseDoc(t, `{"document":[{"id":"D1","EX":[
		{"exp_sentence":[{"문장":["[대상] 원본"]}]}
	]}]}`)

	snaps := corpus.SnapshotsOf(doc)
	if len(snaps) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(snaps))
	}
	snaps[0].Slot.WriteText("바뀐 본문")
	if snaps[0].Label != "대상" || snaps[0].Text != "원본" {
		t.Fatalf("snapshot must keep prior values: (%q,%q)", snaps[0].Label, snaps[0].Text)
	}
}
