package exporter_test

import (
	"testing"

	"datalyhub/internal/corpus"
	"datalyhub/internal/exporter"
)

func parseCorpus(t *testing.T, jsonText string) *corpus.Corpus {
	t.Helper()
	c, err := corpus.Parse([]byte(jsonText))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return c
}

func TestExtractOneRowPerSlot(t *testing.T) {
	c := parseCorpus(t, `{"document":[{
		"id":"D1",
		"worker_id_cnst":"W01",
		"metadata":{"Medium_category":"신문","url":"https://example.com/doc"},
		"mdfcn_infos":[{"mdfcn_memo":"[{\"value\":\"검수 메모\"}]"}],
		"EX":[{"reference":{"reference_type":"table_ref"},
		       "exp_sentence":[{"any":["old text"]}]}]
	}]}`)

	rows := exporter.Extract(c)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	r := rows[0]
	if r.ID != "D1" || r.Worker != "W01" || r.Category != "신문" {
		t.Fatalf("document columns wrong: %+v", r)
	}
	if r.Label != "표 설명 문장" {
		t.Fatalf("Label=%q, want 표 설명 문장", r.Label)
	}
	if r.Sentence != "old text" {
		t.Fatalf("Sentence=%q", r.Sentence)
	}
	if r.MetaURL != "https://example.com/doc" {
		t.Fatalf("MetaURL=%q", r.MetaURL)
	}
	if r.Memo != "검수 메모" {
		t.Fatalf("Memo=%q", r.Memo)
	}
}

func TestExtractSlotLabelBeatsReferenceType(t *testing.T) {
	c := parseCorpus(t, `{"document":[{
		"id":"D1",
		"EX":[{"reference":{"reference_type":"row_ref"},
		       "exp_sentence":[{"any":["[대상 식별 문장] 본문"]}]}]
	}]}`)

	rows := exporter.Extract(c)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Label != "대상 식별 문장" {
		t.Fatalf("Label=%q, 슬롯 자체 유형이 우선해야 한다", rows[0].Label)
	}
}

func TestExtractZeroSlotEntryStillEmitsRow(t *testing.T) {
	c := parseCorpus(t, `{"document":[{
		"id":"D1",
		"EX":[{"reference":{"reference_type":"col_ref"}}]
	}]}`)

	rows := exporter.Extract(c)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row for zero-slot entry, got %d", len(rows))
	}
	if rows[0].Sentence != "" {
		t.Fatalf("Sentence=%q, want empty", rows[0].Sentence)
	}
}

func TestExtractNoEXDocument(t *testing.T) {
	c := parseCorpus(t, `{"document":[{"id":"D1"}]}`)

	rows := exporter.Extract(c)
	if len(rows) != 1 {
		t.Fatalf("expected 1 placeholder row, got %d", len(rows))
	}
	if rows[0].ID != "D1" || rows[0].Label != "" || rows[0].Sentence != "" {
		t.Fatalf("placeholder row wrong: %+v", rows[0])
	}
}

func TestExtractGroupingContiguity(t *testing.T) {
	c := parseCorpus(t, `{"document":[
		{"id":"D1","EX":[{"exp_sentence":[{"k":["a","b"]}]}]},
		{"id":"D2","EX":[{"exp_sentence":[{"k":["c"]}]}]}
	]}`)

	rows := exporter.Extract(c)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].ID != "D1" || rows[1].ID != "D1" || rows[2].ID != "D2" {
		t.Fatalf("id blocks must be contiguous: %v %v %v", rows[0].ID, rows[1].ID, rows[2].ID)
	}
}
