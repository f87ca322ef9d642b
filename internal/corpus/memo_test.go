package corpus_test

import (
	"testing"

	"datalyhub/internal/corpus"
)

func TestReduceMemosJSONPayload(t *testing.T) {
	raw := []any{
		map[string]any{"mdfcn_memo": `[{"value": "오탈자 수정"}, {"value": "문장 보강"}]`},
		map[string]any{"mdfcn_memo": `[{"value": "오탈자 수정"}]`}, // 중복
	}
	got := corpus.ReduceMemos(raw)
	want := "오탈자 수정\n문장 보강"
	if got != want {
		t.Fatalf("ReduceMemos=%q, want %q", got, want)
	}
}

func TestReduceMemosPlainStringAndTypeTags(t *testing.T) {
	raw := []any{
		map[string]any{"mdfcn_memo": "자유 텍스트 메모"},
		"table_ref", // 유형 태그는 버린다
		"row_ref",
	}
	if got := corpus.ReduceMemos(raw); got != "자유 텍스트 메모" {
		t.Fatalf("ReduceMemos=%q", got)
	}
}

func TestReduceMemosValueField(t *testing.T) {
	raw := []any{
		map[string]any{"value": "직접 값"},
		map[string]any{"value": "  "},
	}
	if got := corpus.ReduceMemos(raw); got != "직접 값" {
		t.Fatalf("ReduceMemos=%q", got)
	}
}

func TestReduceMemosEmpty(t *testing.T) {
	if got := corpus.ReduceMemos(nil); got != "" {
		t.Fatalf("ReduceMemos(nil)=%q", got)
	}
	if got := corpus.ReduceMemos([]any{}); got != "" {
		t.Fatalf("ReduceMemos(empty)=%q", got)
	}
}
