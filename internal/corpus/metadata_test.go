package corpus_test

import (
	"strings"
	"testing"

	"datalyhub/internal/corpus"
)

func TestFormatMetadataKeyOrderAndURL(t *testing.T) {
	meta := map[string]any{
		"publisher": "한국일보",
		"note":      "검수 완료",
		"url":       []any{"https://example.com/a"},
	}
	display, url := corpus.FormatMetadata(meta)

	if url != "https://example.com/a" {
		t.Fatalf("url=%q", url)
	}
	if !strings.HasPrefix(display, "metadata : {") || !strings.HasSuffix(display, "}") {
		t.Fatalf("display frame broken: %q", display)
	}

	lines := strings.Split(display, "\n")
	// 고정 키 순서: note가 첫 키, source_id가 마지막 키
	if !strings.Contains(lines[1], `"note"`) {
		t.Fatalf("first key must be note: %q", lines[1])
	}
	if !strings.Contains(lines[len(lines)-2], `"source_id"`) {
		t.Fatalf("last key must be source_id: %q", lines[len(lines)-2])
	}
	if strings.HasSuffix(strings.TrimSpace(lines[len(lines)-2]), ",") {
		t.Fatalf("last key line must not have trailing comma: %q", lines[len(lines)-2])
	}
	if !strings.Contains(display, `"url": "https://example.com/a"`) {
		t.Fatalf("url not embedded: %q", display)
	}
}

func TestCleanURLQuotedString(t *testing.T) {
	if got := corpus.CleanURL(`"https://example.com"`); got != "https://example.com" {
		t.Fatalf("CleanURL=%q", got)
	}
	if got := corpus.CleanURL(nil); got != "" {
		t.Fatalf("CleanURL(nil)=%q", got)
	}
}

func TestParseMetadataRoundTrip(t *testing.T) {
	display, _ := corpus.FormatMetadata(map[string]any{"note": "메모", "title": "제목"})
	m := corpus.ParseMetadata(display)
	if m["note"] != "메모" {
		t.Fatalf("note=%v", m["note"])
	}
	if m["title"] != "제목" {
		t.Fatalf("title=%v", m["title"])
	}
}

func TestParseMetadataDoubledQuotes(t *testing.T) {
	// 엑셀 왕복 과정에서 따옴표가 이중으로 들어간 셀
	cell := `metadata : {""note"": ""수정 이력"", ""title"": ""기사""}`
	m := corpus.ParseMetadata(cell)
	if m["note"] != "수정 이력" {
		t.Fatalf("doubled-quote recovery failed: %v", m)
	}
}

func TestParseMetadataNoteFallback(t *testing.T) {
	// 중괄호 구간이 JSON으로 파싱 불가능해도 note는 건진다
	cell := `metadata : { "note": "살릴 내용", 깨진 조각 }`
	m := corpus.ParseMetadata(cell)
	if len(m) != 1 || m["note"] != "살릴 내용" {
		t.Fatalf("note fallback failed: %v", m)
	}
}

func TestParseMetadataUnrecoverable(t *testing.T) {
	if m := corpus.ParseMetadata("그냥 텍스트"); len(m) != 0 {
		t.Fatalf("expected empty map, got %v", m)
	}
	if m := corpus.ParseMetadata(""); len(m) != 0 {
		t.Fatalf("expected empty map for blank cell, got %v", m)
	}
}
