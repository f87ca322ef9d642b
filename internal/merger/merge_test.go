package merger_test

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"testing"

	"datalyhub/internal/merger"
)

func zipBytes(t *testing.T, members map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range members {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip Create failed: %v", err)
		}
		if _, err := w.Write([]byte(data)); err != nil {
			t.Fatalf("zip Write failed: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip Close failed: %v", err)
	}
	return buf.Bytes()
}

func readArchive(t *testing.T, data []byte) map[string]map[string]any {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("result archive invalid: %v", err)
	}
	out := map[string]map[string]any{}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("member open failed: %v", err)
		}
		raw, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("member read failed: %v", err)
		}
		var doc map[string]any
		if err := json.Unmarshal(raw, &doc); err != nil {
			t.Fatalf("member %q not JSON: %v", f.Name, err)
		}
		out[f.Name] = doc
	}
	return out
}

const teamADoc = `{
	"id":"P1",
	"metadata":{"title":"기사 모음"},
	"document":[
		{"id":"A1","SC1":{"ai_flag":true,"summary":"원 요약"}},
		{"id":"A2"}
	]
}`

const teamBDoc = `{
	"id":"P1",
	"SC1":{"ai_flag":true,"summary":"B팀 요약","score":3}
}`

func TestMerge(t *testing.T) {
	archive := zipBytes(t, map[string]string{
		"A/3_기사.json": teamADoc,
		"B/7_기사.json": teamBDoc,
	})

	res, err := merger.Merge(archive, 5)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if res.Merged != 1 {
		t.Fatalf("Merged=%d", res.Merged)
	}
	if len(res.Skipped) != 0 {
		t.Fatalf("Skipped=%v", res.Skipped)
	}

	members := readArchive(t, res.Archive)
	doc, ok := members["5_기사.json"]
	if !ok {
		t.Fatalf("output member missing: %v", memberNames(members))
	}

	arts := doc["document"].([]any)
	if len(arts) != 2 {
		t.Fatalf("article count=%d", len(arts))
	}

	a1 := arts[0].(map[string]any)
	sc1 := a1["SC1"].(map[string]any)
	if sc1["ai_flag"] != false {
		t.Fatalf("SC1 ai_flag=%v", sc1["ai_flag"])
	}
	if sc1["summary"] != "원 요약" {
		t.Fatalf("SC1 본문 필드가 유실됐다: %v", sc1["summary"])
	}
	eval := sc1["evaluation"].(map[string]any)
	if eval["id"] != "evaluatorAJ" {
		t.Fatalf("evaluation id=%v", eval["id"])
	}
	content := eval["content"].(map[string]any)
	if content["description"] != nil || content["comment"] != "" {
		t.Fatalf("evaluation template wrong: %v", content)
	}

	sc2 := a1["SC2"].(map[string]any)
	if sc2["ai_flag"] != false {
		t.Fatalf("SC2 ai_flag=%v", sc2["ai_flag"])
	}
	if sc2["summary"] != "B팀 요약" {
		t.Fatalf("SC2 must carry team B SC1 fields: %v", sc2["summary"])
	}

	// SC1이 없던 기사에도 골격이 들어간다
	a2 := arts[1].(map[string]any)
	if _, ok := a2["SC1"].(map[string]any); !ok {
		t.Fatalf("A2 SC1 missing")
	}
	if _, ok := a2["SC2"].(map[string]any); !ok {
		t.Fatalf("A2 SC2 missing")
	}

	// SC2 복제본끼리 참조를 공유하면 안 된다
	sc2b := a2["SC2"].(map[string]any)
	sc2b["summary"] = "변조"
	if sc2["summary"] != "B팀 요약" {
		t.Fatalf("SC2 copies share state")
	}
}

func memberNames(m map[string]map[string]any) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	return names
}

func TestMergeTeamFolderAliases(t *testing.T) {
	archive := zipBytes(t, map[string]string{
		"A팀/1_기사.json": teamADoc,
		"b/2_기사.json":  teamBDoc,
	})
	res, err := merger.Merge(archive, 1)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if res.Merged != 1 {
		t.Fatalf("Merged=%d", res.Merged)
	}
}

func TestMergeSkipsUnpairedKeys(t *testing.T) {
	archive := zipBytes(t, map[string]string{
		"A/1_공통.json":  teamADoc,
		"B/2_공통.json":  teamBDoc,
		"A/3_혼자A.json": teamADoc,
		"B/4_혼자B.json": teamBDoc,
	})
	res, err := merger.Merge(archive, 2)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if res.Merged != 1 {
		t.Fatalf("Merged=%d", res.Merged)
	}
	if len(res.Skipped) != 2 {
		t.Fatalf("Skipped=%v", res.Skipped)
	}
	if res.Skipped[0] != "혼자A.json" || res.Skipped[1] != "혼자B.json" {
		t.Fatalf("Skipped=%v", res.Skipped)
	}
}

func TestMergeSkipsWhenTeamBLacksSC1(t *testing.T) {
	archive := zipBytes(t, map[string]string{
		"A/1_기사.json": teamADoc,
		"B/1_기사.json": `{"id":"P1"}`,
	})
	res, err := merger.Merge(archive, 1)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if res.Merged != 0 || len(res.Skipped) != 1 {
		t.Fatalf("Merged=%d Skipped=%v", res.Merged, res.Skipped)
	}
}

func TestMergeMissingTeamFolder(t *testing.T) {
	archive := zipBytes(t, map[string]string{
		"A/1_기사.json": teamADoc,
	})
	if _, err := merger.Merge(archive, 1); err != merger.ErrTeamFolders {
		t.Fatalf("expected ErrTeamFolders, got %v", err)
	}
}
