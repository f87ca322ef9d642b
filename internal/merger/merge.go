// Package merger A/B 두 팀의 기사 평가 JSON을 하나의 검수 문서로 병합하는 배치 도구
package merger

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"

	"datalyhub/internal/corpus"
)

var (
	// ErrTeamFolders ZIP 안에 A/ B/ 폴더 구성이 없음
	ErrTeamFolders = errors.New("ZIP 안에 'A'와 'B' 폴더가 모두 필요합니다")
)

var numPrefixRE = regexp.MustCompile(`^\d+_`)

// 팀 폴더명 변형 (A, A팀 등)
var teamAliases = map[string][]string{
	"A": {"A", "A팀", "a"},
	"B": {"B", "B팀", "b"},
}

// Result 병합 실행 결과
type Result struct {
	Merged  int      // 생성된 병합 문서 수
	Skipped []string // 한쪽 팀에만 있어 건너뛴 키
	Archive []byte   // 병합 결과 ZIP
}

// stripPrefix "12_기사.json" -> "기사.json"
func stripPrefix(name string) string {
	return numPrefixRE.ReplaceAllString(name, "")
}

// defaultEval 평가 템플릿. 병합 시마다 새로 만들어 공유 참조를 피한다
func defaultEval() map[string]any {
	return map[string]any{
		"id": "evaluatorAJ",
		"content": map[string]any{
			"description": nil, "claims": nil, "arguments": nil, "comment": "",
		},
		"organization": map[string]any{"completion": nil, "comment": ""},
		"expression":   map[string]any{"accuracy": nil, "comment": ""},
	}
}

func deepCopy(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = deepCopy(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = deepCopy(e)
		}
		return out
	default:
		return v
	}
}

// Merge ZIP(A/, B/ 폴더에 팀별 JSON)을 받아 키별로 병합한다
//
// 파일명 키는 숫자 접두(`N_`)를 뗀 나머지. 양 팀 모두에 있는 키만 병합하고,
// B팀 SC1을 복제해 SC2 골격(ai_flag=false, 빈 평가 템플릿)을 만들어
// A팀 문서의 모든 기사에 SC1 평가 템플릿과 함께 주입한다.
// 산출물은 `<week>_<key>.json` 멤버들을 담은 ZIP
func Merge(zipBytes []byte, week int) (*Result, error) {
	zr, err := zip.NewReader(bytes.NewReader(zipBytes), int64(len(zipBytes)))
	if err != nil {
		return nil, fmt.Errorf("ZIP 열기 실패: %w", err)
	}

	teamA := collectTeamFiles(zr, teamAliases["A"])
	teamB := collectTeamFiles(zr, teamAliases["B"])
	if len(teamA) == 0 || len(teamB) == 0 {
		return nil, ErrTeamFolders
	}

	keys := make([]string, 0, len(teamA))
	for k := range teamA {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	res := &Result{}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, key := range keys {
		fb, ok := teamB[key]
		if !ok {
			res.Skipped = append(res.Skipped, key)
			continue
		}
		fa := teamA[key]

		dataA, err := readJSONMember(fa)
		if err != nil {
			return nil, fmt.Errorf("A팀 %q 읽기 실패: %w", fa.Name, err)
		}
		dataB, err := readJSONMember(fb)
		if err != nil {
			return nil, fmt.Errorf("B팀 %q 읽기 실패: %w", fb.Name, err)
		}

		merged, ok := mergeDocs(dataA, dataB)
		if !ok {
			// B팀 SC1이 없는 키는 건너뜀
			res.Skipped = append(res.Skipped, key)
			continue
		}

		outName := fmt.Sprintf("%d_%s", week, key)
		w, err := zw.Create(outName)
		if err != nil {
			return nil, fmt.Errorf("ZIP 멤버 생성 실패: %w", err)
		}
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(merged); err != nil {
			return nil, fmt.Errorf("병합 문서 직렬화 실패: %w", err)
		}
		res.Merged++
	}

	// B팀에만 있는 키도 보고
	for k := range teamB {
		if _, ok := teamA[k]; !ok {
			res.Skipped = append(res.Skipped, k)
		}
	}
	sort.Strings(res.Skipped)

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("ZIP 마무리 실패: %w", err)
	}
	res.Archive = buf.Bytes()
	return res, nil
}

// mergeDocs A팀 문서에 SC1/SC2 평가 구조를 주입해 병합 문서를 만든다
// B팀 SC1이 없으면 false
func mergeDocs(dataA, dataB map[string]any) (map[string]any, bool) {
	sc1B, ok := dataB["SC1"].(map[string]any)
	if !ok {
		return nil, false
	}
	sc2 := deepCopy(sc1B).(map[string]any)
	sc2["ai_flag"] = false
	sc2["evaluation"] = defaultEval()

	var articles []any
	if docs, ok := dataA["document"].([]any); ok {
		articles = docs
	} else {
		articles = []any{dataA}
	}

	for _, artAny := range articles {
		art, ok := artAny.(map[string]any)
		if !ok {
			continue
		}
		if sc1, ok := art["SC1"].(map[string]any); ok {
			sc1["ai_flag"] = false
			sc1["evaluation"] = defaultEval()
		} else {
			art["SC1"] = map[string]any{"ai_flag": false, "evaluation": defaultEval()}
		}
		art["SC2"] = deepCopy(sc2)
	}

	return map[string]any{
		"id":       dataA["id"],
		"metadata": dataA["metadata"],
		"document": articles,
	}, true
}

// collectTeamFiles 팀 폴더 밑의 .json 멤버를 키별로 수집
func collectTeamFiles(zr *zip.Reader, dirs []string) map[string]*zip.File {
	out := map[string]*zip.File{}
	for _, f := range zr.File {
		if !strings.HasSuffix(strings.ToLower(f.Name), ".json") {
			continue
		}
		parts := strings.Split(f.Name, "/")
		if len(parts) < 2 {
			continue
		}
		for _, d := range dirs {
			if parts[0] == d {
				key := stripPrefix(path.Base(f.Name))
				if _, dup := out[key]; !dup {
					out[key] = f
				}
			}
		}
	}
	return out
}

func readJSONMember(f *zip.File) (map[string]any, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(rc); err != nil {
		return nil, err
	}
	c, err := corpus.Parse(buf.Bytes())
	if err != nil {
		return nil, err
	}
	return c.Root, nil
}
