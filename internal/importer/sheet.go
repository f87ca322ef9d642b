package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"datalyhub/internal/model"
)

// EditRow 편집된 엑셀 한 행 (역반영 입력 계약)
// 병합 셀 때문에 비는 id/유형은 Reconcile 단계에서 forward-fill로 채워진다
type EditRow struct {
	ID       string
	Label    string
	Sentence string
	Category string
	Metadata string
}

// ErrRequiredColumns 필수 컬럼(id, 설명 문장) 누락
var ErrRequiredColumns = errors.New("엑셀에 'id', '설명 문장' 컬럼이 필요합니다")

// ReadSheet 엑셀을 행 목록으로 읽는다
// sheetName이 비어 있으면 모든 시트를 순서대로 이어 붙인다.
// 선택 컬럼(유형, Medium_category, metadata)이 없으면 빈 값으로 보정한다
func ReadSheet(r io.Reader, sheetName string) ([]EditRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("엑셀 열기 실패: %w", err)
	}
	defer f.Close()

	var sheets []string
	if sheetName != "" {
		sheets = []string{sheetName}
	} else {
		sheets = f.GetSheetList()
	}

	var out []EditRow
	for _, name := range sheets {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("시트 %q 읽기 실패: %w", name, err)
		}
		parsed, err := parseSheetRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, parsed...)
	}
	return out, nil
}

func parseSheetRows(rows [][]string) ([]EditRow, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	// 헤더 매칭: memo 헤더는 줄바꿈 꼬리표가 붙어 나가므로 접두 비교
	col := map[string]int{}
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		switch {
		case h == model.ColID:
			col[model.ColID] = i
		case h == model.ColLabel:
			col[model.ColLabel] = i
		case h == model.ColSentence || strings.HasPrefix(h, model.ColSentence):
			col[model.ColSentence] = i
		case h == model.ColCategory:
			col[model.ColCategory] = i
		case h == model.ColMetadata:
			col[model.ColMetadata] = i
		}
	}

	if _, ok := col[model.ColID]; !ok {
		return nil, ErrRequiredColumns
	}
	if _, ok := col[model.ColSentence]; !ok {
		return nil, ErrRequiredColumns
	}

	pick := func(cells []string, key string) string {
		i, ok := col[key]
		if !ok || i >= len(cells) {
			return ""
		}
		return cells[i]
	}

	out := make([]EditRow, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		out = append(out, EditRow{
			ID:       pick(cells, model.ColID),
			Label:    pick(cells, model.ColLabel),
			Sentence: pick(cells, model.ColSentence),
			Category: pick(cells, model.ColCategory),
			Metadata: pick(cells, model.ColMetadata),
		})
	}
	return out, nil
}
