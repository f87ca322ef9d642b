package linter

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Summary 정리 실행 전체 요약
type Summary struct {
	TotalFiles   int
	ChangedFiles int
	SkippedFiles int
}

// MakeReport Summary/Log 두 시트가 담긴 xlsx 바이트를 생성
func MakeReport(sum Summary, log []LogRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", "Summary")
	f.SetSheetRow("Summary", "A1", &[]any{"total_files", "changed_files", "skipped_files"})
	f.SetSheetRow("Summary", "A2", &[]any{sum.TotalFiles, sum.ChangedFiles, sum.SkippedFiles})

	if _, err := f.NewSheet("Log"); err != nil {
		return nil, fmt.Errorf("Log 시트 생성 실패: %w", err)
	}
	f.SetSheetRow("Log", "A1", &[]any{"file", "sentence_id", "predicate_form", "argument_form", "action"})
	for i, row := range log {
		f.SetSheetRow("Log", fmt.Sprintf("A%d", i+2), &[]any{
			row.File, row.SentenceID, row.PredicateForm, row.ArgumentForm, row.Action,
		})
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		f.SetRowStyle("Summary", 1, 1, headerStyle)
		f.SetRowStyle("Log", 1, 1, headerStyle)
	}
	f.SetColWidth("Log", "A", "A", 40)
	f.SetColWidth("Log", "B", "E", 24)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("리포트 저장 실패: %w", err)
	}
	return buf.Bytes(), nil
}
