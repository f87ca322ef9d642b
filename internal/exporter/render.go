package exporter

import (
	"bytes"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"datalyhub/internal/model"
)

const (
	// SheetName 산출 엑셀의 시트명
	SheetName = "result"

	linkBlue     = "0563C1"
	lineHeightPt = 18.0
	maxRowHeight = 409.0 // 엑셀 행 높이 상한
)

// 열 너비 (문자폭 기준, A열부터)
var colWidths = []float64{12, 16, 14, 16, 80, 60, 50}

// openpyxl/엑셀이 허용하지 않는 XML 제어문자
var illegalXMLRE = regexp.MustCompile("[\x00-\x08\x0B\x0C\x0E-\x1F]")

func xlsSafe(s string) string {
	return illegalXMLRE.ReplaceAllString(s, "")
}

// estimateWrappedLines 줄바꿈 + 자동 줄바꿈으로 렌더링될 줄 수 추정
func estimateWrappedLines(text string, colChars float64) int {
	if text == "" {
		return 1
	}
	width := math.Max(colChars, 5)
	total := 0
	for _, para := range strings.Split(text, "\n") {
		n := utf8.RuneCountInString(para)
		total += int(math.Max(1, math.Ceil(float64(n)/(width*1.08))))
	}
	if total < 1 {
		return 1
	}
	return total
}

// Render 행 목록을 스타일 적용된 엑셀 바이트로 변환
// 같은 id 블록은 문서 수준 열을 세로 병합하고, 블록 최상단 행에만
// metadata 하이퍼링크를 건다 (병합 셀 하단에 링크를 거는 것은 비정상)
func Render(rows []model.Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", SheetName)

	headers := append([]string{}, model.Headers...)
	headers[len(headers)-1] = model.ColMemo + "\n(검수자 수정 이력)"
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(SheetName, cell, h)
	}

	thin := []excelize.Border{
		{Type: "left", Style: 1, Color: "999999"},
		{Type: "right", Style: 1, Color: "999999"},
		{Type: "top", Style: 1, Color: "999999"},
		{Type: "bottom", Style: 1, Color: "999999"},
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"EEECE1"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thin,
	})
	if err != nil {
		return nil, fmt.Errorf("헤더 스타일 생성 실패: %w", err)
	}
	f.SetRowStyle(SheetName, 1, 1, headerStyle)

	bodyStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top"},
		Border:    thin,
	})
	wrapStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		Border:    thin,
	})
	linkStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Color: linkBlue},
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		Border:    thin,
	})

	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(SheetName, col, col, w)
	}

	for i, row := range rows {
		r := i + 2
		f.SetSheetRow(SheetName, fmt.Sprintf("A%d", r), &[]any{
			xlsSafe(row.ID),
			xlsSafe(row.Worker),
			xlsSafe(row.Category),
			xlsSafe(row.Label),
			xlsSafe(row.Sentence),
			xlsSafe(row.Metadata),
			xlsSafe(row.Memo),
		})
	}

	if len(rows) > 0 {
		last := len(rows) + 1
		f.SetCellStyle(SheetName, "A2", fmt.Sprintf("D%d", last), bodyStyle)
		f.SetCellStyle(SheetName, "E2", fmt.Sprintf("G%d", last), wrapStyle)
	}

	// 같은 id 연속 블록별 시작 행/행 수
	type block struct {
		start, count int
		url          string
	}
	var blocks []block
	for i, row := range rows {
		if len(blocks) > 0 && rows[i-1].ID == row.ID {
			blocks[len(blocks)-1].count++
			continue
		}
		blocks = append(blocks, block{start: i + 2, count: 1, url: strings.TrimSpace(row.MetaURL)})
	}

	// 병합: id, worker, Medium_category, metadata, mdfcn_infos (1행짜리 블록은 건너뜀)
	mergeCols := []string{"A", "B", "C", "F", "G"}
	for _, b := range blocks {
		if b.count <= 1 {
			continue
		}
		end := b.start + b.count - 1
		for _, col := range mergeCols {
			if err := f.MergeCell(SheetName, fmt.Sprintf("%s%d", col, b.start), fmt.Sprintf("%s%d", col, end)); err != nil {
				return nil, fmt.Errorf("셀 병합 실패: %w", err)
			}
		}
	}

	// 하이퍼링크: 블록 최상단 행의 metadata 셀에만
	for _, b := range blocks {
		if b.url == "" || !(strings.HasPrefix(b.url, "http://") || strings.HasPrefix(b.url, "https://")) {
			continue
		}
		cell := fmt.Sprintf("F%d", b.start)
		if err := f.SetCellHyperLink(SheetName, cell, b.url, "External"); err != nil {
			continue
		}
		f.SetCellStyle(SheetName, cell, cell, linkStyle)
	}

	// 행 높이: 설명 문장 기준, 블록 시작 행은 metadata/memo 줄 수도 반영
	blockStart := map[int]bool{}
	for _, b := range blocks {
		blockStart[b.start] = true
	}
	for i, row := range rows {
		r := i + 2
		need := estimateWrappedLines(row.Sentence, colWidths[4])
		if blockStart[r] {
			if n := estimateWrappedLines(row.Metadata, colWidths[5]); n > need {
				need = n
			}
			if n := estimateWrappedLines(row.Memo, colWidths[6]); n > need {
				need = n
			}
		}
		h := math.Min(float64(need)*lineHeightPt, maxRowHeight)
		f.SetRowHeight(SheetName, r, h)
	}

	f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("엑셀 저장 실패: %w", err)
	}
	return buf.Bytes(), nil
}
