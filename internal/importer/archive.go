package importer

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"datalyhub/internal/corpus"
)

var (
	// ErrJSONNotFound ZIP 안에 JSON 파일이 없음
	ErrJSONNotFound = errors.New("ZIP 안에 JSON 파일이 없습니다")
	// ErrSheetNotFound ZIP 안에 엑셀 파일이 없음
	ErrSheetNotFound = errors.New("ZIP 안에 Excel 파일(.xlsx/.xls)이 없습니다")
)

// ApplyFromArchive ZIP(엑셀 + 단일 JSON)을 받아 엑셀의 편집 내용을 JSON에 반영
// JSON 멤버가 여럿이면 project_ 접두 파일을 우선한다.
// 반환: (수정된 JSON 바이트, 제안 파일명)
func ApplyFromArchive(zipBytes []byte, sheetName string, skipBlank bool) ([]byte, string, error) {
	zr, err := zip.NewReader(bytes.NewReader(zipBytes), int64(len(zipBytes)))
	if err != nil {
		return nil, "", fmt.Errorf("ZIP 열기 실패: %w", err)
	}

	var jsonMember, firstJSON, xlsxMember, xlsMember *zip.File
	for _, f := range zr.File {
		name := strings.ToLower(f.Name)
		switch {
		case strings.HasSuffix(name, ".json"):
			if firstJSON == nil {
				firstJSON = f
			}
			if jsonMember == nil && strings.HasPrefix(path.Base(f.Name), "project_") {
				jsonMember = f
			}
		case strings.HasSuffix(name, ".xlsx"):
			if xlsxMember == nil {
				xlsxMember = f
			}
		case strings.HasSuffix(name, ".xls"):
			if xlsMember == nil {
				xlsMember = f
			}
		}
	}
	if jsonMember == nil {
		jsonMember = firstJSON
	}
	excelMember := xlsxMember
	if excelMember == nil {
		excelMember = xlsMember
	}
	if jsonMember == nil {
		return nil, "", ErrJSONNotFound
	}
	if excelMember == nil {
		return nil, "", ErrSheetNotFound
	}

	jsonData, err := readMember(jsonMember)
	if err != nil {
		return nil, "", fmt.Errorf("JSON 멤버 읽기 실패: %w", err)
	}
	c, err := corpus.Parse(jsonData)
	if err != nil {
		return nil, "", err
	}

	excelData, err := readMember(excelMember)
	if err != nil {
		return nil, "", fmt.Errorf("엑셀 멤버 읽기 실패: %w", err)
	}
	rows, err := ReadSheet(bytes.NewReader(excelData), sheetName)
	if err != nil {
		return nil, "", err
	}

	if err := Reconcile(c, rows, skipBlank); err != nil {
		return nil, "", err
	}

	out, err := c.Marshal()
	if err != nil {
		return nil, "", err
	}

	base := path.Base(jsonMember.Name)
	stem := strings.TrimSuffix(base, path.Ext(base))
	return out, stem + "_updated.json", nil
}

func readMember(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
