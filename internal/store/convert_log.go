package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ConvertLog 변환 이력 한 건
type ConvertLog struct {
	ID           string     `json:"id"`
	Kind         string     `json:"kind"`
	Filename     string     `json:"filename"`
	FileSize     int64      `json:"file_size"`
	DocCount     int        `json:"doc_count"`
	RowCount     int        `json:"row_count"`
	Status       string     `json:"status"`
	ErrorMessage string     `json:"error_message"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// CreateConvertLog 변환 이력 생성, id(uuid) 반환
func (s *Store) CreateConvertLog(kind, filename string, fileSize int64) (string, error) {
	id := uuid.New().String()
	_, err := s.db.Exec(`
		INSERT INTO convert_logs (id, kind, filename, file_size, status)
		VALUES (?, ?, ?, ?, 'processing')
	`, id, kind, filename, fileSize)
	if err != nil {
		return "", fmt.Errorf("failed to create convert log: %w", err)
	}
	return id, nil
}

// CompleteConvertLog 변환 완료 기록
func (s *Store) CompleteConvertLog(id string, docCount, rowCount int, status, errorMessage string) error {
	_, err := s.db.Exec(`
		UPDATE convert_logs SET
			doc_count = ?,
			row_count = ?,
			status = ?,
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, docCount, rowCount, status, errorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to complete convert log: %w", err)
	}
	return nil
}

// ListConvertLogs 최근 변환 이력 조회 (최신순)
func (s *Store) ListConvertLogs(limit int) ([]ConvertLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, kind, filename, file_size, doc_count, row_count, status, error_message, created_at, completed_at
		FROM convert_logs
		ORDER BY created_at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list convert logs: %w", err)
	}
	defer rows.Close()

	var out []ConvertLog
	for rows.Next() {
		var l ConvertLog
		if err := rows.Scan(&l.ID, &l.Kind, &l.Filename, &l.FileSize, &l.DocCount, &l.RowCount,
			&l.Status, &l.ErrorMessage, &l.CreatedAt, &l.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan convert log: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// CountConvertLogs 전체 이력 수
func (s *Store) CountConvertLogs() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM convert_logs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count convert logs: %w", err)
	}
	return n, nil
}
