package model

// 엑셀 컬럼명 (정방향/역방향 공용 계약)
const (
	ColID       = "id"
	ColWorker   = "worker_id_cnst"
	ColCategory = "Medium_category"
	ColLabel    = "유형"
	ColSentence = "설명 문장"
	ColMetadata = "metadata"
	ColMemo     = "mdfcn_infos"
)

// Headers 엑셀 헤더 순서 (A열부터)
var Headers = []string{
	ColID, ColWorker, ColCategory, ColLabel, ColSentence, ColMetadata, ColMemo,
}

// Row 스프레드시트 한 행: (document, EX, 설명 문장 슬롯) 1:1 투영
// 같은 id의 행은 항상 연속 블록으로 배치된다 (세로 병합/역방향 그룹핑 전제)
type Row struct {
	ID       string // document.id (그룹 키)
	Worker   string // worker_id_cnst
	Category string // metadata.Medium_category
	Label    string // 유형 (reference_type 표시 라벨 또는 슬롯 feature)
	Sentence string // 설명 문장
	Metadata string // metadata 멀티라인 표시 문자열
	MetaURL  string // 하이퍼링크용 (엑셀 컬럼으로는 쓰지 않음)
	Memo     string // mdfcn_infos 요약 (검수자 수정 이력)
}
