package observability

import (
	"sync"
	"sync/atomic"
)

type StatsSnapshot struct {
	NoticesExtracted uint64            `json:"notices_extracted"`
	ParseErrors      uint64            `json:"parse_errors"`
	RecordsStored    uint64            `json:"records_stored"`
	ErrorsTotal      uint64            `json:"errors_total"`
	NoticesBySchema  map[string]uint64 `json:"notices_by_schema,omitempty"`
	NoticesByGroup   map[string]uint64 `json:"notices_by_group,omitempty"`
	ErrorsByType     map[string]uint64 `json:"errors_by_type,omitempty"`
}

var (
	noticesExtracted uint64
	parseErrors      uint64
	recordsStored    uint64
	errorsTotal      uint64

	statsMu         sync.Mutex
	noticesBySchema = map[string]uint64{}
	noticesByGroup  = map[string]uint64{}
	errorsByType    = map[string]uint64{}
)

func IncNoticeExtracted(schemaType string) {
	if schemaType == "" {
		schemaType = "unknown"
	}
	atomic.AddUint64(&noticesExtracted, 1)
	statsMu.Lock()
	noticesBySchema[schemaType]++
	statsMu.Unlock()
}

func IncNoticeGroup(group string) {
	if group == "" {
		group = "unknown"
	}
	statsMu.Lock()
	noticesByGroup[group]++
	statsMu.Unlock()
}

func IncParseError() {
	atomic.AddUint64(&parseErrors, 1)
}

func IncRecordStored() {
	atomic.AddUint64(&recordsStored, 1)
}

func IncError(errType string) {
	if errType == "" {
		errType = "unknown"
	}
	atomic.AddUint64(&errorsTotal, 1)
	statsMu.Lock()
	errorsByType[errType]++
	statsMu.Unlock()
}

func Snapshot() StatsSnapshot {
	statsMu.Lock()
	schemaCopy := copyMap(noticesBySchema)
	groupCopy := copyMap(noticesByGroup)
	errorsTypeCopy := copyMap(errorsByType)
	statsMu.Unlock()

	return StatsSnapshot{
		NoticesExtracted: atomic.LoadUint64(&noticesExtracted),
		ParseErrors:      atomic.LoadUint64(&parseErrors),
		RecordsStored:    atomic.LoadUint64(&recordsStored),
		ErrorsTotal:      atomic.LoadUint64(&errorsTotal),
		NoticesBySchema:  schemaCopy,
		NoticesByGroup:   groupCopy,
		ErrorsByType:     errorsTypeCopy,
	}
}

func copyMap(src map[string]uint64) map[string]uint64 {
	if len(src) == 0 {
		return map[string]uint64{}
	}
	out := make(map[string]uint64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
