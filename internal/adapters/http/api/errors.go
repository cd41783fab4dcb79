package api

import (
	"errors"
	"net/http"

	"github.com/okian/adgenius/internal/adapters/upstream/lexica"
)

// Client-facing detail messages.
const (
	DetailNetwork  = "네트워크 연결을 확인해주세요."
	DetailUpstream = "외부 이미지 서버에 연결할 수 없습니다."
	DetailInternal = "서버 내부 오류가 발생했습니다."
)

// failure is the HTTP rendering of a search error.
type failure struct {
	status    int
	detail    string
	errorType string
}

// classifySearchError maps a search error to status, detail and a metrics label.
func classifySearchError(err error) failure {
	switch {
	case errors.Is(err, lexica.ErrTransport):
		return failure{status: http.StatusServiceUnavailable, detail: DetailNetwork, errorType: "upstream_transport"}
	case errors.Is(err, lexica.ErrUpstreamUnreachable):
		return failure{status: http.StatusServiceUnavailable, detail: DetailUpstream, errorType: "upstream_status"}
	default:
		return failure{status: http.StatusInternalServerError, detail: DetailInternal, errorType: "internal"}
	}
}
