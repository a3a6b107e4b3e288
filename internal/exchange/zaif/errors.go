package zaif

import (
	"errors"
	"fmt"
)

// 설정/호출 오류. 네트워크 요청 전에 반환됩니다.
var (
	ErrNoCredentials      = errors.New("인증 정보 없이 비공개 API를 호출할 수 없습니다")
	ErrPartialCredentials = errors.New("API 키와 시크릿은 함께 설정해야 합니다")
	ErrReservedParam      = errors.New("method, nonce는 예약된 파라미터입니다")
	ErrEmptyMethod        = errors.New("비공개 API 메서드 이름이 비어 있습니다")
)

// TransportError는 네트워크 실패, 비정상 HTTP 상태, JSON이 아닌 응답을 나타냅니다
type TransportError struct {
	Op         string // 요청 요약 (예: "GET /ticker/btc_jpy", "POST get_info")
	StatusCode int    // HTTP 상태 코드 (응답을 받지 못했으면 0)
	Body       string // 응답 본문 일부
	Err        error
}

// Error는 error 인터페이스를 구현합니다
func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("zaif 전송 에러 [%s, HTTP %d]: %v", e.Op, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("zaif 전송 에러 [%s, HTTP %d]: %s", e.Op, e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("zaif 전송 에러 [%s]: %v", e.Op, e.Err)
	}
}

// Unwrap은 내부 에러를 반환합니다
func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError는 success=0 응답에 담긴 거래소 에러 메시지입니다
type APIError struct {
	Method  string
	Message string
}

// Error는 error 인터페이스를 구현합니다
func (e *APIError) Error() string {
	return fmt.Sprintf("zaif API 에러 [%s]: %s", e.Method, e.Message)
}

// ProtocolError는 응답 봉투에 기대한 필드가 없을 때 반환됩니다
type ProtocolError struct {
	Method string
	Reason string
}

// Error는 error 인터페이스를 구현합니다
func (e *ProtocolError) Error() string {
	return fmt.Sprintf("zaif 응답 형식 에러 [%s]: %s", e.Method, e.Reason)
}

// IsAPIMessage는 err가 주어진 메시지를 가진 APIError인지 확인합니다
func IsAPIMessage(err error, message string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Message == message
}
