package zaif

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/assist-by/zaif/internal/exchange"
)

const (
	DefaultPublicURL  = "https://api.zaif.jp/api/1"
	DefaultPrivateURL = "https://api.zaif.jp/tapi"
	DefaultStreamURL  = "wss://ws.zaif.jp/stream"

	// 에러에 담을 응답 본문 최대 길이
	maxErrorBody = 512
)

// Client는 Zaif 공개/비공개 API 클라이언트를 구현합니다.
// 생성 후에는 설정이 바뀌지 않으며, nonce 발급만 내부에서 직렬화됩니다.
type Client struct {
	credentials Credentials
	publicURL   string
	privateURL  string
	streamURL   string
	httpClient  *http.Client
	nonce       NonceSource
	logger      *zap.Logger
}

var _ exchange.Exchange = (*Client)(nil)

// ClientOption은 클라이언트 생성 옵션을 정의합니다
type ClientOption func(*Client)

// WithTimeout은 HTTP 클라이언트의 타임아웃을 설정합니다
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient는 HTTP 클라이언트를 교체합니다
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithPublicURL은 공개 API 기본 URL을 설정합니다
func WithPublicURL(publicURL string) ClientOption {
	return func(c *Client) {
		c.publicURL = strings.TrimRight(publicURL, "/")
	}
}

// WithPrivateURL은 비공개 API 엔드포인트를 설정합니다
func WithPrivateURL(privateURL string) ClientOption {
	return func(c *Client) {
		c.privateURL = privateURL
	}
}

// WithStreamURL은 웹소켓 스트림 URL을 설정합니다
func WithStreamURL(streamURL string) ClientOption {
	return func(c *Client) {
		c.streamURL = streamURL
	}
}

// WithNonceSource는 nonce 발급기를 교체합니다
func WithNonceSource(source NonceSource) ClientOption {
	return func(c *Client) {
		if source != nil {
			c.nonce = source
		}
	}
}

// WithLogger는 로거를 설정합니다
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient는 새로운 Zaif API 클라이언트를 생성합니다.
// 키와 시크릿을 모두 비우면 공개 API만 사용할 수 있습니다.
func NewClient(apiKey, secretKey string, opts ...ClientOption) (*Client, error) {
	creds := Credentials{Key: apiKey, Secret: secretKey}
	if (apiKey == "") != (secretKey == "") {
		return nil, ErrPartialCredentials
	}

	c := &Client{
		credentials: creds,
		publicURL:   DefaultPublicURL,
		privateURL:  DefaultPrivateURL,
		streamURL:   DefaultStreamURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		nonce:       NewTimeNonce(nil),
		logger:      zap.NewNop(),
	}

	// 옵션 적용
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Authenticated는 비공개 API 호출이 가능한지 반환합니다
func (c *Client) Authenticated() bool {
	return c.credentials.Valid()
}

// CallPublic은 공개 API를 GET으로 호출하고 디코딩된 본문을 그대로 반환합니다.
// path에는 통화쌍 등 경로 식별자가 이미 포함되어 있어야 합니다 (예: /ticker/btc_jpy).
func (c *Client) CallPublic(ctx context.Context, path string, query Params) (any, error) {
	var out any
	if err := c.getPublic(ctx, path, query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CallPrivate는 비공개 API 메서드를 호출하고 응답 봉투의 return 값만 반환합니다
func (c *Client) CallPrivate(ctx context.Context, method string, params Params) (any, error) {
	var out any
	if err := c.postPrivate(ctx, method, params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// getPublic은 공개 API 응답을 out으로 디코딩합니다
func (c *Client) getPublic(ctx context.Context, path string, query Params, out any) error {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	op := http.MethodGet + " " + path

	reqURL := c.publicURL + path
	if query.Len() > 0 {
		encoded, err := query.Encode()
		if err != nil {
			return fmt.Errorf("쿼리 인코딩 실패: %w", err)
		}
		reqURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("요청 생성 실패: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	body, err := c.doRequest(req, op)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &TransportError{Op: op, Body: truncate(body), Err: fmt.Errorf("응답 파싱 실패: %w", err)}
	}
	return nil
}

// privateEnvelope는 비공개 API 응답 봉투입니다
type privateEnvelope struct {
	Success *int            `json:"success"`
	Return  json.RawMessage `json:"return"`
	Error   *string         `json:"error"`
}

// postPrivate는 비공개 API를 호출하고 return 값을 out으로 디코딩합니다
func (c *Client) postPrivate(ctx context.Context, method string, params Params, out any) error {
	raw, err := c.doPrivate(ctx, method, params)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &TransportError{Op: http.MethodPost + " " + method, Body: truncate(raw), Err: fmt.Errorf("응답 파싱 실패: %w", err)}
	}
	return nil
}

// doPrivate는 서명된 비공개 요청을 전송하고 봉투를 벗긴 return 값을 반환합니다
func (c *Client) doPrivate(ctx context.Context, method string, params Params) (json.RawMessage, error) {
	if method == "" {
		return nil, ErrEmptyMethod
	}
	if params.Has(MethodKey) || params.Has(NonceKey) {
		return nil, ErrReservedParam
	}
	if !c.credentials.Valid() {
		return nil, ErrNoCredentials
	}
	op := http.MethodPost + " " + method

	// method, nonce를 앞에 두고 호출자 파라미터를 순서대로 이어 붙임
	var form Params
	form.Set(MethodKey, method)
	form.Set(NonceKey, c.nonce.Next())
	form.entries = append(form.entries, params.clone().entries...)

	encoded, err := form.Encode()
	if err != nil {
		return nil, fmt.Errorf("본문 인코딩 실패: %w", err)
	}

	// 서명은 실제 전송할 바이트로 계산
	body := []byte(encoded)
	signature := Sign(c.credentials.Secret, body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.privateURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("요청 생성 실패: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(KeyHeader, c.credentials.Key)
	req.Header.Set(SignHeader, signature)

	respBody, err := c.doRequest(req, op)
	if err != nil {
		return nil, err
	}

	var env privateEnvelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, &TransportError{Op: op, Body: truncate(respBody), Err: fmt.Errorf("응답 파싱 실패: %w", err)}
	}

	switch {
	case env.Success == nil && env.Error != nil:
		return nil, &APIError{Method: method, Message: *env.Error}
	case env.Success == nil:
		return nil, &ProtocolError{Method: method, Reason: "success 필드가 없습니다"}
	case *env.Success == 1:
		if len(env.Return) == 0 {
			return nil, &ProtocolError{Method: method, Reason: "return 필드가 없습니다"}
		}
		return env.Return, nil
	case env.Error != nil:
		return nil, &APIError{Method: method, Message: *env.Error}
	default:
		return nil, &ProtocolError{Method: method, Reason: fmt.Sprintf("success=%d 응답에 error 필드가 없습니다", *env.Success)}
	}
}

// doRequest는 HTTP 요청을 실행하고 2xx 응답 본문을 반환합니다
func (c *Client) doRequest(req *http.Request, op string) ([]byte, error) {
	start := time.Now()

	// 요청 실행
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("zaif 요청 실패", zap.String("op", op), zap.Error(err))
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	// 응답 읽기
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("응답 읽기 실패: %w", err)}
	}

	c.logger.Debug("zaif 요청 완료",
		zap.String("op", op),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	// 상태 코드 확인
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode, Body: truncate(body)}
	}

	return body, nil
}

func truncate(body []byte) string {
	if len(body) > maxErrorBody {
		return string(body[:maxErrorBody]) + "..."
	}
	return string(body)
}
