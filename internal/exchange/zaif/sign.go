package zaif

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
)

// 비공개 API 인증 헤더
const (
	KeyHeader  = "Key"
	SignHeader = "Sign"
)

// Credentials는 API 키와 시크릿입니다. 둘 다 있거나 둘 다 없어야 합니다.
type Credentials struct {
	Key    string
	Secret string
}

// Valid는 인증 요청이 가능한지 반환합니다
func (c Credentials) Valid() bool {
	return c.Key != "" && c.Secret != ""
}

// String은 시크릿이 출력되지 않도록 키만 노출합니다
func (c Credentials) String() string {
	if c.Key == "" {
		return "Credentials{}"
	}
	return "Credentials{Key: " + c.Key + ", Secret: ***}"
}

// Sign은 전송할 본문 바이트에 대한 HMAC-SHA512 서명을 16진수로 반환합니다
func Sign(secret string, body []byte) string {
	h := hmac.New(sha512.New, []byte(secret))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}
