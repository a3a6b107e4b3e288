package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Pair는 통화쌍을 나타냅니다 (예: btc_jpy)
type Pair string

const (
	BTCJPY  Pair = "btc_jpy"
	ETHJPY  Pair = "eth_jpy"
	XEMJPY  Pair = "xem_jpy"
	MONAJPY Pair = "mona_jpy"
	ETHBTC  Pair = "eth_btc"
)

// String은 Pair의 문자열 표현을 반환합니다
func (p Pair) String() string {
	return string(p)
}

// OrderAction은 주문 방향을 정의합니다
type OrderAction string

const (
	Bid OrderAction = "bid" // 매수
	Ask OrderAction = "ask" // 매도
)

// SortOrder는 이력 조회 정렬 순서를 정의합니다
type SortOrder string

const (
	Asc  SortOrder = "ASC"
	Desc SortOrder = "DESC"
)

// UnixTime은 초 단위 유닉스 시간입니다.
// 응답에 따라 숫자 또는 따옴표로 감싼 문자열로 내려옵니다.
type UnixTime struct {
	time.Time
}

// UnmarshalJSON은 숫자/문자열 형태의 유닉스 시간을 모두 처리합니다
func (t *UnixTime) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		t.Time = time.Time{}
		return nil
	}

	sec, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("유닉스 시간 파싱 실패(%s): %w", data, err)
	}

	t.Time = time.Unix(int64(sec), 0).UTC()
	return nil
}

// MarshalJSON은 초 단위 숫자로 직렬화합니다
func (t UnixTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Unix())
}
