package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Ticker는 통화쌍의 시세 요약을 표현합니다
type Ticker struct {
	Last   decimal.Decimal `json:"last"`   // 최종 체결가
	High   decimal.Decimal `json:"high"`   // 24시간 고가
	Low    decimal.Decimal `json:"low"`    // 24시간 저가
	VWAP   decimal.Decimal `json:"vwap"`   // 24시간 거래량 가중 평균가
	Volume decimal.Decimal `json:"volume"` // 24시간 거래량
	Bid    decimal.Decimal `json:"bid"`    // 최고 매수 호가
	Ask    decimal.Decimal `json:"ask"`    // 최저 매도 호가
}

// Trade는 거래소 전체 체결 이력의 한 건입니다
type Trade struct {
	Date         UnixTime        `json:"date"`
	Price        decimal.Decimal `json:"price"`
	Amount       decimal.Decimal `json:"amount"`
	TID          int64           `json:"tid"`
	CurrencyPair Pair            `json:"currency_pair"`
	TradeType    OrderAction     `json:"trade_type"`
}

// DepthEntry는 호가 한 단계입니다 (가격, 수량)
type DepthEntry struct {
	Price  decimal.Decimal
	Amount decimal.Decimal
}

// UnmarshalJSON은 [price, amount] 배열을 DepthEntry로 변환합니다
func (e *DepthEntry) UnmarshalJSON(data []byte) error {
	var raw []decimal.Decimal
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("호가 항목 길이 오류: %d", len(raw))
	}

	e.Price = raw[0]
	e.Amount = raw[1]
	return nil
}

// MarshalJSON은 DepthEntry를 [price, amount] 배열로 직렬화합니다
func (e DepthEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]decimal.Decimal{e.Price, e.Amount})
}

// Depth는 호가창(오더북)입니다
type Depth struct {
	Asks []DepthEntry `json:"asks"`
	Bids []DepthEntry `json:"bids"`
}

// LastPrice는 최종 체결가 응답입니다
type LastPrice struct {
	LastPrice decimal.Decimal `json:"last_price"`
}

// Currency는 취급 통화 정보입니다
type Currency struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	IsToken bool   `json:"is_token"`
}

// CurrencyPair는 통화쌍의 거래 단위 정보입니다
type CurrencyPair struct {
	Name         string          `json:"name"`
	Title        string          `json:"title"`
	CurrencyPair Pair            `json:"currency_pair"`
	Description  string          `json:"description"`
	IsToken      bool            `json:"is_token"`
	EventNumber  int             `json:"event_number"`
	Seq          int             `json:"seq"`
	ItemUnitMin  decimal.Decimal `json:"item_unit_min"`
	ItemUnitStep decimal.Decimal `json:"item_unit_step"`
	ItemJapanese string          `json:"item_japanese"`
	AuxUnitMin   decimal.Decimal `json:"aux_unit_min"`
	AuxUnitStep  decimal.Decimal `json:"aux_unit_step"`
	AuxUnitPoint int             `json:"aux_unit_point"`
	AuxJapanese  string          `json:"aux_japanese"`
}

// StreamMessage는 웹소켓 스트림으로 수신되는 시세 스냅샷입니다
type StreamMessage struct {
	Asks         []DepthEntry    `json:"asks"`
	Bids         []DepthEntry    `json:"bids"`
	Trades       []Trade         `json:"trades"`
	Timestamp    string          `json:"timestamp"`
	LastPrice    StreamLastPrice `json:"last_price"`
	CurrencyPair Pair            `json:"currency_pair"`
}

// StreamLastPrice는 스트림 메시지의 최종 체결 정보입니다
type StreamLastPrice struct {
	Action OrderAction     `json:"action"`
	Price  decimal.Decimal `json:"price"`
}
