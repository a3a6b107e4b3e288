package domain

import "github.com/shopspring/decimal"

// OrderRequest는 주문 요청 정보를 표현합니다
type OrderRequest struct {
	CurrencyPair Pair            // 통화쌍 (예: btc_jpy)
	Action       OrderAction     // 매수/매도
	Price        decimal.Decimal // 지정가
	Amount       decimal.Decimal // 수량
	Limit        decimal.Decimal // 리밋 가격 (선택, 0이면 생략)
	Comment      string          // 주문 코멘트 (선택)
}

// TradeResult는 trade 응답을 표현합니다
type TradeResult struct {
	Received decimal.Decimal `json:"received"` // 즉시 체결된 수량
	Remains  decimal.Decimal `json:"remains"`  // 미체결 수량
	OrderID  int64           `json:"order_id"` // 주문 ID (전량 체결 시 0)
	Funds    Funds           `json:"funds"`    // 주문 후 잔고
}

// CancelResult는 cancel_order 응답을 표현합니다
type CancelResult struct {
	OrderID int64 `json:"order_id"`
	Funds   Funds `json:"funds"`
}

// ActiveOrder는 미체결 주문 한 건입니다
type ActiveOrder struct {
	CurrencyPair Pair            `json:"currency_pair"`
	Action       OrderAction     `json:"action"`
	Amount       decimal.Decimal `json:"amount"`
	Price        decimal.Decimal `json:"price"`
	Timestamp    UnixTime        `json:"timestamp"`
	Comment      string          `json:"comment"`
}

// TradeRecord는 본인 체결 이력 한 건입니다
type TradeRecord struct {
	CurrencyPair Pair            `json:"currency_pair"`
	Action       OrderAction     `json:"action"`
	Amount       decimal.Decimal `json:"amount"`
	Price        decimal.Decimal `json:"price"`
	Fee          decimal.Decimal `json:"fee"`
	YourAction   OrderAction     `json:"your_action"`
	Bonus        decimal.Decimal `json:"bonus"`
	Timestamp    UnixTime        `json:"timestamp"`
	Comment      string          `json:"comment"`
}

// HistoryQuery는 이력 조회 공통 조건입니다. 0값 필드는 전송하지 않습니다.
type HistoryQuery struct {
	From         int       // 오프셋
	Count        int       // 조회 건수
	FromID       int64     // 시작 ID
	EndID        int64     // 종료 ID
	Order        SortOrder // 정렬 순서
	Since        int64     // 시작 유닉스 시간
	End          int64     // 종료 유닉스 시간
	CurrencyPair Pair      // 통화쌍 (trade_history, active_orders)
	Currency     string    // 통화 (deposit_history, withdraw_history)
	IsToken      bool      // 토큰 주문 포함 여부 (active_orders)
}
