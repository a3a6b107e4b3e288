package zaif

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/assist-by/zaif/internal/domain"
)

// 비공개 API 메서드 이름
const (
	MethodGetInfo         = "get_info"
	MethodGetInfo2        = "get_info2"
	MethodGetPersonalInfo = "get_personal_info"
	MethodGetIDInfo       = "get_id_info"
	MethodTradeHistory    = "trade_history"
	MethodActiveOrders    = "active_orders"
	MethodTrade           = "trade"
	MethodCancelOrder     = "cancel_order"
	MethodWithdraw        = "withdraw"
	MethodDepositHistory  = "deposit_history"
	MethodWithdrawHistory = "withdraw_history"
)

// GetInfo는 잔고, 권한, 체결 횟수, 미체결 주문 수를 조회합니다
func (c *Client) GetInfo(ctx context.Context) (*domain.AccountInfo, error) {
	var result domain.AccountInfo
	if err := c.postPrivate(ctx, MethodGetInfo, Params{}, &result); err != nil {
		return nil, fmt.Errorf("계정 정보 조회 실패: %w", err)
	}
	return &result, nil
}

// GetInfo2는 체결 횟수를 제외한 가벼운 계정 정보를 조회합니다
func (c *Client) GetInfo2(ctx context.Context) (*domain.AccountInfo, error) {
	var result domain.AccountInfo
	if err := c.postPrivate(ctx, MethodGetInfo2, Params{}, &result); err != nil {
		return nil, fmt.Errorf("계정 정보 조회 실패: %w", err)
	}
	return &result, nil
}

// GetPersonalInfo는 채팅 닉네임과 아이콘을 조회합니다
func (c *Client) GetPersonalInfo(ctx context.Context) (*domain.PersonalInfo, error) {
	var result domain.PersonalInfo
	if err := c.postPrivate(ctx, MethodGetPersonalInfo, Params{}, &result); err != nil {
		return nil, fmt.Errorf("개인 정보 조회 실패: %w", err)
	}
	return &result, nil
}

// GetIDInfo는 본인 확인 정보를 조회합니다
func (c *Client) GetIDInfo(ctx context.Context) (*domain.IDInfo, error) {
	var result domain.IDInfo
	if err := c.postPrivate(ctx, MethodGetIDInfo, Params{}, &result); err != nil {
		return nil, fmt.Errorf("본인 확인 정보 조회 실패: %w", err)
	}
	return &result, nil
}

// TradeHistory는 본인 체결 이력을 주문 ID별로 조회합니다
func (c *Client) TradeHistory(ctx context.Context, q domain.HistoryQuery) (map[string]domain.TradeRecord, error) {
	raw, err := c.doPrivate(ctx, MethodTradeHistory, historyParams(q))
	if err != nil {
		return nil, fmt.Errorf("체결 이력 조회 실패: %w", err)
	}
	return decodeRecords[domain.TradeRecord](MethodTradeHistory, raw)
}

// ActiveOrders는 미체결 주문을 주문 ID별로 조회합니다
func (c *Client) ActiveOrders(ctx context.Context, q domain.HistoryQuery) (map[string]domain.ActiveOrder, error) {
	var params Params
	if q.CurrencyPair != "" {
		params.Set("currency_pair", q.CurrencyPair)
	}
	if q.IsToken {
		params.Set("is_token", true)
	}

	raw, err := c.doPrivate(ctx, MethodActiveOrders, params)
	if err != nil {
		return nil, fmt.Errorf("미체결 주문 조회 실패: %w", err)
	}
	return decodeRecords[domain.ActiveOrder](MethodActiveOrders, raw)
}

// Trade는 지정가 주문을 생성합니다
func (c *Client) Trade(ctx context.Context, order domain.OrderRequest) (*domain.TradeResult, error) {
	params := NewParams(
		"currency_pair", order.CurrencyPair,
		"action", order.Action,
		"price", order.Price,
		"amount", order.Amount,
	)
	if !order.Limit.IsZero() {
		params.Set("limit", order.Limit)
	}
	if order.Comment != "" {
		params.Set("comment", order.Comment)
	}

	var result domain.TradeResult
	if err := c.postPrivate(ctx, MethodTrade, params, &result); err != nil {
		return nil, fmt.Errorf("주문 실행 실패 [통화쌍: %s, 방향: %s, 가격: %s, 수량: %s]: %w",
			order.CurrencyPair, order.Action, order.Price, order.Amount, err)
	}
	return &result, nil
}

// CancelOrder는 주문을 취소합니다. pair는 비워 둘 수 있습니다.
func (c *Client) CancelOrder(ctx context.Context, orderID int64, pair domain.Pair) (*domain.CancelResult, error) {
	params := NewParams("order_id", orderID)
	if pair != "" {
		params.Set("currency_pair", pair)
	}

	var result domain.CancelResult
	if err := c.postPrivate(ctx, MethodCancelOrder, params, &result); err != nil {
		return nil, fmt.Errorf("주문 취소 실패: %w", err)
	}
	return &result, nil
}

// Withdraw는 암호화폐 출금을 요청합니다
func (c *Client) Withdraw(ctx context.Context, req domain.WithdrawRequest) (*domain.WithdrawResult, error) {
	params := NewParams(
		"currency", req.Currency,
		"address", req.Address,
	)
	if req.Message != "" {
		params.Set("message", req.Message)
	}
	params.Set("amount", req.Amount)
	if !req.OptFee.IsZero() {
		params.Set("opt_fee", req.OptFee)
	}

	var result domain.WithdrawResult
	if err := c.postPrivate(ctx, MethodWithdraw, params, &result); err != nil {
		return nil, fmt.Errorf("출금 요청 실패: %w", err)
	}
	return &result, nil
}

// DepositHistory는 입금 이력을 조회합니다
func (c *Client) DepositHistory(ctx context.Context, q domain.HistoryQuery) (map[string]domain.TransferRecord, error) {
	raw, err := c.doPrivate(ctx, MethodDepositHistory, transferParams(q))
	if err != nil {
		return nil, fmt.Errorf("입금 이력 조회 실패: %w", err)
	}
	return decodeRecords[domain.TransferRecord](MethodDepositHistory, raw)
}

// WithdrawHistory는 출금 이력을 조회합니다
func (c *Client) WithdrawHistory(ctx context.Context, q domain.HistoryQuery) (map[string]domain.TransferRecord, error) {
	raw, err := c.doPrivate(ctx, MethodWithdrawHistory, transferParams(q))
	if err != nil {
		return nil, fmt.Errorf("출금 이력 조회 실패: %w", err)
	}
	return decodeRecords[domain.TransferRecord](MethodWithdrawHistory, raw)
}

// historyParams는 이력 조회 조건 중 값이 있는 필드만 파라미터로 만듭니다
func historyParams(q domain.HistoryQuery) Params {
	var p Params
	if q.From > 0 {
		p.Set("from", q.From)
	}
	if q.Count > 0 {
		p.Set("count", q.Count)
	}
	if q.FromID > 0 {
		p.Set("from_id", q.FromID)
	}
	if q.EndID > 0 {
		p.Set("end_id", q.EndID)
	}
	if q.Order != "" {
		p.Set("order", q.Order)
	}
	if q.Since > 0 {
		p.Set("since", q.Since)
	}
	if q.End > 0 {
		p.Set("end", q.End)
	}
	if q.CurrencyPair != "" {
		p.Set("currency_pair", q.CurrencyPair)
	}
	return p
}

// transferParams는 입출금 이력 조회 파라미터를 만듭니다 (currency 필수)
func transferParams(q domain.HistoryQuery) Params {
	p := NewParams("currency", q.Currency)
	q.CurrencyPair = ""
	p.entries = append(p.entries, historyParams(q).entries...)
	return p
}

// decodeRecords는 ID를 키로 하는 응답을 디코딩합니다. 빈 결과는 []로 내려올 수 있습니다.
func decodeRecords[T any](method string, raw json.RawMessage) (map[string]T, error) {
	records := make(map[string]T)
	if bytes.Equal(bytes.TrimSpace(raw), []byte("[]")) {
		return records, nil
	}
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, &TransportError{Op: "POST " + method, Body: truncate(raw), Err: fmt.Errorf("응답 파싱 실패: %w", err)}
	}
	return records, nil
}
