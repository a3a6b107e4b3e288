package zaif

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/assist-by/zaif/internal/domain"
)

// Currencies는 통화 정보를 조회합니다. currency에 "all"을 주면 전체 목록입니다.
func (c *Client) Currencies(ctx context.Context, currency string) ([]domain.Currency, error) {
	var result []domain.Currency
	if err := c.getPublic(ctx, "/currencies/"+currency, Params{}, &result); err != nil {
		return nil, fmt.Errorf("통화 정보 조회 실패: %w", err)
	}
	return result, nil
}

// CurrencyPairs는 통화쌍 정보를 조회합니다. pair에 "all"을 주면 전체 목록입니다.
func (c *Client) CurrencyPairs(ctx context.Context, pair string) ([]domain.CurrencyPair, error) {
	var result []domain.CurrencyPair
	if err := c.getPublic(ctx, "/currency_pairs/"+pair, Params{}, &result); err != nil {
		return nil, fmt.Errorf("통화쌍 정보 조회 실패: %w", err)
	}
	return result, nil
}

// LastPrice는 최종 체결가를 조회합니다
func (c *Client) LastPrice(ctx context.Context, pair domain.Pair) (decimal.Decimal, error) {
	var result domain.LastPrice
	if err := c.getPublic(ctx, "/last_price/"+pair.String(), Params{}, &result); err != nil {
		return decimal.Zero, fmt.Errorf("최종 체결가 조회 실패: %w", err)
	}
	return result.LastPrice, nil
}

// Ticker는 시세 요약을 조회합니다
func (c *Client) Ticker(ctx context.Context, pair domain.Pair) (*domain.Ticker, error) {
	var result domain.Ticker
	if err := c.getPublic(ctx, "/ticker/"+pair.String(), Params{}, &result); err != nil {
		return nil, fmt.Errorf("티커 조회 실패: %w", err)
	}
	return &result, nil
}

// Trades는 거래소 전체의 최근 체결 이력을 조회합니다
func (c *Client) Trades(ctx context.Context, pair domain.Pair) ([]domain.Trade, error) {
	var result []domain.Trade
	if err := c.getPublic(ctx, "/trades/"+pair.String(), Params{}, &result); err != nil {
		return nil, fmt.Errorf("체결 이력 조회 실패: %w", err)
	}
	return result, nil
}

// Depth는 호가창을 조회합니다
func (c *Client) Depth(ctx context.Context, pair domain.Pair) (*domain.Depth, error) {
	var result domain.Depth
	if err := c.getPublic(ctx, "/depth/"+pair.String(), Params{}, &result); err != nil {
		return nil, fmt.Errorf("호가창 조회 실패: %w", err)
	}
	return &result, nil
}
