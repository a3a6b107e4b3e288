// internal/exchange/exchange.go
package exchange

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/assist-by/zaif/internal/domain"
)

// MarketData는 인증이 필요 없는 시세 조회 인터페이스입니다
type MarketData interface {
	LastPrice(ctx context.Context, pair domain.Pair) (decimal.Decimal, error)
	Ticker(ctx context.Context, pair domain.Pair) (*domain.Ticker, error)
	Trades(ctx context.Context, pair domain.Pair) ([]domain.Trade, error)
	Depth(ctx context.Context, pair domain.Pair) (*domain.Depth, error)
}

// Exchange는 거래소와의 상호작용을 위한 인터페이스입니다
type Exchange interface {
	MarketData

	// 통화 정보 조회
	Currencies(ctx context.Context, currency string) ([]domain.Currency, error)
	CurrencyPairs(ctx context.Context, pair string) ([]domain.CurrencyPair, error)

	// 계정 데이터 조회
	GetInfo(ctx context.Context) (*domain.AccountInfo, error)
	GetInfo2(ctx context.Context) (*domain.AccountInfo, error)
	GetPersonalInfo(ctx context.Context) (*domain.PersonalInfo, error)
	GetIDInfo(ctx context.Context) (*domain.IDInfo, error)

	// 주문
	TradeHistory(ctx context.Context, q domain.HistoryQuery) (map[string]domain.TradeRecord, error)
	ActiveOrders(ctx context.Context, q domain.HistoryQuery) (map[string]domain.ActiveOrder, error)
	Trade(ctx context.Context, order domain.OrderRequest) (*domain.TradeResult, error)
	CancelOrder(ctx context.Context, orderID int64, pair domain.Pair) (*domain.CancelResult, error)

	// 입출금
	Withdraw(ctx context.Context, req domain.WithdrawRequest) (*domain.WithdrawResult, error)
	DepositHistory(ctx context.Context, q domain.HistoryQuery) (map[string]domain.TransferRecord, error)
	WithdrawHistory(ctx context.Context, q domain.HistoryQuery) (map[string]domain.TransferRecord, error)
}
