package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	osSignal "os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/assist-by/zaif/internal/config"
	"github.com/assist-by/zaif/internal/domain"
	"github.com/assist-by/zaif/internal/exchange"
	"github.com/assist-by/zaif/internal/exchange/zaif"
	"github.com/assist-by/zaif/internal/logging"
	"github.com/assist-by/zaif/internal/scheduler"
)

const usage = `사용법: zaif [flags] <command> [args]

공개 API:
  ticker | trades | depth | last      시세 조회 (-pair)
  currencies [name]                   통화 정보 (기본 all)
  pairs [name]                        통화쌍 정보 (기본 all)
  get <path> [key=value ...]          임의 공개 API 호출
  watch                               -interval(기본 WATCH_INTERVAL)마다 티커 출력
  stream                              웹소켓 시세 스트림 출력

비공개 API (ZAIF_API_KEY, ZAIF_API_SECRET 필요):
  info | info2 | personal | id        계정 정보
  orders                              미체결 주문
  history                             체결 이력 (-count, -order)
  deposits | withdrawals <currency>   입출금 이력
  trade <bid|ask> <price> <amount>    지정가 주문 (-pair, -comment)
  cancel <order_id>                   주문 취소 (-pair)
  call <method> [key=value ...]       임의 비공개 API 호출
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run은 CLI를 실행하고 종료 코드를 반환합니다. defer된 정리 작업은 모두 실행된 뒤 반환됩니다.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("zaif", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// 명령줄 플래그 정의
	pairFlag := fs.String("pair", string(domain.BTCJPY), "통화쌍")
	countFlag := fs.Int("count", 0, "이력 조회 건수")
	orderFlag := fs.String("order", "", "이력 정렬 순서 (ASC, DESC)")
	commentFlag := fs.String("comment", "", "주문 코멘트")
	intervalFlag := fs.Duration("interval", 0, "watch 간격 (0이면 WATCH_INTERVAL)")
	envFlag := fs.String("env", "", ".env 파일 경로 (기본: ./.env)")
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}

	// 플래그 파싱
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	// 로그 설정
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// 설정 로드
	var envFiles []string
	if *envFlag != "" {
		envFiles = append(envFiles, *envFlag)
	}
	cfg, err := config.LoadConfig(envFiles...)
	if err != nil {
		log.Printf("설정 로드 실패: %v", err)
		return 1
	}
	if *intervalFlag != 0 {
		cfg.App.WatchInterval = *intervalFlag
		if err := config.ValidateConfig(cfg); err != nil {
			log.Printf("설정값 검증 실패: %v", err)
			return 2
		}
	}

	logger, err := logging.New(cfg.App.LogLevel)
	if err != nil {
		log.Printf("로거 생성 실패: %v", err)
		return 1
	}
	defer logger.Sync()

	// Zaif 클라이언트 생성
	client, err := zaif.NewClient(
		cfg.Zaif.APIKey,
		cfg.Zaif.SecretKey,
		zaif.WithTimeout(cfg.Zaif.Timeout),
		zaif.WithPublicURL(cfg.Zaif.PublicURL),
		zaif.WithPrivateURL(cfg.Zaif.PrivateURL),
		zaif.WithStreamURL(cfg.Zaif.StreamURL),
		zaif.WithLogger(logger),
	)
	if err != nil {
		log.Printf("클라이언트 생성 실패: %v", err)
		return 1
	}

	// 시그널 처리
	ctx, stop := osSignal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := &command{
		ex:       client,
		client:   client,
		logger:   logger,
		out:      stdout,
		pair:     domain.Pair(*pairFlag),
		interval: cfg.App.WatchInterval,
		query: domain.HistoryQuery{
			Count: *countFlag,
			Order: domain.SortOrder(*orderFlag),
		},
		comment: *commentFlag,
	}

	name := fs.Arg(0)
	if err := cmd.run(ctx, name, fs.Args()[1:]); err != nil {
		var apiErr *zaif.APIError
		if errors.As(err, &apiErr) {
			log.Printf("거래소 에러: %s", apiErr.Message)
		} else {
			log.Printf("%s 실행 실패: %v", name, err)
		}
		return 1
	}
	return 0
}

// command는 하위 명령 실행에 필요한 의존성을 묶습니다.
// 카탈로그 명령은 ex를, 원시 호출과 스트림은 client를 사용합니다.
type command struct {
	ex       exchange.Exchange
	client   *zaif.Client
	logger   *zap.Logger
	out      io.Writer
	pair     domain.Pair
	interval time.Duration
	query    domain.HistoryQuery
	comment  string
}

func (c *command) run(ctx context.Context, name string, args []string) error {
	switch name {
	case "ticker":
		return c.print(c.ex.Ticker(ctx, c.pair))
	case "trades":
		return c.print(c.ex.Trades(ctx, c.pair))
	case "depth":
		return c.print(c.ex.Depth(ctx, c.pair))
	case "last":
		return c.print(c.ex.LastPrice(ctx, c.pair))
	case "currencies":
		return c.print(c.ex.Currencies(ctx, argOr(args, 0, "all")))
	case "pairs":
		return c.print(c.ex.CurrencyPairs(ctx, argOr(args, 0, "all")))
	case "get":
		if len(args) == 0 {
			return fmt.Errorf("경로가 필요합니다")
		}
		params, err := parseParams(args[1:])
		if err != nil {
			return err
		}
		return c.print(c.client.CallPublic(ctx, args[0], params))
	case "watch":
		return c.watch(ctx)
	case "stream":
		return c.stream(ctx)

	case "info":
		return c.print(c.ex.GetInfo(ctx))
	case "info2":
		return c.print(c.ex.GetInfo2(ctx))
	case "personal":
		return c.print(c.ex.GetPersonalInfo(ctx))
	case "id":
		return c.print(c.ex.GetIDInfo(ctx))
	case "orders":
		q := c.query
		q.CurrencyPair = pairIfSet(c.pair)
		return c.print(c.ex.ActiveOrders(ctx, q))
	case "history":
		q := c.query
		q.CurrencyPair = pairIfSet(c.pair)
		return c.print(c.ex.TradeHistory(ctx, q))
	case "deposits", "withdrawals":
		if len(args) == 0 {
			return fmt.Errorf("통화가 필요합니다")
		}
		q := c.query
		q.Currency = args[0]
		if name == "deposits" {
			return c.print(c.ex.DepositHistory(ctx, q))
		}
		return c.print(c.ex.WithdrawHistory(ctx, q))
	case "trade":
		order, err := c.parseOrder(args)
		if err != nil {
			return err
		}
		return c.print(c.ex.Trade(ctx, order))
	case "cancel":
		if len(args) == 0 {
			return fmt.Errorf("주문 ID가 필요합니다")
		}
		orderID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("주문 ID 파싱 실패: %w", err)
		}
		return c.print(c.ex.CancelOrder(ctx, orderID, c.pair))
	case "call":
		if len(args) == 0 {
			return fmt.Errorf("메서드 이름이 필요합니다")
		}
		params, err := parseParams(args[1:])
		if err != nil {
			return err
		}
		return c.print(c.client.CallPrivate(ctx, args[0], params))
	}

	return fmt.Errorf("알 수 없는 명령: %s", name)
}

// watch는 설정된 간격마다 티커를 출력합니다
func (c *command) watch(ctx context.Context) error {
	task := scheduler.TaskFunc(func(ctx context.Context) error {
		return c.print(c.ex.Ticker(ctx, c.pair))
	})

	s := scheduler.NewScheduler(c.interval, task,
		scheduler.WithImmediate(),
		scheduler.WithLogger(c.logger),
	)

	log.Printf("%s 티커 감시 시작 (간격: %v)", c.pair, c.interval)
	if err := s.Start(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	log.Println("티커 감시를 종료합니다.")
	return nil
}

// stream은 웹소켓 메시지를 수신하는 대로 출력합니다
func (c *command) stream(ctx context.Context) error {
	sub, err := c.client.Subscribe(ctx, c.pair)
	if err != nil {
		return err
	}
	defer sub.Close()

	for msg := range sub.Messages() {
		if err := c.print(msg, nil); err != nil {
			return err
		}
	}
	return sub.Err()
}

// parseOrder는 trade 명령 인자를 주문 요청으로 변환합니다
func (c *command) parseOrder(args []string) (domain.OrderRequest, error) {
	if len(args) < 3 {
		return domain.OrderRequest{}, fmt.Errorf("trade <bid|ask> <price> <amount> 형식이어야 합니다")
	}

	action := domain.OrderAction(args[0])
	if action != domain.Bid && action != domain.Ask {
		return domain.OrderRequest{}, fmt.Errorf("주문 방향은 bid 또는 ask여야 합니다: %s", args[0])
	}
	price, err := decimal.NewFromString(args[1])
	if err != nil {
		return domain.OrderRequest{}, fmt.Errorf("가격 파싱 실패: %w", err)
	}
	amount, err := decimal.NewFromString(args[2])
	if err != nil {
		return domain.OrderRequest{}, fmt.Errorf("수량 파싱 실패: %w", err)
	}

	return domain.OrderRequest{
		CurrencyPair: c.pair,
		Action:       action,
		Price:        price,
		Amount:       amount,
		Comment:      c.comment,
	}, nil
}

// print는 결과를 JSON으로 출력합니다
func (c *command) print(v any, err error) error {
	if err != nil {
		return err
	}
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
