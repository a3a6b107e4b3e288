package zaif

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/assist-by/zaif/internal/domain"
)

// Subscription은 통화쌍 하나에 대한 웹소켓 시세 구독입니다.
// 재연결은 하지 않으며, 연결이 끊기면 Messages 채널이 닫히고 Err로 원인을 확인합니다.
type Subscription struct {
	conn     *websocket.Conn
	messages chan domain.StreamMessage
	done     chan struct{}

	mu        sync.Mutex
	err       error
	closed    bool
	closeOnce sync.Once
}

// Subscribe는 스트림에 연결하고 수신 루프를 시작합니다
func (c *Client) Subscribe(ctx context.Context, pair domain.Pair) (*Subscription, error) {
	u, err := url.Parse(c.streamURL)
	if err != nil {
		return nil, fmt.Errorf("스트림 URL 파싱 실패: %w", err)
	}
	q := u.Query()
	q.Set("currency_pair", pair.String())
	u.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, &TransportError{Op: "WS " + pair.String(), Err: err}
	}
	c.logger.Debug("zaif 스트림 연결", zap.String("pair", pair.String()))

	s := &Subscription{
		conn:     conn,
		messages: make(chan domain.StreamMessage),
		done:     make(chan struct{}),
	}

	go s.closeOnDone(ctx)
	go s.readLoop(ctx, c.logger.With(zap.String("pair", pair.String())))

	return s, nil
}

// Messages는 수신 메시지 채널을 반환합니다
func (s *Subscription) Messages() <-chan domain.StreamMessage {
	return s.messages
}

// Err는 수신 루프가 비정상 종료된 원인을 반환합니다. Close나 ctx 취소로 끝났으면 nil입니다.
func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close는 구독을 종료합니다
func (s *Subscription) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()

		close(s.done)
		err = s.conn.Close()
	})
	return err
}

func (s *Subscription) closeOnDone(ctx context.Context) {
	select {
	case <-ctx.Done():
		s.Close()
	case <-s.done:
	}
}

// readLoop는 연결이 끊길 때까지 메시지를 읽어 채널로 전달합니다
func (s *Subscription) readLoop(ctx context.Context, logger *zap.Logger) {
	defer close(s.messages)
	defer s.Close()

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			s.fail(err)
			return
		}

		var msg domain.StreamMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Debug("스트림 메시지 파싱 실패", zap.Error(err))
			s.fail(fmt.Errorf("스트림 메시지 파싱 실패: %w", err))
			return
		}

		select {
		case s.messages <- msg:
		case <-ctx.Done():
			return
		case <-s.done:
			return
		}
	}
}

// fail은 사용자가 닫지 않은 연결에 대해서만 에러를 기록합니다
func (s *Subscription) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.err != nil {
		return
	}
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		return
	}
	if errors.Is(err, context.Canceled) {
		return
	}
	s.err = &TransportError{Op: "WS read", Err: err}
}
