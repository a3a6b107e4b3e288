package zaif

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assist-by/zaif/internal/domain"
)

const streamFrame = `{
	"asks": [[136290, 0.1]],
	"bids": [[136260, 0.2]],
	"trades": [{"date": 1700000000, "price": 136280, "amount": 0.01, "tid": 1, "currency_pair": "btc_jpy", "trade_type": "bid"}],
	"timestamp": "2023-11-14 22:13:20.000000",
	"last_price": {"action": "bid", "price": 136280},
	"currency_pair": "btc_jpy"
}`

// newStreamServer는 frames를 보낸 뒤 hold가 닫힐 때까지 연결을 유지하는 웹소켓 서버입니다
func newStreamServer(t *testing.T, frames []string, hold <-chan struct{}) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "btc_jpy", r.URL.Query().Get("currency_pair"))

		conn, err := upgrader.Upgrade(w, r, nil)
		if !assert.NoError(t, err) {
			return
		}
		defer conn.Close()

		for _, f := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(f)); err != nil {
				return
			}
		}

		if hold != nil {
			<-hold
			return
		}
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func streamClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := NewClient("", "", WithStreamURL("ws"+strings.TrimPrefix(srv.URL, "http")))
	require.NoError(t, err)
	return c
}

func TestSubscribe_ReceivesMessages(t *testing.T) {
	srv := newStreamServer(t, []string{streamFrame, streamFrame}, nil)
	c := streamClient(t, srv)

	sub, err := c.Subscribe(context.Background(), domain.BTCJPY)
	require.NoError(t, err)
	defer sub.Close()

	var got []domain.StreamMessage
	for msg := range sub.Messages() {
		got = append(got, msg)
	}

	require.Len(t, got, 2)
	assert.Equal(t, domain.BTCJPY, got[0].CurrencyPair)
	assert.Equal(t, domain.Bid, got[0].LastPrice.Action)
	assert.Equal(t, "136280", got[0].LastPrice.Price.String())
	require.Len(t, got[0].Asks, 1)
	assert.Equal(t, "0.1", got[0].Asks[0].Amount.String())
	assert.NoError(t, sub.Err())
}

func TestSubscribe_ContextCancelStopsQuietly(t *testing.T) {
	hold := make(chan struct{})
	defer close(hold)
	srv := newStreamServer(t, []string{streamFrame}, hold)
	c := streamClient(t, srv)

	ctx, cancel := context.WithCancel(context.Background())
	sub, err := c.Subscribe(ctx, domain.BTCJPY)
	require.NoError(t, err)

	<-sub.Messages()
	cancel()

	select {
	case _, ok := <-sub.Messages():
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("취소 후에도 채널이 닫히지 않았습니다")
	}
	assert.NoError(t, sub.Err())
}

func TestSubscribe_MalformedFrame(t *testing.T) {
	srv := newStreamServer(t, []string{`not json`}, nil)
	c := streamClient(t, srv)

	sub, err := c.Subscribe(context.Background(), domain.BTCJPY)
	require.NoError(t, err)

	for range sub.Messages() {
	}
	assert.Error(t, sub.Err())
}

func TestSubscribe_DialFailure(t *testing.T) {
	c, err := NewClient("", "", WithStreamURL("ws://127.0.0.1:1/stream"))
	require.NoError(t, err)

	_, err = c.Subscribe(context.Background(), domain.BTCJPY)
	var tErr *TransportError
	assert.ErrorAs(t, err, &tErr)
}
