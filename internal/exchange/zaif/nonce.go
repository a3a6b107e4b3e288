package zaif

import (
	"sync"
	"time"
)

// NonceSource는 비공개 요청마다 증가하는 nonce를 발급합니다
type NonceSource interface {
	Next() int64
}

// TimeNonce는 벽시계 초를 기준으로 하되 같은 초 안에서도 항상 증가하는 nonce입니다.
// Zaif는 nonce를 4294967295 이하로 제한하므로 밀리초 단위는 쓰지 않습니다.
//
// 한 초 안에 N번 호출하면 nonce는 시계보다 최대 N-1초 앞서 나가고,
// 호출이 뜸해져 시계가 따라잡을 때까지 그 차이가 유지됩니다.
// 그동안 재시작한 프로세스나 같은 키를 쓰는 다른 Client가 보내는 nonce는
// 더 작아서 거부됩니다. 같은 키를 여러 Client가 쓴다면 WithNonceSource로
// 하나의 TimeNonce를 공유하세요.
type TimeNonce struct {
	mu    sync.Mutex
	last  int64
	clock func() time.Time
}

// NewTimeNonce는 새로운 TimeNonce를 생성합니다. clock이 nil이면 time.Now를 사용합니다.
func NewTimeNonce(clock func() time.Time) *TimeNonce {
	if clock == nil {
		clock = time.Now
	}
	return &TimeNonce{clock: clock}
}

// Next는 직전 값보다 큰 nonce를 반환합니다
func (n *TimeNonce) Next() int64 {
	n.mu.Lock()
	defer n.mu.Unlock()

	next := n.clock().Unix()
	if next <= n.last {
		next = n.last + 1
	}
	n.last = next
	return next
}
