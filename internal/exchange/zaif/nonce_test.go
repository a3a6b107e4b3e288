package zaif

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeNonce_SameSecondStillIncreases(t *testing.T) {
	now := time.Unix(1700000000, 0)
	n := NewTimeNonce(func() time.Time { return now })

	assert.Equal(t, int64(1700000000), n.Next())
	assert.Equal(t, int64(1700000001), n.Next())
	assert.Equal(t, int64(1700000002), n.Next())

	// 시계가 따라잡으면 다시 시계 값을 사용
	now = time.Unix(1700000010, 0)
	assert.Equal(t, int64(1700000010), n.Next())

	// 시계가 뒤로 가도 감소하지 않음
	now = time.Unix(1600000000, 0)
	assert.Equal(t, int64(1700000011), n.Next())
}

func TestTimeNonce_BurstRunsAheadOfClock(t *testing.T) {
	now := time.Unix(1700000000, 0)
	n := NewTimeNonce(func() time.Time { return now })

	var last int64
	for i := 0; i < 500; i++ {
		last = n.Next()
	}
	assert.Equal(t, now.Unix()+499, last)

	// 시계가 앞선 값을 지나면 다시 시계를 따름
	now = now.Add(600 * time.Second)
	assert.Equal(t, now.Unix(), n.Next())
}

func TestTimeNonce_ConcurrentCallsAreUnique(t *testing.T) {
	n := NewTimeNonce(nil)

	const workers, perWorker = 8, 100
	results := make(chan int64, workers*perWorker)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				results <- n.Next()
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[int64]bool, workers*perWorker)
	for v := range results {
		require.False(t, seen[v], "중복 nonce: %d", v)
		seen[v] = true
	}
	assert.Len(t, seen, workers*perWorker)
}

func TestSign_KnownVector(t *testing.T) {
	// RFC 4231 테스트 케이스 2
	got := Sign("Jefe", []byte("what do ya want for nothing?"))
	assert.Equal(t,
		"164b7a7bfcf819e2e395fbe73b56e0a387bd64222e831fd610270cd7ea2505549758bf75c05a994a6d034f65f8f0e6fdcaeab1a34d4a6b4b636e070a38bce737",
		got)
}

func TestCredentials_StringHidesSecret(t *testing.T) {
	c := Credentials{Key: "k", Secret: "very-secret"}
	assert.NotContains(t, c.String(), "very-secret")
	assert.True(t, c.Valid())
	assert.False(t, Credentials{Key: "k"}.Valid())
}
