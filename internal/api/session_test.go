package api

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionGate_SerializesSameSession(t *testing.T) {
	g := NewSessionGate()

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := g.acquire("s1")
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			release()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
	assert.Equal(t, 0, g.active())
}

func TestSessionGate_DistinctSessionsRunInParallel(t *testing.T) {
	g := NewSessionGate()

	releaseA := g.acquire("a")
	done := make(chan struct{})
	go func() {
		release := g.acquire("b")
		release()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("session b blocked behind session a")
	}
	assert.Equal(t, 1, g.active())
	releaseA()
	assert.Equal(t, 0, g.active())
}
