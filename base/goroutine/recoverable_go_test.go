package goroutine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRecoverableGo(t *testing.T) {
	req := require.New(t)

	done := make(chan struct{})
	ch := RecoverableGo(func() {
		close(done)
	})
	select {
	case <-done:
	case <-time.After(time.Second):
		req.Fail("goroutine did not run")
	}
	_, ok := <-ch
	req.False(ok, "channel should close without panic event")
}

func TestRecoverableGoPanic(t *testing.T) {
	req := require.New(t)

	recovered := make(chan interface{}, 1)
	ch := RecoverableGo(func() {
		panic("boom")
	}, WithAfterRecovered(func(p interface{}, stack []byte) {
		recovered <- p
	}))

	select {
	case p := <-recovered:
		req.Equal("boom", p)
	case <-time.After(time.Second):
		req.Fail("panic hook did not fire")
	}

	evt := <-ch
	req.NotNil(evt)
	req.Equal("boom", evt.Panic)
}
