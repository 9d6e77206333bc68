package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestWithDelay(t *testing.T) {
	t.Run("выполнение под блокировкой", func(t *testing.T) {
		called := false
		ok, err := WithDelay(context.Background(), "k1", time.Second, func() error {
			called = true
			return nil
		})
		require.NoError(t, err)
		require.True(t, ok)
		require.True(t, called)
	})
	t.Run("ошибка кода возвращается", func(t *testing.T) {
		ok, err := WithDelay(context.Background(), "k2", time.Second, func() error {
			return errors.New("boom")
		})
		require.True(t, ok)
		require.EqualError(t, err, "boom")
	})
	t.Run("таймаут ожидания", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		go func() {
			_, _ = WithDelay(context.Background(), "k3", time.Second, func() error {
				close(started)
				<-release
				return nil
			})
		}()
		<-started
		ok, err := WithDelay(context.Background(), "k3", 50*time.Millisecond, func() error {
			return nil
		})
		close(release)
		require.NoError(t, err)
		require.False(t, ok)
	})
	t.Run("взаимное исключение", func(t *testing.T) {
		var inside, maxInside int32
		wg := sync.WaitGroup{}
		for n := 0; n < 10; n++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ok, err := WithDelay(context.Background(), IssueKey(7), 5*time.Second, func() error {
					cur := atomic.AddInt32(&inside, 1)
					if cur > atomic.LoadInt32(&maxInside) {
						atomic.StoreInt32(&maxInside, cur)
					}
					time.Sleep(time.Millisecond)
					atomic.AddInt32(&inside, -1)
					return nil
				})
				require.NoError(t, err)
				require.True(t, ok)
			}()
		}
		wg.Wait()
		require.Equal(t, int32(1), maxInside)
	})
	t.Run("ключ заявки", func(t *testing.T) {
		require.Equal(t, "issue:42", IssueKey(42))
	})
}
