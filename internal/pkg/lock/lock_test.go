package lock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithLockSerializesSameUser(t *testing.T) {
	ul := NewUserLock()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = ul.WithLock("u1", func() error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestTryLock(t *testing.T) {
	ul := NewUserLock()

	assert.True(t, ul.TryLock("u1"))
	assert.False(t, ul.TryLock("u1"))
	// A different user is unaffected.
	assert.True(t, ul.TryLock("u2"))

	ul.Unlock("u1")
	assert.True(t, ul.TryLock("u1"))
}
