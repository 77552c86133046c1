package session

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStoreGetMissing(t *testing.T) {
	store := NewMemoryStore()

	sess, err := store.Get(context.Background(), "42")
	assert.Nil(t, err)
	assert.Nil(t, sess)
}

func TestMemoryStoreSaveGetDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess := NewRegistrationSession("42")
	sess.Data.Name = "Alice"
	assert.Nil(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "42")
	assert.Nil(t, err)
	assert.Equal(t, ModeRegistration, got.Mode)
	assert.Equal(t, StepAskName, got.Step)
	assert.Equal(t, "Alice", got.Data.Name)

	// Get 返回的是副本，改它不影响存储里的状态
	got.Data.Name = "Bob"
	again, err := store.Get(ctx, "42")
	assert.Nil(t, err)
	assert.Equal(t, "Alice", again.Data.Name)

	assert.Nil(t, store.Delete(ctx, "42"))
	gone, err := store.Get(ctx, "42")
	assert.Nil(t, err)
	assert.Nil(t, gone)
}

func TestMemoryStoreConcurrentSave(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := store.Lock("42")
			defer unlock()

			sess, _ := store.Get(ctx, "42")
			if sess == nil {
				sess = NewRegistrationSession("42")
			}
			sess.Data.AgeYears++
			_ = store.Save(ctx, sess)
		}()
	}
	wg.Wait()

	got, err := store.Get(ctx, "42")
	assert.Nil(t, err)
	assert.Equal(t, 50, got.Data.AgeYears)
}
