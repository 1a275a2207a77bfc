package state

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, *time.Time) {
	t.Helper()
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	sm := NewManager(time.Minute)
	sm.now = func() time.Time { return now }
	return sm, &now
}

func TestManager_LoginDialog(t *testing.T) {
	sm, _ := newTestManager(t)

	assert.Equal(t, StateNone, sm.GetState(1))

	sm.SetState(1, StateLoginEmail)
	assert.Equal(t, StateLoginEmail, sm.GetState(1))

	sm.SetData(1, KeyEmail, "student@example.com")
	sm.SetState(1, StateLoginPassword)

	email, ok := sm.GetData(1, KeyEmail)
	require.True(t, ok)
	assert.Equal(t, "student@example.com", email)
	assert.Equal(t, StateLoginPassword, sm.GetState(1))

	// другой пользователь не затронут
	assert.Equal(t, StateNone, sm.GetState(2))

	sm.ClearState(1)
	assert.Equal(t, StateNone, sm.GetState(1))
	_, ok = sm.GetData(1, KeyEmail)
	assert.False(t, ok)
}

func TestManager_SetStateNoneDeletes(t *testing.T) {
	sm, _ := newTestManager(t)

	sm.SetState(1, StateLoginEmail)
	sm.SetData(1, KeyEmail, "a@b.c")
	sm.SetState(1, StateNone)

	_, ok := sm.GetData(1, KeyEmail)
	assert.False(t, ok)
}

func TestManager_DeleteData(t *testing.T) {
	sm, _ := newTestManager(t)

	sm.SetData(1, KeyCatalogQuery, "toán")
	sm.DeleteData(1, KeyCatalogQuery)
	_, ok := sm.GetData(1, KeyCatalogQuery)
	assert.False(t, ok)
	assert.Empty(t, sm.states)

	// активный диалог не прерывается
	sm.SetState(2, StateLoginEmail)
	sm.SetData(2, KeyCatalogQuery, "lý")
	sm.DeleteData(2, KeyCatalogQuery)
	assert.Equal(t, StateLoginEmail, sm.GetState(2))

	// нет записи - ничего не делает
	sm.DeleteData(3, KeyCatalogQuery)
	assert.Equal(t, StateNone, sm.GetState(3))
}

func TestManager_Expiry(t *testing.T) {
	sm, now := newTestManager(t)

	sm.SetState(1, StateLoginEmail)

	*now = now.Add(59 * time.Second)
	assert.Equal(t, StateLoginEmail, sm.GetState(1))

	// продолжение диалога продлевает его
	sm.SetState(1, StateLoginPassword)
	*now = now.Add(59 * time.Second)
	assert.Equal(t, StateLoginPassword, sm.GetState(1))

	*now = now.Add(2 * time.Minute)
	assert.Equal(t, StateNone, sm.GetState(1))
	assert.Empty(t, sm.states)
}

func TestManager_DefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultTTL, NewManager(0).ttl)
}

func TestManager_Concurrent(t *testing.T) {
	sm := NewManager(time.Minute)

	var wg sync.WaitGroup
	for i := int64(0); i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			sm.SetState(id, StateLoginEmail)
			sm.SetData(id, KeyEmail, "x")
			sm.GetState(id)
			sm.ClearState(id)
		}(i)
	}
	wg.Wait()

	assert.Empty(t, sm.states)
}
