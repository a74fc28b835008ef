package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_AddAndHistory(t *testing.T) {
	m := New()
	m.AddMessage("user", `{"chat_message":"hi"}`)
	m.AddMessage("assistant", `{"chat_message":"hello"}`)

	h := m.History()
	require.Len(t, h, 2)
	assert.Equal(t, "user", h[0].Role)
	assert.Equal(t, `{"chat_message":"hi"}`, h[0].Content)
	assert.Equal(t, "assistant", h[1].Role)

	// both messages belong to the same turn
	assert.NotEmpty(t, h[0].TurnID)
	assert.Equal(t, h[0].TurnID, h[1].TurnID)
}

func TestMemory_HistoryIsCopy(t *testing.T) {
	m := New()
	m.AddMessage("user", "a")
	h := m.History()
	h[0].Content = "mutated"
	assert.Equal(t, "a", m.History()[0].Content)
}

func TestMemory_NewTurn(t *testing.T) {
	m := New()
	m.AddMessage("user", "first")
	first := m.History()[0].TurnID

	second := m.NewTurn()
	m.AddMessage("user", "second")

	assert.NotEqual(t, first, second)
	assert.Equal(t, second, m.History()[1].TurnID)
}

func TestMemory_CopyIsolation(t *testing.T) {
	m := New()
	m.AddMessage("user", "original")

	snapshot := m.Copy()
	m.AddMessage("assistant", "later")

	assert.Equal(t, 1, snapshot.Len())
	assert.Equal(t, 2, m.Len())

	snapshot.AddMessage("user", "snapshot-only")
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, "later", m.History()[1].Content)
}

func TestMemory_MaxMessagesWindow(t *testing.T) {
	m := New(func(o *Options) { o.MaxMessages = 3 })
	for _, c := range []string{"1", "2", "3", "4", "5"} {
		m.AddMessage("user", c)
	}
	h := m.History()
	require.Len(t, h, 3)
	assert.Equal(t, "3", h[0].Content)
	assert.Equal(t, "5", h[2].Content)
}

func TestMemory_Reset(t *testing.T) {
	m := New()
	m.AddMessage("user", "x")
	m.Reset()
	assert.Equal(t, 0, m.Len())
}

func TestMemory_DumpLoad(t *testing.T) {
	m := New()
	m.AddMessage("user", `{"chat_message":"ping"}`)
	m.AddMessage("assistant", `{"chat_message":"pong"}`)

	data, err := m.Dump()
	require.NoError(t, err)

	restored := New()
	require.NoError(t, restored.Load(data))
	assert.Equal(t, m.History(), restored.History())
}

func TestMemory_LoadInvalid(t *testing.T) {
	m := New()
	assert.Error(t, m.Load([]byte("not json")))
}
