package bubbletea_test

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/supernova"
	bt "github.com/fwojciec/supernova/bubbletea"
	snjson "github.com/fwojciec/supernova/json"
	"github.com/fwojciec/supernova/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModel(t *testing.T, completer *mock.Completer) (bt.Model, *supernova.Engine, *supernova.Store) {
	t.Helper()
	kv := &mock.KV{}
	store := supernova.NewStore(kv, snjson.Codec{}, nil)
	store.Load(context.Background())
	engine := supernova.NewEngine(store, completer, kv)
	updates := make(chan struct{}, 1)
	m := bt.New(engine, store, nil, supernova.DefaultTheme(), updates)
	return m, engine, store
}

func update(t *testing.T, m bt.Model, msg tea.Msg) (bt.Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(bt.Model)
	require.True(t, ok)
	return model, cmd
}

func TestModel_Submit(t *testing.T) {
	t.Parallel()

	completer := &mock.Completer{
		StreamFn: func(_ context.Context, _ supernova.Request) (supernova.Stream, error) {
			return mock.Fragments([]string{"Hello"}, nil), nil
		},
	}
	m, _, store := newModel(t, completer)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m.Input.SetValue("oi")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.Sending())

	// The command runs the exchange to its terminal state.
	msg := cmd()
	require.IsType(t, bt.SendDoneMsg{}, msg)

	cur, ok := store.Current()
	require.True(t, ok)
	require.Len(t, cur.Messages, 2)
	assert.Equal(t, "oi", cur.Messages[0].Content)
	assert.Equal(t, "Hello", cur.Messages[1].Content)

	m, _ = update(t, m, msg)
	assert.False(t, m.Sending())
}

func TestModel_SubmitEmptyInputIsNoop(t *testing.T) {
	t.Parallel()

	completer := &mock.Completer{
		StreamFn: func(_ context.Context, _ supernova.Request) (supernova.Stream, error) {
			t.Fatal("completer should not be called")
			return nil, nil
		},
	}
	m, _, store := newModel(t, completer)

	m.Input.SetValue("   ")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, m.Sending())

	cur, _ := store.Current()
	assert.Empty(t, cur.Messages)
}

func TestModel_NewSession(t *testing.T) {
	t.Parallel()

	m, _, store := newModel(t, &mock.Completer{})
	first := store.CurrentID()

	m.Input.SetValue("draft")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})

	assert.NotEqual(t, first, store.CurrentID())
	assert.Len(t, store.Sessions(), 2)
	assert.Empty(t, m.Input.Value())
}

func TestModel_CycleSessions(t *testing.T) {
	t.Parallel()

	m, engine, store := newModel(t, &mock.Completer{})
	first := store.CurrentID()
	second := engine.NewSession(context.Background())
	require.Equal(t, second.ID, store.CurrentID())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	assert.Equal(t, first, store.CurrentID())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	assert.Equal(t, second.ID, store.CurrentID())
}

func TestModel_DeleteSession(t *testing.T) {
	t.Parallel()

	m, engine, store := newModel(t, &mock.Completer{})
	engine.NewSession(context.Background())
	require.Len(t, store.Sessions(), 2)

	_, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	assert.Len(t, store.Sessions(), 1)
}

func TestModel_CycleModelSkipsPremium(t *testing.T) {
	t.Parallel()

	m, engine, _ := newModel(t, &mock.Completer{})
	require.Equal(t, supernova.DefaultModel, engine.Model())

	// From the default, every model until gpt-3 is premium-gated.
	_, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	assert.Equal(t, supernova.ModelGPT3, engine.Model())
}

func TestModel_CycleModelWithPremium(t *testing.T) {
	t.Parallel()

	m, engine, _ := newModel(t, &mock.Completer{})
	require.NoError(t, engine.GrantPremium(context.Background()))
	require.Equal(t, supernova.ModelGemini3Pro, engine.Model())

	// With entitlement the cycle follows picker order directly.
	_, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	assert.Equal(t, supernova.ModelGemini25Pro, engine.Model())
}

func TestModel_ViewBeforeReady(t *testing.T) {
	t.Parallel()

	m, _, _ := newModel(t, &mock.Completer{})
	assert.NotEmpty(t, m.View())
}

func TestModel_ViewShowsConversation(t *testing.T) {
	t.Parallel()

	completer := &mock.Completer{
		StreamFn: func(_ context.Context, _ supernova.Request) (supernova.Stream, error) {
			return mock.Fragments([]string{"resposta pronta"}, nil), nil
		},
	}
	m, engine, _ := newModel(t, completer)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	engine.SetInput("pergunta")
	engine.Send(context.Background())
	m, _ = update(t, m, bt.UpdateMsg{})

	view := m.View()
	assert.Contains(t, view, "pergunta")
	assert.Contains(t, view, "resposta pronta")
	assert.Contains(t, view, "Supernova")
}
