package tui

import (
	"context"
	"testing"

	"github.com/bornholm/scoops/pkg/shop"
	"github.com/bornholm/scoops/pkg/view"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	shops   []shop.Shop
	reviews map[string][]shop.Review
}

func (c *stubClient) Shops(ctx context.Context, location string) ([]shop.Shop, error) {
	if location == "Nowhere" {
		return nil, errors.New("unknown location")
	}
	return c.shops, nil
}

func (c *stubClient) Reviews(ctx context.Context, shopID string) ([]shop.Review, error) {
	return c.reviews[shopID], nil
}

func newTestModel(t *testing.T) (Model, *view.Controller) {
	t.Helper()

	client := &stubClient{
		shops: []shop.Shop{
			{ID: "s1", Name: "Cold Stone", Rating: 4},
			{ID: "s2", Name: "Jeni's", Rating: 4.5},
		},
		reviews: map[string][]shop.Review{
			"s1": {{ID: "r1", User: shop.User{Name: "Ann"}, Rating: 5, Text: "Great!"}},
			"s2": {{ID: "r2", User: shop.User{Name: "Bob"}, Rating: 2, Text: "Meh"}},
		},
	}

	changes, onChange := view.ChangeEventChannel()
	controller := view.NewController(client, view.WithChangeCallback(onChange))

	model := NewModel(context.Background(), controller, changes, view.DefaultCity)

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 200})

	return updated.(Model), controller
}

// run executes the command returned by an update and feeds its message
// back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()

	require.NotNil(t, cmd)

	updated, _ := m.Update(cmd())

	return updated.(Model)
}

func TestModelSearchAndToggle(t *testing.T) {
	model, _ := newTestModel(t)

	model = run(t, model, model.search(view.DefaultCity))

	require.Len(t, model.State().Shops, 2)
	assert.False(t, model.State().Loading)
	assert.Equal(t, 0, model.Selected())
	assert.Contains(t, model.View(), "Cold Stone")

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model = updated.(Model)
	assert.Equal(t, 1, model.Selected())

	updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = run(t, updated.(Model), cmd)

	assert.Equal(t, "s2", model.State().ExpandedShopID)
	assert.Contains(t, model.View(), "Meh")

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyUp})
	model = updated.(Model)

	updated, cmd = model.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	model = run(t, updated.(Model), cmd)

	assert.Equal(t, "s1", model.State().ExpandedShopID)
	assert.Contains(t, model.View(), "Great!")
	assert.NotContains(t, model.View(), "Meh")

	updated, cmd = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = run(t, updated.(Model), cmd)

	assert.Empty(t, model.State().ExpandedShopID)
	assert.Empty(t, model.State().Reviews)
	assert.NotContains(t, model.View(), "Great!")
}

func TestModelSearchInput(t *testing.T) {
	model, _ := newTestModel(t)

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	model = updated.(Model)
	require.True(t, model.input.Focused())

	model.input.SetValue("   ")

	updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = run(t, updated.(Model), cmd)

	assert.False(t, model.input.Focused())
	assert.Equal(t, view.DefaultCity, model.State().City)
	assert.Len(t, model.State().Shops, 2)
}

func TestModelSearchFailureKeepsShops(t *testing.T) {
	model, _ := newTestModel(t)

	model = run(t, model, model.search(view.DefaultCity))
	model = run(t, model, model.search("Nowhere"))

	assert.Equal(t, "Nowhere", model.State().City)
	assert.Len(t, model.State().Shops, 2)
	assert.False(t, model.State().Loading)
}

func TestModelStateChanges(t *testing.T) {
	model, controller := newTestModel(t)

	require.NoError(t, controller.Search(context.Background(), "Alpharetta"))

	// Drain the change channel as the program would
	for len(model.changes) > 0 {
		msg := model.waitForChange()()
		updated, cmd := model.Update(msg)
		model = updated.(Model)
		assert.NotNil(t, cmd)
	}

	assert.Len(t, model.State().Shops, 2)
	assert.False(t, model.State().Loading)
}

func TestModelQuit(t *testing.T) {
	model, _ := newTestModel(t)

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)

	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}
