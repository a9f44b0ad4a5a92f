package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todo/internal/itemsvc"
	"github.com/idilsaglam/todo/internal/model"
)

func item(id int64, name string) model.Item {
	return model.Item{ID: model.NumericID(id), Name: name}
}

func names(items []model.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}

func mounted(t *testing.T) State {
	t.Helper()
	s, cmds := Update(State{}, Mounted{})
	require.Equal(t, []Command{FetchItems{Epoch: 1}}, cmds)
	return s
}

func TestUpdate_MountFetchesOnce(t *testing.T) {
	s := mounted(t)
	assert.True(t, s.Mounted)
	assert.True(t, s.Loading())

	s, cmds := Update(s, ItemsFetched{Epoch: 1, Items: []model.Item{item(1, "milk")}})
	assert.Empty(t, cmds)
	assert.Equal(t, []string{"milk"}, names(s.Items))
	assert.False(t, s.Loading())
	assert.True(t, s.Loaded)
}

func TestUpdate_FetchKeepsServerOrder(t *testing.T) {
	s := mounted(t)
	s, _ = Update(s, ItemsFetched{Epoch: 1, Items: []model.Item{item(3, "c"), item(1, "a"), item(2, "b")}})
	assert.Equal(t, []string{"c", "a", "b"}, names(s.Items))
}

func TestUpdate_FetchFailureLeavesItemsEmpty(t *testing.T) {
	s := mounted(t)
	s, cmds := Update(s, ItemsFetched{Epoch: 1, Err: itemsvc.ErrUnavailable})
	assert.Empty(t, cmds)
	assert.Empty(t, s.Items)
	assert.False(t, s.Fetching)
	require.NotNil(t, s.Failure)
	assert.Equal(t, OpFetch, s.Failure.Op)
	assert.Equal(t, itemsvc.KindUnavailable, s.Failure.Kind)
}

func TestUpdate_DraftIsVerbatim(t *testing.T) {
	s := mounted(t)
	for _, text := range []string{"e", "eg", "egg", " eggs  ", "\t"} {
		s, _ = Update(s, DraftChanged{Text: text})
		assert.Equal(t, text, s.Draft)
	}
}

func TestUpdate_BlankSubmitIsNoop(t *testing.T) {
	s := mounted(t)
	s, _ = Update(s, ItemsFetched{Epoch: 1, Items: []model.Item{item(1, "milk")}})
	s, _ = Update(s, DraftChanged{Text: "   "})

	next, cmds := Update(s, SubmitRequested{})
	assert.Empty(t, cmds)
	assert.Equal(t, s, next)
}

func TestUpdate_SubmitAppendsAndClearsDraft(t *testing.T) {
	s := mounted(t)
	s, _ = Update(s, ItemsFetched{Epoch: 1, Items: []model.Item{item(1, "milk")}})
	s, _ = Update(s, DraftChanged{Text: "eggs"})

	s, cmds := Update(s, SubmitRequested{})
	require.Equal(t, []Command{CreateItem{Epoch: 1, Name: "eggs"}}, cmds)
	assert.Equal(t, 1, s.Creating)

	s, _ = Update(s, ItemCreated{Epoch: 1, Name: "eggs", Item: item(2, "eggs")})
	assert.Equal(t, []model.Item{item(1, "milk"), item(2, "eggs")}, s.Items)
	assert.Equal(t, "", s.Draft)
	assert.Equal(t, 0, s.Creating)
}

func TestUpdate_SubmitSendsUntrimmedDraft(t *testing.T) {
	s := mounted(t)
	s, _ = Update(s, DraftChanged{Text: "  eggs "})
	_, cmds := Update(s, SubmitRequested{})
	assert.Equal(t, []Command{CreateItem{Epoch: 1, Name: "  eggs "}}, cmds)
}

func TestUpdate_SequentialSubmitsKeepOrder(t *testing.T) {
	s := mounted(t)
	s, _ = Update(s, ItemsFetched{Epoch: 1, Items: []model.Item{item(1, "milk")}})

	for i, name := range []string{"a", "b"} {
		s, _ = Update(s, DraftChanged{Text: name})
		var cmds []Command
		s, cmds = Update(s, SubmitRequested{})
		require.Len(t, cmds, 1)
		s, _ = Update(s, ItemCreated{Epoch: 1, Name: name, Item: item(int64(i+2), name)})
	}
	assert.Equal(t, []string{"milk", "a", "b"}, names(s.Items))
}

func TestUpdate_CreateFailureKeepsDraft(t *testing.T) {
	s := mounted(t)
	s, _ = Update(s, DraftChanged{Text: "eggs"})
	s, _ = Update(s, SubmitRequested{})

	s, _ = Update(s, ItemCreated{Epoch: 1, Name: "eggs", Err: &itemsvc.StatusError{Code: 500}})
	assert.Equal(t, "eggs", s.Draft)
	assert.Empty(t, s.Items)
	require.NotNil(t, s.Failure)
	assert.Equal(t, OpCreate, s.Failure.Op)
	assert.Equal(t, itemsvc.KindStatus, s.Failure.Kind)

	s, _ = Update(s, FailureDismissed{})
	assert.Nil(t, s.Failure)
}

func TestUpdate_DraftEditedDuringCreateIsKept(t *testing.T) {
	s := mounted(t)
	s, _ = Update(s, DraftChanged{Text: "a"})
	s, _ = Update(s, SubmitRequested{})
	s, _ = Update(s, DraftChanged{Text: "ab"})

	s, _ = Update(s, ItemCreated{Epoch: 1, Name: "a", Item: item(1, "a")})
	assert.Equal(t, "ab", s.Draft)
	assert.Equal(t, []string{"a"}, names(s.Items))
}

func TestUpdate_ResultsAfterUnmountAreDropped(t *testing.T) {
	s := mounted(t)
	s, _ = Update(s, DraftChanged{Text: "eggs"})
	s, _ = Update(s, SubmitRequested{})
	s, _ = Update(s, Unmounted{})

	before := s
	s, _ = Update(s, ItemsFetched{Epoch: 1, Items: []model.Item{item(1, "milk")}})
	s, _ = Update(s, ItemCreated{Epoch: 1, Name: "eggs", Item: item(2, "eggs")})
	assert.Equal(t, before, s)
}

func TestUpdate_StaleEpochIsDropped(t *testing.T) {
	s := mounted(t)
	s, _ = Update(s, Unmounted{})
	s, cmds := Update(s, Mounted{})
	require.Equal(t, []Command{FetchItems{Epoch: 2}}, cmds)

	s, _ = Update(s, ItemsFetched{Epoch: 1, Items: []model.Item{item(9, "old")}})
	assert.Empty(t, s.Items)
	assert.True(t, s.Fetching)

	s, _ = Update(s, ItemsFetched{Epoch: 2, Items: []model.Item{item(1, "new")}})
	assert.Equal(t, []string{"new"}, names(s.Items))
}

func TestUpdate_SubmitBeforeMountIsNoop(t *testing.T) {
	s, cmds := Update(State{Draft: "eggs"}, SubmitRequested{})
	assert.Empty(t, cmds)
	assert.Equal(t, 0, s.Creating)
}

func TestUpdate_DoesNotAliasPriorItems(t *testing.T) {
	fetched := make([]model.Item, 1, 4)
	fetched[0] = item(1, "milk")

	s := mounted(t)
	s, _ = Update(s, ItemsFetched{Epoch: 1, Items: fetched})
	prev := s
	s, _ = Update(s, DraftChanged{Text: "eggs"})
	s, _ = Update(s, SubmitRequested{})
	s, _ = Update(s, ItemCreated{Epoch: 1, Name: "eggs", Item: item(2, "eggs")})

	assert.Len(t, prev.Items, 1)
	assert.Len(t, s.Items, 2)
	assert.Equal(t, "milk", fetched[0].Name)
	assert.Equal(t, fetched[:1], prev.Items)
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank("   "))
	assert.True(t, IsBlank("\t\n"))
	assert.False(t, IsBlank(" a "))
}
