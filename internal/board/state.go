// Package board holds the todo list view state and the pure reducer that
// drives it. Network work is described as Commands; their outcomes come
// back as Events, so every transition can be tested without a network or
// a render loop.
package board

import (
	"strings"

	"github.com/idilsaglam/todo/internal/itemsvc"
	"github.com/idilsaglam/todo/internal/model"
)

// Op names the remote operation a Failure came from.
type Op string

const (
	OpFetch  Op = "fetch"
	OpCreate Op = "create"
)

// Failure is the last remote operation that did not succeed.
type Failure struct {
	Op      Op
	Kind    itemsvc.Kind
	Message string
}

// State is everything the list view renders from.
type State struct {
	Items []model.Item
	Draft string

	Mounted  bool
	Epoch    int
	Fetching bool
	Creating int
	Loaded   bool
	Failure  *Failure
}

// Loading reports whether the initial list has not arrived yet.
func (s State) Loading() bool { return s.Fetching && !s.Loaded }

// CanSubmit reports whether SubmitRequested would issue a create.
func (s State) CanSubmit() bool { return s.Mounted && !IsBlank(s.Draft) }

// IsBlank is the only validation a draft gets.
func IsBlank(text string) bool { return strings.TrimSpace(text) == "" }

// Event is an input to Update.
type Event interface{ isEvent() }

// Mounted starts a view lifetime and requests the item list once.
type Mounted struct{}

// Unmounted ends the view lifetime; results still in flight are dropped.
type Unmounted struct{}

// DraftChanged replaces the draft verbatim.
type DraftChanged struct{ Text string }

// SubmitRequested asks to create an item from the current draft.
type SubmitRequested struct{}

// FailureDismissed clears the last failure.
type FailureDismissed struct{}

// ItemsFetched is the outcome of a FetchItems command.
type ItemsFetched struct {
	Epoch int
	Items []model.Item
	Err   error
}

// ItemCreated is the outcome of a CreateItem command.
type ItemCreated struct {
	Epoch int
	Name  string
	Item  model.Item
	Err   error
}

func (Mounted) isEvent()          {}
func (Unmounted) isEvent()        {}
func (DraftChanged) isEvent()     {}
func (SubmitRequested) isEvent()  {}
func (FailureDismissed) isEvent() {}
func (ItemsFetched) isEvent()     {}
func (ItemCreated) isEvent()      {}
