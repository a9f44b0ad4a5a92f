package board

import (
	"slices"

	"github.com/idilsaglam/todo/internal/itemsvc"
)

// Update applies ev to s and returns the next state plus any commands to run.
// It never mutates s; Items slices are copied before appending.
func Update(s State, ev Event) (State, []Command) {
	switch e := ev.(type) {
	case Mounted:
		s.Mounted = true
		s.Epoch++
		s.Fetching = true
		s.Creating = 0
		return s, []Command{FetchItems{Epoch: s.Epoch}}

	case Unmounted:
		s.Mounted = false
		s.Fetching = false
		s.Creating = 0
		return s, nil

	case DraftChanged:
		s.Draft = e.Text
		return s, nil

	case SubmitRequested:
		if !s.CanSubmit() {
			return s, nil
		}
		s.Creating++
		return s, []Command{CreateItem{Epoch: s.Epoch, Name: s.Draft}}

	case FailureDismissed:
		s.Failure = nil
		return s, nil

	case ItemsFetched:
		if !s.current(e.Epoch) {
			return s, nil
		}
		s.Fetching = false
		if e.Err != nil {
			s.Failure = failure(OpFetch, e.Err)
			return s, nil
		}
		s.Items = slices.Clone(e.Items)
		s.Loaded = true
		s.Failure = nil
		return s, nil

	case ItemCreated:
		if !s.current(e.Epoch) {
			return s, nil
		}
		if s.Creating > 0 {
			s.Creating--
		}
		if e.Err != nil {
			s.Failure = failure(OpCreate, e.Err)
			return s, nil
		}
		s.Items = append(slices.Clip(s.Items), e.Item)
		// Keep anything typed while the request was in flight.
		if s.Draft == e.Name {
			s.Draft = ""
		}
		s.Failure = nil
		return s, nil
	}
	return s, nil
}

func (s State) current(epoch int) bool {
	return s.Mounted && epoch == s.Epoch
}

func failure(op Op, err error) *Failure {
	return &Failure{Op: op, Kind: itemsvc.KindOf(err), Message: err.Error()}
}
