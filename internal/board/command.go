package board

import (
	"context"

	"github.com/idilsaglam/todo/internal/itemsvc"
)

// Command is a piece of remote work requested by Update.
type Command interface{ isCommand() }

// FetchItems asks for the whole list.
type FetchItems struct{ Epoch int }

// CreateItem asks the server to create an item named Name.
type CreateItem struct {
	Epoch int
	Name  string
}

func (FetchItems) isCommand() {}
func (CreateItem) isCommand() {}

// Execute runs cmd against svc and returns the matching result event.
// It never drops an outcome: errors travel inside the event.
func Execute(ctx context.Context, svc itemsvc.Service, cmd Command) Event {
	switch c := cmd.(type) {
	case FetchItems:
		items, err := svc.FetchItems(ctx)
		return ItemsFetched{Epoch: c.Epoch, Items: items, Err: err}
	case CreateItem:
		it, err := svc.CreateItem(ctx, c.Name)
		return ItemCreated{Epoch: c.Epoch, Name: c.Name, Item: it, Err: err}
	}
	return nil
}
