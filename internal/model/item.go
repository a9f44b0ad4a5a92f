package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Item is the domain model for a todo entry.
// The server assigns ID; the client never changes an item once it has one.
type Item struct {
	ID   ItemID `json:"id"`
	Name string `json:"name"`
}

// ItemID is an opaque server-assigned identifier. Servers send either a
// JSON number or a JSON string; both are kept in their textual form and
// re-encoded the way they arrived.
type ItemID struct {
	raw     string
	numeric bool
}

// NumericID builds an ID that encodes as a JSON number.
func NumericID(n int64) ItemID {
	return ItemID{raw: strconv.FormatInt(n, 10), numeric: true}
}

// StringID builds an ID that encodes as a JSON string.
func StringID(s string) ItemID { return ItemID{raw: s} }

func (id ItemID) String() string { return id.raw }

// IsZero reports whether the server never set an id.
func (id ItemID) IsZero() bool { return id.raw == "" }

func (id ItemID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.raw), nil
	}
	return json.Marshal(id.raw)
}

func (id *ItemID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*id = ItemID{}
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("item id: %w", err)
		}
		*id = StringID(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("item id: %w", err)
		}
		*id = ItemID{raw: n.String(), numeric: true}
		return nil
	}
}
