package collector

import "context"

// PayloadKind tells the collector how to turn a payload into a record.
type PayloadKind int

const (
	// PayloadMarkup is the raw source page.
	PayloadMarkup PayloadKind = iota
	// PayloadRecord is an already normalized JSON document.
	PayloadRecord
)

func (k PayloadKind) String() string {
	if k == PayloadRecord {
		return "record"
	}
	return "markup"
}

// Payload is what a successful route attempt returns.
type Payload struct {
	Route  string
	Kind   PayloadKind
	Status int
	Body   []byte
}

// Route is one way of acquiring the source data.
type Route interface {
	Attempt(ctx context.Context) (*Payload, error)
	Name() string
}
