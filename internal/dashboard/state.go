package dashboard

import (
	"time"

	"BCVMonitor/internal/model"
)

// State is the controller's display state.
type State int

const (
	Idle State = iota
	Loading
	Displaying
	ErrorDisplayed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Displaying:
		return "displaying"
	case ErrorDisplayed:
		return "error"
	default:
		return "idle"
	}
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// View is a point-in-time copy of everything a page or chat needs to render.
type View struct {
	State       State         `json:"state"`
	Record      *model.Record `json:"record,omitempty"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Notice      string        `json:"notice,omitempty"`
	AutoRefresh bool          `json:"auto_refresh"`
	Loading     bool          `json:"loading"`
}

// NoticePrefix starts every failure notice shown to users.
const NoticePrefix = "Error al obtener los datos del BCV. "
