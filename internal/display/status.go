package display

import (
	"errors"
	"time"
)

var ErrCommandQueueFull = errors.New("command queue is full")

type State int

const (
	StateInit State = iota
	StateWaiting
	StateTerminal
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateWaiting:
		return "waiting"
	case StateTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

type CommandType string

const (
	CommandStop CommandType = "stop"
	CommandNext CommandType = "next"
)

// Command is a control request handled on the loop thread.
type Command struct {
	Type CommandType `json:"type"`
}

// Status is a point in time snapshot of the driver, safe to hand to other
// goroutines.
type Status struct {
	State    string    `json:"state"`
	Picture  string    `json:"picture"`
	Pictures int       `json:"pictures"`
	Swaps    int       `json:"swaps"`
	Frames   int       `json:"frames"`
	LastSwap time.Time `json:"last_swap"`
	NextSwap time.Time `json:"next_swap"`
	Width    int       `json:"width"`
	Height   int       `json:"height"`
}
