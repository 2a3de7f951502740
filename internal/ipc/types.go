package ipc

import "github.com/matjam/photoframe/internal/display"

// Controller is the side of the display loop the control server talks to.
// Both methods are called from server goroutines.
type Controller interface {
	Status() display.Status
	EnqueueCommand(display.Command) error
}

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type StatusResponse struct {
	Status  string         `json:"status"`
	Message string         `json:"message"`
	Version string         `json:"version"`
	PID     int            `json:"pid"`
	Socket  string         `json:"socket"`
	Config  string         `json:"config"`
	Display display.Status `json:"display"`
}
