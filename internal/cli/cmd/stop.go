package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/matjam/photoframe/internal/ipc"
	"github.com/spf13/cobra"
)

// NewStopCmd returns the command that asks a running photoframe to close its
// window. The frame finishes the event it is handling, releases the GPU
// surface and removes its control socket before exiting.
func NewStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Close the window of the running photoframe",
		Long: `Queues a stop on the control socket of the running photoframe. The
display loop picks it up before its next wait and exits cleanly.`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := ipc.SendStop(); err != nil {
				log.Fatalf("No photoframe to stop at %s: %v", ipc.SocketPath(), err)
			}
			log.Info("Stop queued, the frame will close shortly")
		},
	}
}
