package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/matjam/photoframe/internal/cli/cmd/utils"
	"github.com/matjam/photoframe/internal/ipc"
	"github.com/spf13/cobra"
)

func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get photoframe status",
		Long:  `Returns the current status of the running photoframe process.`,
		Run: func(cmd *cobra.Command, args []string) {
			response, err := ipc.SendStatus()
			if err != nil {
				log.Fatalf("photoframe is not running: %v", err)
			}

			utils.PrintJSONColored(response)
		},
	}
}
