package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/matjam/photoframe"
	"github.com/matjam/photoframe/internal/cli/cmd"
	"github.com/matjam/photoframe/internal/cli/cmd/utils"
	"github.com/matjam/photoframe/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "photoframe",
	Short: "A picture frame with a clock",
	Long: `Photoframe shows a rotating set of pictures with a clock on top,
using OpenGL for hardware acceleration.`,
	Run: func(c *cobra.Command, args []string) {
		if viper.GetBool("debug") {
			log.SetLevel(log.DebugLevel)
		}

		if v, err := c.Flags().GetBool("installconfig"); err == nil && v {
			utils.InstallDefaultConfig()
			return
		}

		if v, err := c.Flags().GetBool("show-config"); err == nil && v {
			log.Infof("Using config file: %v", viper.ConfigFileUsed())
			log.Infof("All settings:")
			utils.PrintJSONColored(viper.AllSettings())
			return
		}

		babyBlue := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
		green := lipgloss.NewStyle().Foreground(lipgloss.Color("76"))
		if v, err := c.Flags().GetBool("version"); err == nil && v {
			log.Infof("%v version %v",
				babyBlue.Render("photoframe"),
				green.Render(strings.Trim(photoframe.Version, "\n\r ")))
			return
		}

		cfg, err := config.FromViper(viper.GetViper())
		if err != nil {
			log.Fatalf("%v", err)
		}

		if err := startDisplay(c, cfg); err != nil {
			log.Fatalf("%v", err)
		}
	},
}

// startDisplay runs the display, detaching first when --background is set.
// It returns only after everything it started has been released.
func startDisplay(c *cobra.Command, cfg *config.Config) error {
	if v, err := c.Flags().GetBool("background"); err == nil && v {
		dctx, parent, err := cmd.Daemonize()
		if err != nil {
			return fmt.Errorf("failed to start in the background: %w", err)
		}
		if parent {
			return nil
		}
		defer dctx.Release()
	}

	return cmd.StartDisplay(cfg)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	log.SetReportTimestamp(true)

	RegisterFlags(rootCmd)

	rootCmd.AddCommand(
		cmd.NewStatusCmd(),
		cmd.NewNextCmd(),
		cmd.NewStopCmd(),
		cmd.NewGenManCmd(rootCmd),
	)
}
