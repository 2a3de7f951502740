package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

func RegisterFlags(rootCmd *cobra.Command) {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/photoframe/photoframe.toml)")
	pf.BoolP("installconfig", "i", false, "Install a default config file")
	pf.Bool("show-config", false, "Dump resolved config")
	pf.BoolP("background", "b", false, "Run as a daemon")
	pf.BoolP("debug", "d", false, "Enable debug logging")
	pf.BoolP("version", "v", false, "Print version")
	pf.BoolP("help", "h", false, "Print usage")

	f := rootCmd.Flags()
	f.Int("update-interval", 1000, "Milliseconds between redraws")
	f.Int("width", 800, "Window width")
	f.Int("height", 480, "Window height")
	f.Bool("fullscreen", false, "Cover the primary monitor")
	f.Int("picture-width", 800, "Width every picture is resized to")
	f.Int("picture-height", 480, "Height every picture is resized to")
	f.StringP("picture-path", "p", "pictures", "Directory to load pictures from")
	f.Int("picture-interval", 3600, "Seconds between picture changes")
	f.String("fit-mode", "fill", "How pictures are resized when loaded")
	f.String("scale-mode", "stretched", "How the picture is placed in the window")

	bind := map[string]string{
		"debug":            "debug",
		"update_interval":  "update-interval",
		"width":            "width",
		"height":           "height",
		"fullscreen":       "fullscreen",
		"picture_width":    "picture-width",
		"picture_height":   "picture-height",
		"picture_path":     "picture-path",
		"picture_interval": "picture-interval",
		"fit_mode":         "fit-mode",
		"scale_mode":       "scale-mode",
	}
	for key, name := range bind {
		flag := f.Lookup(name)
		if flag == nil {
			flag = pf.Lookup(name)
		}
		_ = viper.BindPFlag(key, flag)
	}
}
