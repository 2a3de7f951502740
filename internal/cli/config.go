package cli

import (
	"errors"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/matjam/photoframe/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("photoframe")
		viper.SetConfigType("toml")
		viper.AddConfigPath("$HOME/.config/photoframe")
		viper.AddConfigPath("/etc/xdg/photoframe")
	}

	config.SetDefaults(viper.GetViper())

	viper.SetEnvPrefix("photoframe")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv() // read environment variables that match

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		log.Debug("no config file found, using defaults")
		return
	}
	cobra.CheckErr(err)
}
