package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/sevlyar/go-daemon"
)

// backgroundEnv is set in the environment of the daemonized child.
const backgroundEnv = "BACKGROUND_PROCESS"

// Daemonize re-executes the current command as a detached child. In the
// parent it returns parent=true and the caller should exit; in the child it
// returns the context to Release on shutdown.
func Daemonize() (dctx *daemon.Context, parent bool, err error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, false, fmt.Errorf("get working directory: %w", err)
	}

	dctx = &daemon.Context{
		WorkDir: wd,
		Umask:   027,
		Env:     append(os.Environ(), backgroundEnv+"=1"),
	}

	child, err := dctx.Reborn()
	if err != nil {
		return nil, false, fmt.Errorf("daemonize: %w", err)
	}
	if child != nil {
		log.Infof("photoframe started in the background with PID %d", child.Pid)
		return dctx, true, nil
	}
	return dctx, false, nil
}
