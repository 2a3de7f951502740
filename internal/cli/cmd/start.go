package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/matjam/photoframe/internal/cli/cmd/utils"
	"github.com/matjam/photoframe/internal/config"
	"github.com/matjam/photoframe/internal/display"
	"github.com/matjam/photoframe/internal/gpu"
	"github.com/matjam/photoframe/internal/gpu/glgpu"
	"github.com/matjam/photoframe/internal/ipc"
	"github.com/matjam/photoframe/internal/overlay"
	"github.com/matjam/photoframe/internal/picture"
	"github.com/matjam/photoframe/internal/pictures"
	"github.com/matjam/photoframe/internal/renderer"
	"github.com/matjam/photoframe/internal/window/glfwwindow"
)

// StartDisplay loads the pictures, opens the window and runs the display
// loop until the window is closed or a stop is requested. It must run on the
// main OS thread. The window and control socket are released before it
// returns, so the caller can exit on a returned error.
func StartDisplay(cfg *config.Config) error {
	log.Infof("StartDisplay() started in PID: %d", os.Getpid())

	if os.Getenv(backgroundEnv) == "1" {
		setupRotatingLogger(cfg.Debug)
	}

	if _, err := ipc.SendStatus(); err == nil {
		log.Infof("photoframe is already running, exiting")
		return nil
	}

	dir := utils.CanonicalPath(cfg.PicturePath)
	log.Infof("Loading pictures from %s ...", dir)
	set, err := pictures.Load(dir, cfg.PictureWidth, cfg.PictureHeight, cfg.Fit())
	if err != nil {
		return fmt.Errorf("loading pictures: %w", err)
	}

	win, err := glfwwindow.New(glfwwindow.Options{
		Title:      cfg.Title,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Fullscreen: cfg.Fullscreen,
		HideCursor: cfg.Fullscreen,
	})
	if err != nil {
		return fmt.Errorf("opening window: %w", err)
	}
	defer win.Destroy()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r, err := renderer.New(ctx, glgpu.NewInstance(), win, cfg.PictureWidth, cfg.PictureHeight,
		renderer.WithPictureLayer(pictureLayer(cfg)),
		renderer.WithTextLayer(textLayer(cfg)),
	)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	log.Infof("Surface %dx%d %v", r.Config().Width, r.Config().Height, r.Config().Format)

	driver, err := display.NewDriver(r, win, set, display.Config{
		RedrawInterval:   cfg.RedrawInterval(),
		RotationInterval: cfg.RotationInterval(),
	})
	if err != nil {
		r.Release()
		return fmt.Errorf("creating display: %w", err)
	}

	log.Infof("Running with %d pictures", set.Len())
	if err := runWithControl(ctx, driver, ipc.NewServer(driver, ipc.SocketPath())); err != nil {
		return err
	}
	log.Infof("photoframe exited")
	return nil
}

type loop interface {
	Run(ctx context.Context) error
}

type controlServer interface {
	Serve() error
	Close() error
}

// runWithControl serves the control socket for as long as the loop runs and
// closes it once the loop returns, whatever the outcome.
func runWithControl(ctx context.Context, l loop, server controlServer) error {
	go func() {
		log.Infof("Starting socket server")
		if err := server.Serve(); err != nil {
			log.Errorf("Control socket unavailable: %v", err)
		}
	}()
	defer func() {
		if err := server.Close(); err != nil {
			log.Warnf("Closing control socket: %v", err)
		}
	}()

	if err := l.Run(ctx); err != nil {
		return fmt.Errorf("display stopped: %w", err)
	}
	return nil
}

func pictureLayer(cfg *config.Config) renderer.PictureLayerFunc {
	return func(device gpu.Device, format gpu.TextureFormat, width, height int) (renderer.PictureLayer, error) {
		l, err := picture.New(device, format, width, height, cfg.Scale())
		if err != nil {
			return nil, err
		}
		return l, nil
	}
}

func textLayer(cfg *config.Config) renderer.TextLayerFunc {
	return func(device gpu.Device, format gpu.TextureFormat, width, height int) (renderer.TextLayer, error) {
		col, err := cfg.OverlayColor()
		if err != nil {
			return nil, err
		}
		l, err := overlay.New(device, format, width, height, overlay.Options{
			Format:   cfg.Overlay.Format,
			FontSize: cfg.Overlay.FontSize,
			Color:    col,
			Shadow:   cfg.Overlay.Shadow,
		})
		if err != nil {
			return nil, err
		}
		return l, nil
	}
}

func setupRotatingLogger(debug bool) {
	home := os.Getenv("HOME")
	logDir := filepath.Join(home, ".local", "share", "photoframe")
	logPath := filepath.Join(logDir, "photoframe.log")

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Fatalf("failed to create log directory: %v", err)
	}

	writer, err := rotatelogs.New(
		logPath+".%Y%m%d%H%M",
		rotatelogs.WithLinkName(logPath),
		rotatelogs.WithMaxAge(7*24*time.Hour),
		rotatelogs.WithRotationSize(10*1024*1024),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		log.Fatalf("failed to configure log rotation: %v", err)
	}

	log.SetOutput(writer)
	if debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}
