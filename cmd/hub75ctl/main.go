package main

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/host/v3"

	"github.com/coreman2200/hub75ctl/internal/config"
	"github.com/coreman2200/hub75ctl/internal/controller"
	"github.com/coreman2200/hub75ctl/internal/hub75"
	"github.com/coreman2200/hub75ctl/internal/pattern"
	"github.com/coreman2200/hub75ctl/internal/ws"
)

func main() {
	// ---- Flags (config.yaml can override most) ----
	var (
		width      = flag.Int("x", 64, "total image width in pixels")
		height     = flag.Int("y", 32, "total image height in pixels")
		panelW     = flag.Int("w", 0, "single panel width (default: image width)")
		panelH     = flag.Int("h", 0, "single panel height (default: image height)")
		brightness = flag.Int("b", 50, "brightness 0-254")
		fps        = flag.Int("f", 60, "driver target fps")
		backend    = flag.String("driver", "sim", "driver backend: gpio | strip | sim")
		order      = flag.String("order", "RGB", "panel pixel order: RGB | RBG | BGR")
		mapper     = flag.String("mapper", "u", "image mapper: u | mirror | flip | mirror_flip")
		addr       = flag.String("addr", ":8080", "HTTP listen address (preview/diag)")
		patName    = flag.String("pattern", "rainbow", "startup pattern: rainbow | gradient | rgb_channels | index_sweep | none")
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	// ---- Load config.yaml (optional) ----
	var cfg *config.Config
	if c, err := config.Load(*configPath); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
	} else {
		cfg = c
	}

	drvCfg := hub75.Config{
		Backend:     hub75.Backend(*backend),
		Width:       *width,
		Height:      *height,
		PanelWidth:  *panelW,
		PanelHeight: *panelH,
		Brightness:  *brightness,
		FPS:         *fps,
		PixelOrder:  *order,
		ImageMapper: *mapper,
	}
	eAddr := *addr
	ePattern := *patName
	var eTick time.Duration
	if cfg != nil {
		if cfg.Driver.Width > 0 {
			drvCfg = cfg.Driver
		}
		if cfg.Addr != "" {
			eAddr = cfg.Addr
		}
		if cfg.Pattern != "" {
			ePattern = cfg.Pattern
		}
		eTick = cfg.Tick()
	}

	if _, err := host.Init(); err != nil {
		log.Warn().Err(err).Msg("periph host init failed; hardware backends unavailable")
	}

	opts := []controller.Option{controller.WithLogger(log.Logger)}
	if eTick > 0 {
		opts = append(opts, controller.WithTick(eTick))
	}

	// ---- Preview / diagnostics server ----
	var srv *ws.Server
	if eAddr != "" {
		srv = ws.NewServer()
		opts = append(opts, controller.WithFrameSink(srv.FrameSink), controller.WithObserver(srv.PushDiag))
	}

	ctl, err := controller.New(drvCfg, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("bad panel configuration")
	}
	defer ctl.Close()

	if srv != nil {
		srv.Attach(ctl)
		mux := http.NewServeMux()
		srv.Routes(mux)
		go func() {
			log.Info().Str("addr", eAddr).Msg("http server listening")
			if err := http.ListenAndServe(eAddr, mux); err != nil {
				log.Error().Err(err).Msg("http server exited")
			}
		}()
	}

	if err := ctl.Start(); err != nil {
		log.Fatal().Err(err).Msg("controller start failed")
	}
	log.Info().Str("backend", string(drvCfg.Backend)).
		Int("width", ctl.Width()).Int("height", ctl.Height()).Msg("panel running")

	// ---- Startup pattern ----
	stopPattern := make(chan struct{})
	if ePattern != "" && ePattern != "none" {
		run := pattern.NewRunner(pattern.Kind(ePattern), ctl.Width(), ctl.Height())
		go func() {
			frame := make([]byte, ctl.Width()*ctl.Height()*3)
			tick := time.NewTicker(50 * time.Millisecond)
			defer tick.Stop()
			for {
				select {
				case <-stopPattern:
					return
				case <-tick.C:
					if !run.Step(frame) {
						return
					}
					if err := ctl.SetFrame(frame); err != nil {
						log.Warn().Err(err).Msg("pattern frame rejected")
						return
					}
				}
			}
		}()
	}

	// ---- Shutdown on signal ----
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	got := <-sig
	log.Info().Str("signal", got.String()).Msg("shutting down")
	close(stopPattern)
	ctl.Stop()
	ctl.Clear() // leave the panel dark
}
