// panelsim exercises the render controller headlessly against a counting
// driver: run a pattern for a while, report submit counts and measured fps.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/hub75ctl/internal/controller"
	"github.com/coreman2200/hub75ctl/internal/driver/fake"
	"github.com/coreman2200/hub75ctl/internal/hub75"
	"github.com/coreman2200/hub75ctl/internal/pattern"
)

func main() {
	var (
		width    = flag.Int("x", 64, "image width")
		height   = flag.Int("y", 32, "image height")
		patName  = flag.String("pattern", "rainbow", "pattern to run")
		duration = flag.Duration("for", 2*time.Second, "how long to run")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	drv := fake.New(*width, *height)
	ctl, err := controller.New(
		hub75.Config{Width: *width, Height: *height},
		controller.WithDriver(drv),
		controller.WithLogger(log.Logger),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("bad panel configuration")
	}
	defer ctl.Close()

	if err := ctl.Start(); err != nil {
		log.Fatal().Err(err).Msg("start failed")
	}

	run := pattern.NewRunner(pattern.Kind(*patName), *width, *height)
	frame := make([]byte, (*width)*(*height)*3)
	deadline := time.Now().Add(*duration)
	for time.Now().Before(deadline) {
		if !run.Step(frame) {
			break
		}
		if err := ctl.SetFrame(frame); err != nil {
			log.Fatal().Err(err).Msg("set frame failed")
		}
		time.Sleep(33 * time.Millisecond)
	}

	ctl.Stop()
	log.Info().Int("submits", drv.Submits()).Float64("fps", ctl.FPS()).
		Msg("simulation complete")
}
