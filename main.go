//go:build !js

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrogolib/log"

	"gochip8/pkg/config"
	"gochip8/pkg/cpu"
	"gochip8/pkg/driver"
	"gochip8/pkg/peripherals"
	"gochip8/pkg/rom"
	"gochip8/pkg/video"
)

// main runs a ROM without a window for a fixed number of frames, which is
// useful for scripted checks of test ROMs.
func main() {
	opts, err := config.ParseFlags("chip8-run", config.Headless, os.Args[1:])
	if err != nil {
		var usageErr *config.UsageError
		if errors.As(err, &usageErr) {
			usageErr.ShowUsage(os.Stdout)
			os.Exit(1)
		}
		config.CreateLogger(opts.Debug, opts.Quiet).Fatal(err.Error())
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	if err := runHeadless(opts, logger, os.Stdout); err != nil {
		logger.Error("Run failed", err)
		os.Exit(1)
	}
}

// runHeadless executes opts.Frames frames as fast as possible, then writes
// the requested artifacts and a one line summary to out. Artifacts are still
// written when the machine halts with an error.
func runHeadless(opts config.Options, logger *log.Logger, out io.Writer) (rerr error) {
	program, err := rom.Load(opts.ROM)
	if err != nil {
		return err
	}
	machineOpts, err := opts.MachineOptions()
	if err != nil {
		return err
	}
	m := cpu.New(machineOpts...)
	if err := m.Load(program.Data); err != nil {
		return err
	}
	logger.Info("ROM loaded", log.String("path", program.Path), log.Int("size", len(program.Data)))

	emu, err := driver.New(m, opts.Driver(), logger)
	if err != nil {
		return err
	}

	if opts.Wav != "" {
		rec, err := peripherals.CreateWavFile(opts.Wav, peripherals.DefaultSampleRate, opts.FrameRate)
		if err != nil {
			return err
		}
		emu.Attach(rec)
		defer func() {
			if err := rec.Close(); err != nil && rerr == nil {
				rerr = err
			}
			logger.Info("Audio written", log.String("path", opts.Wav), log.Int("samples", rec.Samples()))
		}()
	}

	var runErr error
	for i := 0; i < opts.Frames; i++ {
		if runErr = emu.Frame(); runErr != nil {
			break
		}
	}

	if opts.Screenshot != "" {
		palette, err := opts.Palette()
		if err != nil {
			return err
		}
		if err := video.SaveScreenshot(opts.Screenshot, m.Display(), palette, max(opts.Scale, 1)); err != nil {
			return err
		}
		logger.Info("Screenshot written", log.String("path", opts.Screenshot))
	}

	fmt.Fprintf(out, "run complete (%s): frames=%d cycles=%d PC=0x%03X I=0x%03X state=%s\n",
		program.Name, emu.Frames(), m.Cycles(), m.PC(), m.Index(), m.State())
	return runErr
}
