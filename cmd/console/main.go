//go:build linux || darwin

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/retroenv/retrogolib/log"
	"golang.org/x/sync/errgroup"

	"gochip8/pkg/config"
	"gochip8/pkg/cpu"
	"gochip8/pkg/driver"
	"gochip8/pkg/rom"
)

const pollTimeoutMs = 50

func main() {
	opts, err := config.ParseFlags("chip8-console", config.Console, os.Args[1:])
	if err != nil {
		var usageErr *config.UsageError
		if errors.As(err, &usageErr) {
			usageErr.ShowUsage(os.Stdout)
			os.Exit(1)
		}
		config.CreateLogger(opts.Debug, opts.Quiet).Fatal(err.Error())
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	if err := run(opts, logger); err != nil {
		logger.Error("Emulation failed", err)
		os.Exit(1)
	}
}

func run(opts config.Options, logger *log.Logger) error {
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

	layout, err := opts.Layout()
	if err != nil {
		return err
	}
	palette, err := opts.Palette()
	if err != nil {
		return err
	}

	term, err := newTerminal(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	w, h := m.Display().Size()
	if cols, rows, err := term.size(); err == nil && (cols < w || rows < h/2) {
		logger.Warn("Terminal is smaller than the display",
			log.Int("columns", cols), log.Int("rows", rows),
			log.Int("needed_columns", w), log.Int("needed_rows", h/2))
	}

	// The raw terminal cannot show log lines, so the driver only reports
	// problems once the screen is taken over.
	emu, err := driver.New(m, opts.Driver(), config.CreateLogger(false, true))
	if err != nil {
		return err
	}

	if err := term.raw(); err != nil {
		return err
	}
	defer func() {
		if err := term.restore(); err != nil {
			logger.Error("Restoring terminal failed", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		buf := make([]byte, 64)
		for ctx.Err() == nil {
			n, err := term.poll(buf, pollTimeoutMs)
			if err != nil {
				return err
			}
			if err := handleInput(buf[:n], layout, emu); err != nil {
				return err
			}
		}
		return nil
	})

	screen := newRenderer(os.Stdout, palette)
	g.Go(func() error {
		return emu.Run(ctx, func(m *cpu.Machine) error {
			return screen.render(m.Display())
		})
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	return nil
}
