// Package config turns command line flags into the settings shared by the
// frontends.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"gochip8/pkg/cpu"
	"gochip8/pkg/driver"
	"gochip8/pkg/keymap"
	"gochip8/pkg/video"

	"github.com/retroenv/retrogolib/log"
)

// Frontend selects which frontend specific flags are registered.
type Frontend int

const (
	Desktop Frontend = iota
	Console
	Headless
)

// Options holds every setting that can be given on the command line.
type Options struct {
	ROM string

	InstructionsPerFrame int
	FrameRate            int
	Quirks               string
	Keys                 string

	Scale      int
	Foreground string
	Background string

	Debug bool
	Quiet bool

	// desktop
	Mute      bool
	StatsAddr string

	// console
	KeyHold int

	// headless
	Frames     int
	Screenshot string
	Wav        string
}

// CreateLogger returns a logger honouring the debug and quiet flags.
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// ParseFlags parses args, which excludes the program name. A missing ROM,
// a request for help or stray arguments after the ROM return a *UsageError.
func ParseFlags(name string, frontend Frontend, args []string) (Options, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	var opts Options
	readOptionFlags(flags, &opts, frontend)

	err := flags.Parse(args)
	rest := flags.Args()
	if err != nil {
		return opts, &UsageError{flags: flags, name: name, msg: err.Error()}
	}
	if len(rest) == 0 {
		return opts, &UsageError{flags: flags, name: name, msg: "no rom file given"}
	}
	if len(rest) > 1 {
		return opts, &UsageError{
			flags: flags,
			name:  name,
			msg:   fmt.Sprintf("argument %s found after rom file, please pass the rom file as last argument", rest[1]),
		}
	}
	opts.ROM = rest[0]

	if err := opts.validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *Options, frontend Frontend) {
	flags.IntVar(&opts.InstructionsPerFrame, "ipf", driver.DefaultInstructionsPerFrame, "instructions executed per frame")
	flags.IntVar(&opts.FrameRate, "hz", driver.DefaultFrameRate, "frames per second, the timer rate")
	flags.StringVar(&opts.Quirks, "quirks", "modern", "compatibility profile (modern/legacy)")
	flags.StringVar(&opts.Keys, "keys", keymap.Default.String(), "16 host keys for keypad keys 0 to F")
	flags.StringVar(&opts.Foreground, "fg", "#FFFFFF", "color of lit pixels as hex RGB")
	flags.StringVar(&opts.Background, "bg", "#000000", "color of dark pixels as hex RGB")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.Quiet, "q", false, "only log errors")

	switch frontend {
	case Desktop:
		flags.IntVar(&opts.Scale, "scale", 10, "window pixels per display pixel")
		flags.BoolVar(&opts.Mute, "mute", false, "disable the buzzer")
		flags.StringVar(&opts.StatsAddr, "stats", "", "serve runtime statistics on this address, for example localhost:18066")
	case Console:
		flags.IntVar(&opts.KeyHold, "hold", 6, "frames a key stays pressed after a key stroke")
	case Headless:
		flags.IntVar(&opts.Scale, "scale", 10, "screenshot pixels per display pixel")
		flags.IntVar(&opts.Frames, "frames", 600, "number of frames to run")
		flags.StringVar(&opts.Screenshot, "screenshot", "", "write the final screen to this PNG file")
		flags.StringVar(&opts.Wav, "wav", "", "record the buzzer to this WAV file")
	}
}

func (o Options) validate() error {
	if o.InstructionsPerFrame <= 0 {
		return fmt.Errorf("instructions per frame must be positive, got %d", o.InstructionsPerFrame)
	}
	if o.FrameRate <= 0 {
		return fmt.Errorf("frame rate must be positive, got %d", o.FrameRate)
	}
	if o.Frames < 0 || o.KeyHold < 0 || o.Scale < 0 {
		return errors.New("frames, hold and scale must not be negative")
	}
	if _, err := o.MachineOptions(); err != nil {
		return err
	}
	if _, err := o.Palette(); err != nil {
		return err
	}
	if _, err := o.Layout(); err != nil {
		return err
	}
	return nil
}

// MachineOptions returns the options for cpu.New.
func (o Options) MachineOptions() ([]cpu.Option, error) {
	q, err := cpu.ParseQuirks(o.Quirks)
	if err != nil {
		return nil, err
	}
	return []cpu.Option{cpu.WithQuirks(q)}, nil
}

func (o Options) Palette() (video.Palette, error) {
	on, err := video.ParseColor(o.Foreground)
	if err != nil {
		return video.Palette{}, fmt.Errorf("foreground: %w", err)
	}
	off, err := video.ParseColor(o.Background)
	if err != nil {
		return video.Palette{}, fmt.Errorf("background: %w", err)
	}
	return video.Palette{On: on, Off: off}, nil
}

func (o Options) Layout() (keymap.Layout, error) {
	return keymap.ParseLayout(o.Keys)
}

func (o Options) Driver() driver.Config {
	return driver.Config{
		InstructionsPerFrame: o.InstructionsPerFrame,
		FrameRate:            o.FrameRate,
		KeyHold:              o.KeyHold,
	}
}

// UsageError reports a command line that should be answered with the usage text.
type UsageError struct {
	flags *flag.FlagSet
	name  string
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage writes the usage text and flag defaults to w.
func (e *UsageError) ShowUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: %s [options] <rom file>\n\n", e.name)
	e.flags.SetOutput(w)
	e.flags.PrintDefaults()
	fmt.Fprintln(w)
}
