package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/retrogolib/log"

	"gochip8/pkg/config"
	"gochip8/pkg/cpu"
	"gochip8/pkg/driver"
	"gochip8/pkg/peripherals"
	"gochip8/pkg/rom"
	"gochip8/pkg/statsview"
	"gochip8/pkg/video"
)

const audioBuffer = 50 * time.Millisecond

type Game struct {
	emu     *driver.Emulator
	logger  *log.Logger
	keys    [cpu.KeyCount]ebiten.Key
	held    [cpu.KeyCount]bool
	palette video.Palette
	scale   int
	width   int
	height  int
	title   string

	screenImg *ebiten.Image // reused display-sized canvas
	pixels    []byte
	drawn     bool
	version   uint64

	halted error
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.reset()
		ebiten.SetWindowTitle(g.title)
	}

	for k, key := range g.keys {
		pressed := ebiten.IsKeyPressed(key)
		if pressed == g.held[k] {
			continue
		}
		g.held[k] = pressed
		if err := g.emu.SetKey(uint8(k), pressed); err != nil {
			return err
		}
	}

	if g.halted != nil {
		return nil
	}
	if err := g.emu.Frame(); err != nil {
		// Keep the last screen visible so the failure can be inspected.
		g.halted = err
		g.logger.Error("Machine halted", err)
		ebiten.SetWindowTitle(g.title + " (halted)")
	}
	return nil
}

// reset restarts the program. The emulator releases every key, so keys that
// are still down are reported again on the next Update.
func (g *Game) reset() {
	g.emu.Reset()
	g.held = [cpu.KeyCount]bool{}
	g.halted = nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.screenImg == nil {
		g.screenImg = ebiten.NewImage(g.width, g.height)
		g.pixels = make([]byte, g.width*g.height*4)
	}

	changed := false
	g.emu.View(func(m *cpu.Machine) {
		d := m.Display()
		if g.drawn && d.Version() == g.version {
			return
		}
		video.WriteFramebuffer(g.pixels, d, g.palette)
		g.version = d.Version()
		g.drawn = true
		changed = true
	})
	if changed {
		g.screenImg.WritePixels(g.pixels)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.screenImg, op)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width * g.scale, g.height * g.scale
}

func main() {
	opts, err := config.ParseFlags("chip8", config.Desktop, os.Args[1:])
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
		logger.Fatal(err.Error())
	}
}

func run(opts config.Options, logger *log.Logger) error {
	game, err := newGame(opts, logger)
	if err != nil {
		return err
	}

	if opts.StatsAddr != "" {
		statsview.Launch(opts.StatsAddr, logger)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(game.width*game.scale, game.height*game.scale)
	ebiten.SetWindowTitle(game.title)
	ebiten.SetTPS(opts.FrameRate)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return game.halted
}

func newGame(opts config.Options, logger *log.Logger) (*Game, error) {
	program, err := rom.Load(opts.ROM)
	if err != nil {
		return nil, err
	}

	machineOpts, err := opts.MachineOptions()
	if err != nil {
		return nil, err
	}
	m := cpu.New(machineOpts...)
	if err := m.Load(program.Data); err != nil {
		return nil, err
	}
	logger.Info("ROM loaded", log.String("path", program.Path), log.Int("size", len(program.Data)))

	emu, err := driver.New(m, opts.Driver(), logger)
	if err != nil {
		return nil, err
	}

	layout, err := opts.Layout()
	if err != nil {
		return nil, err
	}
	keys, err := hostKeys(layout)
	if err != nil {
		return nil, err
	}
	palette, err := opts.Palette()
	if err != nil {
		return nil, err
	}

	if !opts.Mute {
		if err := startBuzzer(emu); err != nil {
			return nil, err
		}
	}

	w, h := m.Display().Size()
	return &Game{
		emu:     emu,
		logger:  logger,
		keys:    keys,
		palette: palette,
		scale:   max(opts.Scale, 1),
		width:   w,
		height:  h,
		title:   fmt.Sprintf("CHIP-8 - %s", program.Name),
	}, nil
}

// startBuzzer attaches a buzzer to the emulator and streams it to the
// default audio device.
func startBuzzer(emu *driver.Emulator) error {
	buzzer := peripherals.NewBuzzer(peripherals.DefaultSampleRate, peripherals.DefaultToneHz)
	ctx := audio.NewContext(buzzer.SampleRate())
	player, err := ctx.NewPlayer(buzzer)
	if err != nil {
		return fmt.Errorf("creating audio player: %w", err)
	}
	player.SetBufferSize(audioBuffer)
	player.Play()
	emu.Attach(buzzer)
	return nil
}
