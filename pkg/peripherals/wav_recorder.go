package peripherals

import (
	"fmt"
	"io"
	"os"

	"gochip8/pkg/cpu"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	WavRecorderPeripheralType = "WavRecorder"

	wavBitDepth = 16
	wavPCM      = 1
)

// WavRecorder writes one frame worth of buzzer output per Frame call to a
// mono 16-bit WAV stream.
type WavRecorder struct {
	enc   *wav.Encoder
	tone  *Buzzer
	buf   *audio.IntBuffer
	file  io.Closer
	total int
}

// NewWavRecorder records to ws at sampleRate, emitting sampleRate/frameRate
// samples per frame. Close must be called to finish the header; it does not
// close ws.
func NewWavRecorder(ws io.WriteSeeker, sampleRate, frameRate int) *WavRecorder {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if frameRate <= 0 {
		frameRate = 60
	}
	return &WavRecorder{
		enc:  wav.NewEncoder(ws, sampleRate, wavBitDepth, 1, wavPCM),
		tone: NewBuzzer(sampleRate, DefaultToneHz),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
			Data:           make([]int, sampleRate/frameRate),
			SourceBitDepth: wavBitDepth,
		},
	}
}

// CreateWavFile creates filename and records into it. Close also closes the file.
func CreateWavFile(filename string, sampleRate, frameRate int) (*WavRecorder, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("creating wav file: %w", err)
	}
	r := NewWavRecorder(f, sampleRate, frameRate)
	r.file = f
	return r, nil
}

func (r *WavRecorder) Type() string { return WavRecorderPeripheralType }

func (r *WavRecorder) Frame(m *cpu.Machine) error {
	return r.Record(m.SoundActive())
}

// Record appends one frame of tone or silence.
func (r *WavRecorder) Record(active bool) error {
	r.tone.SetActive(active)
	for i := range r.buf.Data {
		r.buf.Data[i] = int(r.tone.Sample())
	}
	if err := r.enc.Write(r.buf); err != nil {
		return fmt.Errorf("writing wav samples: %w", err)
	}
	r.total += len(r.buf.Data)
	return nil
}

// Samples returns the number of samples recorded so far.
func (r *WavRecorder) Samples() int { return r.total }

func (r *WavRecorder) Close() error {
	err := r.enc.Close()
	if r.file != nil {
		if cerr := r.file.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return fmt.Errorf("closing wav recorder: %w", err)
	}
	return nil
}
