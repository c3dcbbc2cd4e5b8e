package audio

import (
	"context"
	"errors"
	"fmt"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Recorder passes frames through from src while appending them to a 16-bit
// mono WAV file.
type Recorder struct {
	src  Source
	file *os.File
	enc  *wav.Encoder
	buf  *goaudio.IntBuffer
}

// NewRecorder creates path and records every frame read from src into it.
func NewRecorder(src Source, path string) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create recording: %w", err)
	}
	rate := int(src.SampleRate())
	return &Recorder{
		src:  src,
		file: f,
		enc:  wav.NewEncoder(f, rate, 16, 1, 1),
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: 1, SampleRate: rate},
			SourceBitDepth: 16,
		},
	}, nil
}

func (r *Recorder) SampleRate() float64 { return r.src.SampleRate() }

// ReadFrame reads from the wrapped source and records the frame.
func (r *Recorder) ReadFrame(ctx context.Context, dst []int16) error {
	if err := r.src.ReadFrame(ctx, dst); err != nil {
		return err
	}
	if cap(r.buf.Data) < len(dst) {
		r.buf.Data = make([]int, len(dst))
	}
	r.buf.Data = r.buf.Data[:len(dst)]
	for i, v := range dst {
		r.buf.Data[i] = int(v)
	}
	if err := r.enc.Write(r.buf); err != nil {
		return fmt.Errorf("record frame: %w", err)
	}
	return nil
}

// Close finalizes the WAV header and closes both the file and the source.
func (r *Recorder) Close() error {
	return errors.Join(r.enc.Close(), r.file.Close(), r.src.Close())
}
