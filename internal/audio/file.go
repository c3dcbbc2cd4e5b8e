package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileConfig controls a FileSource.
type FileConfig struct {
	Path      string
	FrameSize int
	// Loop restarts the file at its end instead of returning io.EOF.
	Loop bool
	// Realtime paces frames at the file's sample rate, like a device.
	Realtime bool
}

// FileSource plays a decoded audio file as a stream of mono frames.
type FileSource struct {
	cfg    FileConfig
	file   *os.File
	pcm    pcmReader
	pace   *pacer
	chunk  []float32
	done   bool
	frames int
}

// FormatNames lists the supported file extensions.
func FormatNames() []string {
	return []string{".aif", ".aiff", ".mp3", ".ogg", ".wav"}
}

// OpenFile opens and decodes path. The decoder is chosen by extension.
func OpenFile(cfg FileConfig) (*FileSource, error) {
	if cfg.FrameSize <= 0 {
		cfg.FrameSize = defaultFrameSize
	}
	s := &FileSource{cfg: cfg}
	if err := s.open(); err != nil {
		return nil, err
	}
	if cfg.Realtime {
		s.pace = newPacer(FrameDuration(cfg.FrameSize, float64(s.pcm.SampleRate())))
	}
	return s, nil
}

func (s *FileSource) open() error {
	f, err := os.Open(s.cfg.Path)
	if err != nil {
		return fmt.Errorf("open audio file: %w", err)
	}

	var pcm pcmReader
	switch ext := strings.ToLower(filepath.Ext(s.cfg.Path)); ext {
	case ".wav", ".wave":
		pcm, err = openWAV(f)
	case ".aif", ".aiff":
		pcm, err = openAIFF(f)
	case ".mp3":
		pcm, err = openMP3(f)
	case ".ogg", ".oga":
		pcm, err = openOgg(f)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("decode %s: %w", filepath.Base(s.cfg.Path), err)
	}

	s.file = f
	s.pcm = pcm
	s.chunk = make([]float32, s.cfg.FrameSize*pcm.Channels())
	return nil
}

func (s *FileSource) rewind() error {
	if s.file != nil {
		_ = s.file.Close()
		s.file = nil
	}
	return s.open()
}

// SampleRate is the file's native rate.
func (s *FileSource) SampleRate() float64 {
	return float64(s.pcm.SampleRate())
}

// Frames returns how many frames have been delivered.
func (s *FileSource) Frames() int {
	return s.frames
}

// ReadFrame fills dst with the next frame mixed down to mono. The last
// partial frame of a file is padded with silence; after that ReadFrame
// returns io.EOF unless looping.
func (s *FileSource) ReadFrame(ctx context.Context, dst []int16) error {
	if len(dst) != s.cfg.FrameSize {
		return fmt.Errorf("%w: want %d samples, got buffer of %d", ErrShortRead, s.cfg.FrameSize, len(dst))
	}
	if s.done {
		return io.EOF
	}
	if err := s.pace.wait(ctx); err != nil {
		return err
	}

	filled := 0
	rewound := false
	for filled < len(dst) {
		channels := s.pcm.Channels()
		want := (len(dst) - filled) * channels
		n, err := s.pcm.Read(s.chunk[:want])
		frames := n / channels
		mixDown(dst[filled:filled+frames], s.chunk[:frames*channels], channels)
		filled += frames
		if frames > 0 {
			rewound = false
		}

		if err == nil {
			continue
		}
		if !errors.Is(err, io.EOF) {
			return fmt.Errorf("decode: %w", err)
		}
		if !s.cfg.Loop || rewound {
			// an empty file cannot loop
			s.done = true
			if filled == 0 {
				return io.EOF
			}
			clear(dst[filled:])
			break
		}
		if err := s.rewind(); err != nil {
			return err
		}
		rewound = true
	}

	s.frames++
	return nil
}

// Close releases the file handle.
func (s *FileSource) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// mixDown averages interleaved channels into dst.
func mixDown(dst []int16, interleaved []float32, channels int) {
	if channels == 1 {
		for i, v := range interleaved {
			dst[i] = toInt16(v)
		}
		return
	}
	inv := 1 / float32(channels)
	for f := range dst {
		base := f * channels
		sum := float32(0)
		for ch := 0; ch < channels; ch++ {
			sum += interleaved[base+ch]
		}
		dst[f] = toInt16(sum * inv)
	}
}
