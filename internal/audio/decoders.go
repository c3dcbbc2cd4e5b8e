package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported audio file format")
	ErrInvalidFile       = errors.New("invalid audio file")
)

// pcmReader yields interleaved float32 samples in [-1,1].
type pcmReader interface {
	Read(dst []float32) (int, error)
	Channels() int
	SampleRate() int
}

// intDecoder is the part of the go-audio wav and aiff decoders we use.
type intDecoder interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type intPCM struct {
	dec      intDecoder
	channels int
	rate     int
	scale    float32
	buf      *goaudio.IntBuffer
}

func newIntPCM(dec intDecoder, bitDepth int) (*intPCM, error) {
	format := dec.Format()
	if format == nil || format.NumChannels <= 0 || format.SampleRate <= 0 {
		return nil, ErrInvalidFile
	}
	if bitDepth <= 0 {
		bitDepth = 16
	}
	return &intPCM{
		dec:      dec,
		channels: format.NumChannels,
		rate:     format.SampleRate,
		scale:    float32(int64(1) << (bitDepth - 1)),
		buf:      &goaudio.IntBuffer{Format: format},
	}, nil
}

func (p *intPCM) Channels() int   { return p.channels }
func (p *intPCM) SampleRate() int { return p.rate }

func (p *intPCM) Read(dst []float32) (int, error) {
	if cap(p.buf.Data) < len(dst) {
		p.buf.Data = make([]int, len(dst))
	}
	p.buf.Data = p.buf.Data[:len(dst)]

	n, err := p.dec.PCMBuffer(p.buf)
	if n == 0 {
		if err == nil {
			err = io.EOF
		}
		return 0, err
	}
	for i := 0; i < n; i++ {
		dst[i] = float32(p.buf.Data[i]) / p.scale
	}
	return n, err
}

func openWAV(r io.ReadSeeker) (pcmReader, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not a wav file", ErrInvalidFile)
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}
	return newIntPCM(dec, int(dec.BitDepth))
}

func openAIFF(r io.ReadSeeker) (pcmReader, error) {
	dec := aiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not an aiff file", ErrInvalidFile)
	}
	dec.ReadInfo()
	return newIntPCM(dec, int(dec.BitDepth))
}

// mp3PCM converts go-mp3's 16-bit little-endian stereo byte stream.
type mp3PCM struct {
	dec *gomp3.Decoder
	buf []byte
}

func openMP3(r io.Reader) (pcmReader, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}
	return &mp3PCM{dec: dec}, nil
}

func (p *mp3PCM) Channels() int   { return 2 }
func (p *mp3PCM) SampleRate() int { return p.dec.SampleRate() }

func (p *mp3PCM) Read(dst []float32) (int, error) {
	need := len(dst) * 2
	if cap(p.buf) < need {
		p.buf = make([]byte, need)
	}
	p.buf = p.buf[:need]

	n, err := io.ReadFull(p.dec, p.buf)
	if err == io.ErrUnexpectedEOF {
		err = nil
	}
	samples := n / 2
	for i := 0; i < samples; i++ {
		v := int16(uint16(p.buf[2*i]) | uint16(p.buf[2*i+1])<<8)
		dst[i] = float32(v) / 32768
	}
	if samples == 0 && err == nil {
		err = io.EOF
	}
	return samples, err
}

type oggPCM struct {
	dec *oggvorbis.Reader
}

func openOgg(r io.Reader) (pcmReader, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("ogg: %w", err)
	}
	return &oggPCM{dec: dec}, nil
}

func (p *oggPCM) Channels() int   { return p.dec.Channels() }
func (p *oggPCM) SampleRate() int { return p.dec.SampleRate() }

func (p *oggPCM) Read(dst []float32) (int, error) {
	n, err := p.dec.Read(dst)
	if n == 0 && err == nil {
		err = io.EOF
	}
	return n, err
}
