package audio

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// Capture wraps a blocking PortAudio input stream delivering mono int16
// frames.
type Capture struct {
	stream     *portaudio.Stream
	sampleRate float64
	device     *portaudio.DeviceInfo
	buffer     []int16
	overflows  int

	closeOnce sync.Once
	closeErr  error
}

// Config controls how a Capture instance is created.
type Config struct {
	DeviceName string
	SampleRate float64
	FrameSize  int
}

const defaultFrameSize = 1024

// NewCapture opens and starts an input stream. Initialize must have been
// called first.
func NewCapture(cfg Config) (*Capture, error) {
	if cfg.FrameSize <= 0 {
		cfg.FrameSize = defaultFrameSize
	}

	device, err := findDevice(cfg.DeviceName)
	if err != nil {
		return nil, err
	}

	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = device.DefaultSampleRate
	}

	capture := &Capture{
		sampleRate: sampleRate,
		device:     device,
		buffer:     make([]int16, cfg.FrameSize),
	}

	stream, err := portaudio.OpenStream(portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   device,
			Channels: 1,
			Latency:  device.DefaultLowInputLatency,
		},
		SampleRate:      sampleRate,
		FramesPerBuffer: cfg.FrameSize,
	}, capture.buffer)
	if err != nil {
		return nil, fmt.Errorf("open stream: %w", err)
	}
	capture.stream = stream

	if err := capture.stream.Start(); err != nil {
		_ = capture.stream.Close()
		return nil, fmt.Errorf("start stream: %w", err)
	}

	return capture, nil
}

// ReadFrame blocks until the device has produced a full frame.
func (c *Capture) ReadFrame(ctx context.Context, dst []int16) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(dst) != len(c.buffer) {
		return fmt.Errorf("%w: want %d samples, got buffer of %d", ErrShortRead, len(c.buffer), len(dst))
	}
	if err := c.stream.Read(); err != nil {
		// an overflow means samples were dropped before this frame; the
		// frame itself is intact
		if err != portaudio.InputOverflowed {
			return fmt.Errorf("read stream: %w", err)
		}
		c.overflows++
	}
	copy(dst, c.buffer)
	return nil
}

// Overflows counts frames that arrived after the device dropped input.
func (c *Capture) Overflows() int {
	return c.overflows
}

// Close stops and closes the underlying PortAudio stream.
func (c *Capture) Close() error {
	c.closeOnce.Do(func() {
		if c.stream == nil {
			return
		}
		if err := c.stream.Stop(); err != nil && !errorsIsInvalidStreamState(err) {
			c.closeErr = err
			_ = c.stream.Close()
			return
		}
		c.closeErr = c.stream.Close()
	})
	return c.closeErr
}

// SampleRate returns the stream sample rate.
func (c *Capture) SampleRate() float64 {
	return c.sampleRate
}

// Device returns the PortAudio device associated with the capture stream.
func (c *Capture) Device() *portaudio.DeviceInfo {
	return c.device
}

func findDevice(name string) (*portaudio.DeviceInfo, error) {
	if name != "" {
		return findDeviceByName(name)
	}

	if dev, err := portaudio.DefaultInputDevice(); err == nil && dev != nil && dev.MaxInputChannels > 0 {
		return dev, nil
	}

	if host, err := portaudio.DefaultHostApi(); err == nil {
		if host != nil && host.DefaultInputDevice != nil && host.DefaultInputDevice.MaxInputChannels > 0 {
			return host.DefaultInputDevice, nil
		}
	}

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("list audio devices: %w", err)
	}

	if candidate := pickBestDevice(devices); candidate != nil {
		return candidate, nil
	}
	return nil, fmt.Errorf("no suitable audio input device found")
}

func findDeviceByName(name string) (*portaudio.DeviceInfo, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("list audio devices: %w", err)
	}

	needle := strings.ToLower(name)
	for _, device := range devices {
		if device.MaxInputChannels == 0 {
			continue
		}
		if strings.Contains(strings.ToLower(device.Name), needle) {
			return device, nil
		}
	}
	return nil, fmt.Errorf("audio device %q not found", name)
}

// loopbackKeywords mark devices that capture what the machine is playing,
// which is what a wall reacting to music usually wants.
var loopbackKeywords = []string{"monitor", "loopback", "mix", "stereo mix", "what u hear"}

func pickBestDevice(devices []*portaudio.DeviceInfo) *portaudio.DeviceInfo {
	defaultInput := -1
	if def, err := portaudio.DefaultInputDevice(); err == nil && def != nil {
		defaultInput = def.Index
	}
	defaultHost := -1
	if host, err := portaudio.DefaultHostApi(); err == nil && host != nil && host.DefaultInputDevice != nil {
		defaultHost = host.DefaultInputDevice.Index
	}

	candidates := make([]*portaudio.DeviceInfo, 0, len(devices))
	scores := make(map[*portaudio.DeviceInfo]int, len(devices))
	for _, d := range devices {
		if d == nil || d.MaxInputChannels <= 0 {
			continue
		}
		scores[d] = scoreDevice(d.Name, d.MaxInputChannels, d.Index == defaultInput, d.Index == defaultHost)
		candidates = append(candidates, d)
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if scores[a] == scores[b] {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
		return scores[a] > scores[b]
	})
	return candidates[0]
}

func scoreDevice(name string, inputs int, isDefaultInput, isDefaultHost bool) int {
	score := inputs
	if isDefaultInput {
		score += 50
	}
	if isDefaultHost {
		score += 40
	}
	lower := strings.ToLower(name)
	for _, kw := range loopbackKeywords {
		if strings.Contains(lower, kw) {
			score += 20
			break
		}
	}
	if strings.Contains(lower, "default") {
		score += 10
	}
	return score
}

// errorsIsInvalidStreamState checks if the provided error stems from stopping an already stopped stream.
func errorsIsInvalidStreamState(err error) bool {
	if err == nil {
		return false
	}
	const invalidStateMsg = "PaErrorCode -9986"
	return strings.Contains(err.Error(), invalidStateMsg)
}

// AutoDetectDevice returns the best available input device PortAudio can find.
func AutoDetectDevice() (*portaudio.DeviceInfo, error) {
	return findDevice("")
}
