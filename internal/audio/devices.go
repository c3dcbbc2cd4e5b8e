package audio

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/gordonklaus/portaudio"
)

var (
	initOnce sync.Once
	termOnce sync.Once
	initErr  error
)

// Initialize starts PortAudio once per process.
func Initialize() error {
	initOnce.Do(func() {
		initErr = portaudio.Initialize()
	})
	return initErr
}

// Terminate balances a successful Initialize.
func Terminate() {
	if initErr != nil {
		return
	}
	termOnce.Do(func() {
		_ = portaudio.Terminate()
	})
}

// Device is one PortAudio device capable of input.
type Device struct {
	Name       string
	HostAPI    string
	Channels   int
	SampleRate float64
	IsDefault  bool
}

func (d Device) String() string {
	mark := " "
	if d.IsDefault {
		mark = "*"
	}
	return fmt.Sprintf("%s %-40s %-12s in=%d %.0fHz", mark, d.Name, d.HostAPI, d.Channels, d.SampleRate)
}

// ListDevices returns the input devices across host APIs sorted by host and
// name. Output-only devices are skipped since the wall only listens.
func ListDevices() ([]Device, error) {
	hosts, err := portaudio.HostApis()
	if err != nil {
		return nil, fmt.Errorf("host apis: %w", err)
	}

	defaultIndex := -1
	if def, err := portaudio.DefaultInputDevice(); err == nil && def != nil {
		defaultIndex = def.Index
	}

	var devices []Device
	for _, host := range hosts {
		for _, d := range host.Devices {
			if d.MaxInputChannels < 1 {
				continue
			}
			devices = append(devices, Device{
				Name:       d.Name,
				HostAPI:    host.Name,
				Channels:   d.MaxInputChannels,
				SampleRate: d.DefaultSampleRate,
				IsDefault:  d.Index == defaultIndex,
			})
		}
	}
	sortDevices(devices)
	return devices, nil
}

func sortDevices(devices []Device) {
	sort.Slice(devices, func(i, j int) bool {
		if devices[i].HostAPI == devices[j].HostAPI {
			return devices[i].Name < devices[j].Name
		}
		return devices[i].HostAPI < devices[j].HostAPI
	})
}

// WriteDevices prints one line per device, marking the default input.
func WriteDevices(w io.Writer, devices []Device) error {
	if len(devices) == 0 {
		_, err := fmt.Fprintln(w, "no input devices found")
		return err
	}
	for _, d := range devices {
		if _, err := fmt.Fprintln(w, d); err != nil {
			return err
		}
	}
	return nil
}
