// SPDX-License-Identifier: EPL-2.0

package capture

import (
	"fmt"
	"log"
	"strings"

	"github.com/gen2brain/malgo"

	"github.com/ik5/tonefeed/ring"
)

// Config selects and sets up the input device.
type Config struct {
	SampleRate int
	Channels   int
	// Device is a case-insensitive substring of the device name. Empty
	// selects the system default.
	Device string
	Tee    Tee
	Logger *log.Logger
}

func (c Config) validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, c.SampleRate)
	}
	if c.Channels <= 0 {
		return fmt.Errorf("%w: %d channels", ErrInvalidConfig, c.Channels)
	}
	return nil
}

// Device is an open capture device.
type Device struct {
	ctx     *malgo.AllocatedContext
	dev     *malgo.Device
	handler *Handler
	logger  *log.Logger
}

// Open initializes the device without starting it.
func Open(feed *ring.Feed, cfg Config) (*Device, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("initializing audio context: %w", err)
	}

	devCfg := malgo.DefaultDeviceConfig(malgo.Capture)
	devCfg.Capture.Format = malgo.FormatS16
	devCfg.Capture.Channels = uint32(cfg.Channels)
	devCfg.SampleRate = uint32(cfg.SampleRate)
	devCfg.Alsa.NoMMap = 1

	if cfg.Device != "" {
		info, err := findDevice(ctx, cfg.Device)
		if err != nil {
			freeContext(ctx)
			return nil, err
		}
		devCfg.Capture.DeviceID = info.ID.Pointer()
		logger.Printf("capture: using device %q", info.Name())
	}

	handler := NewHandler(feed, cfg.Channels, cfg.Tee)
	dev, err := malgo.InitDevice(ctx.Context, devCfg, malgo.DeviceCallbacks{Data: handler.OnData})
	if err != nil {
		freeContext(ctx)
		return nil, fmt.Errorf("initializing capture device: %w", err)
	}
	logger.Printf("capture: %d ch at %d Hz", cfg.Channels, dev.SampleRate())

	return &Device{ctx: ctx, dev: dev, handler: handler, logger: logger}, nil
}

func findDevice(ctx *malgo.AllocatedContext, name string) (malgo.DeviceInfo, error) {
	infos, err := ctx.Devices(malgo.Capture)
	if err != nil {
		return malgo.DeviceInfo{}, fmt.Errorf("listing capture devices: %w", err)
	}
	for _, info := range infos {
		if strings.Contains(strings.ToLower(info.Name()), strings.ToLower(name)) {
			return info, nil
		}
	}
	return malgo.DeviceInfo{}, fmt.Errorf("%w: %q", ErrDeviceNotFound, name)
}

func freeContext(ctx *malgo.AllocatedContext) {
	_ = ctx.Uninit()
	ctx.Free()
}

// Devices lists the names of the capture devices.
func Devices() ([]string, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("initializing audio context: %w", err)
	}
	defer freeContext(ctx)

	infos, err := ctx.Devices(malgo.Capture)
	if err != nil {
		return nil, fmt.Errorf("listing capture devices: %w", err)
	}
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name())
	}
	return names, nil
}

// Start begins delivering samples to the ring. It fails after Stop.
func (d *Device) Start() error {
	if d.dev == nil {
		return ErrStopped
	}
	if err := d.dev.Start(); err != nil {
		return fmt.Errorf("starting capture: %w", err)
	}
	return nil
}

// SampleRate is the rate the device actually runs at.
func (d *Device) SampleRate() int {
	if d.dev == nil {
		return 0
	}
	return int(d.dev.SampleRate())
}

// Frames is the number of mono samples captured so far.
func (d *Device) Frames() uint64 { return d.handler.Frames() }

// Stop halts the callback and releases the device. After Stop returns the
// ring has no producer.
func (d *Device) Stop() {
	if d.dev != nil {
		d.dev.Uninit()
		d.dev = nil
	}
	if d.ctx != nil {
		freeContext(d.ctx)
		d.ctx = nil
	}
	if err := d.handler.TeeErr(); err != nil {
		d.logger.Printf("capture: recording stopped early: %v", err)
	}
}
