// SPDX-License-Identifier: EPL-2.0

// Command tonefeed listens to a microphone, or replays a recording, and
// feeds the samples to the tone probe decoder. Decoded messages are shown on
// the console, a serial line or an MQTT topic.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ik5/tonefeed"
	"github.com/ik5/tonefeed/capture"
	"github.com/ik5/tonefeed/config"
	"github.com/ik5/tonefeed/dispatch"
	"github.com/ik5/tonefeed/display"
	"github.com/ik5/tonefeed/formats"
	"github.com/ik5/tonefeed/formats/wav"
	"github.com/ik5/tonefeed/metrics"
	"github.com/ik5/tonefeed/payload"
	"github.com/ik5/tonefeed/probe"
	"github.com/ik5/tonefeed/ring"
)

// overrides are the command line values laid over the settings file.
type overrides struct {
	configPath string
	preset     string
	rate       float64
	device     string
	file       string
	record     string
	listen     string
	broker     string
	serial     string
	list       bool
	tones      int
}

func parseFlags(args []string, out io.Writer) (overrides, error) {
	var o overrides
	fs := flag.NewFlagSet("tonefeed", flag.ContinueOnError)
	fs.SetOutput(out)

	fs.StringVar(&o.configPath, "config", "", "YAML settings file")
	fs.StringVar(&o.preset, "preset", "", "profile preset (audible, inaudible)")
	fs.Float64Var(&o.rate, "rate", 0, "sample rate in Hz")
	fs.StringVar(&o.device, "device", "", "capture device name (substring)")
	fs.StringVar(&o.file, "file", "", "replay an audio file instead of the microphone")
	fs.StringVar(&o.record, "record", "", "record the captured stream to a WAV file")
	fs.StringVar(&o.listen, "metrics", "", "serve Prometheus metrics on this address")
	fs.StringVar(&o.broker, "mqtt", "", "publish messages to this MQTT broker")
	fs.StringVar(&o.serial, "serial", "", "write messages to this serial port")
	fs.BoolVar(&o.list, "list", false, "list capture devices and exit")
	fs.IntVar(&o.tones, "tones", probe.DefaultTones, "number of alphabet tones to probe")

	if err := fs.Parse(args); err != nil {
		return overrides{}, err
	}
	if fs.NArg() > 0 {
		return overrides{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return o, nil
}

func loadSettings(o overrides) (config.Settings, error) {
	s := config.DefaultSettings()
	if o.configPath != "" {
		var err error
		if s, err = config.LoadSettings(o.configPath); err != nil {
			return config.Settings{}, err
		}
	}

	if o.preset != "" {
		s.Profile.Preset = config.Preset(o.preset)
	}
	if o.rate != 0 {
		s.Profile.SampleRate = o.rate
	}
	if o.device != "" {
		s.Capture.Device = o.device
	}
	if o.record != "" {
		s.Record.Path = o.record
	}
	if o.listen != "" {
		s.Metrics.Listen = o.listen
	}
	if o.broker != "" {
		s.Display.MQTT.Broker = o.broker
	}
	if o.serial != "" {
		s.Display.Serial.Port = o.serial
	}
	return s, nil
}

func main() {
	o, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("tonefeed: %v", err)
	}

	if err := run(o, log.Default()); err != nil {
		log.Fatalf("tonefeed: %v", err)
	}
}

func run(o overrides, logger *log.Logger) error {
	if o.list {
		names, err := capture.Devices()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	}

	s, err := loadSettings(o)
	if err != nil {
		return err
	}
	cfg, err := s.Profile.Configuration()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m, err := metrics.New(reg)
	if err != nil {
		return err
	}
	if s.Metrics.Listen != "" {
		srv := serveMetrics(s.Metrics.Listen, reg, logger)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	sink, err := display.Open(s.Display, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := sink.Close(); err != nil {
			logger.Printf("tonefeed: closing display: %v", err)
		}
	}()

	dec, err := probe.New(cfg, o.tones)
	if err != nil {
		return err
	}
	dec.OnDetect = func(det probe.Detection) {
		if det.Triggered {
			logger.Printf("probe: tone %d at %.1fHz, %.1fdBFS, %.1fdB over median",
				det.Tone, det.Frequency, det.Level, det.SNR)
		}
	}

	var tee capture.Tee
	if s.Record.Path != "" {
		rec, err := wav.Create(s.Record.Path, int(cfg.SampleRate))
		if err != nil {
			return err
		}
		defer func() {
			if err := rec.Close(); err != nil {
				logger.Printf("tonefeed: closing recording: %v", err)
			}
			logger.Printf("tonefeed: recorded %d samples to %s", rec.Frames(), s.Record.Path)
		}()
		tee = rec
	}

	logger.Printf("tonefeed: %s profile at %vHz, %s steps, analysis window %d samples",
		s.Profile.Preset, cfg.SampleRate, cfg.Mode(), cfg.AnalysisWindow())

	var st dispatch.Stats
	if o.file != "" {
		st, err = replay(o.file, s, cfg, dec, sink, tee, m, logger)
	} else {
		st, err = listen(s, cfg, dec, sink, tee, m, logger)
	}
	logger.Printf("tonefeed: %d windows, %d samples, %d messages, %d malformed, %d dropped",
		st.Windows, st.Samples, st.Messages, st.Malformed, st.Dropped)
	return err
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *log.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Printf("metrics: %v", err)
		}
	}()
	logger.Printf("metrics: serving on %s/metrics", addr)
	return srv
}

func replay(path string, s config.Settings, cfg config.Configuration, dec dispatch.Decoder,
	sink payload.Sink, tee capture.Tee, m *metrics.Collector, logger *log.Logger,
) (dispatch.Stats, error) {
	src, err := formats.Open(path)
	if err != nil {
		return dispatch.Stats{}, err
	}
	defer src.Close()

	logger.Printf("tonefeed: replaying %s (%dHz, %d channels)", path, src.SampleRate(), src.Channels())
	return tonefeed.DecodeSource(src, cfg, dec, sink, tonefeed.Options{
		RingCapacity: s.Ring.Capacity,
		Logger:       logger,
		Metrics:      m,
		Tee:          tee,
	})
}

func listen(s config.Settings, cfg config.Configuration, dec dispatch.Decoder,
	sink payload.Sink, tee capture.Tee, m *metrics.Collector, logger *log.Logger,
) (dispatch.Stats, error) {
	feed, err := ring.New(s.Ring.Capacity)
	if err != nil {
		return dispatch.Stats{}, err
	}

	dev, err := capture.Open(feed, capture.Config{
		SampleRate: int(cfg.SampleRate),
		Channels:   s.Capture.Channels,
		Device:     s.Capture.Device,
		Tee:        tee,
		Logger:     logger,
	})
	if err != nil {
		return dispatch.Stats{}, err
	}
	defer dev.Stop()

	if rate := dev.SampleRate(); rate != int(cfg.SampleRate) {
		logger.Printf("capture: device runs at %dHz, profile expects %vHz", rate, cfg.SampleRate)
	}

	d := dispatch.New(feed, dec, sink)
	d.Logger = logger
	d.Metrics = m

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := dev.Start(); err != nil {
		return dispatch.Stats{}, err
	}
	logger.Printf("tonefeed: listening, press Ctrl+C to stop")

	st := d.Run(ctx, s.Ring.PollInterval)
	logger.Printf("capture: %d samples captured", dev.Frames())
	return st, nil
}
