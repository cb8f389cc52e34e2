// SPDX-License-Identifier: EPL-2.0

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings is the on-disk configuration of the tonefeed tool.
type Settings struct {
	Profile ProfileSettings `yaml:"profile"`
	Ring    RingSettings    `yaml:"ring"`
	Capture CaptureSettings `yaml:"capture"`
	Display DisplaySettings `yaml:"display"`
	Metrics MetricsSettings `yaml:"metrics"`
	Record  RecordSettings  `yaml:"record"`
}

// ProfileSettings selects a preset and optionally overrides its values.
// Zero overrides keep the preset value.
type ProfileSettings struct {
	Preset             Preset   `yaml:"preset"`
	SampleRate         float64  `yaml:"sample_rate"`
	EccLevel           EccLevel `yaml:"ecc_level"`
	FirstFrequency     float64  `yaml:"first_frequency,omitempty"`
	FrequencyIncrement *int     `yaml:"frequency_increment,omitempty"`
	FrequencyMulti     float64  `yaml:"frequency_multi,omitempty"`
	WordTime           float64  `yaml:"word_time,omitempty"`
	WordSilenceTime    float64  `yaml:"word_silence_time,omitempty"`
	GateTime           float64  `yaml:"gate_time,omitempty"`
	TriggerSNR         *float64 `yaml:"trigger_snr,omitempty"`
}

// RingSettings sizes the sample ring and the consumer loop.
type RingSettings struct {
	Capacity     int           `yaml:"capacity"`      // samples
	PollInterval time.Duration `yaml:"poll_interval"` // consumer loop period
}

// CaptureSettings selects the input device.
type CaptureSettings struct {
	Device   string `yaml:"device"` // substring of the device name, empty for default
	Channels int    `yaml:"channels"`
}

// DisplaySettings enables the message displays.
type DisplaySettings struct {
	Console bool           `yaml:"console"`
	Serial  SerialSettings `yaml:"serial"`
	MQTT    MQTTSettings   `yaml:"mqtt"`
}

// SerialSettings opens a serial display when Port is set.
type SerialSettings struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

// MQTTSettings publishes messages when Broker is set.
type MQTTSettings struct {
	Broker   string `yaml:"broker"`
	Topic    string `yaml:"topic"`
	ClientID string `yaml:"client_id"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	QoS      byte   `yaml:"qos"`
}

// MetricsSettings serves Prometheus metrics.
type MetricsSettings struct {
	Listen string `yaml:"listen"` // e.g. ":9464", empty disables
}

// RecordSettings records the captured stream.
type RecordSettings struct {
	Path string `yaml:"path"` // WAV file of the captured mono stream
}

// DefaultSettings returns the settings used when no file is given.
func DefaultSettings() Settings {
	return Settings{
		Profile: ProfileSettings{
			Preset:     PresetAudible,
			SampleRate: 44100,
			EccLevel:   DefaultEccLevel,
		},
		Ring: RingSettings{
			Capacity:     1 << 16,
			PollInterval: 10 * time.Millisecond,
		},
		Capture: CaptureSettings{
			Channels: 1,
		},
		Display: DisplaySettings{
			Console: true,
			Serial:  SerialSettings{Baud: 115200},
			MQTT:    MQTTSettings{Topic: "tonefeed/messages"},
		},
	}
}

// LoadSettings reads a YAML settings file on top of DefaultSettings.
func LoadSettings(filename string) (Settings, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Settings{}, fmt.Errorf("reading settings: %w", err)
	}
	return ParseSettings(data)
}

// ParseSettings decodes YAML settings on top of DefaultSettings.
func ParseSettings(data []byte) (Settings, error) {
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	if s.Ring.Capacity <= 0 {
		return Settings{}, fmt.Errorf("%w: ring capacity %d must be positive", ErrInvalidConfiguration, s.Ring.Capacity)
	}
	if s.Ring.PollInterval <= 0 {
		return Settings{}, fmt.Errorf("%w: poll interval %v must be positive", ErrInvalidConfiguration, s.Ring.PollInterval)
	}
	if s.Capture.Channels <= 0 {
		return Settings{}, fmt.Errorf("%w: capture channels %d must be positive", ErrInvalidConfiguration, s.Capture.Channels)
	}
	return s, nil
}

// Configuration resolves the profile into a validated Configuration.
func (p ProfileSettings) Configuration() (Configuration, error) {
	c, err := FromPreset(p.Preset, p.SampleRate)
	if err != nil {
		return Configuration{}, err
	}

	if p.FirstFrequency != 0 {
		c.FirstFrequency = p.FirstFrequency
	}
	if p.FrequencyIncrement != nil {
		c.FrequencyIncrement = *p.FrequencyIncrement
	}
	if p.FrequencyMulti != 0 {
		c.FrequencyMulti = p.FrequencyMulti
	}
	if p.WordTime != 0 {
		c.WordTime = p.WordTime
	}
	if p.WordSilenceTime != 0 {
		c.WordSilenceTime = p.WordSilenceTime
	}
	if p.GateTime != 0 {
		c.GateTime = p.GateTime
	}
	if p.TriggerSNR != nil {
		c.TriggerSNR = *p.TriggerSNR
	}

	if err := c.Validate(); err != nil {
		return Configuration{}, err
	}
	if err := c.CheckAlphabet(AlphabetSize); err != nil {
		return Configuration{}, err
	}
	return c, nil
}
