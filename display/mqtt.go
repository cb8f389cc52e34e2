// SPDX-License-Identifier: EPL-2.0

package display

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/ik5/tonefeed/config"
	"github.com/ik5/tonefeed/payload"
)

const publishTimeout = 5 * time.Second

// Document is the JSON body published for every message.
type Document struct {
	ID        string    `json:"id"`
	Identity  string    `json:"identity"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// MQTT publishes messages to a broker.
type MQTT struct {
	client mqtt.Client
	topic  string
	qos    byte
	logger *log.Logger
}

// DialMQTT connects to the broker named in s.
func DialMQTT(s config.MQTTSettings, logger *log.Logger) (*MQTT, error) {
	if logger == nil {
		logger = log.Default()
	}

	clientID := s.ClientID
	if clientID == "" {
		clientID = "tonefeed_" + uuid.New().String()[:8]
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(s.Broker)
	opts.SetClientID(clientID)
	if s.Username != "" {
		opts.SetUsername(s.Username)
	}
	if s.Password != "" {
		opts.SetPassword(s.Password)
	}

	opts.SetAutoReconnect(true)
	opts.SetConnectRetryInterval(10 * time.Second)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		logger.Printf("mqtt: connection lost: %v", err)
	})
	opts.SetReconnectingHandler(func(mqtt.Client, *mqtt.ClientOptions) {
		logger.Println("mqtt: reconnecting")
	})

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connecting to mqtt broker %s: %w", s.Broker, token.Error())
	}
	logger.Printf("mqtt: connected to %s", s.Broker)

	return NewMQTT(client, s.Topic, s.QoS, logger), nil
}

// NewMQTT publishes through an existing client.
func NewMQTT(client mqtt.Client, topic string, qos byte, logger *log.Logger) *MQTT {
	if logger == nil {
		logger = log.Default()
	}
	return &MQTT{client: client, topic: topic, qos: qos, logger: logger}
}

// Display publishes msg and waits for the broker to take it.
func (m *MQTT) Display(msg payload.Message) error {
	if !m.client.IsConnected() {
		return ErrNotConnected
	}

	data, err := json.Marshal(Document{
		ID:        uuid.New().String(),
		Identity:  msg.Identity,
		Message:   msg.Body,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encoding message: %w", err)
	}

	token := m.client.Publish(m.topic, m.qos, false, data)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("%w: topic %s", ErrPublishTimeout, m.topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publishing to %s: %w", m.topic, err)
	}
	return nil
}

// Close disconnects from the broker.
func (m *MQTT) Close() error {
	if m.client.IsConnected() {
		m.client.Disconnect(250)
		m.logger.Println("mqtt: disconnected")
	}
	return nil
}
