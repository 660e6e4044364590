// Package telemetry publishes occupancy snapshots to an MQTT broker as a
// retained state topic, so subscribers joining late immediately see the
// current lot state.
package telemetry

import (
	"encoding/json"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"

	"github.com/jrv81/parklot"
	"github.com/jrv81/parklot/internal/config"
)

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
)

// mqttClient is the subset of paho's Client the publisher needs.
type mqttClient interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) pahomqtt.Token
	Disconnect(quiesce uint)
}

// A Publisher pushes retained occupancy state messages to one topic.
type Publisher struct {
	client mqttClient
	topic  string
	qos    byte
}

// payload is the wire format of one occupancy message.
type payload struct {
	Cycle  uint64 `json:"cycle"`
	Count  int    `json:"count"`
	Open   bool   `json:"open"`
	Full   bool   `json:"full"`
	Closed bool   `json:"closed"`
}

// Connect dials the broker described by cfg and returns a ready publisher.
func Connect(cfg *config.TelemetryConfig) (*Publisher, error) {
	opts := pahomqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true)

	c := pahomqtt.NewClient(opts)
	token := c.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, errors.Errorf("telemetry: connect to %s timed out after %v", cfg.Broker, connectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, errors.Wrap(err, "telemetry: connect")
	}

	return &Publisher{client: c, topic: cfg.Topic, qos: byte(cfg.QoS)}, nil
}

// Publish sends snap as a retained message.
func (p *Publisher) Publish(snap parklot.Snapshot) error {
	body, err := json.Marshal(payload{
		Cycle:  snap.Cycle,
		Count:  snap.Count,
		Open:   snap.Open,
		Full:   snap.Full,
		Closed: snap.Closed,
	})
	if err != nil {
		return errors.Wrap(err, "telemetry: encode")
	}

	token := p.client.Publish(p.topic, p.qos, true, body)
	if !token.WaitTimeout(publishTimeout) {
		return errors.Errorf("telemetry: publish timed out after %v", publishTimeout)
	}
	return errors.Wrap(token.Error(), "telemetry: publish")
}

// Close disconnects from the broker, allowing in-flight work to finish.
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}
