// Package mqtt subscribes to vehicle location updates so distance ranking
// works against fresh coordinates.
package mqtt

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"os"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT client.
type Config struct {
	Enabled    bool        `json:"enabled"`
	Broker     string      `json:"broker"`
	ClientID   string      `json:"client_id"`
	Username   string      `json:"username"`
	Password   string      `json:"password"`
	Topic      string      `json:"topic"`
	QoS        byte        `json:"qos"`
	UseTLS     bool        `json:"use_tls"`
	ClientCert string      `json:"client_cert"`
	ClientKey  string      `json:"client_key"`
	CABundle   string      `json:"ca_bundle"`
	TLSConfig  *tls.Config `json:"-"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Topic == "" {
		c.Topic = "rental/vehicles/location/+"
	}
	if c.ClientID == "" {
		c.ClientID = "rental-search-" + uuid.NewString()
	}
}

// LocationStore is the write side of the inventory consumed by the feed.
type LocationStore interface {
	SetVehicleLocation(id string, lat, lon float64) bool
}

// locationUpdate is the JSON payload published by vehicle trackers.
type locationUpdate struct {
	VehicleID string  `json:"vehicle_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Feed applies broker-published location updates to the inventory store.
type Feed struct {
	cli paho.Client
	cfg Config
	log logger.Logger
}

// NewFeed connects to the broker and subscribes to the location topic.
func NewFeed(cfg Config, store LocationStore) (*Feed, error) {
	cfg.SetDefaults()
	log := logger.New("mqtt_feed")
	f := &Feed{cfg: cfg, log: log}

	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}
	opts.OnConnect = func(c paho.Client) {
		log.Infof("MQTT connected")
		if token := c.Subscribe(cfg.Topic, cfg.QoS, f.onUpdate(store)); token.Wait() && token.Error() != nil {
			log.Errorf("subscribe error: %v", token.Error())
		}
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	opts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		log.Warnf("reconnecting to MQTT broker")
	}

	cli := paho.NewClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	f.cli = cli
	return f, nil
}

func (f *Feed) onUpdate(store LocationStore) paho.MessageHandler {
	return func(_ paho.Client, msg paho.Message) {
		var upd locationUpdate
		if err := json.Unmarshal(msg.Payload(), &upd); err != nil {
			f.log.Errorf("failed to decode location update: %v", err)
			return
		}
		if !store.SetVehicleLocation(upd.VehicleID, upd.Latitude, upd.Longitude) {
			f.log.Debugf("location update for unknown vehicle %s", upd.VehicleID)
			return
		}
		f.log.Debugw("location updated", map[string]any{
			"vehicle_id": upd.VehicleID,
			"latitude":   upd.Latitude,
			"longitude":  upd.Longitude,
		})
	}
}

// Close disconnects from the broker.
func (f *Feed) Close() {
	if f.cli != nil && f.cli.IsConnected() {
		f.cli.Disconnect(250)
	}
}

// NewClientOptions builds mqtt client options from Config.
func NewClientOptions(cfg Config) (*paho.ClientOptions, error) {
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	if cfg.UseTLS {
		tlsCfg, err := cfg.LoadTLSConfig()
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsCfg)
	}
	return opts, nil
}

// LoadTLSConfig loads the TLS configuration from the file paths in the config.
func (c Config) LoadTLSConfig() (*tls.Config, error) {
	if c.TLSConfig != nil {
		return c.TLSConfig, nil
	}
	if c.ClientCert == "" || c.ClientKey == "" || c.CABundle == "" {
		return nil, fmt.Errorf("tls config requires client_cert, client_key and ca_bundle")
	}
	cert, err := tls.LoadX509KeyPair(c.ClientCert, c.ClientKey)
	if err != nil {
		return nil, fmt.Errorf("load cert: %w", err)
	}
	caBytes, err := os.ReadFile(c.CABundle)
	if err != nil {
		return nil, fmt.Errorf("read ca: %w", err)
	}
	pool := x509.NewCertPool()
	pool.AppendCertsFromPEM(caBytes)
	return &tls.Config{Certificates: []tls.Certificate{cert}, RootCAs: pool, MinVersion: tls.VersionTLS12}, nil
}
