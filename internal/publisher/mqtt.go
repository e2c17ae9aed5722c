package publisher

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"tariffscope/internal/config"
	"tariffscope/pkg/models"
)

// Publisher sends analysis summaries to an MQTT broker, typically for a
// Home Assistant sensor to pick up
type Publisher struct {
	client      mqtt.Client
	topicPrefix string
}

// New creates a publisher connected to the configured broker
func New(cfg config.MQTTConfig) (*Publisher, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("MQTT publishing is not enabled in config")
	}
	if cfg.Broker == "" {
		return nil, fmt.Errorf("MQTT broker address is required when enabled")
	}

	// Configure MQTT client options
	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s", cfg.Broker))
	opts.SetClientID("tariffscope")
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectTimeout(10 * time.Second)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	// Create and connect client
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connecting to MQTT broker: %w", token.Error())
	}

	return &Publisher{
		client:      client,
		topicPrefix: cfg.GetTopicPrefix(),
	}, nil
}

// Summary is the JSON payload published for one analysis run
type Summary struct {
	RunID       string  `json:"run_id"`
	GeneratedAt string  `json:"generated_at"`
	TotalKWh    float64 `json:"total_kwh"`
	TOUCost     float64 `json:"tou_cost"`
	FlatCost    float64 `json:"flat_cost"`
	Savings     float64 `json:"savings"`
}

// PublishRun publishes an analysis run summary as a retained message so
// subscribers joining later still see the latest result
func (p *Publisher) PublishRun(run models.AnalysisRun) error {
	payload := Summary{
		RunID:       run.ID,
		GeneratedAt: run.CreatedAt.Format(time.RFC3339),
		TotalKWh:    run.TotalKWh,
		TOUCost:     run.TOUCost,
		FlatCost:    run.FlatCost,
		Savings:     run.Savings,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	topic := fmt.Sprintf("%s/summary", p.topicPrefix)
	token := p.client.Publish(topic, 1, true, body)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("publishing to %s: %w", topic, token.Error())
	}

	return nil
}

// Close disconnects from the MQTT broker
func (p *Publisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}
