package services

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"fitops/internal/config"
)

// VehicleEvent names the vehicle-lifecycle moments that trigger a customer
// notification.
type VehicleEvent string

const (
	EventVehicleReceived VehicleEvent = "vehicle_received"
	EventJobReady        VehicleEvent = "job_ready"
	EventJobDelivered    VehicleEvent = "job_delivered"
)

// NotificationService delivers WhatsApp messages through an external
// gateway. Delivery is fire-and-forget: failures are logged, never
// propagated, and no lifecycle transition depends on it.
type NotificationService interface {
	NotifyVehicleEvent(ctx context.Context, event VehicleEvent, phone, message string)
}

type notificationService struct {
	cfg    config.NotifyConfig
	client *http.Client
}

func NewNotificationService(cfg config.NotifyConfig) NotificationService {
	return &notificationService{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

type gatewayMessage struct {
	To     string `json:"to"`
	Body   string `json:"body"`
	Event  string `json:"event"`
	APIKey string `json:"api_key"`
}

func (s *notificationService) NotifyVehicleEvent(ctx context.Context, event VehicleEvent, phone, message string) {
	if !s.cfg.Enabled || s.cfg.GatewayURL == "" {
		return
	}
	payload, err := json.Marshal(gatewayMessage{
		To:     phone,
		Body:   message,
		Event:  string(event),
		APIKey: s.cfg.APIKey,
	})
	if err != nil {
		log.Printf("WARN: failed to encode notification payload: %v", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.GatewayURL, bytes.NewReader(payload))
	if err != nil {
		log.Printf("WARN: failed to build notification request: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("WARN: notification delivery failed (%s to %s): %v", event, phone, err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		log.Printf("WARN: notification gateway returned %d for %s", resp.StatusCode, event)
	}
}

// noopNotificationService is used when no gateway is configured.
type noopNotificationService struct{}

func NewNoopNotificationService() NotificationService {
	return noopNotificationService{}
}

func (noopNotificationService) NotifyVehicleEvent(context.Context, VehicleEvent, string, string) {}
