package services

import (
	"bufio"
	"context"
	"encoding/json"
	"log"
	"os"
	"strings"

	"github.com/VineethSendilraj/COPilot/models"
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

const detectionTopic = "detection-events"

// StartDetectionConsumer starts a background goroutine consuming the
// detection-events topic. Each event becomes one incident plus one alert
// referencing it. Missing Kafka configuration disables the consumer rather
// than failing startup; the webhook ingest path remains available.
func StartDetectionConsumer(propsPath string, incidentService *IncidentService, alertService *AlertService) error {
	if propsPath == "" {
		propsPath = "client.properties"
	}

	file, err := os.Open(propsPath)
	if err != nil {
		log.Printf("[detections] no kafka client properties at %s, consumer disabled: %v", propsPath, err)
		return nil
	}
	defer file.Close()

	props := make(map[string]string)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		props[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	if err := scanner.Err(); err != nil {
		log.Printf("[detections] error reading properties: %v", err)
		return nil
	}

	// Allow overriding SASL credentials from env
	if u := os.Getenv("CONFLUENT_API_KEY"); u != "" {
		props["sasl.username"] = u
	}
	if p := os.Getenv("CONFLUENT_SECRET"); p != "" {
		props["sasl.password"] = p
	}

	cfg := kafka.ConfigMap{}
	for k, v := range props {
		cfg[k] = v
	}
	cfg["group.id"] = "copilot-detection-consumer"
	if _, ok := cfg["auto.offset.reset"]; !ok {
		cfg["auto.offset.reset"] = "latest"
	}

	consumer, err := kafka.NewConsumer(&cfg)
	if err != nil {
		return err
	}

	if err := consumer.SubscribeTopics([]string{detectionTopic}, nil); err != nil {
		consumer.Close()
		return err
	}

	go func() {
		defer consumer.Close()

		for {
			ev := consumer.Poll(1000)
			if ev == nil {
				continue
			}

			switch e := ev.(type) {
			case *kafka.Message:
				var detection models.DetectionEvent
				if err := json.Unmarshal(e.Value, &detection); err != nil {
					log.Printf("[detections] failed to unmarshal event: %v", err)
					continue
				}

				ctx := context.Background()
				incident, err := incidentService.CreateIncident(ctx, &detection)
				if err != nil {
					log.Printf("[detections] rejected event for officer %s: %v", detection.OfficerID, err)
					continue
				}

				if _, err := alertService.CreateAlert(ctx, &detection, incident.ID); err != nil {
					log.Printf("[detections] failed to create alert for incident %s: %v", incident.ID, err)
					continue
				}

				log.Printf("[detections] ingested %s incident %s for officer %s",
					detection.EscalationType, incident.ID, detection.OfficerID)

			case kafka.Error:
				log.Printf("[detections] kafka error: %v", e)
			default:
				// ignore other events
			}
		}
	}()

	return nil
}
