package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"complaint-portal/pkg/queue"
	"complaint-portal/services/complaint-service/models"
)

const eventQueueName = "complaint_events"

// departmentFor maps an issue type to the municipal department that handles
// it.
func departmentFor(issueType string) string {
	switch issueType {
	case models.IssueRoad:
		return "PUBLIC WORKS"
	case models.IssueStreetLight:
		return "STREET LIGHTING"
	case models.IssueWater:
		return "WATER UTILITY"
	case models.IssueGarbage:
		return "SANITATION"
	default:
		return "CITY HALL (GENERAL)"
	}
}

func main() {
	amqpURI := os.Getenv("RABBITMQ_URL")
	if amqpURI == "" {
		host := os.Getenv("RABBITMQ_HOST")
		if host == "" {
			host = "localhost"
		}
		port := os.Getenv("RABBITMQ_PORT")
		if port == "" {
			port = "5672"
		}
		user := os.Getenv("RABBITMQ_USER")
		if user == "" {
			user = "guest"
		}
		pass := os.Getenv("RABBITMQ_PASS")
		if pass == "" {
			pass = "guest"
		}
		amqpURI = fmt.Sprintf("amqp://%s:%s@%s:%s/", user, pass, host, port)
	}

	conn, ch, err := queue.ConnectRabbitMQ(amqpURI)
	if err != nil {
		log.Fatalf("[ERROR] Failed to connect to RabbitMQ: %v", err)
	}
	defer conn.Close()
	defer ch.Close()

	log.Println("[OK] Dispatcher Service connected to RabbitMQ")

	msgs, err := queue.ConsumeMessages(ch, eventQueueName)
	if err != nil {
		log.Fatalf("[ERROR] Failed to consume queue: %v", err)
	}

	log.Printf("[INFO] Waiting for complaint events on '%s'. Press CTRL+C to exit.", eventQueueName)

	for d := range msgs {
		var event models.ComplaintEvent
		if err := json.Unmarshal(d.Body, &event); err != nil {
			log.Printf("[WARN] Error parsing event: %v", err)
			continue
		}

		switch event.Type {
		case models.EventComplaintCreated:
			department := departmentFor(event.IssueType)
			log.Printf("[ROUTING] Complaint '%s' (%s at %s) forwarded to: %s",
				event.Title, event.IssueType, event.Location, department)
		case models.EventStatusUpdated:
			log.Printf("[STATUS] Complaint '%s' is now %s", event.Title, event.Status)
		default:
			log.Printf("[WARN] Unknown event type: %s", event.Type)
		}
	}

	log.Println("[INFO] Event stream closed, shutting down")
}
