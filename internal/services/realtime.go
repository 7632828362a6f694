package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/lunaria-app/sanctuary-backend/internal/database"
)

// Sanctuary event types pushed to connected readers.
const (
	EventEntrySaved  = "entry_saved"
	EventTakingSpace = "taking_space"
	EventNoteSent    = "note_sent"
)

// sanctuaryChannel is the Redis Pub/Sub channel carrying events, so fan-out
// stays consistent across instances.
const sanctuaryChannel = "sanctuary:events"

// SanctuaryEvent is the payload broadcast over Redis and WebSocket.
type SanctuaryEvent struct {
	Type        string    `json:"type"`
	EntryDate   string    `json:"entry_date,omitempty"`
	NoWordsDay  bool      `json:"no_words_day,omitempty"`
	TakingSpace bool      `json:"taking_space,omitempty"`
	Timestamp   time.Time `json:"timestamp,omitempty"`
}

// EventConn is the minimal interface a WebSocket connection must satisfy.
type EventConn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// readerHub is the registry of connected reader sockets on this instance.
type readerHub struct {
	mu          sync.RWMutex
	connections map[string]EventConn
}

var (
	hub            = &readerHub{connections: make(map[string]EventConn)}
	subscriberOnce sync.Once
)

// RegisterReaderConnection registers or replaces a reader's connection.
func RegisterReaderConnection(userID string, conn EventConn) {
	hub.mu.Lock()
	hub.connections[userID] = conn
	hub.mu.Unlock()
}

// UnregisterReaderConnection removes a reader's connection.
func UnregisterReaderConnection(userID string) {
	hub.mu.Lock()
	delete(hub.connections, userID)
	hub.mu.Unlock()
}

// fanOutEvent sends an event to every locally connected reader.
func fanOutEvent(event SanctuaryEvent) {
	hub.mu.RLock()
	defer hub.mu.RUnlock()

	for _, conn := range hub.connections {
		// Non-blocking best-effort send.
		go func(c EventConn) {
			if err := c.WriteJSON(event); err != nil {
				log.Printf("error writing sanctuary event to websocket: %v", err)
			}
		}(conn)
	}
}

// StartSanctuarySubscriber ensures a single shared Redis listener per instance.
func StartSanctuarySubscriber(ctx context.Context) {
	subscriberOnce.Do(func() {
		go runSanctuarySubscriber(ctx)
	})
}

func runSanctuarySubscriber(ctx context.Context) {
	client := database.RedisClient
	if client == nil {
		log.Println("Redis client not initialized; sanctuary subscriber not started")
		return
	}

	backoff := time.Second

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		func() {
			pubsub := client.Subscribe(ctx, sanctuaryChannel)
			defer pubsub.Close()

			log.Println("✅ Sanctuary Redis subscriber started")

			for {
				msg, err := pubsub.ReceiveMessage(ctx)
				if err != nil {
					log.Printf("Redis subscriber error: %v", err)
					time.Sleep(backoff)
					backoff *= 2
					if backoff > 30*time.Second {
						backoff = 30 * time.Second
					}
					return
				}

				backoff = time.Second

				var event SanctuaryEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Printf("failed to unmarshal sanctuary event: %v", err)
					continue
				}

				fanOutEvent(event)
			}
		}()
	}
}

// PublishSanctuaryEvent publishes an event to Redis; called from the save
// and settings paths. Failures are non-blocking by design.
func PublishSanctuaryEvent(ctx context.Context, event SanctuaryEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return database.RedisClient.Publish(ctx, sanctuaryChannel, data).Err()
}
