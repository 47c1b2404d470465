package services

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Jayanth4577/CryptoChuck/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventService struct {
	DB *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{DB: db}
}

// Emit writes the single terminal event for a state transition. It must be
// called with the transaction of the operation it describes so that the
// event commits (or rolls back) atomically with the mutation.
func (s *EventService) Emit(tx *gorm.DB, kind string, actor string, refID uint64, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s payload: %w", kind, err)
	}
	ev := models.GameEvent{
		ID:      uuid.NewString(),
		Kind:    kind,
		Actor:   actor,
		RefID:   refID,
		Payload: string(body),
	}
	return tx.Create(&ev).Error
}

// Recent returns the latest events for the read-only query surface.
func (s *EventService) Recent(limit int) ([]models.GameEvent, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var events []models.GameEvent
	err := s.DB.Order("created_at DESC").Limit(limit).Find(&events).Error
	return events, err
}

// StreamSSE streams game events to downstream indexers in real time.
func (s *EventService) StreamSSE(c *fiber.Ctx) error {
	// SSE headers
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no") // nginx

	kindFilter := c.Query("kind")

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()

		var lastMaxCreatedAt time.Time

		// Initialize cursor at the newest existing event
		var latest models.GameEvent
		if err := s.DB.Order("created_at DESC").First(&latest).Error; err == nil {
			lastMaxCreatedAt = latest.CreatedAt
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("SSE init error: %v", err)
		}

		// Initial keepalive (comment event)
		w.WriteString(":\n\n")
		w.Flush()

		for {
			select {
			case <-ticker.C:
				q := s.DB.Where("created_at > ?", lastMaxCreatedAt).
					Order("created_at ASC")
				if kindFilter != "" {
					q = q.Where("kind = ?", kindFilter)
				}

				var fresh []models.GameEvent
				if err := q.Find(&fresh).Error; err != nil {
					log.Printf("SSE query error: %v", err)
					continue
				}
				if len(fresh) == 0 {
					continue
				}

				lastMaxCreatedAt = fresh[len(fresh)-1].CreatedAt

				for _, ev := range fresh {
					payload, _ := json.Marshal(ev)
					fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Kind, payload)
				}

				if err := w.Flush(); err != nil {
					// Client disconnected
					return
				}

			case <-c.Context().Done():
				return
			}
		}
	})

	return nil
}
