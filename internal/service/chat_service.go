package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/fanbaselab/fanbase/internal/model"
	"github.com/fanbaselab/fanbase/pkg/localstore"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

const (
	chatHistoryKey = "chat:history"
	chatHistoryMax = 100
)

// ChatHub fans community chat messages out to every connected client and
// keeps a bounded history in the store so late joiners get context. All
// mutation happens on the Run goroutine; the channels are the only API.
type ChatHub struct {
	store     localstore.Store
	sanitizer *bluemonday.Policy

	clients    map[*ChatClient]bool
	register   chan *ChatClient
	unregister chan *ChatClient
	inbound    chan model.ChatMessage
}

// ChatClient is one websocket connection's send queue.
type ChatClient struct {
	UserID   string
	Username string
	TeamID   string
	Send     chan []byte
}

func NewChatHub(store localstore.Store) *ChatHub {
	return &ChatHub{
		store:      store,
		sanitizer:  bluemonday.StrictPolicy(),
		clients:    make(map[*ChatClient]bool),
		register:   make(chan *ChatClient),
		unregister: make(chan *ChatClient),
		inbound:    make(chan model.ChatMessage, 64),
	}
}

func (h *ChatHub) Register(c *ChatClient)   { h.register <- c }
func (h *ChatHub) Unregister(c *ChatClient) { h.unregister <- c }

// Publish sanitizes and queues a message from a client.
func (h *ChatHub) Publish(c *ChatClient, content string) {
	content = h.sanitizer.Sanitize(content)
	if content == "" {
		return
	}
	h.inbound <- model.ChatMessage{
		ID:        uuid.NewString(),
		UserID:    c.UserID,
		Username:  c.Username,
		TeamID:    c.TeamID,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// History returns the persisted message tail.
func (h *ChatHub) History(ctx context.Context) ([]model.ChatMessage, error) {
	raw, err := h.store.Get(ctx, chatHistoryKey)
	if err != nil {
		if err == localstore.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}
	var history []model.ChatMessage
	if err := json.Unmarshal(raw, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// Run owns the client set. Call it once, on its own goroutine.
func (h *ChatHub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				close(c.Send)
			}
			return

		case c := <-h.register:
			h.clients[c] = true

		case c := <-h.unregister:
			if h.clients[c] {
				delete(h.clients, c)
				close(c.Send)
			}

		case msg := <-h.inbound:
			h.appendHistory(ctx, msg)
			raw, err := json.Marshal(msg)
			if err != nil {
				continue
			}
			for c := range h.clients {
				select {
				case c.Send <- raw:
				default:
					// Slow consumer; drop the connection rather than block the hub.
					delete(h.clients, c)
					close(c.Send)
				}
			}
		}
	}
}

func (h *ChatHub) appendHistory(ctx context.Context, msg model.ChatMessage) {
	history, err := h.History(ctx)
	if err != nil {
		log.Printf("failed to load chat history: %v", err)
		history = nil
	}
	history = append(history, msg)
	if len(history) > chatHistoryMax {
		history = history[len(history)-chatHistoryMax:]
	}
	raw, err := json.Marshal(history)
	if err != nil {
		return
	}
	if err := h.store.Set(ctx, chatHistoryKey, raw); err != nil {
		log.Printf("failed to persist chat history: %v", err)
	}
}
