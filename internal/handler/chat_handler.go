package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/fanbaselab/fanbase/internal/repository"
	"github.com/fanbaselab/fanbase/internal/service"
	"github.com/fanbaselab/fanbase/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	chatWriteWait  = 10 * time.Second
	chatPongWait   = 60 * time.Second
	chatPingPeriod = 54 * time.Second
	chatMaxMsgSize = 1024
)

type ChatHandler struct {
	hub      *service.ChatHub
	users    repository.UserRepository
	upgrader websocket.Upgrader
}

func NewChatHandler(hub *service.ChatHub, users repository.UserRepository) *ChatHandler {
	return &ChatHandler{
		hub:   hub,
		users: users,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// History serves the persisted chat tail over plain HTTP.
func (h *ChatHandler) History(c *gin.Context) {
	history, err := h.hub.History(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, history)
}

type inboundChat struct {
	Content string `json:"content"`
}

// Serve upgrades the connection and joins the authenticated user to the hub.
func (h *ChatHandler) Serve(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	user, err := h.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	client := &service.ChatClient{
		UserID:   user.ID,
		Username: user.Username,
		TeamID:   user.TeamID,
		Send:     make(chan []byte, 32),
	}
	h.hub.Register(client)

	go h.writePump(conn, client)
	go h.readPump(conn, client)
}

func (h *ChatHandler) readPump(conn *websocket.Conn, client *service.ChatClient) {
	defer func() {
		h.hub.Unregister(client)
		conn.Close()
	}()

	conn.SetReadLimit(chatMaxMsgSize)
	conn.SetReadDeadline(time.Now().Add(chatPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(chatPongWait))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg inboundChat
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		h.hub.Publish(client, msg.Content)
	}
}

func (h *ChatHandler) writePump(conn *websocket.Conn, client *service.ChatClient) {
	ticker := time.NewTicker(chatPingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case raw, ok := <-client.Send:
			conn.SetWriteDeadline(time.Now().Add(chatWriteWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(chatWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
