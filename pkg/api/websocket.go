package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins - configure properly in production
	},
}

// WSMessage is a command from the client.
type WSMessage struct {
	Type    string          `json:"type"`              // "roll", "move", "end_turn", "moves", "state", "ping"
	ID      string          `json:"id"`                // Request ID for correlating responses
	Payload json.RawMessage `json:"payload,omitempty"` // MoveRequest for "move"
}

// WSResponse is sent to the client. Replies carry the request ID; "state"
// messages pushed after changes made by any client carry none.
type WSResponse struct {
	Type    string      `json:"type"`              // "result", "state", "error", "pong", "closed"
	ID      string      `json:"id,omitempty"`      // Request ID
	Payload interface{} `json:"payload,omitempty"` // Response data
	Error   string      `json:"error,omitempty"`   // Error message if any
	Code    string      `json:"code,omitempty"`    // Error code if any
}

// WSClient is one WebSocket connection attached to a game.
type WSClient struct {
	conn     *websocket.Conn
	game     *Game
	sendChan chan WSResponse
	done     chan struct{} // closed when writePump returns
}

// GameWebSocket handles GET /api/games/{id}/ws. The client sends commands
// and receives their results plus the game state after every change.
func (h *Handlers) GameWebSocket(w http.ResponseWriter, r *http.Request) {
	g, ok := h.game(w, r)
	if !ok {
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	updates, cancel := g.Subscribe()
	client := &WSClient{
		conn:     conn,
		game:     g,
		sendChan: make(chan WSResponse, 256),
		done:     make(chan struct{}),
	}
	client.sendChan <- WSResponse{Type: "state", Payload: g.View()}

	go client.writePump(updates, cancel)
	client.readPump()
}

// writePump is the only writer on the connection.
func (c *WSClient) writePump(updates <-chan GameResponse, cancel func()) {
	defer func() {
		close(c.done)
		cancel()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.sendChan:
			if !ok {
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case state, ok := <-updates:
			if !ok {
				c.conn.WriteJSON(WSResponse{Type: "closed"})
				return
			}
			if err := c.conn.WriteJSON(WSResponse{Type: "state", Payload: state}); err != nil {
				return
			}
		}
	}
}

func (c *WSClient) readPump() {
	defer func() { close(c.sendChan); c.conn.Close() }()
	for {
		var msg WSMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		c.handleMessage(msg)
	}
}

func (c *WSClient) handleMessage(msg WSMessage) {
	switch msg.Type {
	case "roll":
		resp, err := roll(c.game)
		c.reply(msg.ID, resp, err)
	case "move":
		var req MoveRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			c.send(WSResponse{Type: "error", ID: msg.ID, Error: "invalid payload", Code: "INVALID_JSON"})
			return
		}
		resp, err := move(c.game, req)
		c.reply(msg.ID, resp, err)
	case "end_turn":
		resp, err := endTurn(c.game)
		c.reply(msg.ID, resp, err)
	case "moves":
		c.reply(msg.ID, possibleMoves(c.game), nil)
	case "state":
		c.reply(msg.ID, c.game.View(), nil)
	case "ping":
		c.send(WSResponse{Type: "pong", ID: msg.ID})
	default:
		c.send(WSResponse{Type: "error", ID: msg.ID, Error: "unknown message type", Code: "UNKNOWN_TYPE"})
	}
}

// send queues msg for writePump. It drops msg once writePump has stopped.
func (c *WSClient) send(msg WSResponse) {
	select {
	case c.sendChan <- msg:
	case <-c.done:
	}
}

func (c *WSClient) reply(id string, payload interface{}, err error) {
	if err != nil {
		_, code := errorStatus(err)
		c.send(WSResponse{Type: "error", ID: id, Error: err.Error(), Code: code})
		return
	}
	c.send(WSResponse{Type: "result", ID: id, Payload: payload})
}
