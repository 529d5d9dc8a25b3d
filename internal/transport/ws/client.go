package ws

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"cardline/internal/game"
	"cardline/internal/shared/logger"
)

var ErrUnknownCommand = errors.New("unknown command type")

const (
	writeWait    = 10 * time.Second
	pongWait     = time.Minute
	pingInterval = 30 * time.Second
	sendBuffer   = 256
)

type client struct {
	conn     *websocket.Conn
	send     chan []byte
	limiter  *rate.Limiter
	hub      *Hub
	room     *game.Room
	playerID string

	closeOnce sync.Once
}

func newClient(conn *websocket.Conn, hub *Hub, room *game.Room, playerID string) *client {
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	return &client{
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		limiter:  rate.NewLimiter(5, 10),
		hub:      hub,
		room:     room,
		playerID: playerID,
	}
}

func (c *client) enqueue(data []byte) {
	select {
	case c.send <- data:
	default:
		// Slow consumer; drop the frame rather than block the room.
	}
}

func (c *client) closeSend() {
	c.closeOnce.Do(func() { close(c.send) })
}

type commandFrame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// detach withdraws this socket's registration. The player is flagged
// disconnected only while this socket was still their current one; when a
// reconnect already replaced it, the old pump's teardown must not clobber
// the new socket's connected flag.
func (c *client) detach() {
	if c.hub.unregister(c.room.Code(), c.playerID, c) {
		c.room.Do(game.CommandEnvelope{From: c.playerID, Cmd: game.SetConnected{Connected: false}})
	}
	c.closeSend()
}

// readPump decodes command frames and posts them into the room's serialized
// inbox. On socket death the player is flagged disconnected, never removed.
func (c *client) readPump() {
	defer func() {
		c.detach()
		c.conn.Close()
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		if !c.limiter.Allow() {
			c.fail(game.ErrRateLimited)
			continue
		}
		var frame commandFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			continue
		}
		cmd, err := decodeCommand(frame)
		if err != nil {
			logger.Debugf("[Client %s] Dropping unknown command %q", c.playerID, frame.Type)
			continue
		}
		c.room.Do(game.CommandEnvelope{From: c.playerID, Cmd: cmd})
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *client) fail(err error) {
	data, encErr := encodeEvent(game.ErrorEvent{Code: game.ErrorCode(err), Message: err.Error()})
	if encErr != nil {
		return
	}
	c.enqueue(data)
}

func decodeCommand(frame commandFrame) (game.Command, error) {
	var (
		cmd game.Command
		err error
	)
	unmarshal := func(v game.Command) game.Command {
		if len(frame.Data) > 0 {
			err = json.Unmarshal(frame.Data, v)
		}
		return v
	}

	switch frame.Type {
	case "start-round":
		cmd = unmarshal(&game.StartRound{})
	case "submit-answer":
		cmd = unmarshal(&game.SubmitAnswer{})
	case "preview-ordering":
		cmd = unmarshal(&game.PreviewOrdering{})
	case "submit-ordering":
		cmd = unmarshal(&game.SubmitOrdering{})
	case "update-settings":
		cmd = unmarshal(&game.UpdateSettings{})
	case "kick":
		cmd = unmarshal(&game.KickPlayer{})
	case "shuffle-seats":
		cmd = &game.ShuffleSeats{}
	case "end-round":
		cmd = &game.EndRound{}
	case "advance-round":
		cmd = &game.AdvanceRound{}
	case "leave-room":
		cmd = &game.LeaveRoom{}
	default:
		return nil, ErrUnknownCommand
	}
	if err != nil {
		return nil, err
	}
	return deref(cmd), nil
}

// deref flattens the pointer the decoder needed into the value variant the
// room switches on.
func deref(cmd game.Command) game.Command {
	switch v := cmd.(type) {
	case *game.StartRound:
		return *v
	case *game.SubmitAnswer:
		return *v
	case *game.PreviewOrdering:
		return *v
	case *game.SubmitOrdering:
		return *v
	case *game.UpdateSettings:
		return *v
	case *game.KickPlayer:
		return *v
	case *game.ShuffleSeats:
		return *v
	case *game.EndRound:
		return *v
	case *game.AdvanceRound:
		return *v
	case *game.LeaveRoom:
		return *v
	}
	return cmd
}
