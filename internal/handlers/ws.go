package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/MontaQLabs/PolkArena-sub001/internal/realtime"
	"github.com/MontaQLabs/PolkArena-sub001/internal/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 50 * time.Second
)

var errJoinRequired = errors.New("first frame must be a join control frame")

// controlFrame is the only inbound protocol the socket speaks. Game actions
// (buzz, answer, status changes) go over plain HTTP; the socket is a
// push-delivery channel with a join/leave handshake.
type controlFrame struct {
	Type   string `json:"type"`
	RoomID string `json:"room_id"`
	Token  string `json:"token,omitempty"`
}

// WSHandler serves the WebSocket push transport for one game domain.
type WSHandler struct {
	hub      *realtime.Hub
	identity *services.IdentityService
	snapshot SnapshotFunc
}

func NewWSHandler(hub *realtime.Hub, identity *services.IdentityService, snapshot SnapshotFunc) *WSHandler {
	return &WSHandler{hub: hub, identity: identity, snapshot: snapshot}
}

// Handle godoc
// @Summary      Subscribe to room events over WebSocket
// @Description  First client frame must be {"type":"join","room_id":...,"token":...}; a leave frame or close unsubscribes
// @Tags         events
// @Router       /ws [get]
func (h *WSHandler) Handle(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Warn("ws: upgrade failed")
		return
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	join, err := h.readJoin(conn)
	if err != nil {
		h.closeWith(conn, websocket.ClosePolicyViolation, err.Error())
		return
	}

	userID := "anonymous"
	if join.Token != "" {
		id, _, err := h.identity.ValidateToken(join.Token)
		if err != nil {
			h.closeWith(conn, websocket.ClosePolicyViolation, "invalid token")
			return
		}
		userID = id
	}

	// Register before fetching the snapshot: an event broadcast while the
	// snapshot is read lands in the subscriber buffer and the snapshot
	// supersedes it, so nothing can fall between the two.
	sub := h.hub.Subscribe(join.RoomID)
	defer h.hub.Unsubscribe(sub)

	snap, err := h.snapshot(join.RoomID)
	if err != nil {
		h.closeWith(conn, websocket.CloseNormalClosure, "room not found")
		return
	}

	logrus.WithFields(logrus.Fields{"room": join.RoomID, "user": userID}).Info("ws: client joined")
	h.hub.Send(sub, realtime.RoomUpdate{Room: snap})

	go h.writeLoop(conn, sub)

	// Read loop: only leave frames matter; anything unreadable or a close
	// ends the subscription.
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var frame controlFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			continue
		}
		if frame.Type == "leave" {
			return
		}
	}
}

func (h *WSHandler) readJoin(conn *websocket.Conn) (controlFrame, error) {
	var frame controlFrame
	if err := conn.ReadJSON(&frame); err != nil {
		return controlFrame{}, errJoinRequired
	}
	if frame.Type != "join" || frame.RoomID == "" {
		return controlFrame{}, errJoinRequired
	}
	return frame, nil
}

func (h *WSHandler) writeLoop(conn *websocket.Conn, sub *realtime.Subscriber) {
	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()

	for {
		select {
		case data, ok := <-sub.Events():
			if !ok {
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(wsWriteWait))
				conn.Close()
				return
			}
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				conn.Close()
				return
			}
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				conn.Close()
				return
			}
		}
	}
}

func (h *WSHandler) closeWith(conn *websocket.Conn, code int, reason string) {
	conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason), time.Now().Add(wsWriteWait))
}
