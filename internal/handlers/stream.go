package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MontaQLabs/PolkArena-sub001/internal/realtime"
)

// ssePingInterval keeps intermediaries from reaping idle streams and lets
// the server notice half-open connections.
const ssePingInterval = 30 * time.Second

// SnapshotFunc resolves the current full state of a room for the mandatory
// snapshot sent to every new subscriber. Each game domain supplies its own.
type SnapshotFunc func(roomID string) (any, error)

// StreamHandler serves the SSE push transport for one game domain.
type StreamHandler struct {
	hub      *realtime.Hub
	snapshot SnapshotFunc
}

func NewStreamHandler(hub *realtime.Hub, snapshot SnapshotFunc) *StreamHandler {
	return &StreamHandler{hub: hub, snapshot: snapshot}
}

// Stream godoc
// @Summary      Subscribe to room events over SSE
// @Description  Long-lived event stream; the first frame is always a full room snapshot
// @Tags         events
// @Produce      text/event-stream
// @Param        id path string true "Room ID"
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/events/{id} [get]
func (h *StreamHandler) Stream(c *gin.Context) {
	roomID := c.Param("id")

	// Register before fetching the snapshot: an event broadcast while the
	// snapshot is read lands in the subscriber buffer and the snapshot
	// supersedes it, so nothing can fall between the two.
	sub := h.hub.Subscribe(roomID)
	defer h.hub.Unsubscribe(sub)

	snap, err := h.snapshot(roomID)
	if err != nil {
		fail(c, err)
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	h.hub.Send(sub, realtime.RoomUpdate{Room: snap})

	ping := time.NewTicker(ssePingInterval)
	defer ping.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case data, ok := <-sub.Events():
			if !ok {
				return
			}
			fmt.Fprintf(c.Writer, "data: %s\n\n", data)
			c.Writer.Flush()
		case <-ping.C:
			fmt.Fprintf(c.Writer, ": ping\n\n")
			c.Writer.Flush()
		}
	}
}
