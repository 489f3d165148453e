package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lifeseed/internal/logger"
	"lifeseed/internal/services"
)

const (
	eventBufferSize   = 32
	keepAliveInterval = 25 * time.Second
)

// EventsHandler streams store change notifications to connected views.
type EventsHandler struct {
	notifiers []services.ChangeNotifier
}

// NewEventsHandler creates a new EventsHandler subscribed to every given store.
func NewEventsHandler(notifiers ...services.ChangeNotifier) *EventsHandler {
	return &EventsHandler{notifiers: notifiers}
}

// Stream handles a Server-Sent Events subscription.
// @Summary     Stream changes
// @Description Server-Sent Events stream of committed store mutations ("change" events)
// @Tags        events
// @Produce     text/event-stream
// @Security    BearerAuth
// @Success     200 {object} services.Change "change event payload"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /events [get]
func (h *EventsHandler) Stream(c *gin.Context) {
	events := make(chan services.Change, eventBufferSize)
	for _, n := range h.notifiers {
		unsubscribe := n.Subscribe(func(change services.Change) {
			select {
			case events <- change:
			default:
				logger.Named("events").Warnw("dropping change for slow subscriber",
					"store", change.Store, "action", change.Action)
			}
		})
		defer unsubscribe()
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	c.SSEvent("ready", gin.H{"stores": []string{services.StoreHabits, services.StoreTasks, services.StoreFinance}})
	c.Writer.Flush()

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case change := <-events:
			c.SSEvent("change", change)
			c.Writer.Flush()
		case <-ticker.C:
			c.SSEvent("ping", gin.H{"at": time.Now()})
			c.Writer.Flush()
		}
	}
}
