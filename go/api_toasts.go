package dispatchserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	notifports "github.com/Apurer/dharai-delivery/internal/domains/notifications/ports"
)

// ToastAPI exposes the notification feed of the current browsing session.
type ToastAPI struct {
	feed notifports.Feed
	now  func() time.Time
}

// NewToastAPI wires dependencies.
func NewToastAPI(feed notifports.Feed) ToastAPI {
	return ToastAPI{feed: feed, now: time.Now}
}

// Get /v1/toasts
// Lists toasts that have not left the screen yet
func (api *ToastAPI) ActiveToasts(c *gin.Context) {
	now := api.now()
	toasts, err := api.feed.Active(c.Request.Context(), visitorFrom(c).TabID, now)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromToasts(toasts, now))
}
