package domain

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Route page feedback timing.
const (
	NavigationStartedDelay = time.Second
	ReturnToDashboardWait  = 1500 * time.Millisecond
)

// Texts shown on the route page.
const (
	MessageOpeningMaps       = "Opening Maps app..."
	MessageNavigationStarted = "Navigation started!"
	MessageLocationReached   = "Location reached!"
	MessageDeliveryCompleted = "Delivery completed successfully!"
	PromptConfirmDelivery    = "Confirm delivery completion?"
)

var ErrNoActiveDelivery = errors.New("no order is being delivered")

// Customer is the route page's view of who receives the order.
type Customer struct {
	Name      string
	Address   string
	Phone     string
	AvatarURL string
}

// AvatarURL points at the initials avatar service used for the customer picture.
// Spaces are sent as %20, the way browsers encode a URI component.
func AvatarURL(name string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(name), "+", "%20")
	return fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=667eea&color=fff&size=60", escaped)
}

// CallPrompt is the confirmation shown before dialling.
func CallPrompt(phone string) string {
	return fmt.Sprintf("Call %s?", phone)
}

// DialURI is the handoff the operating environment uses to place the call.
func DialURI(phone string) string {
	return "tel:" + strings.ReplaceAll(phone, " ", "")
}

// SearchMessage echoes a search query. Empty queries yield "".
func SearchMessage(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return ""
	}
	return "Searching for: " + query
}
