package dispatchserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	deliveryports "github.com/Apurer/dharai-delivery/internal/domains/delivery/ports"
)

// RouteAPI serves the route page.
type RouteAPI struct {
	service deliveryports.Service
}

// NewRouteAPI wires dependencies.
func NewRouteAPI(service deliveryports.Service) RouteAPI {
	return RouteAPI{service: service}
}

// Get /v1/route
// Renders the handed-off order
func (api *RouteAPI) RouteView(c *gin.Context) {
	page, err := api.service.RouteView(c.Request.Context(), visitorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromRoute(page))
}

// Post /v1/route/navigation
func (api *RouteAPI) StartNavigation(c *gin.Context) {
	if err := api.service.StartNavigation(c.Request.Context(), visitorFrom(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// Post /v1/route/arrival
func (api *RouteAPI) MarkArrived(c *gin.Context) {
	page, err := api.service.MarkArrived(c.Request.Context(), visitorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromRoute(page))
}

// Post /v1/route/delivery
// Completes the delivery after confirmation
func (api *RouteAPI) ConfirmDelivery(c *gin.Context) {
	var payload ConfirmRequest
	if !bindOptionalJSON(c, &payload) {
		return
	}
	result, err := api.service.ConfirmDelivery(c.Request.Context(), visitorFrom(c), payload.Confirmed)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDelivery(result))
}

// Post /v1/route/call
func (api *RouteAPI) CallCustomer(c *gin.Context) {
	var payload ConfirmRequest
	if !bindOptionalJSON(c, &payload) {
		return
	}
	dial, err := api.service.CallCustomer(c.Request.Context(), visitorFrom(c), payload.Confirmed)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, Dial{Uri: dial.URI})
}

// Post /v1/route/search
func (api *RouteAPI) Search(c *gin.Context) {
	var payload SearchRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := api.service.Search(c.Request.Context(), visitorFrom(c), payload.Query); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// Post /v1/route/back
// Returns to the dashboard keeping the handed-off order
func (api *RouteAPI) GoBack(c *gin.Context) {
	nav, err := api.service.GoBack(c.Request.Context(), visitorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, NavigationResult{Navigation: fromNavigation(nav)})
}
