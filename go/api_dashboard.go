package dispatchserver

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	ordersports "github.com/Apurer/dharai-delivery/internal/domains/orders/ports"
)

// DashboardAPI serves the dashboard page.
type DashboardAPI struct {
	service ordersports.Service
}

// NewDashboardAPI wires dependencies.
func NewDashboardAPI(service ordersports.Service) DashboardAPI {
	return DashboardAPI{service: service}
}

// Get /v1/dashboard
// Lists orders for a signed-in courier
func (api *DashboardAPI) Dashboard(c *gin.Context) {
	page, err := api.service.Dashboard(c.Request.Context(), visitorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDashboard(page))
}

// Get /v1/orders/:orderId
// Shows one order
func (api *DashboardAPI) ShowDetails(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}
	order, err := api.service.ShowDetails(c.Request.Context(), visitorFrom(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromOrder(order))
}

// Post /v1/orders/:orderId/cancel
// Cancels an order after confirmation
func (api *DashboardAPI) CancelOrder(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}
	var payload ConfirmRequest
	if !bindOptionalJSON(c, &payload) {
		return
	}
	result, err := api.service.CancelOrder(c.Request.Context(), visitorFrom(c), id, payload.Confirmed)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromCancel(result))
}

// Post /v1/orders/:orderId/advance
// Completes an order after confirmation
func (api *DashboardAPI) AdvanceOrder(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}
	var payload AdvanceRequest
	if !bindOptionalJSON(c, &payload) {
		return
	}
	order, err := api.service.AdvanceOrder(c.Request.Context(), visitorFrom(c), id, payload.Action, payload.Confirmed)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromOrder(order))
}

// Post /v1/orders/:orderId/route
// Hands the order to the route page
func (api *DashboardAPI) RouteToOrder(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}
	nav, err := api.service.RouteToOrder(c.Request.Context(), visitorFrom(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, NavigationResult{Navigation: fromNavigation(nav)})
}

// Post /v1/logout
// Signs out after confirmation
func (api *DashboardAPI) Logout(c *gin.Context) {
	var payload ConfirmRequest
	if !bindOptionalJSON(c, &payload) {
		return
	}
	nav, err := api.service.Logout(c.Request.Context(), visitorFrom(c), payload.Confirmed)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, NavigationResult{Navigation: fromNavigation(nav)})
}

// Post /v1/menu
// Acknowledges a side menu selection
func (api *DashboardAPI) SelectMenuItem(c *gin.Context) {
	var payload MenuRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := api.service.SelectMenuItem(c.Request.Context(), visitorFrom(c), payload.Label); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseOrderID(c *gin.Context) (int64, bool) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "orderId", c.Param("orderId"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		respondBadRequest(c, fmt.Errorf("invalid format for parameter orderId: %w", err))
		return 0, false
	}
	return id, true
}

// bindOptionalJSON accepts an empty body as the zero value.
func bindOptionalJSON(c *gin.Context, dest any) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dest); err != nil && err != io.EOF {
		respondBadRequest(c, err)
		return false
	}
	return true
}
