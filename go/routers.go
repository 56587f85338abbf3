package dispatchserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of every page.
type ApiHandleFunctions struct {
	// Identity resolves the visitor ahead of every /v1 handler.
	Identity gin.HandlerFunc

	AuthAPI      AuthAPI
	DashboardAPI DashboardAPI
	RouteAPI     RouteAPI
	ToastAPI     ToastAPI
}

// NewRouter returns a gin engine with middleware installed ahead of every route.
// Middleware must be passed here since gin binds handler chains at registration.
func NewRouter(handleFunctions ApiHandleFunctions, middleware ...gin.HandlerFunc) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions, middleware...)
}

// NewRouterWithGinEngine registers routes on an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions, middleware ...gin.HandlerFunc) *gin.Engine {
	router.Use(middleware...)
	router.GET("/health", Health)
	v1 := router.Group("/v1")
	if handleFunctions.Identity != nil {
		v1.Use(handleFunctions.Identity)
	}
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			v1.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			v1.POST(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc answers routes that have no handler wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// Health reports liveness.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"LoginView", http.MethodGet, "/login", handleFunctions.AuthAPI.LoginView},
		{"Login", http.MethodPost, "/login", handleFunctions.AuthAPI.Login},
		{"CheckEmail", http.MethodGet, "/login/email-check", handleFunctions.AuthAPI.CheckEmail},
		{"Dashboard", http.MethodGet, "/dashboard", handleFunctions.DashboardAPI.Dashboard},
		{"ShowDetails", http.MethodGet, "/orders/:orderId", handleFunctions.DashboardAPI.ShowDetails},
		{"CancelOrder", http.MethodPost, "/orders/:orderId/cancel", handleFunctions.DashboardAPI.CancelOrder},
		{"AdvanceOrder", http.MethodPost, "/orders/:orderId/advance", handleFunctions.DashboardAPI.AdvanceOrder},
		{"RouteToOrder", http.MethodPost, "/orders/:orderId/route", handleFunctions.DashboardAPI.RouteToOrder},
		{"Logout", http.MethodPost, "/logout", handleFunctions.DashboardAPI.Logout},
		{"SelectMenuItem", http.MethodPost, "/menu", handleFunctions.DashboardAPI.SelectMenuItem},
		{"RouteView", http.MethodGet, "/route", handleFunctions.RouteAPI.RouteView},
		{"StartNavigation", http.MethodPost, "/route/navigation", handleFunctions.RouteAPI.StartNavigation},
		{"MarkArrived", http.MethodPost, "/route/arrival", handleFunctions.RouteAPI.MarkArrived},
		{"ConfirmDelivery", http.MethodPost, "/route/delivery", handleFunctions.RouteAPI.ConfirmDelivery},
		{"CallCustomer", http.MethodPost, "/route/call", handleFunctions.RouteAPI.CallCustomer},
		{"Search", http.MethodPost, "/route/search", handleFunctions.RouteAPI.Search},
		{"GoBack", http.MethodPost, "/route/back", handleFunctions.RouteAPI.GoBack},
		{"ActiveToasts", http.MethodGet, "/toasts", handleFunctions.ToastAPI.ActiveToasts},
	}
}
