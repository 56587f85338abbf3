package dispatchserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	authapp "github.com/Apurer/dharai-delivery/internal/domains/auth/application"
	authdomain "github.com/Apurer/dharai-delivery/internal/domains/auth/domain"
	deliveryapp "github.com/Apurer/dharai-delivery/internal/domains/delivery/application"
	deliverydomain "github.com/Apurer/dharai-delivery/internal/domains/delivery/domain"
	ordersapp "github.com/Apurer/dharai-delivery/internal/domains/orders/application"
	ordersdomain "github.com/Apurer/dharai-delivery/internal/domains/orders/domain"
	ordersports "github.com/Apurer/dharai-delivery/internal/domains/orders/ports"
	sessionapp "github.com/Apurer/dharai-delivery/internal/domains/session/application"
	apierrors "github.com/Apurer/dharai-delivery/internal/shared/errors"
	"github.com/Apurer/dharai-delivery/internal/shared/view"
)

var responder = apierrors.NewChainedResponder("",
	confirmationProblem,
	loginFormProblem,
	sessionProblem,
	orderProblem,
	deliveryProblem,
)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responder.Respond(c, problem)
}

// respondServiceError maps application errors to RFC 7807 responses.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

func respondBadRequest(c *gin.Context, err error) {
	respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
}

func confirmationProblem(err error) (apierrors.ProblemDetail, bool) {
	var confirm *view.ConfirmationRequired
	if errors.As(err, &confirm) {
		return apierrors.NewConfirmationProblem(confirm.Prompt), true
	}
	return apierrors.ProblemDetail{}, false
}

func loginFormProblem(err error) (apierrors.ProblemDetail, bool) {
	var verr *authdomain.ValidationError
	switch {
	case errors.As(err, &verr):
		return apierrors.NewValidationProblem(verr.Messages()).
			WithExtension("effect", "shake").
			WithExtension("effectMs", authdomain.ShakeDuration.Milliseconds()), true
	case errors.Is(err, authapp.ErrSuperseded):
		return apierrors.ErrSuperseded.WithDetail(err.Error()), true
	case errors.Is(err, authapp.ErrAuthentication):
		return apierrors.ErrUnauthorized.
			WithDetail(authdomain.InvalidCredentialsHint).
			WithExtension("resetAfterMs", authdomain.FailureResetWait.Milliseconds()), true
	case errors.Is(err, authapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func sessionProblem(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, ordersapp.ErrLoginRequired) ||
		errors.Is(err, deliveryapp.ErrLoginRequired) ||
		errors.Is(err, sessionapp.ErrMissingClient) {
		return apierrors.ErrUnauthorized.WithDetail("login required").WithNavigation(string(view.PageLogin)), true
	}
	return apierrors.ProblemDetail{}, false
}

func orderProblem(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ordersports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "order"), true
	case errors.Is(err, ordersdomain.ErrOrderCompleted):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, ordersapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func deliveryProblem(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, deliverydomain.ErrNoActiveDelivery) {
		return apierrors.ErrConflict.WithDetail(err.Error()).WithNavigation(string(view.PageDashboard)), true
	}
	return apierrors.ProblemDetail{}, false
}
