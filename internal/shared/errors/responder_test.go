package errors

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMapped = errors.New("mapped")

func respondVia(t *testing.T, r *ChainedResponder, err error) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/v1/orders/7/cancel", nil)
	r.RespondError(c, err)
	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return rec, problem
}

func TestChainedResponder_FirstMatchWins(t *testing.T) {
	r := NewChainedResponder("",
		func(err error) (ProblemDetail, bool) {
			if errors.Is(err, errMapped) {
				return NewConfirmationProblem("Sure?"), true
			}
			return ProblemDetail{}, false
		},
		func(error) (ProblemDetail, bool) { return ErrConflict, true },
	)
	rec, problem := respondVia(t, r, errMapped)
	assert.Equal(t, http.StatusPreconditionRequired, rec.Code)
	assert.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	assert.Equal(t, "Sure?", problem.Extensions["prompt"])
	assert.Equal(t, "/v1/orders/7/cancel", problem.Instance)
}

func TestChainedResponder_UnknownErrorHidesDetail(t *testing.T) {
	r := NewChainedResponder("https://dharai.app")
	r.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	rec, problem := respondVia(t, r, errors.New("database password leaked"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "unexpected error", problem.Detail)
	assert.Equal(t, "https://dharai.app"+TypeInternal, problem.Type)
}

func TestWithNavigation(t *testing.T) {
	problem := ErrUnauthorized.WithNavigation("login")
	assert.Equal(t, "login", problem.Extensions["navigate"])
	assert.Nil(t, ErrUnauthorized.Extensions)
}
