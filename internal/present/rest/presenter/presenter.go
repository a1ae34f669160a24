package presenter

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/kebabcase/housing/internal/domain"
	"github.com/kebabcase/housing/internal/reconcile"
)

var logger = zap.NewNop()

// SetLogger replaces the logger used for error responses.
func SetLogger(l *zap.Logger) {
	logger = l.Named("presenter")
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func requestFields(c echo.Context) []zap.Field {
	return []zap.Field{
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
		zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		zap.String("trace_id", trace.SpanContextFromContext(c.Request().Context()).TraceID().String()),
	}
}

// OK wraps a successful response.
func OK(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

func Created(c echo.Context, payload any) error {
	return c.JSON(http.StatusCreated, payload)
}

func Message(c echo.Context, status int, msg string) error {
	return c.JSON(status, messageResponse{Message: msg})
}

// Result writes a reconcile result with the status it maps to.
func Result(c echo.Context, result reconcile.Result) error {
	return c.JSON(result.Status.HTTPStatus(), result)
}

func BadRequest(c echo.Context, err error) error {
	logger.Debug("bad request", append(requestFields(c), zap.Error(err))...)
	return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func BadRequestMessage(c echo.Context, msg string) error {
	logger.Debug("bad request", append(requestFields(c), zap.String("reason", msg))...)
	return c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}

func NotFound(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, errorResponse{Error: msg})
}

func Conflict(c echo.Context, msg string) error {
	return c.JSON(http.StatusConflict, errorResponse{Error: msg})
}

func Unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
}

func InternalError(c echo.Context, err error) error {
	logger.Error("internal error", append(requestFields(c), zap.Error(err))...)
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

// Error picks the response for an error returned by a use case.
func Error(c echo.Context, err error) error {
	var notFound domain.NotFoundError
	if errors.As(err, &notFound) {
		return NotFound(c, notFound.Error())
	}

	var exists domain.AlreadyExistsError
	if errors.As(err, &exists) {
		return Conflict(c, exists.Error())
	}

	if errors.Is(err, domain.ErrUnauthorized) {
		return Unauthorized(c)
	}

	return InternalError(c, err)
}
