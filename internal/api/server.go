package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	apperrors "gdpdash/internal/errors"
	"gdpdash/internal/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewServer builds the echo instance serving the dashboard.
func NewServer(h *Handler, log logger.Logger, debug bool) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = debug
	e.JSONSerializer = JSONSerializer{}
	e.Renderer = h.pages
	e.HTTPErrorHandler = ErrorHandler(log)

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(RequestLogger(log))

	h.RegisterRoutes(e)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	return e
}

// RequestLogger logs one line per request through zap.
func RequestLogger(log logger.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := map[string]interface{}{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency.String(),
			}
			if v.Error != nil {
				log.WithError(v.Error).Warn("request failed", fields)
				return nil
			}
			log.Debug("request", fields)
			return nil
		},
	})
}

// ErrorHandler renders errors as StandardError JSON with a status derived
// from the error code.
func ErrorHandler(log logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var body *apperrors.StandardError
		var status int

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			body = &apperrors.StandardError{
				Code:    apperrors.ErrorCode(strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))),
				Message: fmt.Sprint(he.Message),
			}
		} else {
			body = apperrors.Normalize(err)
			status = apperrors.HTTPStatus(body.Code)
		}

		if status >= http.StatusInternalServerError {
			log.WithError(err).Error("request error", map[string]interface{}{
				"uri":  c.Request().RequestURI,
				"code": body.Code,
			})
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			log.WithError(err).Error("failed to write error response", nil)
		}
	}
}
