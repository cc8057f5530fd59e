package http

import (
	"time"

	"github.com/fasthttp/router"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// HeaderRequestID carries the request correlation id.
const HeaderRequestID = "X-Request-ID"

// RegisterRoutes sets up the API routes, the rate stream and, when metrics is
// non-nil, the metrics endpoint.
func RegisterRoutes(
	r *router.Router,
	h *Handler,
	stream fasthttp.RequestHandler,
	metrics fasthttp.RequestHandler,
	metricsPath string,
	logger *zap.Logger,
) {
	logger.Info("Setting up application-specific routes...")

	r.GET("/address/classify", h.Classify)
	r.GET("/address/match", h.Match)
	r.GET("/rates/{chain}", h.GetRates)
	r.POST("/rates/{chain}/refresh", h.RefreshRates)
	r.GET("/rates/{chain}/fiat", h.ToFiat)
	r.GET("/rates/{chain}/satoshis", h.ToSatoshis)
	r.GET("/alternatives", h.Alternatives)
	r.GET("/coldstaking/validate", h.ValidateCredential)

	if stream != nil {
		r.GET("/ws/rates", stream)
	}
	if metrics != nil {
		logger.Info("Setting up metrics route...", zap.String("path", metricsPath))
		r.GET(metricsPath, metrics)
	}

	logger.Info("Setting up health check route...")
	r.GET("/health", h.Health)

	logger.Info("All routes registered.")
}

// LoggingMiddleware logs every request with a correlation id, reusing the
// caller's X-Request-ID when present.
func LoggingMiddleware(logger *zap.Logger, next fasthttp.RequestHandler) fasthttp.RequestHandler {
	logger = logger.Named("HTTP")
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		requestID := string(ctx.Request.Header.Peek(HeaderRequestID))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Response.Header.Set(HeaderRequestID, requestID)

		next(ctx)

		logger.Info("Request handled",
			zap.String("requestId", requestID),
			zap.ByteString("method", ctx.Method()),
			zap.ByteString("uri", ctx.RequestURI()),
			zap.Int("status", ctx.Response.StatusCode()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}
