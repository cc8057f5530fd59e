package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"chainkit/internal/pkg/apperrors"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// ErrStopWatching ends Watch without error when returned by the event callback.
var ErrStopWatching = errors.New("stop watching")

// Watcher subscribes to a rate stream over websocket.
type Watcher struct {
	dialer websocket.Dialer
	logger *zap.Logger
}

// NewWatcher creates a new stream client.
func NewWatcher(handshakeTimeout time.Duration, logger *zap.Logger) *Watcher {
	if handshakeTimeout <= 0 {
		handshakeTimeout = 10 * time.Second
	}
	return &Watcher{
		dialer: websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: handshakeTimeout,
		},
		logger: logger.Named("RateStreamWatcher"),
	}
}

// Watch connects to url and calls fn for each event until ctx is done, the
// server closes the stream, or fn returns an error.
func (w *Watcher) Watch(ctx context.Context, url string, fn func(Event) error) error {
	w.logger.Debug("Connecting to rate stream", zap.String("url", url))

	conn, _, err := w.dialer.DialContext(ctx, url, nil)
	if err != nil {
		w.logger.Debug("Rate stream dial failed", zap.String("url", url), zap.Error(err))
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: dial %s: %v", apperrors.ErrTimeout, url, err)
		}
		return fmt.Errorf("%w: dial %s: %v", apperrors.ErrExternalServiceFailure, url, err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		_ = conn.Close()
	})
	defer stop()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("%w: read from %s: %v", apperrors.ErrExternalServiceFailure, url, err)
		}

		event, err := w.decodeEvent(message)
		if err != nil {
			return err
		}
		if err := fn(event); err != nil {
			if errors.Is(err, ErrStopWatching) {
				return nil
			}
			return err
		}
	}
}

// decodeEvent checks that a stream message is a well-formed event.
func (w *Watcher) decodeEvent(message []byte) (Event, error) {
	var event Event
	if err := json.Unmarshal(message, &event); err != nil {
		w.logger.Debug("Invalid stream message", zap.ByteString("body", message), zap.Error(err))
		return Event{}, fmt.Errorf("%w: invalid stream message: %v", apperrors.ErrExternalServiceFailure, err)
	}
	if event.Chain == "" {
		return Event{}, fmt.Errorf("%w: stream message without chain", apperrors.ErrExternalServiceFailure)
	}
	return event, nil
}
