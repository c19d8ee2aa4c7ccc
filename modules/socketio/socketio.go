// Package socketio provides a transport backed by a Socket.IO connection,
// for robots whose hardware bridge speaks Socket.IO over websockets.
package socketio

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/botgrid/internal/ctxlog"
	"github.com/vk/botgrid/internal/plugin"
)

// ModuleName is the conventional registry name for this module.
const ModuleName = "botgrid-socketio"

const defaultTimeout = 10 * time.Second

// Adaptor is a Socket.IO transport.
type Adaptor struct {
	mu        sync.Mutex
	name      string
	url       string
	namespace string
	timeout   time.Duration
	insecure  bool

	manager *socket.Manager
	io      *socket.Socket
}

// Name returns the adaptor's name.
func (a *Adaptor) Name() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.name
}

// SetName sets the adaptor's name.
func (a *Adaptor) SetName(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.name = name
}

// Connect dials the Socket.IO server and waits for the connection handshake
// to finish, the context to end, or the configured timeout to expire.
func (a *Adaptor) Connect(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx).With("adaptor", a.Name(), "url", a.url, "namespace", a.namespace)

	parsed, err := url.Parse(a.url)
	if err != nil {
		return fmt.Errorf("parsing socket.io url: %w", err)
	}
	baseURL := fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host)

	opts := socket.DefaultOptions()
	opts.SetPath(parsed.Path)
	opts.SetTransports(types.NewSet(transports.WebSocket))
	if a.insecure {
		logger.Warn("Skipping TLS certificate verification.")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	done := make(chan error, 1)
	a.mu.Lock()
	a.manager = socket.NewManager(baseURL, opts)
	a.io = a.manager.Socket(a.namespace, opts)
	io := a.io
	a.mu.Unlock()

	io.On(types.EventName("connect"), func(...any) {
		logger.Info("Socket.IO connected.", "sid", io.Id())
		done <- nil
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				done <- e
				return
			}
		}
		done <- fmt.Errorf("socket.io connect error")
	})

	opCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	io.Connect()

	select {
	case <-opCtx.Done():
		io.Disconnect()
		return fmt.Errorf("socket.io connect to %s: %w", a.url, opCtx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("socket.io connect to %s: %w", a.url, err)
		}
		return nil
	}
}

// Disconnect closes the Socket.IO connection if one is open.
func (a *Adaptor) Disconnect(ctx context.Context) error {
	a.mu.Lock()
	io := a.io
	a.io = nil
	a.mu.Unlock()

	if io != nil {
		ctxlog.FromContext(ctx).Debug("Disconnecting Socket.IO.", "adaptor", a.Name())
		io.Disconnect()
	}
	return nil
}

// Emit sends an event over the open connection.
func (a *Adaptor) Emit(event string, data ...any) error {
	a.mu.Lock()
	io := a.io
	a.mu.Unlock()
	if io == nil {
		return fmt.Errorf("socket.io adaptor %q is not connected", a.Name())
	}
	io.Emit(event, data...)
	return nil
}

// Bundle returns the plugin bundle for registration. Recognized params:
// url (required), namespace, timeout (duration string), and
// insecure_skip_verify.
func Bundle() *plugin.Bundle {
	return &plugin.Bundle{
		Adaptors: []string{"socketios"},
		NewAdaptor: func(opts plugin.AdaptorOptions) (plugin.Adaptor, error) {
			rawURL, _ := opts.Params["url"].(string)
			if rawURL == "" {
				return nil, fmt.Errorf("socket.io adaptor %q requires a url param", opts.Name)
			}
			namespace, _ := opts.Params["namespace"].(string)

			timeout := defaultTimeout
			if ts, ok := opts.Params["timeout"].(string); ok {
				parsed, err := time.ParseDuration(ts)
				if err != nil {
					return nil, fmt.Errorf("socket.io adaptor %q: bad timeout %q: %w", opts.Name, ts, err)
				}
				timeout = parsed
			}
			insecure, _ := opts.Params["insecure_skip_verify"].(bool)

			return &Adaptor{
				name:      opts.Name,
				url:       rawURL,
				namespace: namespace,
				timeout:   timeout,
				insecure:  insecure,
			}, nil
		},
	}
}
