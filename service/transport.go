package service

import "context"

// Transport carries the service's operation set over some wire protocol.
// Bindings (stdio JSON-RPC, HTTP/SSE) live outside this module; each
// receives a fully constructed Service and owns its own framing, encoding,
// and lifecycle. Run blocks until the transport shuts down or ctx is
// cancelled.
type Transport interface {
	Run(ctx context.Context, svc *Service) error
}
