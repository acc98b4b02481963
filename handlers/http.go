// Package handlers contains http handlers for mymembership.
package handlers

import (
	"net/http"

	"mymembership/domain"
	"mymembership/helpers"
	"mymembership/interfaces"
	"mymembership/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// HTTPServer implements ServerInterface.
type HTTPServer struct {
	membership interfaces.Membership
	logger     log.Logger
}

var _ ServerInterface = (*HTTPServer)(nil)

// NewHTTPServer creates a new HTTPServer. Panics on nil dependencies.
func NewHTTPServer(membership interfaces.Membership, logger log.Logger) *HTTPServer {
	return &HTTPServer{
		membership: helpers.NilPanic(membership, "handlers.http.go: membership is required"),
		logger:     log.WithPrefix(helpers.NilPanic(logger, "handlers.http.go: logger is required"), "component", "HTTPServer"),
	}
}

// GetNodes (GET /v1/nodes) returns the last known live members. Never touches the store.
func (h *HTTPServer) GetNodes(ectx echo.Context, params GetNodesParams) error {
	nodes := h.membership.Nodes()
	if params.IncludeSelf != nil && !*params.IncludeSelf {
		self, _, _ := h.membership.Self()
		nodes = withoutAddress(nodes, self.Address)
	}
	level.Debug(h.logger).Log("msg", "listing nodes", "count", len(nodes))

	return ectx.JSON(http.StatusOK, toNodesResponse(nodes))
}

// GetSelf (GET /v1/self) returns the local member and its own entry. 404 while not registered.
func (h *HTTPServer) GetSelf(ectx echo.Context) error {
	self, state, own := h.membership.Self()
	if state != domain.SessionRegistered || own == nil {
		return service.NewEntityNotFoundError("local node is not registered", nil)
	}

	return ectx.JSON(http.StatusOK, toSelfResponse(self, state, own))
}

func withoutAddress(nodes []domain.NodeAddress, address domain.NodeAddress) []domain.NodeAddress {
	out := make([]domain.NodeAddress, 0, len(nodes))
	for _, n := range nodes {
		if n != address {
			out = append(out, n)
		}
	}
	return out
}
