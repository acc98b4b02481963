package handlers

import (
	"strconv"

	"mymembership/service"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NodeInfo is one live member address.
type NodeInfo struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// NodesResponse is the body of GET /v1/nodes.
type NodesResponse struct {
	Nodes []NodeInfo `json:"nodes"`
}

// SelfResponse is the body of GET /v1/self.
type SelfResponse struct {
	NodeID       string `json:"node_id"`
	Host         string `json:"host"`
	Port         int    `json:"port"`
	State        string `json:"state"`
	RegisteredAt string `json:"registered_at"`
}

// GetNodesParams are the query parameters of GET /v1/nodes.
type GetNodesParams struct {
	// IncludeSelf keeps the local member in the list. Defaults to true.
	IncludeSelf *bool
}

// ServerInterface lists the operations of openapi.yaml.
type ServerInterface interface {
	// GetNodes (GET /v1/nodes)
	GetNodes(ctx echo.Context, params GetNodesParams) error
	// GetSelf (GET /v1/self)
	GetSelf(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) GetNodes(ctx echo.Context) error {
	var params GetNodesParams
	if v := ctx.QueryParam("include_self"); v != "" {
		includeSelf, err := strconv.ParseBool(v)
		if err != nil {
			return service.NewBadParameterError("include_self must be a boolean", err)
		}
		params.IncludeSelf = &includeSelf
	}
	return w.Handler.GetNodes(ctx, params)
}

func (w *ServerInterfaceWrapper) GetSelf(ctx echo.Context) error {
	return w.Handler.GetSelf(ctx)
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	wrapper := ServerInterfaceWrapper{Handler: si}
	router.GET("/v1/nodes", wrapper.GetNodes)
	router.GET("/v1/self", wrapper.GetSelf)
}

// RegisterMetricsHandler exposes gatherer at GET /metrics.
func RegisterMetricsHandler(router EchoRouter, gatherer prometheus.Gatherer) {
	router.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}
