// Package transport exposes the JSON HTTP API for the browser UI.
package transport

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/zephyr-dassouli/dal-orchestrator/internal/chain"
	"github.com/zephyr-dassouli/dal-orchestrator/internal/session"
)

// API serves session lifecycle operations over HTTP. All state lives in
// the session store; handlers only translate between HTTP and the
// orchestrator's entry points.
type API struct {
	store       SessionStore
	performance PerformanceReader
	capability  Capability
	logger      *zap.Logger
}

// NewAPI builds the HTTP API.
func NewAPI(store SessionStore, performance PerformanceReader, capability Capability, logger *zap.Logger) (*API, error) {
	if store == nil {
		return nil, errors.New("session store is required")
	}
	if performance == nil {
		return nil, errors.New("performance reader is required")
	}
	return &API{
		store:       store,
		performance: performance,
		capability:  capability,
		logger:      logger,
	}, nil
}

// Register mounts all routes, including the Prometheus endpoint.
func (a *API) Register(e *echo.Echo) {
	e.GET("/health", a.health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	g := e.Group("/api/projects/:id")
	g.POST("/session", a.createSession)
	g.GET("/session", a.getSession)
	g.POST("/session/iterations", a.startIteration)
	g.POST("/session/votes", a.submitVotes)
	g.POST("/session/end", a.endSession)
	g.GET("/performance", a.performanceHistory)
	g.GET("/capability", a.getCapability)
}

type errorBody struct {
	Error string `json:"error"`
}

func (a *API) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

func (a *API) createSession(c echo.Context) error {
	projectID := c.Param("id")
	sess, err := a.store.Create(c.Request().Context(), projectID)
	if err != nil {
		if errors.Is(err, session.ErrSessionExists) {
			return c.JSON(http.StatusConflict, errorBody{Error: err.Error()})
		}
		a.logger.Error("create session failed", zap.String("project", projectID), zap.Error(err))
		return c.JSON(http.StatusBadGateway, errorBody{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, sess.State())
}

func (a *API) getSession(c echo.Context) error {
	sess, err := a.store.Get(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, errorBody{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, sess.State())
}

type startIterationRequest struct {
	ConfigOverride map[string]any `json:"config_override"`
}

func (a *API) startIteration(c echo.Context) error {
	sess, err := a.store.Get(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, errorBody{Error: err.Error()})
	}

	var req startIterationRequest
	if c.Request().ContentLength > 0 {
		if bindErr := c.Bind(&req); bindErr != nil {
			return c.JSON(http.StatusBadRequest, errorBody{Error: bindErr.Error()})
		}
	}

	state, err := sess.StartIteration(c.Request().Context(), req.ConfigOverride)
	switch {
	case errors.Is(err, session.ErrIterationInFlight):
		return c.JSON(http.StatusConflict, errorBody{Error: err.Error()})
	case errors.Is(err, session.ErrSessionEnded):
		return c.JSON(http.StatusGone, errorBody{Error: err.Error()})
	case err != nil:
		a.logger.Error("start iteration failed", zap.String("project", c.Param("id")), zap.Error(err))
		return c.JSON(http.StatusBadGateway, errorBody{Error: err.Error()})
	}
	return c.JSON(http.StatusAccepted, state)
}

type submitVotesRequest struct {
	Votes map[string]string `json:"votes"`
}

func (a *API) submitVotes(c echo.Context) error {
	sess, err := a.store.Get(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, errorBody{Error: err.Error()})
	}

	var req submitVotesRequest
	if bindErr := c.Bind(&req); bindErr != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: bindErr.Error()})
	}

	state, err := sess.SubmitVotes(c.Request().Context(), req.Votes)
	switch {
	case errors.Is(err, session.ErrUnknownSample),
		errors.Is(err, session.ErrLabelNotAllowed):
		return c.JSON(http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, session.ErrNoPendingBatch):
		return c.JSON(http.StatusConflict, errorBody{Error: err.Error()})
	case errors.Is(err, session.ErrSessionEnded):
		return c.JSON(http.StatusGone, errorBody{Error: err.Error()})
	case err != nil:
		if rej, ok := chain.AsVoteRejected(err); ok {
			return c.JSON(http.StatusConflict, errorBody{Error: rej.Error()})
		}
		a.logger.Error("submit votes failed", zap.String("project", c.Param("id")), zap.Error(err))
		return c.JSON(http.StatusBadGateway, errorBody{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, state)
}

func (a *API) endSession(c echo.Context) error {
	state, err := a.store.End(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, errorBody{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, state)
}

func (a *API) performanceHistory(c echo.Context) error {
	raw, err := a.performance.PerformanceHistory(c.Request().Context(), c.Param("id"))
	if err != nil {
		a.logger.Warn("performance history unavailable", zap.String("project", c.Param("id")), zap.Error(err))
		return c.JSON(http.StatusBadGateway, errorBody{Error: err.Error()})
	}
	return c.JSONBlob(http.StatusOK, raw)
}

type capabilityBody struct {
	EventsLive bool   `json:"events_live"`
	Mode       string `json:"mode"`
}

func (a *API) getCapability(c echo.Context) error {
	live := a.capability != nil && a.capability.Live()
	mode := "polling"
	if live {
		mode = "events"
	}
	return c.JSON(http.StatusOK, capabilityBody{EventsLive: live, Mode: mode})
}
