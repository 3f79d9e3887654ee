// Package envserver serves an environment over HTTP so that a training
// loop in another process can drive it. The server handles one session
// at a time, matching the single caller model of the environment
// contract.
package envserver

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ronaldiscool/ReAgent/envs"
)

type stepRequest struct {
	Discrete   *int      `json:"discrete,omitempty"`
	Continuous []float64 `json:"continuous,omitempty"`
}

type stepResponse struct {
	Observation []float64              `json:"obs"`
	Reward      float64                `json:"reward"`
	Terminal    bool                   `json:"terminal"`
	Info        map[string]interface{} `json:"info"`
}

type seedRequest struct {
	Seed int64 `json:"seed"`
}

type spacesResponse struct {
	ObservationLow  []float64 `json:"observation_low"`
	ObservationHigh []float64 `json:"observation_high"`
	ActionDiscrete  int       `json:"action_discrete,omitempty"`
	ActionLow       []float64 `json:"action_low,omitempty"`
	ActionHigh      []float64 `json:"action_high,omitempty"`
}

// Server exposes an environment on an HTTP address
type Server struct {
	Addr   string
	server *http.Server

	lock sync.Mutex
	env  envs.Environment
}

func NewServer(addr string, env envs.Environment) *Server {
	s := &Server{
		Addr: addr,
		env:  env,
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.POST("/reset", s.handleReset)
	r.POST("/step", s.handleStep)
	r.POST("/seed", s.handleSeed)
	r.GET("/spaces", s.handleSpaces)
	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}

	return s
}

// Handler of the underlying HTTP server
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() {
	go func() {
		s.server.ListenAndServe()
	}()
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.server.Shutdown(ctx)
}

func (s *Server) handleReset(c *gin.Context) {
	s.lock.Lock()
	defer s.lock.Unlock()
	obs, err := s.env.Reset()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"obs": obs})
}

func (s *Server) handleStep(c *gin.Context) {
	var req stepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to unmarshal request"})
		return
	}
	var action envs.Action
	switch {
	case req.Discrete != nil:
		action = envs.DiscreteAction(*req.Discrete)
	case req.Continuous != nil:
		action = envs.ContinuousAction(req.Continuous)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "no action in request"})
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	result, err := s.env.Step(action)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stepResponse{
		Observation: result.Observation,
		Reward:      result.Reward,
		Terminal:    result.Terminal,
		Info:        result.Info,
	})
}

func (s *Server) handleSeed(c *gin.Context) {
	var req seedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to unmarshal request"})
		return
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.env.Seed(req.Seed)
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

func (s *Server) handleSpaces(c *gin.Context) {
	s.lock.Lock()
	defer s.lock.Unlock()

	obsSpace := s.env.ObservationSpace()
	resp := spacesResponse{
		ObservationLow:  obsSpace.Low,
		ObservationHigh: obsSpace.High,
	}
	switch space := s.env.ActionSpace().(type) {
	case *envs.Discrete:
		resp.ActionDiscrete = space.N
	case *envs.Box:
		resp.ActionLow = space.Low
		resp.ActionHigh = space.High
	}
	c.JSON(http.StatusOK, resp)
}
