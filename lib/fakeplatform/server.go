// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fakeplatform

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzhttp"
)

// SessionCookie is the name of the session cookie.
const SessionCookie = "session"

// Config configures a Server.
type Config struct {
	// Store holds the platform state. Nil creates one seeded with
	// SeedData.
	Store *Store

	// Compress enables gzip/zstd response compression.
	Compress bool

	// WithoutEventLookup leaves GET /events/{id} unrouted, like older
	// platform deployments, so clients must fall back to the list.
	WithoutEventLookup bool

	Logger *slog.Logger
}

// Server serves a Store over HTTP.
type Server struct {
	store   *Store
	logger  *slog.Logger
	handler http.Handler

	mutex    sync.Mutex
	sessions map[string]session
}

type session struct {
	userID   string
	userType string
}

// New builds a Server and its routes.
func New(config Config) *Server {
	if config.Store == nil {
		config.Store = NewStore()
		SeedData(config.Store)
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	server := &Server{
		store:    config.Store,
		logger:   config.Logger,
		sessions: make(map[string]session),
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), server.logRequests)
	server.routes(engine, config)

	var handler http.Handler = engine
	if config.Compress {
		handler = gzhttp.GzipHandler(handler)
	}
	server.handler = handler
	return server
}

// Handler returns the HTTP handler.
func (server *Server) Handler() http.Handler {
	return server.handler
}

// Store returns the platform state.
func (server *Server) Store() *Store {
	return server.store
}

func (server *Server) routes(engine *gin.Engine, config Config) {
	engine.POST("/auth/login", server.login)
	engine.POST("/auth/logout", server.logout)
	engine.GET("/auth/me", server.me)

	engine.GET("/events", server.listEvents)
	if !config.WithoutEventLookup {
		engine.GET("/events/:id", server.getEvent)
	}
	engine.GET("/tickets", server.listTickets)
	engine.GET("/users", server.listUsers)
	engine.GET("/search/autocomplete", server.autocomplete)

	signedIn := engine.Group("/", server.requireLogin)
	signedIn.GET("/cart", server.viewCart)
	signedIn.POST("/cart/items", server.addToCart)
	signedIn.DELETE("/cart/items/:id", server.removeFromCart)
	signedIn.POST("/cart/clear", server.clearCart)
	signedIn.POST("/cart/checkout", server.checkout)

	// Direct orders accept a userId in the body instead of a session.
	engine.POST("/orders", server.createOrder)

	recommendations := engine.Group("/api/recommendations")
	recommendations.GET("/user/:id", server.recommend)
	recommendations.GET("/user/:id/nearby", server.recommend)
	recommendations.GET("/user/:id/deep", server.recommend)
	recommendations.GET("/explain/:user/:event", server.explain)
}

func (server *Server) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	server.logger.Info("request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration", time.Since(start),
		"request_id", c.GetHeader("X-Request-ID"),
	)
}

// sessionFor returns the session named by the request's cookie.
func (server *Server) sessionFor(c *gin.Context) (session, bool) {
	token, err := c.Cookie(SessionCookie)
	if err != nil || token == "" {
		return session{}, false
	}
	server.mutex.Lock()
	defer server.mutex.Unlock()
	current, ok := server.sessions[token]
	return current, ok
}

func (server *Server) requireLogin(c *gin.Context) {
	current, ok := server.sessionFor(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	c.Set("user_id", current.userID)
	c.Next()
}

func (server *Server) startSession(c *gin.Context, current session) {
	token := uuid.NewString()
	server.mutex.Lock()
	server.sessions[token] = current
	server.mutex.Unlock()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, 0, "/", "", false, true)
}

func (server *Server) endSession(c *gin.Context) {
	if token, err := c.Cookie(SessionCookie); err == nil {
		server.mutex.Lock()
		delete(server.sessions, token)
		server.mutex.Unlock()
	}
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}
