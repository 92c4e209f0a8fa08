package middleware

import (
	"net/http"
)

// Middleware is a function that wraps an http.Handler
type Middleware func(http.Handler) http.Handler

// Chain is a composable sequence of middleware
type Chain struct {
	middlewares []Middleware
}

// NewChain creates a new middleware chain
func NewChain(middlewares ...Middleware) *Chain {
	return &Chain{
		middlewares: middlewares,
	}
}

// Use adds a middleware to the chain
func (c *Chain) Use(m Middleware) *Chain {
	c.middlewares = append(c.middlewares, m)
	return c
}

// Then wraps the given handler with all middleware in the chain.
// Middleware is applied in reverse order so the middleware added
// first executes first.
func (c *Chain) Then(handler http.Handler) http.Handler {
	for i := len(c.middlewares) - 1; i >= 0; i-- {
		handler = c.middlewares[i](handler)
	}
	return handler
}

// Append creates a new chain by appending middleware to the current chain
// without mutating it
func (c *Chain) Append(middlewares ...Middleware) *Chain {
	combined := make([]Middleware, len(c.middlewares)+len(middlewares))
	copy(combined, c.middlewares)
	copy(combined[len(c.middlewares):], middlewares)
	return &Chain{middlewares: combined}
}
