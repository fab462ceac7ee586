package routes

import (
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/buildingai/cozepkg/internal/interfaces/http/middleware"
)

// PermissionRegistry hands out permission guards and remembers every code a
// route was registered with, so the stored permissions can be synced with
// what the router actually enforces.
type PermissionRegistry struct {
	mw *middleware.PermissionMiddleware

	mu    sync.Mutex
	codes []string
	seen  map[string]bool
}

func NewPermissionRegistry(mw *middleware.PermissionMiddleware) *PermissionRegistry {
	return &PermissionRegistry{mw: mw, seen: make(map[string]bool)}
}

// Require records code and returns the guard enforcing it.
func (r *PermissionRegistry) Require(code string) gin.HandlerFunc {
	r.mu.Lock()
	if !r.seen[code] {
		r.seen[code] = true
		r.codes = append(r.codes, code)
	}
	r.mu.Unlock()
	return r.mw.RequirePermission(code)
}

// Codes returns the registered codes in registration order.
func (r *PermissionRegistry) Codes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.codes))
	copy(out, r.codes)
	return out
}
