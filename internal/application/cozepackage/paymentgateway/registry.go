package paymentgateway

import (
	"fmt"
	"sync"
)

// Registry is a Selector backed by a map of method to gateway.
type Registry struct {
	mu       sync.RWMutex
	gateways map[string]PaymentGateway
	fallback PaymentGateway
}

func NewRegistry() *Registry {
	return &Registry{gateways: make(map[string]PaymentGateway)}
}

func (r *Registry) Register(method string, g PaymentGateway) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gateways[method] = g
}

// SetFallback installs the gateway used for methods without their own.
func (r *Registry) SetFallback(g PaymentGateway) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = g
}

func (r *Registry) For(method string) (PaymentGateway, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if g, ok := r.gateways[method]; ok {
		return g, nil
	}
	if r.fallback != nil {
		return r.fallback, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
}
