package transport

import (
	"github.com/viant/bearer/client/auth/resource"
	"github.com/viant/bearer/client/auth/service"
)

// Config configures the bearer interceptor.
type Config struct {
	InteractionType      service.InteractionType `yaml:"interactionType" json:"interactionType"`
	ProtectedResourceMap *resource.Map           `yaml:"protectedResourceMap" json:"-"`
	// AuthRequest holds extras merged into interactive token requests.
	AuthRequest *service.Request `yaml:"authRequest,omitempty" json:"authRequest,omitempty"`
}
