package demo

import (
	"github.com/giantswarm/uitest/internal/fixture"
	"github.com/giantswarm/uitest/internal/registry"
)

// Registry keys of the demo components.
const (
	HostKey          registry.Key = "demo.Host"
	NetworkClientKey registry.Key = "demo.NetworkClient"
)

// Register binds the demo components' default factories on reg.
func Register(reg *registry.Registry) {
	registry.Provide(reg, NetworkClientKey, func(registry.Resolver) (NetworkClient, error) {
		return ServerClient{}, nil
	})
	registry.Provide(reg, HostKey, func(registry.Resolver) (*Host, error) {
		h := NewHost(reg, DefaultLoadFrames)
		h.RegisterScene(TestableGameScene, buildTestableGameScene)
		return h, nil
	})
}

// Fixtures lists the demo fixtures.
func Fixtures() []fixture.Definition {
	return []fixture.Definition{
		{Name: "UITestExample", New: func() fixture.Fixture { return &ExampleFixture{} }},
	}
}
