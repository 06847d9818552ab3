package loader

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (s *stubFeature) Name() string { return s.name }
func (s *stubFeature) IsEnabled() bool { return s.enabled }
func (s *stubFeature) Load(app fiber.Router) error {
	s.loaded = true
	return s.err
}

func TestManager_LoadAll(t *testing.T) {
	a := &stubFeature{name: "a", enabled: true}
	b := &stubFeature{name: "b"}
	c := &stubFeature{name: "c", enabled: true}

	m := NewManager(zap.NewNop())
	m.Register(a)
	m.Register(b)
	m.Register(c)

	loaded, err := m.LoadAll(fiber.New())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, loaded)
	assert.True(t, a.loaded)
	assert.False(t, b.loaded)
}

func TestManager_LoadAllError(t *testing.T) {
	m := NewManager(zap.NewNop())
	m.Register(&stubFeature{name: "broken", enabled: true, err: errors.New("boom")})
	m.Register(&stubFeature{name: "after", enabled: true})

	loaded, err := m.LoadAll(fiber.New())
	assert.EqualError(t, err, "failed to load feature broken: boom")
	assert.Empty(t, loaded)
}
