package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerRegistry_Register(t *testing.T) {
	t.Run("specific types", func(t *testing.T) {
		registry := NewHandlerRegistry()
		handler := newTestHandler()

		registry.Register(handler, "UnitChanged", "ProductDeleted")

		handlers := registry.GetHandlers("UnitChanged")
		assert.Len(t, handlers, 1)
		assert.Same(t, handler, handlers[0])
		assert.Len(t, registry.GetHandlers("ProductDeleted"), 1)
		assert.Empty(t, registry.GetHandlers("ProductUnitChanged"))
	})

	t.Run("wildcard receives every type after typed handlers", func(t *testing.T) {
		registry := NewHandlerRegistry()
		typed := newTestHandler()
		wildcard := newTestHandler()

		registry.Register(wildcard)
		registry.Register(typed, "UnitChanged")

		handlers := registry.GetHandlers("UnitChanged")
		assert.Len(t, handlers, 2)
		assert.Same(t, typed, handlers[0])
		assert.Same(t, wildcard, handlers[1])
		assert.Len(t, registry.GetHandlers("Anything"), 1)
	})

	t.Run("duplicate registration is ignored", func(t *testing.T) {
		registry := NewHandlerRegistry()
		handler := newTestHandler()

		registry.Register(handler, "UnitChanged")
		registry.Register(handler, "UnitChanged")
		registry.Register(handler)

		assert.Len(t, registry.GetHandlers("UnitChanged"), 1)
		assert.Len(t, registry.GetAllHandlers(), 1)
	})
}

func TestHandlerRegistry_Unregister(t *testing.T) {
	registry := NewHandlerRegistry()
	keep := newTestHandler()
	drop := newTestHandler()

	registry.Register(keep, "UnitChanged")
	registry.Register(drop, "UnitChanged", "ProductDeleted")
	registry.Register(drop)

	registry.Unregister(drop)

	assert.Len(t, registry.GetHandlers("UnitChanged"), 1)
	assert.Empty(t, registry.GetHandlers("ProductDeleted"))
	assert.Len(t, registry.GetAllHandlers(), 1)
	_, present := registry.handlers["ProductDeleted"]
	assert.False(t, present)
}
