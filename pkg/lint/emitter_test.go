package lint

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojslint/pkg/jsast"
)

func TestEmitterDeliversInSubscriptionOrder(t *testing.T) {
	emitter := NewEmitter()

	var calls []string
	emitter.On("Identifier", NodeListener(func(_ *jsast.Node) error {
		calls = append(calls, "first")
		return nil
	}))
	emitter.On("Identifier", func(_ *jsast.Node) error {
		calls = append(calls, "second")
		return nil
	})

	err := emitter.EmitNode("Identifier", jsast.New("Identifier", 0, 1))
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestEmitterPropagatesErrors(t *testing.T) {
	emitter := NewEmitter()
	boom := errors.New("boom")

	calls := 0
	emitter.On("Literal", func(_ *jsast.Node) error {
		calls++
		return boom
	})
	emitter.On("Literal", func(_ *jsast.Node) error {
		calls++
		return nil
	})

	err := emitter.EmitNode("Literal", jsast.New("Literal", 0, 1))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls, "delivery stops at the first error")
}

func TestEmitterUnlistenedEventIsNoop(t *testing.T) {
	emitter := NewEmitter()
	assert.NoError(t, emitter.EmitNode("Missing", jsast.New("Missing", 0, 0)))
	assert.False(t, emitter.Has("Missing"))
}

func TestInterpolate(t *testing.T) {
	tests := []struct {
		name    string
		message string
		data    map[string]string
		want    string
	}{
		{name: "no placeholders", message: "plain", data: map[string]string{"x": "1"}, want: "plain"},
		{name: "single", message: "got {{name}}", data: map[string]string{"name": "x"}, want: "got x"},
		{name: "repeated", message: "{{a}} and {{a}}", data: map[string]string{"a": "1"}, want: "1 and 1"},
		{name: "whitespace inside braces", message: "got {{ name }}",
			data: map[string]string{"name": "x"}, want: "got x"},
		{name: "unmatched stays literal", message: "got {{other}}",
			data: map[string]string{"name": "x"}, want: "got {{other}}"},
		{name: "nil data", message: "got {{name}}", want: "got {{name}}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, interpolate(tt.message, tt.data))
		})
	}
}
