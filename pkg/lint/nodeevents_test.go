package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojslint/pkg/jsast"
)

func TestNodeEventGeneratorFiresMatchingSelectors(t *testing.T) {
	_, _, call, member := matchTree()

	emitter := NewEmitter()
	var fired []string
	listen := func(name string) {
		emitter.On(name, func(_ *jsast.Node) error {
			fired = append(fired, name)
			return nil
		})
	}
	listen("CallExpression")
	listen("MemberExpression[object.name=console]")
	listen("Identifier")

	gen, err := NewNodeEventGenerator(emitter)
	require.NoError(t, err)

	require.NoError(t, gen.EnterNode(call))
	require.NoError(t, gen.EnterNode(member))
	assert.Equal(t, []string{"CallExpression", "MemberExpression[object.name=console]"}, fired)
}

// Within one event, more specific selectors fire before less specific
// ones; ties break on the selector string.
func TestNodeEventGeneratorSpecificityOrder(t *testing.T) {
	_, _, _, member := matchTree()

	emitter := NewEmitter()
	var fired []string
	listen := func(name string) {
		emitter.On(name, func(_ *jsast.Node) error {
			fired = append(fired, name)
			return nil
		})
	}
	listen("*")
	listen("MemberExpression")
	listen("MemberExpression[object.name=console]")
	listen("CallExpression > MemberExpression")

	gen, err := NewNodeEventGenerator(emitter)
	require.NoError(t, err)
	require.NoError(t, gen.EnterNode(member))

	assert.Equal(t, []string{
		"MemberExpression[object.name=console]", // one attribute
		"CallExpression > MemberExpression",     // two identifiers
		"MemberExpression",                      // one identifier
		"*",                                     // universal
	}, fired)
}

func TestNodeEventGeneratorExitSelectors(t *testing.T) {
	_, stmt, _, _ := matchTree()

	emitter := NewEmitter()
	var fired []string
	emitter.On("ExpressionStatement:exit", func(_ *jsast.Node) error {
		fired = append(fired, "exit")
		return nil
	})
	emitter.On("ExpressionStatement", func(_ *jsast.Node) error {
		fired = append(fired, "enter")
		return nil
	})

	gen, err := NewNodeEventGenerator(emitter)
	require.NoError(t, err)

	require.NoError(t, gen.EnterNode(stmt))
	require.NoError(t, gen.LeaveNode(stmt))
	assert.Equal(t, []string{"enter", "exit"}, fired)
}

// A comma selector registered once fires its listener once per node even
// when several parts match.
func TestNodeEventGeneratorCommaDedupe(t *testing.T) {
	_, _, call, _ := matchTree()

	emitter := NewEmitter()
	count := 0
	emitter.On("CallExpression, CallExpression[callee]", func(_ *jsast.Node) error {
		count++
		return nil
	})

	gen, err := NewNodeEventGenerator(emitter)
	require.NoError(t, err)
	require.NoError(t, gen.EnterNode(call))
	assert.Equal(t, 1, count)
}

func TestNodeEventGeneratorRejectsBadSelector(t *testing.T) {
	emitter := NewEmitter()
	emitter.On("Identifier[", func(_ *jsast.Node) error { return nil })

	_, err := NewNodeEventGenerator(emitter)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Identifier[")
}
