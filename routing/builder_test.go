package routing

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteBuilderBuild(t *testing.T) {
	t.Parallel()

	route, err := NewRouteBuilder().
		Route("/users/{id}").
		Method("get").
		Strict(true).
		Name("user detail").
		Handler(noopHandler).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "/users/{id}", route.Raw())
	assert.Equal(t, "GET", route.Method())
	assert.True(t, route.IsStrict())
	assert.Equal(t, "user detail", route.Name())
	assert.NotNil(t, route.Handler())
}

func TestRouteBuilderDefaults(t *testing.T) {
	t.Parallel()

	route, err := NewRouteBuilder().Handler(noopHandler).Build()
	require.NoError(t, err)

	assert.Equal(t, "/", route.Raw())
	assert.Empty(t, route.Method())
	assert.False(t, route.IsStrict())
}

func TestRouteBuilderNameDefaultsToHandlerName(t *testing.T) {
	t.Parallel()

	route, err := NewRouteBuilder().Route("/x").Handler(noopHandler).Build()
	require.NoError(t, err)

	assert.Contains(t, route.Name(), "noopHandler")
}

func TestRouteBuilderValidation(t *testing.T) {
	t.Parallel()

	_, err := NewRouteBuilder().Route("/x").Build()
	assert.ErrorIs(t, err, ErrNilHandler)

	_, err = NewRouteBuilder().Route("/x").BuildIntermediate()
	assert.ErrorIs(t, err, ErrNilHandler)

	_, err = NewRouteBuilder().Route("  ").Handler(noopHandler).Build()
	assert.ErrorIs(t, err, ErrEmptyRoute)
}

func TestRouteBuilderSnapshotsState(t *testing.T) {
	t.Parallel()

	builder := NewRouteBuilder().Route("/resource").Handler(noopHandler)

	get, err := builder.Method("GET").Build()
	require.NoError(t, err)
	post, err := builder.Method("POST").Build()
	require.NoError(t, err)

	assert.Equal(t, "GET", get.Method())
	assert.Equal(t, "POST", post.Method())
	assert.NotEqual(t, get.ID(), post.ID())
}

func TestRouteBuilderBuildsBothKinds(t *testing.T) {
	t.Parallel()

	builder := NewRouteBuilder().
		Route("/guarded").
		Handler(noopHandler).
		Intermediate(func(http.ResponseWriter, *http.Request) (bool, error) { return true, nil })

	terminal, err := builder.Build()
	require.NoError(t, err)
	intermediate, err := builder.BuildIntermediate()
	require.NoError(t, err)

	assert.Equal(t, terminal.Raw(), intermediate.Raw())
	assert.NotEqual(t, terminal.ID(), intermediate.ID())
}
