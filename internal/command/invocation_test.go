package command

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInvocation_TypedAccessors(t *testing.T) {
	t.Parallel()
	inv := NewInvocation(map[string]any{
		"name":    "x",
		"count":   7,
		"delta":   -0.5,
		"force":   true,
		"timeout": 3 * time.Second,
	}, map[string]struct{}{"name": {}, "count": {}})

	require.Equal(t, "x", inv.String("name"))
	require.Equal(t, 7, inv.Int("count"))
	require.Equal(t, -0.5, inv.Float("delta"))
	require.True(t, inv.Bool("force"))
	require.Equal(t, 3*time.Second, inv.Duration("timeout"))
}

func TestInvocation_Provided(t *testing.T) {
	t.Parallel()
	inv := NewInvocation(map[string]any{"name": "x", "count": 3},
		map[string]struct{}{"name": {}})

	require.True(t, inv.Provided("name"))
	require.False(t, inv.Provided("count"), "defaulted flags are not provided")
}

func TestInvocation_UndeclaredFlagPanics(t *testing.T) {
	t.Parallel()
	inv := NewInvocation(map[string]any{"name": "x"}, nil)

	require.Panics(t, func() { inv.String("missing") })
	require.Panics(t, func() { inv.Int("name") }, "wrong kind is a programmer error")
}
