package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopology(t *testing.T) {
	t.Run("authenticated actors skip the account step", func(t *testing.T) {
		top := NewTopology(true)
		assert.Equal(t, 7, top.TotalSteps())
		assert.Len(t, top.Titles(), top.TotalSteps())
		assert.False(t, top.HasAccountStep())

		k, ok := top.KindAt(1)
		require.True(t, ok)
		assert.Equal(t, KindTypeSelection, k)
		assert.Equal(t, 7, top.NumberOf(KindLaunch))
	})

	t.Run("anonymous actors start on the account step", func(t *testing.T) {
		top := NewTopology(false)
		assert.Equal(t, 8, top.TotalSteps())
		assert.Len(t, top.Titles(), top.TotalSteps())
		assert.Equal(t, "Account", top.Titles()[0])
		assert.Equal(t, 3, top.NumberOf(KindBasicInfo))
	})

	t.Run("out of range steps resolve to nothing", func(t *testing.T) {
		top := NewTopology(true)
		_, ok := top.KindAt(0)
		assert.False(t, ok)
		_, ok = top.KindAt(8)
		assert.False(t, ok)
		assert.Zero(t, top.NumberOf(KindAccount))
	})
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "basic_info", KindBasicInfo.String())
	assert.Equal(t, "Products & Services", KindProducts.Title())
	assert.Equal(t, "unknown", Kind(99).String())
}
