package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "launchpad/pkg/domain-errors"
)

// TestParseUUID_Invariants validates that IDs received from clients are
// non-empty, well-formed, non-nil UUIDs.
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseSessionID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseProductID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseBranchID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID with surrounding whitespace", func(t *testing.T) {
		valid := uuid.New()
		id, err := ParseSessionID("  " + valid.String() + " ")
		require.NoError(t, err)
		assert.Equal(t, SessionID(valid), id)
	})

	t.Run("rejects trailing payload", func(t *testing.T) {
		_, err := ParseProductID(uuid.NewString() + strings.Repeat("x", 3))
		require.Error(t, err)
	})
}

func TestBusinessID_Lifecycle(t *testing.T) {
	t.Run("new identifiers start pending", func(t *testing.T) {
		id := NewPendingBusinessID()
		assert.True(t, id.IsPending())
		assert.False(t, id.IsConfirmed())
		assert.False(t, id.IsNil())
		assert.Equal(t, id.LocalToken().String(), id.String())
	})

	t.Run("confirm keeps local token and exposes server id", func(t *testing.T) {
		pending := NewPendingBusinessID()
		confirmed, err := pending.Confirm("srv-1")
		require.NoError(t, err)

		assert.True(t, confirmed.IsConfirmed())
		assert.Equal(t, "srv-1", confirmed.String())
		assert.Equal(t, pending.LocalToken(), confirmed.LocalToken())
		serverID, ok := confirmed.ServerID()
		assert.True(t, ok)
		assert.Equal(t, "srv-1", serverID)

		// the original value is untouched
		assert.True(t, pending.IsPending())
	})

	t.Run("confirm rejects blank server id", func(t *testing.T) {
		pending := NewPendingBusinessID()
		same, err := pending.Confirm("   ")
		require.Error(t, err)
		assert.Equal(t, pending, same)
	})

	t.Run("zero value is nil", func(t *testing.T) {
		assert.True(t, BusinessID{}.IsNil())
	})
}

func TestIDs_TextRoundTrip(t *testing.T) {
	t.Run("product id", func(t *testing.T) {
		pid := NewProductID()
		text, err := pid.MarshalText()
		require.NoError(t, err)

		var back ProductID
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, pid, back)
		assert.Error(t, back.UnmarshalText([]byte("nope")))
	})

	t.Run("pending business id keeps its token", func(t *testing.T) {
		pending := NewPendingBusinessID()
		var back BusinessID
		require.NoError(t, back.UnmarshalText([]byte(pending.String())))
		assert.True(t, back.IsPending())
		assert.Equal(t, pending.LocalToken(), back.LocalToken())
	})

	t.Run("server id decodes as confirmed", func(t *testing.T) {
		var back BusinessID
		require.NoError(t, back.UnmarshalText([]byte("srv-9")))
		serverID, ok := back.ServerID()
		assert.True(t, ok)
		assert.Equal(t, "srv-9", serverID)
		assert.Equal(t, uuid.Nil, back.LocalToken())
	})
}
