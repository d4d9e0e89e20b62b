package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLogIsLIFO(t *testing.T) {
	log := NewAuditLog()

	_, err := log.Pop()
	require.ErrorIs(t, err, ErrEmpty)
	_, err = log.Peek()
	require.ErrorIs(t, err, ErrEmpty)

	now := time.Now()
	first := NewCastEvent(now, "id-1", "code-1", "ballot-1", "CAND-A", 1)
	second := NewCastEvent(now, "id-2", "code-2", "ballot-2", "CAND-B", 2)
	log.Push(first)
	log.Push(second)
	require.Equal(t, 2, log.Len())

	top, err := log.Peek()
	require.NoError(t, err)
	assert.Equal(t, second.EventID(), top.EventID())
	// Peek must not consume.
	require.Equal(t, 2, log.Len())

	popped, err := log.Pop()
	require.NoError(t, err)
	assert.Equal(t, second.EventID(), popped.EventID())

	popped, err = log.Pop()
	require.NoError(t, err)
	assert.Equal(t, first.EventID(), popped.EventID())

	_, err = log.Pop()
	require.ErrorIs(t, err, ErrEmpty)
}

func TestAuditLogRecentRedactsAndOrders(t *testing.T) {
	log := NewAuditLog()
	now := time.Now()
	cast := NewCastEvent(now, "identity-digest", "code-digest", "ballot-1", "CAND-A", 1)
	log.Push(cast)
	log.Push(NewRegisterEvent(now, 3, 1, 4))

	recent := log.Recent(10)
	require.Len(t, recent, 2)
	assert.Equal(t, AuditKindRegister, recent[0].Kind())
	assert.Equal(t, AuditKindCast, recent[1].Kind())

	redacted, ok := recent[1].(CastEvent)
	require.True(t, ok)
	assert.Equal(t, "***REDACTED***", redacted.IdentityDigest)
	assert.Equal(t, "***REDACTED***", redacted.CodeDigest)
	assert.Equal(t, "ballot-1", redacted.BallotDigest)
	assert.Equal(t, uint64(1), redacted.Sequence)

	// Redaction works on copies; the stored event keeps its digests for undo.
	_, err := log.Pop()
	require.NoError(t, err)
	stored, err := log.Pop()
	require.NoError(t, err)
	assert.Equal(t, "identity-digest", stored.(CastEvent).IdentityDigest)
	assert.Equal(t, "code-digest", stored.(CastEvent).CodeDigest)
}

func TestAuditLogRecentHonorsLimit(t *testing.T) {
	log := NewAuditLog()
	now := time.Now()
	for i := 1; i <= 5; i++ {
		log.Push(NewCastEvent(now, "id", "code", "ballot", "CAND-A", uint64(i)))
	}

	recent := log.Recent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, uint64(5), recent[0].(CastEvent).Sequence)
	assert.Equal(t, uint64(4), recent[1].(CastEvent).Sequence)

	assert.Len(t, log.Recent(0), 5)
	assert.Len(t, log.Recent(100), 5)
}

func TestDecodeAuditEvent(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	cast := NewCastEvent(now, "identity", "code", "ballot", "CAND-A", 7)
	payload, err := json.Marshal(cast)
	require.NoError(t, err)

	decoded, err := DecodeAuditEvent(AuditKindCast, payload)
	require.NoError(t, err)
	got, ok := decoded.(CastEvent)
	require.True(t, ok)
	assert.Equal(t, cast.EventID(), got.EventID())
	assert.Equal(t, cast.Sequence, got.Sequence)
	assert.Equal(t, cast.CodeDigest, got.CodeDigest)

	undo := NewUndoEvent(now, cast)
	payload, err = json.Marshal(undo)
	require.NoError(t, err)
	decoded, err = DecodeAuditEvent(AuditKindUndo, payload)
	require.NoError(t, err)
	assert.Equal(t, cast.EventID(), decoded.(UndoEvent).UndoneEventID)

	_, err = DecodeAuditEvent(AuditKind("BOGUS"), []byte("{}"))
	require.Error(t, err)
}
