package moderation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/amulet-team/amulet-bot/internal/moderation"
	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// actionRecorder records the order of moderation actions and can be told to
// fail specific ones.
type actionRecorder struct {
	calls  []string
	audits []string

	dmErr     error
	deleteErr error
}

func (r *actionRecorder) Delete(_ context.Context, _, _ snowflake.ID) error {
	r.calls = append(r.calls, "delete")
	return r.deleteErr
}

func (r *actionRecorder) DirectMessage(_ context.Context, _ snowflake.ID, _ string) error {
	r.calls = append(r.calls, "dm")
	return r.dmErr
}

func (r *actionRecorder) Ban(_ context.Context, _ snowflake.ID, _ string) error {
	r.calls = append(r.calls, "ban")
	return nil
}

func (r *actionRecorder) Reply(_ context.Context, _, _ snowflake.ID, _ string) error {
	r.calls = append(r.calls, "reply")
	return nil
}

func (r *actionRecorder) AuditLog(_ context.Context, text string) error {
	r.calls = append(r.calls, "audit")
	r.audits = append(r.audits, text)

	return nil
}

func TestApplyRemoveAndNotifyOrder(t *testing.T) {
	t.Parallel()

	rec := &actionRecorder{}
	msg := message(showcaseID, "no link here")
	verdict := moderation.Verdict{
		Kind:    moderation.VerdictRemoveAndNotify,
		Reason:  "missing project link",
		Warning: "please include a link",
	}

	err := moderation.Apply(context.Background(), rec, msg, verdict, zap.NewNop())
	require.NoError(t, err)

	// Audit first so the original content survives, then the notification,
	// then the deletion.
	assert.Equal(t, []string{"audit", "dm", "delete"}, rec.calls)
	require.Len(t, rec.audits, 1)
	assert.Contains(t, rec.audits[0], "no link here")
	assert.Contains(t, rec.audits[0], "please include a link")
}

func TestApplyDeletesEvenWhenNotifyFails(t *testing.T) {
	t.Parallel()

	rec := &actionRecorder{dmErr: errors.New("cannot send messages to this user")}
	verdict := moderation.Verdict{
		Kind:    moderation.VerdictRemoveAndNotify,
		Reason:  "profanity",
		Warning: "warning text",
	}

	err := moderation.Apply(context.Background(), rec, message(generalID, "bad text"), verdict, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"audit", "dm", "delete"}, rec.calls)
}

func TestApplyPropagatesDeleteFailure(t *testing.T) {
	t.Parallel()

	rec := &actionRecorder{deleteErr: errors.New("missing permissions")}
	verdict := moderation.Verdict{
		Kind:    moderation.VerdictRemoveAndNotify,
		Reason:  "profanity",
		Warning: "warning text",
	}

	err := moderation.Apply(context.Background(), rec, message(generalID, "bad text"), verdict, zap.NewNop())
	assert.ErrorContains(t, err, "missing permissions")
}

func TestApplyEscapesAuditContent(t *testing.T) {
	t.Parallel()

	rec := &actionRecorder{}
	verdict := moderation.Verdict{
		Kind:    moderation.VerdictRemoveAndNotify,
		Reason:  "missing project link",
		Warning: "warning text",
	}

	err := moderation.Apply(context.Background(), rec, message(showcaseID, "```\nfenced\n```"), verdict, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, rec.audits, 1)
	assert.Contains(t, rec.audits[0], "`\\``")
}

func TestApplyBan(t *testing.T) {
	t.Parallel()

	rec := &actionRecorder{}
	verdict := moderation.Verdict{
		Kind:   moderation.VerdictBan,
		Reason: "spamming: free stuff",
	}

	err := moderation.Apply(context.Background(), rec, message(otherID, "free stuff"), verdict, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"audit", "ban"}, rec.calls)
	assert.Contains(t, rec.audits[0], "spamming")
}

func TestApplyAllow(t *testing.T) {
	t.Parallel()

	// A plain allow has zero side effects.
	rec := &actionRecorder{}
	err := moderation.Apply(context.Background(), rec, message(otherID, "hello"),
		moderation.Verdict{Kind: moderation.VerdictAllow}, zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, rec.calls)

	// An allow with a canned reply posts it in-channel.
	err = moderation.Apply(context.Background(), rec, message(generalID, "help"),
		moderation.Verdict{Kind: moderation.VerdictAllow, Reply: "pong"}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"reply"}, rec.calls)
}
