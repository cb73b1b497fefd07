package moderation

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
)

// Actions are the side-effecting moderation operations the pipeline's
// verdicts translate into. Implementations live at the transport layer.
//
// Error contract: DirectMessage failures are best-effort and may be ignored
// by callers (closed DMs, blocked bot); Delete and Ban failures must be
// propagated.
type Actions interface {
	// Delete removes a message from its channel.
	Delete(ctx context.Context, channelID, messageID snowflake.ID) error

	// DirectMessage sends a private message to a user. Best-effort.
	DirectMessage(ctx context.Context, userID snowflake.ID, text string) error

	// Ban removes a user from the guild with the given reason. A no-op for
	// users holding an elevated role.
	Ban(ctx context.Context, userID snowflake.ID, reason string) error

	// Reply posts text in a channel as a reply to the given message.
	Reply(ctx context.Context, channelID, messageID snowflake.ID, text string) error

	// AuditLog sends text to the fixed audit log channel.
	AuditLog(ctx context.Context, text string) error
}
