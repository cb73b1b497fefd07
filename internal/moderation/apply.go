package moderation

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Apply executes the side effects of a verdict in the required order. For
// removals the audit-log entry is written first, then the author is notified
// (best-effort), then the message is deleted; deletion happens even when the
// notification fails. Errors from deletion and bans are returned; everything
// else is logged and swallowed.
func Apply(ctx context.Context, act Actions, msg *Message, verdict Verdict, logger *zap.Logger) error {
	switch verdict.Kind {
	case VerdictAllow:
		if verdict.Reply == "" {
			return nil
		}

		if err := act.Reply(ctx, msg.ChannelID, msg.ID, verdict.Reply); err != nil {
			return fmt.Errorf("failed to post reply: %w", err)
		}

		return nil

	case VerdictRemoveAndNotify:
		entry := fmt.Sprintf(
			"Removed message from <@%d> in <#%d> (%s).\n```\n%s\n```\nWarning sent to the author:\n%s",
			msg.AuthorID, msg.ChannelID, verdict.Reason, EscapeCodeBlocks(msg.Content), verdict.Warning,
		)
		if err := act.AuditLog(ctx, entry); err != nil {
			logger.Warn("Failed to write audit log entry", zap.Error(err))
		}

		// Best-effort: the author may have DMs closed or the bot blocked.
		if err := act.DirectMessage(ctx, msg.AuthorID, verdict.Warning); err != nil {
			logger.Debug("Failed to notify author of removal", zap.Error(err))
		}

		if err := act.Delete(ctx, msg.ChannelID, msg.ID); err != nil {
			return fmt.Errorf("failed to delete message: %w", err)
		}

		return nil

	case VerdictBan:
		entry := fmt.Sprintf(
			"Banning <@%d> (%s).\n```\n%s\n```",
			msg.AuthorID, verdict.Reason, EscapeCodeBlocks(msg.Content),
		)
		if err := act.AuditLog(ctx, entry); err != nil {
			logger.Warn("Failed to write audit log entry", zap.Error(err))
		}

		if err := act.Ban(ctx, msg.AuthorID, verdict.Reason); err != nil {
			return fmt.Errorf("failed to ban author: %w", err)
		}

		return nil
	}

	return nil
}
