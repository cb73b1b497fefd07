package moderation

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
)

// HistoryMessage is one entry of a channel's recent message window, reduced
// to what the spam check needs.
type HistoryMessage struct {
	AuthorID snowflake.ID
	Content  string
}

// Directory is the read-only view of the guild the pipeline evaluates
// against. It is passed in at call time; the pipeline holds no reference to
// the underlying platform connection.
type Directory interface {
	// MemberRoles resolves a user to their current role set. The second
	// return is false when the user cannot be resolved to a guild member;
	// callers degrade to the stricter default instead of failing.
	MemberRoles(ctx context.Context, userID snowflake.ID) ([]snowflake.ID, bool)

	// RoleIDByName resolves a guild role by its display name. The second
	// return is false when no such role exists or the lookup failed.
	RoleIDByName(ctx context.Context, name string) (snowflake.ID, bool)

	// HistoryChannels lists the guild text channels the given user can read
	// message history in. A failed enumeration returns nil.
	HistoryChannels(ctx context.Context, userID snowflake.ID) []snowflake.ID

	// RecentMessages returns up to limit of the newest messages in a
	// channel, newest first.
	RecentMessages(ctx context.Context, channelID snowflake.ID, limit int) ([]HistoryMessage, error)
}
