// Package moderation implements the message policy evaluation pipeline: an
// ordered, short-circuiting sequence of content and behavior checks run
// against every inbound or edited message.
package moderation

import "github.com/disgoorg/snowflake/v2"

// Message is an immutable snapshot of a chat message at evaluation time. It
// is constructed from a platform event, consumed once by the pipeline, and
// discarded; an edit produces a new snapshot with the same ID.
type Message struct {
	// ID of the message on the platform.
	ID snowflake.ID
	// ChannelID the message was posted in.
	ChannelID snowflake.ID
	// AuthorID of the posting user.
	AuthorID snowflake.ID
	// AuthorRoles holds the author's role set at evaluation time. Only
	// meaningful when RolesResolved is true.
	AuthorRoles []snowflake.ID
	// RolesResolved is false when the platform could not resolve the author
	// to a guild member with a known role set. Unresolved authors are
	// treated as not privileged.
	RolesResolved bool
	// Content is the raw message text.
	Content string
	// Edited marks snapshots built from message edit events.
	Edited bool
}
