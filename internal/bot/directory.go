package bot

import (
	"context"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/zap"

	"github.com/amulet-team/amulet-bot/internal/moderation"
)

// guildDirectory implements moderation.Directory on top of the disgo caches
// with REST fallbacks. All lookups degrade to "not found" rather than
// failing an evaluation.
type guildDirectory struct {
	client  bot.Client
	guildID snowflake.ID
	logger  *zap.Logger
}

func newGuildDirectory(client bot.Client, guildID snowflake.ID, logger *zap.Logger) *guildDirectory {
	return &guildDirectory{
		client:  client,
		guildID: guildID,
		logger:  logger.Named("directory"),
	}
}

// MemberRoles resolves a user to their current role set, preferring the
// member cache over a REST lookup.
func (d *guildDirectory) MemberRoles(ctx context.Context, userID snowflake.ID) ([]snowflake.ID, bool) {
	if member, ok := d.client.Caches().Member(d.guildID, userID); ok {
		return member.RoleIDs, true
	}

	member, err := d.client.Rest().GetMember(d.guildID, userID, rest.WithCtx(ctx))
	if err != nil {
		d.logger.Debug("Failed to resolve member",
			zap.Uint64("user_id", uint64(userID)),
			zap.Error(err))

		return nil, false
	}

	return member.RoleIDs, true
}

// RoleIDByName resolves a guild role by display name.
func (d *guildDirectory) RoleIDByName(ctx context.Context, name string) (snowflake.ID, bool) {
	roles, err := d.client.Rest().GetRoles(d.guildID, rest.WithCtx(ctx))
	if err != nil {
		d.logger.Debug("Failed to list guild roles", zap.Error(err))
		return 0, false
	}

	for _, role := range roles {
		if role.Name == name {
			return role.ID, true
		}
	}

	return 0, false
}

// HistoryChannels lists the guild text channels the given user can read
// message history in.
func (d *guildDirectory) HistoryChannels(ctx context.Context, userID snowflake.ID) []snowflake.ID {
	member, ok := d.member(ctx, userID)
	if !ok {
		return nil
	}

	channels, err := d.client.Rest().GetGuildChannels(d.guildID, rest.WithCtx(ctx))
	if err != nil {
		d.logger.Debug("Failed to list guild channels", zap.Error(err))
		return nil
	}

	var ids []snowflake.ID

	for _, channel := range channels {
		if channel.Type() != discord.ChannelTypeGuildText {
			continue
		}

		perms := d.client.Caches().MemberPermissionsInChannel(channel, member)
		if perms.Has(discord.PermissionViewChannel, discord.PermissionReadMessageHistory) {
			ids = append(ids, channel.ID())
		}
	}

	return ids
}

// RecentMessages fetches the newest messages of a channel, newest first.
func (d *guildDirectory) RecentMessages(ctx context.Context, channelID snowflake.ID, limit int) ([]moderation.HistoryMessage, error) {
	messages, err := d.client.Rest().GetMessages(channelID, 0, 0, 0, limit, rest.WithCtx(ctx))
	if err != nil {
		return nil, err
	}

	history := make([]moderation.HistoryMessage, 0, len(messages))
	for _, message := range messages {
		history = append(history, moderation.HistoryMessage{
			AuthorID: message.Author.ID,
			Content:  message.Content,
		})
	}

	return history, nil
}

// member resolves a full member object for permission computation.
func (d *guildDirectory) member(ctx context.Context, userID snowflake.ID) (discord.Member, bool) {
	if member, ok := d.client.Caches().Member(d.guildID, userID); ok {
		return member, true
	}

	member, err := d.client.Rest().GetMember(d.guildID, userID, rest.WithCtx(ctx))
	if err != nil {
		return discord.Member{}, false
	}

	return *member, true
}
