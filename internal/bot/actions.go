package bot

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/zap"

	"github.com/amulet-team/amulet-bot/internal/moderation"
)

// restActions implements moderation.Actions against the Discord REST API.
type restActions struct {
	client        bot.Client
	guildID       snowflake.ID
	logChannelID  snowflake.ID
	elevatedRoles []snowflake.ID
	directory     *guildDirectory
	logger        *zap.Logger
}

func newRestActions(
	client bot.Client, guildID, logChannelID snowflake.ID,
	elevatedRoles []snowflake.ID, directory *guildDirectory, logger *zap.Logger,
) *restActions {
	return &restActions{
		client:        client,
		guildID:       guildID,
		logChannelID:  logChannelID,
		elevatedRoles: elevatedRoles,
		directory:     directory,
		logger:        logger.Named("actions"),
	}
}

func (r *restActions) Delete(ctx context.Context, channelID, messageID snowflake.ID) error {
	return r.client.Rest().DeleteMessage(channelID, messageID, rest.WithCtx(ctx))
}

func (r *restActions) DirectMessage(ctx context.Context, userID snowflake.ID, text string) error {
	channel, err := r.client.Rest().CreateDMChannel(userID, rest.WithCtx(ctx))
	if err != nil {
		return fmt.Errorf("failed to open DM channel: %w", err)
	}

	_, err = r.client.Rest().CreateMessage(channel.ID(),
		discord.NewMessageCreateBuilder().SetContent(text).Build(),
		rest.WithCtx(ctx))
	if err != nil {
		return fmt.Errorf("failed to send DM: %w", err)
	}

	return nil
}

// Ban removes a user from the guild. Users holding an elevated role are
// never banned; the request is dropped with a log entry instead.
func (r *restActions) Ban(ctx context.Context, userID snowflake.ID, reason string) error {
	if roles, ok := r.directory.MemberRoles(ctx, userID); ok &&
		moderation.HasElevatedRole(roles, r.elevatedRoles) {
		r.logger.Info("Skipping ban for privileged user",
			zap.Uint64("user_id", uint64(userID)),
			zap.String("reason", reason))

		return nil
	}

	return r.client.Rest().AddBan(r.guildID, userID, 0, rest.WithCtx(ctx), rest.WithReason(reason))
}

func (r *restActions) Reply(ctx context.Context, channelID, messageID snowflake.ID, text string) error {
	_, err := r.client.Rest().CreateMessage(channelID,
		discord.NewMessageCreateBuilder().
			SetContent(text).
			SetMessageReferenceByID(messageID).
			Build(),
		rest.WithCtx(ctx))

	return err
}

func (r *restActions) AuditLog(ctx context.Context, text string) error {
	_, err := r.client.Rest().CreateMessage(r.logChannelID,
		discord.NewMessageCreateBuilder().SetContent(text).Build(),
		rest.WithCtx(ctx))

	return err
}
