// Package bot connects the policy evaluation pipeline to the Discord
// gateway: it turns message events into snapshots, runs them through the
// pipeline, and applies the resulting verdicts.
package bot

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/snowflake/v2"
	"github.com/google/uuid"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
	"go.uber.org/zap"

	"github.com/amulet-team/amulet-bot/internal/moderation"
	"github.com/amulet-team/amulet-bot/internal/moderation/lexicon"
	"github.com/amulet-team/amulet-bot/internal/setup/config"
)

// Bot holds the Discord client and the moderation pipeline. All message
// evaluations run concurrently; the only shared state is the immutable
// lexicon and configuration.
type Bot struct {
	client    bot.Client
	cfg       *config.Config
	pipeline  *moderation.Pipeline
	directory *guildDirectory
	actions   moderation.Actions
	logger    *zap.Logger

	// selfID is the bot's own user ID, learned from the Ready event.
	selfID atomic.Uint64
	// handlers tracks in-flight evaluations so Close can drain them.
	handlers conc.WaitGroup
}

// New builds the moderation pipeline and configures the Discord client with
// the gateway intents and event listeners message policing needs.
func New(token string, cfg *config.Config, lex *lexicon.Lexicon, logger *zap.Logger) (*Bot, error) {
	settings := moderation.Settings{
		ShowcaseChannelID: snowflake.ID(cfg.Discord.Channels.Showcase),
		GeneralChannelID:  snowflake.ID(cfg.Discord.Channels.General),
		LogChannelID:      snowflake.ID(cfg.Discord.Channels.Log),
		DoNotMentionRole:  cfg.Discord.Roles.DoNotMention,
	}
	for _, roleID := range cfg.Discord.Roles.Elevated {
		settings.ElevatedRoleIDs = append(settings.ElevatedRoleIDs, snowflake.ID(roleID))
	}

	b := &Bot{
		cfg:      cfg,
		pipeline: moderation.NewPipeline(settings, lex, logger),
		logger:   logger.Named("bot"),
	}

	client, err := disgo.New(token,
		bot.WithGatewayConfigOpts(
			gateway.WithIntents(
				gateway.IntentGuilds,
				gateway.IntentGuildMessages,
				gateway.IntentMessageContent,
				gateway.IntentGuildMembers,
				gateway.IntentDirectMessages,
			),
		),
		bot.WithCacheConfigOpts(
			cache.WithCaches(cache.FlagGuilds, cache.FlagChannels, cache.FlagRoles, cache.FlagMembers),
		),
		bot.WithEventListeners(&events.ListenerAdapter{
			OnReady:         b.handleReady,
			OnMessageCreate: b.handleMessageCreate,
			OnMessageUpdate: b.handleMessageUpdate,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord client: %w", err)
	}

	guildID := snowflake.ID(cfg.Discord.GuildID)

	b.client = client
	b.directory = newGuildDirectory(client, guildID, b.logger)
	b.actions = newRestActions(client, guildID, settings.LogChannelID, settings.ElevatedRoleIDs, b.directory, b.logger)

	return b, nil
}

// Start opens the gateway connection. A failed connection is fatal; no
// events are processed before authentication succeeds.
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("Starting bot")
	return b.client.OpenGateway(ctx)
}

// Close shuts down the gateway connection and drains in-flight evaluations
// so terminal actions are not cut off mid-application.
func (b *Bot) Close(ctx context.Context) {
	b.logger.Info("Closing bot")
	b.client.Close(ctx)
	b.handlers.Wait()
}

// handleReady records the bot's own identity for the self-message guard and
// announces the session to the audit log channel.
func (b *Bot) handleReady(e *events.Ready) {
	b.selfID.Store(uint64(e.User.ID))
	b.logger.Info("Connected to gateway", zap.Uint64("self_id", uint64(e.User.ID)))

	if err := b.actions.AuditLog(context.Background(), "I am back"); err != nil {
		b.logger.Warn("Failed to announce session to log channel", zap.Error(err))
	}
}

func (b *Bot) handleMessageCreate(e *events.MessageCreate) {
	b.dispatch(e.Message, false)
}

// handleMessageUpdate re-evaluates edited messages through the identical
// pipeline; an edit can retroactively remove or ban.
func (b *Bot) handleMessageUpdate(e *events.MessageUpdate) {
	b.dispatch(e.Message, true)
}

// dispatch snapshots a message event and processes it in its own goroutine.
// Any error or panic raised by one evaluation is logged and never affects
// other messages or the process.
func (b *Bot) dispatch(m discord.Message, edited bool) {
	if m.GuildID == nil || uint64(*m.GuildID) != b.cfg.Discord.GuildID {
		return
	}

	msg := &moderation.Message{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		AuthorID:  m.Author.ID,
		Content:   m.Content,
		Edited:    edited,
	}
	if m.Member != nil {
		msg.AuthorRoles = m.Member.RoleIDs
		msg.RolesResolved = true
	}

	evaluationID := uuid.New().String()

	b.handlers.Go(func() {
		recovered := panics.Try(func() {
			b.process(msg, evaluationID)
		})
		if recovered == nil {
			return
		}

		b.logger.Error("Panic while processing message",
			zap.String("evaluation_id", evaluationID),
			zap.Uint64("message_id", uint64(msg.ID)),
			zap.Any("panic", recovered.Value))

		_ = b.actions.AuditLog(context.Background(), fmt.Sprintf(
			"Internal error while evaluating message %d; the message was left untouched.", msg.ID))
	})
}

// process runs one full evaluation: resolve missing author roles, evaluate
// the pipeline, then apply the verdict's side effects.
func (b *Bot) process(msg *moderation.Message, evaluationID string) {
	ctx := context.Background()
	logger := b.logger.With(
		zap.String("evaluation_id", evaluationID),
		zap.Uint64("message_id", uint64(msg.ID)))

	// Edit events often omit the member payload; try the directory before
	// treating the author as unresolved.
	if !msg.RolesResolved {
		if roles, ok := b.directory.MemberRoles(ctx, msg.AuthorID); ok {
			msg.AuthorRoles = roles
			msg.RolesResolved = true
		}
	}

	verdict := b.pipeline.Evaluate(ctx, b.directory, snowflake.ID(b.selfID.Load()), msg)

	if err := moderation.Apply(ctx, b.actions, msg, verdict, logger); err != nil {
		logger.Error("Failed to apply verdict",
			zap.Stringer("verdict", verdict.Kind),
			zap.Error(err))

		_ = b.actions.AuditLog(ctx, fmt.Sprintf(
			"Failed to apply %s verdict for message %d: %s", verdict.Kind, msg.ID, err))

		return
	}

	logger.Debug("Message evaluated",
		zap.Stringer("verdict", verdict.Kind),
		zap.String("reason", verdict.Reason),
		zap.Bool("edited", msg.Edited))
}
