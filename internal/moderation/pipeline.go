package moderation

import (
	"context"
	"fmt"
	"slices"

	"github.com/amulet-team/amulet-bot/internal/moderation/lexicon"
	"github.com/amulet-team/amulet-bot/internal/moderation/textscan"
	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/zap"
)

const (
	// looseSimilarityThreshold triggers canned help/question responses.
	looseSimilarityThreshold = 0.5
	// tightSimilarityThreshold marks a prior message as a spam duplicate.
	tightSimilarityThreshold = 0.9
	// spamWindowSize bounds how many recent messages are scanned per channel.
	spamWindowSize = 30
	// spamMessageLimit is the duplicate count (including the current
	// message) that escalates to a ban.
	spamMessageLimit = 3
	// shortMessageRuneLimit bounds which general-channel messages are
	// compared against the canned phrase lists.
	shortMessageRuneLimit = 30
)

// Settings holds the static guild layout the pipeline enforces against.
type Settings struct {
	// ShowcaseChannelID is the channel where messages must include a
	// project link.
	ShowcaseChannelID snowflake.ID
	// GeneralChannelID is the help channel with canned responses.
	GeneralChannelID snowflake.ID
	// LogChannelID is the audit channel; it also answers !ping.
	LogChannelID snowflake.ID
	// ElevatedRoleIDs exempt their holders from the mention-abuse check.
	ElevatedRoleIDs []snowflake.ID
	// DoNotMentionRole is the display name of the role marking members as
	// off-limits for mentions.
	DoNotMentionRole string
}

// Pipeline runs the fixed, ordered policy checks against message snapshots.
// It holds only immutable state and is safe for concurrent evaluations.
type Pipeline struct {
	settings Settings
	lexicon  *lexicon.Lexicon
	logger   *zap.Logger
	rules    []rule
}

// rule pairs a diagnostic name with one policy check. A nil verdict means
// the check passed and evaluation continues with the next rule.
type rule struct {
	name string
	eval func(ctx context.Context, ev *evaluation) *Verdict
}

// NewPipeline builds the policy rule chain. Rule order is the priority
// order; the first terminal verdict wins.
func NewPipeline(settings Settings, lex *lexicon.Lexicon, logger *zap.Logger) *Pipeline {
	p := &Pipeline{
		settings: settings,
		lexicon:  lex,
		logger:   logger.Named("pipeline"),
	}

	p.rules = []rule{
		{name: "self_guard", eval: p.checkSelf},
		{name: "profanity", eval: p.checkProfanity},
		{name: "mention_abuse", eval: p.checkMentionAbuse},
		{name: "channel_rules", eval: p.checkChannelRules},
		{name: "link_spam", eval: p.checkLinkSpam},
	}

	return p
}

// evaluation carries the per-message state shared between rules, including
// the lazily resolved do-not-mention role so it is looked up at most once
// per message.
type evaluation struct {
	dir    Directory
	self   snowflake.ID
	msg    *Message
	logger *zap.Logger

	dnmResolved bool
	dnmRoleID   snowflake.ID
	dnmOK       bool
}

// Evaluate runs the rule chain over one message snapshot and returns the
// single terminal verdict. The directory is a read-only capability supplied
// by the caller; no platform state is held by the pipeline itself.
func (p *Pipeline) Evaluate(ctx context.Context, dir Directory, self snowflake.ID, msg *Message) Verdict {
	ev := &evaluation{
		dir:  dir,
		self: self,
		msg:  msg,
		logger: p.logger.With(
			zap.Uint64("message_id", uint64(msg.ID)),
			zap.Uint64("author_id", uint64(msg.AuthorID)),
		),
	}

	for _, r := range p.rules {
		verdict := r.eval(ctx, ev)
		if verdict == nil {
			continue
		}

		ev.logger.Debug("Rule produced terminal verdict",
			zap.String("rule", r.name),
			zap.Stringer("verdict", verdict.Kind))

		return *verdict
	}

	return allowVerdict
}

// checkSelf terminates evaluation for the bot's own messages before any
// policy runs.
func (p *Pipeline) checkSelf(_ context.Context, ev *evaluation) *Verdict {
	if ev.msg.AuthorID != ev.self {
		return nil
	}

	v := allowVerdict

	return &v
}

// checkProfanity removes messages containing lexicon words. Highest-priority
// content rule; it overrides all channel-specific handling.
func (p *Pipeline) checkProfanity(_ context.Context, ev *evaluation) *Verdict {
	if !p.lexicon.Contains(ev.msg.Content) {
		return nil
	}

	return &Verdict{
		Kind:    VerdictRemoveAndNotify,
		Reason:  "profanity",
		Warning: profanityWarning,
	}
}

// checkMentionAbuse removes messages that tag members holding the
// do-not-mention role. Privileged authors are exempt; an unresolvable role
// abandons the check for this message only.
func (p *Pipeline) checkMentionAbuse(ctx context.Context, ev *evaluation) *Verdict {
	if p.isPrivileged(ev.msg) {
		return nil
	}

	for _, userID := range textscan.ExtractMentions(ev.msg.Content) {
		if userID == ev.msg.AuthorID {
			continue
		}

		roleID, ok := ev.doNotMentionRole(ctx, p.settings.DoNotMentionRole)
		if !ok {
			ev.logger.Warn("Could not resolve do-not-mention role, skipping mention check",
				zap.String("role", p.settings.DoNotMentionRole))
			return nil
		}

		roles, resolved := ev.dir.MemberRoles(ctx, userID)
		if !resolved {
			continue
		}

		if slices.Contains(roles, roleID) {
			return &Verdict{
				Kind:    VerdictRemoveAndNotify,
				Reason:  "mention abuse",
				Warning: noTaggingWarning,
			}
		}
	}

	return nil
}

// checkChannelRules applies the per-channel posting rules: the showcase
// link requirement, the general-channel canned responses, and the log
// channel liveness command.
func (p *Pipeline) checkChannelRules(_ context.Context, ev *evaluation) *Verdict {
	content := ev.msg.Content

	switch ev.msg.ChannelID {
	case p.settings.ShowcaseChannelID:
		if textscan.IsSourceHostURL(content) {
			return nil
		}

		escaped := EscapeCodeBlocks(content)

		note := ""
		if escaped != content {
			note = backtickFixNote
		}

		return &Verdict{
			Kind:    VerdictRemoveAndNotify,
			Reason:  "missing project link",
			Warning: fmt.Sprintf(showcaseWarningFormat, note, escaped),
		}

	case p.settings.GeneralChannelID:
		if len([]rune(content)) >= shortMessageRuneLimit {
			return nil
		}

		for _, phrase := range helpPhrases {
			if textscan.Similarity(content, phrase) > looseSimilarityThreshold {
				return &Verdict{Kind: VerdictAllow, Reply: helpReply}
			}
		}

		for _, phrase := range questionPhrases {
			if textscan.Similarity(content, phrase) > looseSimilarityThreshold {
				return &Verdict{Kind: VerdictAllow, Reply: questionReply}
			}
		}

		return nil

	case p.settings.LogChannelID:
		if content == "!ping" {
			return &Verdict{Kind: VerdictAllow, Reply: pingReply}
		}

		return nil
	}

	return nil
}

// checkLinkSpam bans authors who posted near-duplicates of a foreign link
// message across multiple channels. The count starts at one for the current
// message and the scan exits early once the limit is reached. A failed
// history lookup skips that channel, never the whole scan.
func (p *Pipeline) checkLinkSpam(ctx context.Context, ev *evaluation) *Verdict {
	content := ev.msg.Content
	if !textscan.IsURL(content) || textscan.IsSourceHostURL(content) {
		return nil
	}

	count := 1

scan:
	for _, channelID := range ev.dir.HistoryChannels(ctx, ev.msg.AuthorID) {
		if channelID == ev.msg.ChannelID {
			continue
		}

		history, err := ev.dir.RecentMessages(ctx, channelID, spamWindowSize)
		if err != nil {
			ev.logger.Warn("Failed to fetch channel history for spam scan",
				zap.Uint64("channel_id", uint64(channelID)),
				zap.Error(err))
			continue
		}

		for _, prior := range history {
			if prior.AuthorID != ev.msg.AuthorID {
				continue
			}

			if textscan.Similarity(prior.Content, content) >= tightSimilarityThreshold {
				count++
				if count >= spamMessageLimit {
					break scan
				}
			}
		}
	}

	if count >= spamMessageLimit {
		return &Verdict{
			Kind:   VerdictBan,
			Reason: "spamming: " + content,
		}
	}

	v := allowVerdict

	return &v
}

// isPrivileged reports whether the author holds at least one elevated role.
// An unresolved role set is treated as not privileged so enforcement fails
// toward the stricter default.
func (p *Pipeline) isPrivileged(msg *Message) bool {
	if !msg.RolesResolved {
		return false
	}

	return HasElevatedRole(msg.AuthorRoles, p.settings.ElevatedRoleIDs)
}

// HasElevatedRole reports whether any of the member's roles is in the
// elevated set.
func HasElevatedRole(roles, elevated []snowflake.ID) bool {
	for _, role := range roles {
		if slices.Contains(elevated, role) {
			return true
		}
	}

	return false
}

// doNotMentionRole resolves the configured do-not-mention role at most once
// per evaluation.
func (ev *evaluation) doNotMentionRole(ctx context.Context, name string) (snowflake.ID, bool) {
	if !ev.dnmResolved {
		ev.dnmResolved = true
		ev.dnmRoleID, ev.dnmOK = ev.dir.RoleIDByName(ctx, name)
	}

	return ev.dnmRoleID, ev.dnmOK
}
