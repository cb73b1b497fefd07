package moderation

// VerdictKind identifies the terminal decision for a message.
type VerdictKind int

const (
	// VerdictAllow lets the message stand, optionally with an in-channel
	// reply side effect.
	VerdictAllow VerdictKind = iota
	// VerdictRemoveAndNotify deletes the message and privately explains the
	// removal to the author.
	VerdictRemoveAndNotify
	// VerdictBan removes the author from the guild.
	VerdictBan
)

// String returns the lower-case name of the verdict kind.
func (k VerdictKind) String() string {
	switch k {
	case VerdictAllow:
		return "allow"
	case VerdictRemoveAndNotify:
		return "remove"
	case VerdictBan:
		return "ban"
	default:
		return "unknown"
	}
}

// Verdict is the single decision produced for one message. Exactly one
// verdict is produced per evaluation; side effects happen only as a
// consequence of applying it, never during evaluation.
type Verdict struct {
	// Kind of decision.
	Kind VerdictKind
	// Reason is the short audit reason ("profanity", "spamming: ...").
	Reason string
	// Warning is the private explanation sent to the author before a
	// removal. Unused for other kinds.
	Warning string
	// Reply, when set on an Allow verdict, is posted in-channel as a reply
	// to the message (canned help responses, liveness replies).
	Reply string
}

// allowVerdict is the terminal pass-through verdict shared by rules that let
// a message stand without side effects.
var allowVerdict = Verdict{Kind: VerdictAllow}
