package moderation

import "strings"

// Canned phrase lists compared against short general-channel messages with
// the loose similarity threshold. Help phrases are tested before question
// phrases.
var (
	helpPhrases     = []string{"help", "help me", "can someone help me"}
	questionPhrases = []string{"can I ask a question"}
)

const (
	helpReply = "Hello it looks like you want some help. " +
		"What is the problem and how can we help you?"

	questionReply = "Hello it looks like you want to ask a question. " +
		"This is the place to do that. " +
		"Write your question and someone will respond when they are available."

	pingReply = "pong"

	profanityWarning = "Hello. Your message was removed because it contained " +
		"language that is not allowed on this server.\n" +
		"If you think this was done in error please contact a moderator."

	noTaggingWarning = "Hello. Your message was removed because it mentioned " +
		"a user who has asked not to be pinged.\n" +
		"Please write your message without tagging them.\n" +
		"If you think this was done in error please contact a moderator."

	showcaseWarningFormat = "Hello. You just sent a message to the amulet-plugins chat.\n" +
		"This chat is reserved for users to show off plugins they have created.\n" +
		"Messages must include a link to the plugin on github.\n" +
		"If you think this was done in error please contact a moderator.\n\n" +
		"The message you sent is as follows.%s\n```\n%s\n```"

	backtickFixNote = " You will need to fix the triple backticks."
)

// EscapeCodeBlocks breaks triple-backtick sequences so quoted message
// content cannot terminate the code fence it is embedded in.
func EscapeCodeBlocks(text string) string {
	return strings.ReplaceAll(text, "```", "`\\``")
}
