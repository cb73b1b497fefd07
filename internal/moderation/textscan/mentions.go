package textscan

import (
	"regexp"
	"strconv"

	"github.com/disgoorg/snowflake/v2"
)

// mentionPattern matches Discord user mention tokens. The optional "!" covers
// the legacy nickname mention form.
var mentionPattern = regexp.MustCompile(`<@!?(\d+)>`)

// ExtractMentions returns the user IDs mentioned in the text, in order of
// appearance. Duplicate mentions are kept; callers decide how to treat them.
func ExtractMentions(text string) []snowflake.ID {
	matches := mentionPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	ids := make([]snowflake.ID, 0, len(matches))

	for _, match := range matches {
		id, err := strconv.ParseUint(match[1], 10, 64)
		if err != nil {
			continue
		}

		ids = append(ids, snowflake.ID(id))
	}

	return ids
}
