package textscan

import "regexp"

var (
	// urlPattern matches a generic URL shape anywhere in the text. The scheme
	// is optional so bare domains like "example.com/x" are still caught.
	urlPattern = regexp.MustCompile(`(?i)(^|\s)(https?://)?(www\.)?([a-z0-9-]+\.)+[a-z]{2,}(/\S*)?`)

	// sourceHostPattern matches a link to a repository on GitHub. It requires
	// an owner and repository segment so links to the site root do not count.
	sourceHostPattern = regexp.MustCompile(`https?://(www\.)?github\.com/.*/.*`)
)

// IsURL reports whether the text contains something shaped like a URL.
func IsURL(text string) bool {
	return urlPattern.MatchString(text)
}

// IsSourceHostURL reports whether the text contains a link to a repository on
// a recognized source-hosting site. Such links are exempt from the
// foreign-link rules that IsURL matches trigger.
func IsSourceHostURL(text string) bool {
	return sourceHostPattern.MatchString(text)
}
