package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// TermKind classifies a search box entry.
type TermKind int

// Term kinds, in the order they are tested.
const (
	// TermFreeText is a whitespace tokenised text search.
	TermFreeText TermKind = iota
	// TermEmail is a full email address.
	TermEmail
	// TermExact is an entirely numeric primary key.
	TermExact
	// TermByPrefix is an ID with an explicit short-code marker such as "c:5".
	TermByPrefix
)

// String returns the kind name.
func (k TermKind) String() string {
	switch k {
	case TermEmail:
		return "email"
	case TermExact:
		return "exact"
	case TermByPrefix:
		return "prefix"
	default:
		return "free_text"
	}
}

// PrefixKind says what an ID prefix refers to.
type PrefixKind string

// Prefix kinds.
const (
	// PrefixID marks the entity's own primary key ("c:", "id:").
	PrefixID PrefixKind = "id"
	// PrefixUser marks the linked user account ("u:", "user:").
	PrefixUser PrefixKind = "user"
)

// termPrefixes maps recognised short codes to what they address.
var termPrefixes = map[string]PrefixKind{
	"c":    PrefixID,
	"id":   PrefixID,
	"u":    PrefixUser,
	"user": PrefixUser,
}

// ParsedTerm is the classification of a raw search string.
type ParsedTerm struct {
	Kind TermKind

	// ID is set for TermExact and TermByPrefix.
	ID int64

	// Prefix is the short code as typed (lowercased) for TermByPrefix.
	Prefix string

	// PrefixKind is what the prefix addresses for TermByPrefix.
	PrefixKind PrefixKind

	// Email is set for TermEmail, with spaces restored to '+'.
	Email string

	// Tokens is set for TermFreeText. Never contains empty or noise tokens.
	Tokens []string
}

// ParseTerm classifies a search string. The checks run in a fixed order:
// email, all digits, recognised prefix, free text.
func ParseTerm(raw string) ParsedTerm {
	term := strings.TrimSpace(raw)

	// A '+' in an address arrives as a space after form decoding.
	if addr := strings.ReplaceAll(term, " ", "+"); IsEmail(addr) {
		return ParsedTerm{Kind: TermEmail, Email: addr}
	}

	if isDigits(term) {
		// IDs beyond int64 cannot exist; zero matches no record.
		id, _ := parseID(term)
		return ParsedTerm{Kind: TermExact, ID: id}
	}

	if prefix, kind, id, ok := splitPrefix(term); ok {
		return ParsedTerm{Kind: TermByPrefix, ID: id, Prefix: prefix, PrefixKind: kind}
	}

	return ParsedTerm{Kind: TermFreeText, Tokens: SearchTokens(term)}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseID accepts a non-empty run of ASCII digits that fits in int64.
func parseID(s string) (int64, bool) {
	if !isDigits(s) {
		return 0, false
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// splitPrefix matches "<code>:<positive integer>".
func splitPrefix(term string) (string, PrefixKind, int64, bool) {
	idx := strings.IndexByte(term, ':')
	if idx <= 0 {
		return "", "", 0, false
	}
	prefix := strings.ToLower(strings.TrimSpace(term[:idx]))
	kind, ok := termPrefixes[prefix]
	if !ok {
		return "", "", 0, false
	}
	id, ok := parseID(strings.TrimSpace(term[idx+1:]))
	if !ok || id <= 0 {
		return "", "", 0, false
	}
	return prefix, kind, id, true
}

// tokenPattern matches a quoted phrase (closed or running to the end of the
// string) or a run of characters that are not separators.
var tokenPattern = regexp.MustCompile(`"[^"]*(?:"|$)|[^\t ",+]+`)

// noiseToken matches single-character tokens that carry no search value.
var noiseToken = regexp.MustCompile(`^[\p{L}-]$`)

// SearchTokens splits free text into search tokens. Quoted phrases are kept
// whole without their quotes. Empty tokens and single letters or dashes are
// dropped. Order is preserved.
func SearchTokens(s string) []string {
	tokens := []string{}
	for _, match := range tokenPattern.FindAllString(s, -1) {
		token := strings.Trim(match, "\"'\n\r ")
		if token == "" || noiseToken.MatchString(token) {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

var (
	emailLocalPart = regexp.MustCompile("^[a-zA-Z0-9!#$%&'*+/=?^_`{|}~.-]+$")
	emailSubdomain = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)
)

// IsEmail reports whether s is a syntactically valid email address: a local
// part of permitted characters, '@', and a dotted domain of at least two
// labels made of letters, digits and inner dashes.
func IsEmail(s string) bool {
	if len(s) < 6 {
		return false
	}
	at := strings.IndexByte(s, '@')
	if at < 1 {
		return false
	}
	local, domain := s[:at], s[at+1:]

	if !emailLocalPart.MatchString(local) {
		return false
	}
	if strings.Contains(domain, "..") {
		return false
	}
	if strings.Trim(domain, " \t\n\r\x00\x0B.") != domain {
		return false
	}

	subs := strings.Split(domain, ".")
	if len(subs) < 2 {
		return false
	}
	for _, sub := range subs {
		if strings.Trim(sub, " \t\n\r\x00\x0B-") != sub {
			return false
		}
		if !emailSubdomain.MatchString(sub) {
			return false
		}
	}
	return true
}
