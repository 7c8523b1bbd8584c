package ensname

import (
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

const (
	// TLD is the only top-level domain accepted for club membership.
	TLD = ".eth"

	// MinLabelLength is the policy floor for .eth labels. Shorter names can
	// be syntactically normalizable yet are flagged by the scanner.
	MinLabelLength = 3
)

var (
	ErrEmptyName      = errors.New("ensname: empty name")
	ErrUnsupportedTLD = errors.New("ensname: only .eth names are supported")
	ErrInvalidName    = errors.New("ensname: name failed normalization")
)

// lookupProfile mirrors the UTS-46 processing ENS applies to names:
// nontransitional mapping (case fold, width fold, mapped code points) with
// bidi checks. STD3 ASCII rules are relaxed because ENS permits underscore;
// the ASCII charset is enforced separately below.
var lookupProfile = idna.New(
	idna.MapForLookup(),
	idna.StrictDomainName(false),
	idna.Transitional(false),
	idna.BidiRule(),
)

// CompleteTLD trims raw and appends the .eth suffix when the input is a bare
// label with no TLD at all.
func CompleteTLD(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return ""
	}
	if !strings.Contains(name, ".") {
		return name + TLD
	}
	return name
}

// Normalize canonicalizes a candidate name per ENS rules and returns the
// canonical form. It never panics and reports failure through the returned
// error; callers that require already-canonical input (the bulk add path)
// compare the result against CompleteTLD of their input.
func Normalize(raw string) (string, error) {
	name := CompleteTLD(raw)
	if name == "" {
		return "", ErrEmptyName
	}

	if !strings.HasSuffix(strings.ToLower(name), TLD) {
		return "", ErrUnsupportedTLD
	}

	normalized, err := lookupProfile.ToUnicode(name)
	if err != nil {
		return "", ErrInvalidName
	}

	labels := strings.Split(normalized, ".")
	for _, label := range labels {
		if label == "" {
			return "", ErrInvalidName
		}
		if !validASCIISubset(label) {
			return "", ErrInvalidName
		}
	}

	return normalized, nil
}

// SafeNormalize never fails: when full normalization is impossible it falls
// back to trim+lowercase. Display and lookup of already-persisted, possibly
// invalid names only; never use the result for writes.
func SafeNormalize(raw string) string {
	normalized, err := Normalize(raw)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(raw))
	}
	return normalized
}

// Label returns the leftmost label of a name ("abc" for "abc.eth").
func Label(name string) string {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return name
}

// LabelLength returns the rune count of the leftmost label.
func LabelLength(name string) int {
	return utf8.RuneCountInString(Label(name))
}

// validASCIISubset rejects ASCII characters outside the ENS label charset
// (lowercase letters, digits, hyphen, underscore). UTS-46 with relaxed STD3
// rules would otherwise let symbols and spaces through. Non-ASCII runes are
// left to the idna profile's own validation.
func validASCIISubset(label string) bool {
	for _, r := range label {
		if r > 127 {
			continue
		}
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}
