// Package nametag packs a player's structured identity (base name, jersey
// number, position, captain flag, free-form tags) into the single text
// string that serves as the player's durable key in the remote store.
//
// The encoded form is "Name #7 (PF, VET, CAPTAIN)": an optional " #<digits>"
// jersey suffix on the name, then an optional trailing parenthesized,
// comma-separated tag list. The literal tokens CAPTAIN and CAP mark the
// captain flag and are never retained as visible tags; the position token C
// (center) is deliberately not a captain marker.
//
// Decode never fails. Malformed input degrades to "the whole string is the
// name, no tags": the encoded string doubles as a primary key, so
// rejecting it would orphan the record.
package nametag

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrEmptyBaseName is returned by Compose when the base name is blank.
	ErrEmptyBaseName = errors.New("base name is empty")
	// ErrInvalidPosition is returned by Compose for an unknown position.
	ErrInvalidPosition = errors.New("position must be one of PG, SG, SF, PF, C")
)

var (
	positionRE = regexp.MustCompile(`^(?i:PG|SG|SF|PF|C)$`)
	captainRE  = regexp.MustCompile(`^(?i:CAPTAIN|CAP)$`)
	suffixRE   = regexp.MustCompile(`^(.*?)\s*\((.*)\)\s*$`)
	jerseyRE   = regexp.MustCompile(`^(.*?)(?:\s*#(\d+))?$`)
)

// Decoded is the structured form of a stored player name.
type Decoded struct {
	// BaseWithJersey is the display name including any " #<digits>" suffix.
	BaseWithJersey string
	// IsCaptain is set by a CAPTAIN or CAP token in the tag list.
	IsCaptain bool
	// Tags holds the remaining tags, upper-cased, deduplicated
	// case-insensitively, in first-seen order. Position tokens appear here.
	Tags []string
}

// Decode parses a stored name. It tolerates any input: absent or unbalanced
// tag groups leave the whole string as the name.
func Decode(stored string) Decoded {
	base := stored
	var inside string
	if m := suffixRE.FindStringSubmatch(stored); m != nil {
		base, inside = m[1], m[2]
	}

	d := Decoded{BaseWithJersey: strings.TrimSpace(base)}
	seen := make(map[string]bool)
	for _, tok := range strings.Split(inside, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if captainRE.MatchString(tok) {
			d.IsCaptain = true
			continue
		}
		up := strings.ToUpper(tok)
		if !seen[up] {
			seen[up] = true
			d.Tags = append(d.Tags, up)
		}
	}
	return d
}

// Encode builds a stored name from a display name and tag list. Tags are
// upper-cased and deduplicated case-insensitively in first-seen order; the
// CAPTAIN marker is appended last when the flag is set, regardless of the
// tag list's contents.
func Encode(baseWithJersey string, isCaptain bool, tags []string) string {
	out := make([]string, 0, len(tags)+1)
	seen := make(map[string]bool)
	for _, t := range tags {
		up := strings.ToUpper(strings.TrimSpace(t))
		if up == "" || seen[up] {
			continue
		}
		seen[up] = true
		out = append(out, up)
	}
	if isCaptain {
		out = append(out, "CAPTAIN")
	}
	if len(out) == 0 {
		return baseWithJersey
	}
	return baseWithJersey + " (" + strings.Join(out, ", ") + ")"
}

// Compose validates and encodes a player from its editable fields. The
// position, when present, becomes the first tag.
func Compose(baseName, jersey, position string, isCaptain bool, extraTags []string) (string, error) {
	base := strings.TrimSpace(baseName)
	if base == "" {
		return "", ErrEmptyBaseName
	}
	position = strings.TrimSpace(position)
	if position != "" && !positionRE.MatchString(position) {
		return "", ErrInvalidPosition
	}

	tags := make([]string, 0, len(extraTags)+1)
	if position != "" {
		tags = append(tags, strings.ToUpper(position))
	}
	tags = append(tags, extraTags...)
	return Encode(ComposeBase(base, jersey), isCaptain, tags), nil
}

// ComposeBase joins a trimmed name with an optional jersey number as
// "Name #7".
func ComposeBase(name, jersey string) string {
	name = strings.TrimSpace(name)
	if j := strings.TrimSpace(jersey); j != "" {
		return name + " #" + j
	}
	return name
}

// SplitJersey separates a trailing " #<digits>" jersey suffix from the name
// proper. A name with no numeric suffix comes back with an empty jersey.
func SplitJersey(baseWithJersey string) (name, jersey string) {
	m := jerseyRE.FindStringSubmatch(baseWithJersey)
	if m == nil {
		return strings.TrimSpace(baseWithJersey), ""
	}
	return strings.TrimSpace(m[1]), m[2]
}

// Position returns the first tag that is a playing position, or "".
func Position(tags []string) string {
	for _, t := range tags {
		if positionRE.MatchString(t) {
			return strings.ToUpper(t)
		}
	}
	return ""
}

// IsPosition reports whether a single token is a playing position.
func IsPosition(tok string) bool {
	return positionRE.MatchString(strings.TrimSpace(tok))
}

// Display renders a stored name for humans: the name, then the tag list
// with a title-cased "Captain" suffix. It agrees with Decode's parsing, so
// what is shown is exactly what round-trips.
func Display(stored string) string {
	d := Decode(stored)
	parts := append([]string(nil), d.Tags...)
	if d.IsCaptain {
		parts = append(parts, "Captain")
	}
	if len(parts) == 0 {
		return d.BaseWithJersey
	}
	return d.BaseWithJersey + " (" + strings.Join(parts, ", ") + ")"
}
