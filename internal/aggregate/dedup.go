// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"crypto/md5"
	"encoding/hex"
	"sort"
	"strings"
	"unicode"

	"github.com/pdiddy/paper-hub/pkg/types"
)

// Fingerprint returns a stable content hash identifying a paper across
// platforms (prd002-aggregation R2.1). The title and the first two authors
// are reduced to lowercase alphanumerics, the author pair is sorted so the
// same two authors fingerprint identically regardless of listing order,
// and the md5 digest of "title_authors" is rendered as lowercase hex.
//
// Hashing normalized content rather than comparing exact strings tolerates
// the whitespace, punctuation, and casing differences the platforms
// disagree on.
func Fingerprint(p types.Paper) string {
	title := alnumLower(p.Title)

	pair := p.Authors
	if len(pair) > 2 {
		pair = pair[:2]
	}
	normalized := make([]string, len(pair))
	for i, a := range pair {
		normalized[i] = alnumLower(a)
	}
	sort.Strings(normalized)

	sum := md5.Sum([]byte(title + "_" + strings.Join(normalized, "")))
	return hex.EncodeToString(sum[:])
}

// Seen is the set of fingerprints admitted during one aggregation run.
// It lives for a single run only; nothing is shared across requests
// (prd002-aggregation R2.3).
type Seen map[string]struct{}

// NewSeen returns an empty fingerprint set.
func NewSeen() Seen { return make(Seen) }

// Admit reports whether p should be kept. Papers with an empty title are
// always rejected and never recorded. Otherwise the paper is kept exactly
// when its fingerprint is new, with the fingerprint added as a side effect.
func (s Seen) Admit(p types.Paper) bool {
	if p.Title == "" {
		return false
	}
	fp := Fingerprint(p)
	if _, dup := s[fp]; dup {
		return false
	}
	s[fp] = struct{}{}
	return true
}

// alnumLower strips everything but letters and digits and lowercases the rest.
func alnumLower(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
