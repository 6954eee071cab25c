package resource

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// DefaultMarker precedes the path tested by an AllowList.
	DefaultMarker = "api/"
)

// DefaultPatterns is the allow list used when none is configured.
var DefaultPatterns = []string{"azure/.+"}

// AllowList decides whether a resolved token is attached to a request.
// A nil AllowList allows every URL.
type AllowList struct {
	marker   string
	patterns []*regexp.Regexp
}

// NewAllowList compiles patterns tested against the URL remainder after DefaultMarker.
func NewAllowList(patterns ...string) (*AllowList, error) {
	ret := &AllowList{marker: DefaultMarker}
	for _, pattern := range patterns {
		expr, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid allow list pattern %q: %w", pattern, err)
		}
		ret.patterns = append(ret.patterns, expr)
	}
	return ret, nil
}

// MustAllowList is like NewAllowList but panics on invalid pattern.
func MustAllowList(patterns ...string) *AllowList {
	ret, err := NewAllowList(patterns...)
	if err != nil {
		panic(err)
	}
	return ret
}

// DefaultAllowList returns an allow list with DefaultPatterns.
func DefaultAllowList() *AllowList {
	return MustAllowList(DefaultPatterns...)
}

// Patterns returns pattern sources.
func (a *AllowList) Patterns() []string {
	if a == nil {
		return nil
	}
	ret := make([]string, 0, len(a.patterns))
	for _, expr := range a.patterns {
		ret = append(ret, expr.String())
	}
	return ret
}

// Allowed reports whether requestURL passes the allow list. The marker has to
// occur past the first character; the text after it must match any pattern.
func (a *AllowList) Allowed(requestURL string) bool {
	if a == nil {
		return true
	}
	position := strings.Index(requestURL, a.marker)
	if position <= 0 {
		return false
	}
	destination := requestURL[position+len(a.marker):]
	for _, expr := range a.patterns {
		if expr.MatchString(destination) {
			return true
		}
	}
	return false
}
