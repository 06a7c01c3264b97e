package rulesbot

import (
	"context"
	"regexp"
	"strings"
)

// ReferenceToken is a repository reference found in message text.
// It is either an IssueRef or a CommitRef.
type ReferenceToken interface {
	isReferenceToken()
}

// IssueRef mentions an issue or pull request by number, e.g. "#42",
// "GH-42" or "user/repo#42". Number holds digits only and is empty when
// the marker was not followed by any digits.
type IssueRef struct {
	User   string
	Repo   string
	Number string
}

// CommitRef mentions a commit by its full 40 character SHA, optionally
// scoped as "user@sha" or "user/repo@sha".
type CommitRef struct {
	User string
	Repo string
	SHA  string
}

func (IssueRef) isReferenceToken()  {}
func (CommitRef) isReferenceToken() {}

// referencePattern matches an optional user and repo followed by either an
// issue marker with digits or a 40 character commit SHA.
var referencePattern = regexp.MustCompile(`(?i)` +
	`(?:(?P<user>[^\s/#@]+)(?:/(?P<repo>[^\s/#@]+))?)?` +
	`(?:(?P<marker>#|GH-|PR-)(?P<number>\d*)|@?(?P<sha>[0-9a-f]{40}))`)

var (
	groupUser   = referencePattern.SubexpIndex("user")
	groupRepo   = referencePattern.SubexpIndex("repo")
	groupMarker = referencePattern.SubexpIndex("marker")
	groupNumber = referencePattern.SubexpIndex("number")
	groupSHA    = referencePattern.SubexpIndex("sha")
)

// ExtractReferences scans plain text left to right and returns every
// reference token in document order. Matches never overlap.
func ExtractReferences(text string) []ReferenceToken {
	var tokens []ReferenceToken
	for _, m := range referencePattern.FindAllStringSubmatch(text, -1) {
		if m[groupMarker] != "" {
			tokens = append(tokens, IssueRef{
				User:   m[groupUser],
				Repo:   m[groupRepo],
				Number: m[groupNumber],
			})
			continue
		}
		tokens = append(tokens, CommitRef{
			User: m[groupUser],
			Repo: m[groupRepo],
			SHA:  m[groupSHA],
		})
	}
	return tokens
}

// ReferenceKind classifies a resolved reference.
type ReferenceKind string

// ReferenceKind constants.
const (
	KindIssue  ReferenceKind = "Issue"
	KindPR     ReferenceKind = "PR"
	KindCommit ReferenceKind = "Commit"
)

// ResolvedReference is a reference with its canonical URL and a display
// name of the form "{kind} {name}: {title}".
type ResolvedReference struct {
	URL         string        `json:"url"`
	DisplayName string        `json:"displayName"`
	Kind        ReferenceKind `json:"kind"`
}

// Metadata is what a reference page resolves to.
type Metadata struct {
	Title string
	Kind  ReferenceKind
}

// ParseTitle classifies a repository page title such as
// "Fix login · Issue #42 · owner/repo · GitHub". The first part becomes the
// title; the reference is a PR when the second part mentions a pull request.
// Returns ENOTFOUND when the title does not have that shape.
func ParseTitle(pageTitle string, isCommit bool) (Metadata, error) {
	parts := strings.Split(pageTitle, " · ")
	if len(parts) < 2 || strings.TrimSpace(parts[0]) == "" {
		return Metadata{}, Errorf(ENOTFOUND, "unrecognized page title %q", pageTitle)
	}

	kind := KindIssue
	if strings.Contains(parts[1], "Pull Request") {
		kind = KindPR
	}
	if isCommit {
		kind = KindCommit
	}
	return Metadata{Title: strings.TrimSpace(parts[0]), Kind: kind}, nil
}

// CacheKey identifies cached metadata.
type CacheKey struct {
	URL      string
	IsCommit bool
}

// ComputeFunc produces the metadata for a cache miss.
type ComputeFunc func(ctx context.Context) (Metadata, error)

// MetadataCache memoizes reference metadata for the lifetime of the process.
type MetadataCache interface {
	// GetOrCompute returns the cached metadata for key, calling compute on a
	// miss. Concurrent callers with the same key share one compute call.
	// Failed computations are not cached.
	GetOrCompute(ctx context.Context, key CacheKey, compute ComputeFunc) (Metadata, error)

	// Len returns the number of cached entries.
	Len() int
}

// ProgressFunc is called while a batch of references is being resolved to
// signal that work is still in progress, e.g. to show a typing indicator.
type ProgressFunc func()
