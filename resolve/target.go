package resolve

import (
	"strings"

	"github.com/fwojciec/rulesbot"
)

// Target is a reference token turned into the page to look up and the
// name it is displayed under.
type Target struct {
	URL      string
	Name     string
	IsCommit bool
}

// Targets builds the lookup targets for tokens in order. Issue tokens
// without a number are dropped, and a URL seen before is skipped so the
// first occurrence wins.
func (r *Resolver) Targets(tokens []rulesbot.ReferenceToken) []Target {
	seen := make(map[string]bool, len(tokens))
	var targets []Target
	for _, tok := range tokens {
		t, ok := r.target(tok)
		if !ok || seen[t.URL] {
			continue
		}
		seen[t.URL] = true
		targets = append(targets, t)
	}
	return targets
}

func (r *Resolver) target(tok rulesbot.ReferenceToken) (Target, bool) {
	var url, name strings.Builder
	url.WriteString(r.BaseURL)

	switch tok := tok.(type) {
	case rulesbot.IssueRef:
		if tok.Number == "" {
			return Target{}, false
		}
		if tok.User != "" && tok.Repo != "" {
			url.WriteString(tok.User + "/" + tok.Repo)
			name.WriteString(tok.User + "/" + tok.Repo)
		} else {
			url.WriteString(r.DefaultRepo)
		}
		name.WriteString("#" + tok.Number)
		url.WriteString("/issues/" + tok.Number)
		return Target{URL: url.String(), Name: name.String()}, true

	case rulesbot.CommitRef:
		if tok.SHA == "" {
			return Target{}, false
		}
		if tok.User != "" {
			name.WriteString(tok.User)
			if tok.Repo != "" {
				name.WriteString("/" + tok.Repo)
			}
			name.WriteString("@")
		}
		if tok.Repo != "" {
			url.WriteString(tok.User + "/" + tok.Repo)
		} else {
			url.WriteString(r.DefaultRepo)
		}
		name.WriteString(tok.SHA[:min(7, len(tok.SHA))])
		url.WriteString("/commit/" + tok.SHA)
		return Target{URL: url.String(), Name: name.String(), IsCommit: true}, true
	}
	return Target{}, false
}
