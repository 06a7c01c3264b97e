package search_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/fwojciec/rulesbot"
	"github.com/fwojciec/rulesbot/edlib"
	"github.com/fwojciec/rulesbot/mock"
	"github.com/fwojciec/rulesbot/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const docsURL = "https://telethon.readthedocs.io/en/latest/"

func newInventory() *rulesbot.Inventory {
	entry := func(kind, name, anchor string) rulesbot.InventoryEntry {
		return rulesbot.InventoryEntry{
			Kind:     kind,
			Name:     name,
			Location: rulesbot.Location{Project: "Telethon", URL: docsURL + anchor},
		}
	}
	return rulesbot.NewInventory([]rulesbot.InventoryEntry{
		entry("py:class", "telethon.events.NewMessage", "events.html#telethon.events.NewMessage"),
		entry("py:class", "telethon.telethon.TelegramClient", "client.html#telethon.TelegramClient"),
		entry("py:method", "telethon.telethon.TelegramClient.send_message", "client.html#send_message"),
		entry("py:method", "telethon.telethon.TelegramClient.get_messages", "client.html#get_messages"),
		entry("py:module", "telethon.events", "events.html"),
		entry("py:attribute", "telethon.events.NewMessage.Event.message", "events.html#message"),
		entry("std:label", "telethon.events.NewMessage", "ignored.html"),
	})
}

func newSearcher() *search.Searcher {
	return search.NewSearcher(newInventory(), search.NewRanker(edlib.NewScorer()), "https://tl.telethon.dev/")
}

func TestSearcher_Docs(t *testing.T) {
	t.Parallel()

	t.Run("finds the best matching class first", func(t *testing.T) {
		t.Parallel()

		docs := newSearcher().Docs("NewMessage", search.DefaultAmount, search.DefaultThreshold)

		require.NotEmpty(t, docs)
		assert.Equal(t, rulesbot.Doc{
			ShortName: "events.NewMessage",
			FullName:  "telethon.events.NewMessage",
			Kind:      "class",
			URL:       docsURL + "events.html#telethon.events.NewMessage",
		}, docs[0])
	})

	t.Run("derives short names", func(t *testing.T) {
		t.Parallel()

		docs := newSearcher().Docs("TelegramClient", 1, search.DefaultThreshold)

		require.Len(t, docs, 1)
		assert.Equal(t, "TelegramClient", docs[0].ShortName)
		assert.Equal(t, "telethon.telethon.TelegramClient", docs[0].FullName)
	})

	t.Run("matches dotted queries segment by segment", func(t *testing.T) {
		t.Parallel()

		docs := newSearcher().Docs("TelegramClient.send_message", 1, search.DefaultThreshold)

		require.Len(t, docs, 1)
		assert.Equal(t, "telethon.telethon.TelegramClient.send_message", docs[0].FullName)
		assert.Equal(t, "method", docs[0].Kind)
	})

	t.Run("returns nil when nothing passes the threshold", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, newSearcher().Docs("zzzzqqqq", search.DefaultAmount, search.DefaultThreshold))
	})

	t.Run("never returns more than amount, all above threshold, descending", func(t *testing.T) {
		t.Parallel()

		s := newSearcher()
		for _, q := range []string{"message", "events", "TelegramClient", "get", "NewMessage.Event"} {
			for amount := 1; amount <= 4; amount++ {
				besth, _ := s.Ranker.Rank(q, s.Inventory)
				scored := besth.ScoredList(amount, 20)
				assert.LessOrEqual(t, len(scored), amount)
				for i, sd := range scored {
					assert.Greater(t, sd.Score, 20.0)
					if i > 0 {
						assert.GreaterOrEqual(t, scored[i-1].Score, sd.Score)
					}
				}
				assert.LessOrEqual(t, len(s.Docs(q, amount, 20)), amount)
			}
		}
	})

	t.Run("ignores kinds outside the ranked set", func(t *testing.T) {
		t.Parallel()

		docs := newSearcher().Docs("NewMessage", 10, 0)

		for _, d := range docs {
			assert.NotEqual(t, "label", d.Kind)
		}
	})
}

func TestSearcher_DocsAll(t *testing.T) {
	t.Parallel()

	t.Run("keeps query order", func(t *testing.T) {
		t.Parallel()

		results, err := newSearcher().DocsAll(context.Background(), []string{"TelegramClient", "zzzzqqqq", "NewMessage"}, 1, search.DefaultThreshold)

		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, "telethon.telethon.TelegramClient", results[0][0].FullName)
		assert.Nil(t, results[1])
		assert.Equal(t, "telethon.events.NewMessage", results[2][0].FullName)
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newSearcher().DocsAll(ctx, []string{"NewMessage"}, 1, 0)

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestSearcher_ReplaceSymbols(t *testing.T) {
	t.Parallel()

	t.Run("links known symbols and marks unknown ones", func(t *testing.T) {
		t.Parallel()

		changed, text, err := newSearcher().ReplaceSymbols(context.Background(),
			"I like +TelegramClient+ and +zzzz_qqqq+", search.ReplaceThreshold)

		require.NoError(t, err)
		assert.Equal(t, []string{"TelegramClient", "zzzz_qqqq❓"}, changed)
		assert.Equal(t, `I like [TelegramClient](`+docsURL+`client.html#telethon.TelegramClient) and zzzz\_qqqq`, text)
	})

	t.Run("returns nothing without symbols", func(t *testing.T) {
		t.Parallel()

		changed, text, err := newSearcher().ReplaceSymbols(context.Background(), "plain", search.ReplaceThreshold)

		require.NoError(t, err)
		assert.Nil(t, changed)
		assert.Empty(t, text)
	})
}

func TestSearcher_APIDocs(t *testing.T) {
	t.Parallel()

	categories := []rulesbot.Category{
		{
			Label: rulesbot.CategoryMethod,
			Names: []string{"messages.SendMessageRequest", "messages.GetHistoryRequest", "users.GetUsersRequest"},
			URLs:  []string{"methods/messages/send_message.html", "methods/messages/get_history.html", "methods/users/get_users.html"},
		},
		{
			Label: rulesbot.CategoryType,
			Names: []string{"InputPeer", "Message"},
			URLs:  []string{"types/input_peer.html", "types/message.html"},
		},
	}

	t.Run("matches lowercased names as subsequences", func(t *testing.T) {
		t.Parallel()

		docs := newSearcher().APIDocs("sendmsg", categories)

		require.Len(t, docs, 1)
		assert.Equal(t, rulesbot.Doc{
			ShortName: "messages.SendMessageRequest",
			FullName:  "messages.SendMessageRequest",
			Kind:      rulesbot.CategoryMethod,
			URL:       "https://tl.telethon.dev/methods/messages/send_message.html",
		}, docs[0])
	})

	t.Run("searches categories in order", func(t *testing.T) {
		t.Parallel()

		docs := newSearcher().APIDocs("message", categories)

		require.Len(t, docs, 3)
		assert.Equal(t, rulesbot.CategoryMethod, docs[0].Kind)
		assert.Equal(t, rulesbot.CategoryMethod, docs[1].Kind)
		assert.Equal(t, "Message", docs[2].FullName)
		assert.Equal(t, rulesbot.CategoryType, docs[2].Kind)
	})

	t.Run("caps matches per category", func(t *testing.T) {
		t.Parallel()

		var names, urls []string
		for i := range 25 {
			names = append(names, fmt.Sprintf("Request%d", i))
			urls = append(urls, fmt.Sprintf("r%d.html", i))
		}
		big := []rulesbot.Category{
			{Label: rulesbot.CategoryMethod, Names: names, URLs: urls},
			{Label: rulesbot.CategoryConstructor, Names: names, URLs: urls},
		}

		docs := newSearcher().APIDocs("req", big)

		require.Len(t, docs, 2*search.MaxAPIMatches)
		assert.Equal(t, "Request9", docs[9].FullName)
		assert.Equal(t, rulesbot.CategoryConstructor, docs[10].Kind)
	})

	t.Run("returns nil without matches", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, newSearcher().APIDocs("xyz", categories))
	})
}

func TestRanker_Score(t *testing.T) {
	t.Parallel()

	constant := &mock.Scorer{
		RatioFn: func(a, b string) int { return 50 },
	}

	tests := []struct {
		name  string
		query string
		full  string
		kind  string
		want  float64
	}{
		{"class weight", "a.b", "x.y.z", "py:class", 150 * search.ClassWeight},
		{"module weight", "b", "x.y", "py:module", 100 * search.ModuleWeight},
		{"attribute weight", "b", "x.y", "py:attribute", 100 * search.AttributeWeight},
		{"unweighted kind", "b", "x.y", "py:method", 100},
		{"zip truncates to shorter side", "a.b.c.d", "x", "py:function", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := search.NewRanker(constant)
			assert.InDelta(t, tt.want, r.Score(tt.query, tt.full, tt.kind), 1e-9)
		})
	}

	t.Run("compares most specific segments first", func(t *testing.T) {
		t.Parallel()

		var pairs [][2]string
		scorer := &mock.Scorer{
			RatioFn: func(a, b string) int {
				pairs = append(pairs, [2]string{a, b})
				return 0
			},
		}

		search.NewRanker(scorer).Score("Client.send", "telethon.Client.send", "py:method")

		assert.Equal(t, [][2]string{
			{"send", "send"},
			{"Client", "Client"},
			{"Client.send", "telethon.Client.send"},
		}, pairs)
	})

	t.Run("weights can be overridden", func(t *testing.T) {
		t.Parallel()

		r := search.NewRanker(constant)
		r.Weights = search.Weights{"py:class": 2}

		assert.InDelta(t, 200.0, r.Score("b", "x.y", "py:class"), 1e-9)
		assert.InDelta(t, 100.0, r.Score("b", "x.y", "py:module"), 1e-9)
	})
}

func TestRanker_Rank(t *testing.T) {
	t.Parallel()

	besth, best := search.NewRanker(edlib.NewScorer()).Rank("NewMessage", newInventory())

	assert.Equal(t, 6, besth.Len())
	assert.Equal(t, "telethon.events.NewMessage", best.Doc.FullName)
	assert.Greater(t, best.Score, float64(search.DefaultThreshold))
}
