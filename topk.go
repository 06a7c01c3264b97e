package rulesbot

import "sort"

// BestHandler accumulates scored docs and selects the best of them.
// It is not safe for concurrent use; create one per query.
type BestHandler struct {
	items []ScoredDoc
}

// Add records a candidate. Candidates are kept unsorted until ToList.
func (h *BestHandler) Add(score float64, doc Doc) {
	h.items = append(h.items, ScoredDoc{Score: score, Doc: doc})
}

// Len returns the number of recorded candidates.
func (h *BestHandler) Len() int {
	return len(h.items)
}

// ToList returns at most amount docs in descending score order, keeping
// only those scoring strictly above threshold. The top amount candidates
// are chosen before the threshold is applied. Returns nil when nothing
// survives.
func (h *BestHandler) ToList(amount int, threshold float64) []Doc {
	scored := h.ScoredList(amount, threshold)
	if scored == nil {
		return nil
	}
	docs := make([]Doc, len(scored))
	for i, s := range scored {
		docs[i] = s.Doc
	}
	return docs
}

// ScoredList is like ToList but keeps the scores.
func (h *BestHandler) ScoredList(amount int, threshold float64) []ScoredDoc {
	if amount <= 0 || len(h.items) == 0 {
		return nil
	}

	items := make([]ScoredDoc, len(h.items))
	copy(items, h.items)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Score < items[j].Score })
	if len(items) > amount {
		items = items[len(items)-amount:]
	}

	var result []ScoredDoc
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].Score > threshold {
			result = append(result, items[i])
		}
	}
	return result
}
