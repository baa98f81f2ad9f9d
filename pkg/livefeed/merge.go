package livefeed

import "github.com/umputun/newspulse/pkg/domain"

// Merge combines live and polled articles into one view.
// The polled list is the base and keeps its order, live articles not known to the poll are placed
// in front of it in their own (newest first) order. The result never has two entries with the same
// identity key: the first occurrence wins, which also collapses repeats inside either input.
// Merge does not modify its arguments and returns the same output for the same input.
func Merge(live, polled []domain.Article) []domain.Article {
	known := make(map[domain.IdentityKey]struct{}, len(polled)+len(live))
	for _, a := range polled {
		known[a.Key()] = struct{}{}
	}

	res := make([]domain.Article, 0, len(live)+len(polled))
	for _, a := range live {
		key := a.Key()
		if _, ok := known[key]; ok {
			continue
		}
		known[key] = struct{}{}
		res = append(res, a)
	}

	seen := make(map[domain.IdentityKey]struct{}, len(polled))
	for _, a := range polled {
		key := a.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		res = append(res, a)
	}
	return res
}
