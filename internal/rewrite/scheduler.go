package rewrite

// maxBanShift caps how far thresholds and ban lengths double
const maxBanShift = 16

type ruleStats struct {
	bannedUntil int
	timesBanned int
}

// backoff skips rules that match too often. A rule whose match count exceeds
// matchLimit<<timesBanned is banned for banLength<<timesBanned iterations
// and its matches are dropped.
type backoff struct {
	matchLimit int
	banLength  int
	stats      map[string]*ruleStats
}

func newBackoff(matchLimit, banLength int) *backoff {
	return &backoff{
		matchLimit: matchLimit,
		banLength:  banLength,
		stats:      make(map[string]*ruleStats),
	}
}

// search returns the matches of rw to apply at iteration. The bool is false
// when rw is banned, either already or because of this search.
func (b *backoff) search(iteration int, rw *Rewrite, find func() []Match) ([]Match, bool) {
	if b.matchLimit < 0 {
		return find(), true
	}

	s, ok := b.stats[rw.Name]
	if !ok {
		s = &ruleStats{}
		b.stats[rw.Name] = s
	}
	if iteration < s.bannedUntil {
		return nil, false
	}

	matches := find()
	shift := s.timesBanned
	if shift > maxBanShift {
		shift = maxBanShift
	}
	if len(matches) > b.matchLimit<<shift {
		s.bannedUntil = iteration + b.banLength<<shift
		s.timesBanned++
		return nil, false
	}
	return matches, true
}

// canStop reports whether no rule is banned after iteration. Otherwise it
// shortens every ban by the shortest one left, so the next iteration retries
// at least one rule.
func (b *backoff) canStop(iteration int) bool {
	shortest := 0
	for _, s := range b.stats {
		if left := s.bannedUntil - iteration; left > 0 && (shortest == 0 || left < shortest) {
			shortest = left
		}
	}
	if shortest == 0 {
		return true
	}
	for _, s := range b.stats {
		if s.bannedUntil > iteration {
			s.bannedUntil -= shortest
		}
	}
	return false
}
