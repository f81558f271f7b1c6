package models

// SessionStats is the derived win/loss summary for one session. It is never
// persisted; every view recomputes it from the session's match set.
type SessionStats struct {
	MatchCount int64 `json:"match_count"`
	Wins       int64 `json:"wins"`
	Losses     int64 `json:"losses"`
}

// TallyResults folds a session's match results into its stats. This is the
// single aggregation implementation — the session list, the session detail
// view and the ledger cache all go through it.
func TallyResults(results []MatchResult) SessionStats {
	var stats SessionStats
	for _, r := range results {
		stats.MatchCount++
		switch r {
		case ResultWin:
			stats.Wins++
		case ResultLoss:
			stats.Losses++
		}
	}
	return stats
}

// TallyMatches is TallyResults over full match rows.
func TallyMatches(matches []Match) SessionStats {
	results := make([]MatchResult, len(matches))
	for i, m := range matches {
		results[i] = m.Result
	}
	return TallyResults(results)
}
