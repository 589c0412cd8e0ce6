package search

import (
	"sort"

	domsearch "github.com/relocation-quest/atlas/internal/domain/search"
)

// rrfK is the Reciprocal Rank Fusion constant (standard value from Cormack et
// al. 2009). Changing it changes result ordering, so it is a design invariant,
// not a tunable.
const rrfK = 60

// fuseRRF merges the vector and keyword candidate sets via Reciprocal Rank
// Fusion: score(d) = sum of 1/(k + rank_i(d)) over the signals where d
// appears; a missing signal contributes zero, not a penalty.
//
// Equal fused scores are broken by ascending vector rank (candidates the
// vector signal produced sort first, in similarity order), then by chunk ID,
// so the final ordering is deterministic.
func fuseRRF(vector, keyword []domsearch.Candidate, limit int) []domsearch.FusedResult {
	type scored struct {
		cand        domsearch.Candidate
		score       float64
		vectorRank  int
		keywordRank int
	}

	merged := make(map[string]*scored, len(vector)+len(keyword))

	for _, c := range vector {
		merged[c.ID()] = &scored{
			cand:       c,
			score:      1.0 / float64(rrfK+c.Rank()),
			vectorRank: c.Rank(),
		}
	}

	for _, c := range keyword {
		contribution := 1.0 / float64(rrfK+c.Rank())
		if existing, ok := merged[c.ID()]; ok {
			existing.score += contribution
			existing.keywordRank = c.Rank()
		} else {
			merged[c.ID()] = &scored{
				cand:        c,
				score:       contribution,
				keywordRank: c.Rank(),
			}
		}
	}

	results := make([]domsearch.FusedResult, 0, len(merged))
	for _, s := range merged {
		results = append(results, domsearch.NewFusedResult(
			s.cand.ID(), s.cand.Title(), s.cand.Content(),
			s.score, s.vectorRank, s.keywordRank,
		))
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score() != results[j].Score() {
			return results[i].Score() > results[j].Score()
		}
		vi, vj := tieRank(results[i].VectorRank()), tieRank(results[j].VectorRank())
		if vi != vj {
			return vi < vj
		}
		return results[i].ID() < results[j].ID()
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// tieRank treats "absent from the vector signal" (rank 0) as sorting last.
func tieRank(rank int) int {
	if rank == 0 {
		return int(^uint(0) >> 1)
	}
	return rank
}
