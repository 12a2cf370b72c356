package ledger

import (
	"sort"

	model "freight-exchange/internal/models"
)

// Rank orders bids by ascending price. Equal prices keep the earlier bid
// first: by creation time, then by store write order.
func Rank(bids []model.Bid) []model.Bid {
	ranked := append([]model.Bid(nil), bids...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if c := ranked[i].Price.Cmp(ranked[j].Price); c != 0 {
			return c < 0
		}
		if !ranked[i].CreatedAt.Equal(ranked[j].CreatedAt) {
			return ranked[i].CreatedAt.Before(ranked[j].CreatedAt)
		}
		return ranked[i].Seq < ranked[j].Seq
	})
	return ranked
}

// ComputeScoreboard derives the lowest bid and the 1-based rank of identity's
// bid from the full live bid set of one listing. CallerRank stays nil when
// identity has no bid.
func ComputeScoreboard(bids []model.Bid, identity string) model.Scoreboard {
	ranked := Rank(bids)

	var board model.Scoreboard
	if len(ranked) > 0 {
		lowest := ranked[0]
		board.LowestBid = &lowest
	}
	if identity == "" {
		return board
	}
	for i, bid := range ranked {
		if bid.BidderID == identity {
			rank := i + 1
			board.CallerRank = &rank
			break
		}
	}
	return board
}
