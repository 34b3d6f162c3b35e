// Package search implements the preference-inference and vehicle-matching
// core. Both components are pure functions of their inputs; all state lives
// behind the inventory and history ports.
package search

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/core/inventory"
	"github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/core/logger"
)

// Profile is the preference aggregate derived from a requester's reservation
// history. It lives for one search call and is never persisted.
type Profile struct {
	AveragePrice     float64
	AverageSeats     float64
	FavoriteCategory string
	// HasHistory is false for the no-history sentinel, which selects the
	// unfiltered-catalog mode downstream. It is control data, not an error.
	HasHistory bool
}

// NoHistory is the sentinel profile for requesters without reservations.
func NoHistory() Profile { return Profile{} }

// Analyzer derives preference profiles from reservation history.
type Analyzer struct {
	history inventory.History
	log     logger.Logger
}

// NewAnalyzer creates an Analyzer reading from the given history port.
func NewAnalyzer(history inventory.History, log logger.Logger) *Analyzer {
	return &Analyzer{history: history, log: log}
}

// Analyze computes the requester's profile. Zero reservations yield the
// no-history sentinel; provider failures propagate unchanged.
func (a *Analyzer) Analyze(ctx context.Context, requesterID string) (Profile, error) {
	res, err := a.history.ListReservationsFor(ctx, requesterID)
	if err != nil {
		return Profile{}, fmt.Errorf("list reservations: %w", err)
	}
	if len(res) == 0 {
		a.log.Debugf("requester %s has no history", requesterID)
		return NoHistory(), nil
	}

	prices := make([]float64, len(res))
	seats := make([]float64, len(res))
	counts := make(map[string]int, len(res))
	favorite := ""
	best := 0
	for i, r := range res {
		prices[i] = r.Price
		seats[i] = float64(r.Seats)
		counts[r.Category]++
		// Ties resolve to the category that reached the maximum first in
		// reservation enumeration order.
		if counts[r.Category] > best {
			best = counts[r.Category]
			favorite = r.Category
		}
	}

	p := Profile{
		AveragePrice:     stat.Mean(prices, nil),
		AverageSeats:     stat.Mean(seats, nil),
		FavoriteCategory: favorite,
		HasHistory:       true,
	}
	a.log.Debugw("profile derived", map[string]any{
		"requester":    requesterID,
		"reservations": len(res),
		"avg_price":    p.AveragePrice,
		"avg_seats":    p.AverageSeats,
		"category":     p.FavoriteCategory,
	})
	return p, nil
}
