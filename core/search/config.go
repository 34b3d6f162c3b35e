package search

import (
	"fmt"
	"sort"
)

// Config carries the tuning constants of the matching pipeline. The values
// are configuration, not algorithm: changing them must never require touching
// the filter code.
type Config struct {
	// PriceHeadroom multiplies the observed average price to form the upper
	// bound of the price band, e.g. 1.2 admits vehicles up to 20% above the
	// requester's historical average.
	PriceHeadroom float64 `json:"price_headroom"`
	// SeatCatalog is the discrete set of seat counts offered by the fleet,
	// sorted ascending. Average seat counts are snapped to this catalog.
	SeatCatalog []int `json:"seat_catalog"`
	// FallbackWidening progressively relaxes the price band when the strict
	// profile filter yields nothing. Off by default; enabling it is an
	// explicit operator choice, never a hidden behavior.
	FallbackWidening WideningConfig `json:"fallback_widening"`
}

// WideningConfig controls the optional empty-result fallback.
type WideningConfig struct {
	Enabled bool `json:"enabled"`
	// Step is added to the price headroom on each widening round.
	Step float64 `json:"step"`
	// MaxRounds bounds the number of widening attempts.
	MaxRounds int `json:"max_rounds"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.PriceHeadroom == 0 {
		c.PriceHeadroom = 1.2
	}
	if len(c.SeatCatalog) == 0 {
		c.SeatCatalog = []int{2, 4, 6}
	}
	if c.FallbackWidening.Enabled {
		if c.FallbackWidening.Step == 0 {
			c.FallbackWidening.Step = 0.1
		}
		if c.FallbackWidening.MaxRounds == 0 {
			c.FallbackWidening.MaxRounds = 3
		}
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.PriceHeadroom < 1 {
		return fmt.Errorf("price headroom must be >= 1, got %f", c.PriceHeadroom)
	}
	if len(c.SeatCatalog) == 0 {
		return fmt.Errorf("seat catalog must not be empty")
	}
	if !sort.IntsAreSorted(c.SeatCatalog) {
		return fmt.Errorf("seat catalog must be sorted ascending")
	}
	for _, s := range c.SeatCatalog {
		if s <= 0 {
			return fmt.Errorf("seat catalog entries must be positive, got %d", s)
		}
	}
	if c.FallbackWidening.Enabled {
		if c.FallbackWidening.Step <= 0 {
			return fmt.Errorf("widening step must be positive")
		}
		if c.FallbackWidening.MaxRounds <= 0 {
			return fmt.Errorf("widening max rounds must be positive")
		}
	}
	return nil
}
