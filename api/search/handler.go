// Package search exposes the car search over HTTP. The boundary parses and
// validates raw query input; malformed coordinates are rejected, never
// coerced to zero.
package search

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/core/logger"
	"github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/core/model"
	coresearch "github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/core/search"
)

// vehicleResponse is one row of the search response body.
type vehicleResponse struct {
	ID         string   `json:"id"`
	Category   string   `json:"category"`
	Price      float64  `json:"price"`
	Seats      int      `json:"seats"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// NewHandler returns an HTTP handler serving GET /car-search.
func NewHandler(analyzer *coresearch.Analyzer, matcher *coresearch.Matcher, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		req, err := parseRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		profile, err := analyzer.Analyze(r.Context(), req.RequesterID)
		if err != nil {
			log.Errorf("analyze %s: %v", req.RequesterID, err)
			http.Error(w, "history read failed", http.StatusBadGateway)
			return
		}
		result, err := matcher.Search(r.Context(), profile, req)
		if err != nil {
			log.Errorf("search %s: %v", req.RequesterID, err)
			http.Error(w, "inventory read failed", http.StatusBadGateway)
			return
		}

		out := make([]vehicleResponse, 0, len(result.Matches))
		for _, m := range result.Matches {
			out = append(out, vehicleResponse{
				ID:         m.Vehicle.ID,
				Category:   m.Vehicle.Category,
				Price:      m.Vehicle.Price,
				Seats:      m.Vehicle.Seats,
				DistanceKm: m.DistanceKm,
			})
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(out); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// parseRequest converts raw query parameters into a typed SearchRequest.
func parseRequest(r *http.Request) (model.SearchRequest, error) {
	q := r.URL.Query()
	req := model.SearchRequest{RequesterID: q.Get("requester_id")}

	var err error
	if req.Latitude, err = parseFloatParam(q.Get("latitude"), "latitude"); err != nil {
		return model.SearchRequest{}, err
	}
	if req.Longitude, err = parseFloatParam(q.Get("longitude"), "longitude"); err != nil {
		return model.SearchRequest{}, err
	}
	if req.MaxDistanceKm, err = parseFloatParam(q.Get("max_distance"), "max_distance"); err != nil {
		return model.SearchRequest{}, err
	}
	if req.MaxDistanceKm != nil && *req.MaxDistanceKm < 0 {
		return model.SearchRequest{}, fmt.Errorf("max_distance must not be negative")
	}
	if err := req.Validate(); err != nil {
		return model.SearchRequest{}, err
	}
	return req, nil
}

func parseFloatParam(raw, name string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", name, raw)
	}
	return &v, nil
}
