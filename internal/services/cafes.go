package services

import (
	"sort"

	"github.com/example/brewfinder/internal/models"
	"github.com/example/brewfinder/internal/store"
)

// Coordinates is a lat/lng pair in decimal degrees.
type Coordinates struct {
	Lat float64
	Lng float64
}

// CafeFilter describes a cafe search. RadiusM is only applied when a
// center is present and the radius is positive.
type CafeFilter struct {
	Query   string
	Center  *Coordinates
	RadiusM float64
	Limit   int
	Offset  int
}

// CafeResult is a listing row, optionally annotated with the distance
// from the search center. DistanceM is nil when the row has no
// coordinates.
type CafeResult struct {
	models.Business
	DistanceM *float64 `json:"distance_m,omitempty"`
}

// CafeService runs the proximity search over the cafe listing.
type CafeService struct {
	store store.Store
}

// NewCafeService constructs a CafeService.
func NewCafeService(st store.Store) *CafeService {
	return &CafeService{store: st}
}

// Search applies the text filter and pagination at the storage layer,
// then annotates, radius-filters and distance-sorts the page. Geo
// filtering runs strictly after pagination: a page may come back
// shorter than Limit, and rows cut by pagination are never recovered.
// That ordering is a deliberate tradeoff and must stay as is.
func (s *CafeService) Search(filter CafeFilter) ([]CafeResult, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	rows, err := s.store.SearchCafes(store.CafeFilter{
		Query:  filter.Query,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
	if err != nil {
		return nil, err
	}

	results := make([]CafeResult, 0, len(rows))
	for _, row := range rows {
		result := CafeResult{Business: row}
		if filter.Center != nil && row.HasCoordinates() {
			d := Haversine(filter.Center.Lat, filter.Center.Lng, *row.Lat, *row.Lng)
			result.DistanceM = &d
		}
		results = append(results, result)
	}

	if filter.Center == nil {
		return results, nil
	}

	if filter.RadiusM > 0 {
		kept := results[:0]
		for _, result := range results {
			if result.DistanceM != nil && *result.DistanceM > filter.RadiusM {
				continue
			}
			kept = append(kept, result)
		}
		results = kept
	}

	// Ascending by distance, rows without coordinates last.
	sort.SliceStable(results, func(i, j int) bool {
		di, dj := results[i].DistanceM, results[j].DistanceM
		if di == nil {
			return false
		}
		if dj == nil {
			return true
		}
		return *di < *dj
	})

	return results, nil
}
