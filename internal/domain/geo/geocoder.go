// Package geo resolves place and institution names to map coordinates.
package geo

import (
	"sort"
	"strings"
)

// Coordinates is a latitude/longitude pair in degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

var (
	milan    = Coordinates{Lat: 45.4642, Lng: 9.19}
	rome     = Coordinates{Lat: 41.9028, Lng: 12.4964}
	turin    = Coordinates{Lat: 45.0703, Lng: 7.6869}
	florence = Coordinates{Lat: 43.7696, Lng: 11.2558}
	naples   = Coordinates{Lat: 40.8518, Lng: 14.2681}
	venice   = Coordinates{Lat: 45.4408, Lng: 12.3155}
)

// places maps lower-cased names to coordinates. Italian and English spellings of
// a city share coordinates; institutions resolve to their campus or host city.
var places = map[string]Coordinates{
	"milan":       milan,
	"milano":      milan,
	"rome":        rome,
	"roma":        rome,
	"turin":       turin,
	"torino":      turin,
	"florence":    florence,
	"firenze":     florence,
	"bologna":     {Lat: 44.4949, Lng: 11.3426},
	"naples":      naples,
	"napoli":      naples,
	"venice":      venice,
	"venezia":     venice,
	"padova":      {Lat: 45.4064, Lng: 11.8768},
	"genova":      {Lat: 44.4056, Lng: 8.9463},
	"bari":        {Lat: 41.1171, Lng: 16.8719},
	"palermo":     {Lat: 38.1157, Lng: 13.3615},
	"politecnico": milan,
	"bocconi":     {Lat: 45.4506, Lng: 9.1888},
	"sapienza":    {Lat: 41.9013, Lng: 12.5148},
	"luiss":       {Lat: 41.9244, Lng: 12.4969},
}

// keysByLength lists place keys longest first so the most specific name wins.
var keysByLength = func() []string {
	keys := make([]string, 0, len(places))
	for k := range places {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}()

// CoordinatesFor returns the coordinates of the longest known name contained in
// text (case-insensitive), or nil when nothing matches.
func CoordinatesFor(text string) *Coordinates {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)
	for _, key := range keysByLength {
		if strings.Contains(lower, key) {
			c := places[key]
			return &c
		}
	}
	return nil
}
