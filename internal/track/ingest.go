package track

import "github.com/morepixel/BudgetOverlander/internal/shared/geo"

const unnamedTrack = "Unbenannt"

// IngestOptions tune the ingestion filters. The zero value keeps
// every eligible way regardless of length.
type IngestOptions struct {
	// MinLengthKm drops ways shorter than this after length computation.
	MinLengthKm float64
}

// Ingest normalizes raw way records into Tracks. Ways with fewer than
// two points or with restrictive access tags are dropped. Empty input
// yields empty output, not an error.
func Ingest(ways []RawWay) []Track {
	return IngestWithOptions(ways, IngestOptions{})
}

// IngestWithOptions is Ingest with explicit filter options.
func IngestWithOptions(ways []RawWay, opts IngestOptions) []Track {
	tracks := make([]Track, 0, len(ways))
	for _, way := range ways {
		if len(way.Geometry) < 2 {
			continue
		}
		if !eligible(way.Tags) {
			continue
		}

		lengthKm := geo.PathLengthKm(way.Geometry)
		if lengthKm < opts.MinLengthKm {
			continue
		}

		tracks = append(tracks, Track{
			ID:         way.ID,
			Name:       nameFromTags(way.Tags),
			LengthKm:   lengthKm,
			Difficulty: Score(way.Tags),
			Surface:    tagOr(way.Tags, "surface", "unknown"),
			Tracktype:  tagOr(way.Tags, "tracktype", "unknown"),
			Center:     geo.Midpoint(way.Geometry),
			Points:     way.Geometry,
		})
	}
	return tracks
}

// eligible rejects ways whose access tags forbid motor vehicles.
func eligible(tags map[string]string) bool {
	for _, key := range []string{"access", "motor_vehicle", "vehicle"} {
		switch tags[key] {
		case "private", "no":
			return false
		}
	}
	return true
}

func nameFromTags(tags map[string]string) string {
	if name := tags["name"]; name != "" {
		return name
	}
	return unnamedTrack
}

func tagOr(tags map[string]string, key, fallback string) string {
	if v := tags[key]; v != "" {
		return v
	}
	return fallback
}
