package graph

import (
	"log"
	"math"
	"strconv"

	"github.com/tidwall/rtree"

	"github.com/azybler/bikecch/pkg/geo"
)

// densifyThresholdKm is the post-hoc connector threshold: any vertex pair
// not already joined by an arc, but within this distance, gets a
// bidirectional connector arc (spec §6).
const densifyThresholdKm = 2.0

// RawRoadSegment is one record as received from the (out-of-scope) ingestion
// layer, before coordinate parsing. Coordinates arrive as strings because
// the upstream source may omit or malform them; Length is carried through
// but never used — the graph always costs arcs by Haversine distance.
type RawRoadSegment struct {
	Name                           string
	StartLat, StartLon             string
	EndLat, EndLon                 string
	Length                         string
}

// NewRawRoadSegment builds a RawRoadSegment from already-parsed floats — a
// convenience for callers (such as tests) that already have numeric
// coordinates rather than the raw strings an upstream feed would hand the
// builder.
func NewRawRoadSegment(name string, startLat, startLon, endLat, endLon float64) RawRoadSegment {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return RawRoadSegment{
		Name:     name,
		StartLat: f(startLat),
		StartLon: f(startLon),
		EndLat:   f(endLat),
		EndLon:   f(endLon),
	}
}

// SkipReason records why one ingested record was dropped. It is a warning,
// not an error (spec §7): the builder is fault-tolerant to bad records.
type SkipReason struct {
	Name   string
	Reason string
}

// BuildResult is the output of Build: the constructed graph plus whatever
// records were skipped along the way.
type BuildResult struct {
	Graph   *Graph
	Skipped []SkipReason
}

// Build converts an ordered sequence of raw road-segment records into a
// graph (spec §6's build policy, bit-exact):
//
//   - every usable record contributes two fresh vertices, start then end,
//     taking the next two dense vertex ids in order;
//   - a bidirectional arc pair is added between them, costed by Haversine;
//   - once all records are ingested, every vertex pair not already joined
//     by an arc gets a bidirectional connector pair if their Haversine
//     distance is under 2 km.
//
// Records with missing or unparseable coordinates are skipped (logged, not
// fatal) and recorded in BuildResult.Skipped.
func Build(records []RawRoadSegment) BuildResult {
	g := New()
	var skipped []SkipReason

	for _, rec := range records {
		startLat, startLon, endLat, endLon, ok := parseCoords(rec)
		if !ok {
			reason := SkipReason{Name: rec.Name, Reason: "missing or unparseable coordinates"}
			skipped = append(skipped, reason)
			log.Printf("skipping road segment %q: %s", rec.Name, reason.Reason)
			continue
		}

		startID := uint32(g.NumVertices())
		if err := g.AddVertex(Vertex{ID: startID, Lat: startLat, Lon: startLon}); err != nil {
			log.Fatalf("builder: %v", err) // dense-id invariant, cannot happen in practice
		}
		endID := uint32(g.NumVertices())
		if err := g.AddVertex(Vertex{ID: endID, Lat: endLat, Lon: endLon}); err != nil {
			log.Fatalf("builder: %v", err)
		}

		cost := geo.Haversine(startLat, startLon, endLat, endLon)
		addBidirectional(g, startID, endID, cost)
	}

	densify(g)

	largest, total := LargestComponentSize(g)
	log.Printf("graph built: %d vertices, largest connected component %d (%d skipped records)", total, largest, len(skipped))

	return BuildResult{Graph: g, Skipped: skipped}
}

func parseCoords(rec RawRoadSegment) (startLat, startLon, endLat, endLon float64, ok bool) {
	var err error
	if startLat, err = strconv.ParseFloat(rec.StartLat, 64); err != nil {
		return 0, 0, 0, 0, false
	}
	if startLon, err = strconv.ParseFloat(rec.StartLon, 64); err != nil {
		return 0, 0, 0, 0, false
	}
	if endLat, err = strconv.ParseFloat(rec.EndLat, 64); err != nil {
		return 0, 0, 0, 0, false
	}
	if endLon, err = strconv.ParseFloat(rec.EndLon, 64); err != nil {
		return 0, 0, 0, 0, false
	}
	if math.IsNaN(startLat) || math.IsNaN(startLon) || math.IsNaN(endLat) || math.IsNaN(endLon) {
		return 0, 0, 0, 0, false
	}
	return startLat, startLon, endLat, endLon, true
}

func addBidirectional(g *Graph, u, v uint32, cost float64) {
	mustAddArc(g, u, v, cost)
	mustAddArc(g, v, u, cost)
}

func mustAddArc(g *Graph, u, v uint32, cost float64) {
	if err := g.AddArc(Arc{Key: ArcKey{Source: u, Target: v}, Cost: cost}); err != nil {
		log.Fatalf("builder: %v", err) // both endpoints were just inserted, cannot happen
	}
}

// densify adds short-range connector arcs between every vertex pair closer
// than densifyThresholdKm that isn't already connected. It uses an R-tree
// over the vertex coordinates to prune candidate pairs to those within a
// generously sized bounding box, then confirms each candidate with an exact
// Haversine check — the resulting arc set is identical to a brute-force
// scan of every (i, j) pair, just reached without the O(n^2) distance
// calculations for vertices that are obviously too far apart.
func densify(g *Graph) {
	n := g.NumVertices()
	if n < 2 {
		return
	}

	var tr rtree.RTreeG[uint32]
	for i := uint32(0); i < uint32(n); i++ {
		v := g.vertices[i]
		tr.Insert([2]float64{v.Lon, v.Lat}, [2]float64{v.Lon, v.Lat}, i)
	}

	added := 0
	for i := uint32(0); i < uint32(n); i++ {
		v := g.vertices[i]
		minLat, minLon, maxLat, maxLon := geo.BoundingBoxKm(v.Lat, v.Lon, densifyThresholdKm)

		tr.Search([2]float64{minLon, minLat}, [2]float64{maxLon, maxLat}, func(_, _ [2]float64, j uint32) bool {
			if j <= i {
				return true // only consider j > i: each unordered pair is handled once
			}
			if _, exists := g.GetArc(i, j); exists {
				return true
			}
			w := g.vertices[j]
			dist := geo.Haversine(v.Lat, v.Lon, w.Lat, w.Lon)
			if dist < densifyThresholdKm {
				addBidirectional(g, i, j, dist)
				added++
			}
			return true
		})
	}

	log.Printf("densification added %d connector arc pairs", added)
}
