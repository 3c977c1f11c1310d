// Command route ingests a JSON array of road-segment records, builds and
// customizes a CCH over them, and answers one shortest-path query between
// two vertex ids.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/azybler/bikecch/pkg/cch"
	"github.com/azybler/bikecch/pkg/graph"
	"github.com/azybler/bikecch/pkg/routing"
)

// segmentRecord mirrors graph.RawRoadSegment's field names for JSON
// decoding of an input file.
type segmentRecord struct {
	Name     string `json:"name"`
	StartLat string `json:"start_lat"`
	StartLon string `json:"start_lon"`
	EndLat   string `json:"end_lat"`
	EndLon   string `json:"end_lon"`
	Length   string `json:"length"`
}

func main() {
	input := flag.String("input", "", "Path to a JSON file containing an array of road-segment records")
	start := flag.Uint("start", 0, "Start vertex id")
	end := flag.Uint("end", 0, "End vertex id")
	maxMetric := flag.Bool("max-metric", false, "Customize with the max-cost combine function instead of additive")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: route --input <segments.json> --start <id> --end <id> [--max-metric]")
		os.Exit(1)
	}

	startTime := time.Now()

	log.Println("Reading road-segment records...")
	records, err := readRecords(*input)
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}
	log.Printf("Read %d records", len(records))

	log.Println("Building graph...")
	result := graph.Build(records)
	g := result.Graph
	for _, skip := range result.Skipped {
		log.Printf("skipped %q: %s", skip.Name, skip.Reason)
	}
	log.Printf("Graph: %d vertices", g.NumVertices())

	log.Println("Assigning contraction ranks...")
	if err := graph.AssignDegreeRanks(g); err != nil {
		log.Fatalf("Failed to assign ranks: %v", err)
	}

	log.Println("Running metric-independent preprocessing...")
	if err := cch.Preprocess(g); err != nil {
		log.Fatalf("Preprocessing failed: %v", err)
	}

	combine := graph.AddCombine
	if *maxMetric {
		combine = graph.MaxCombine
	}

	log.Println("Running customization...")
	cch.Customize(g, combine)

	s, e := uint32(*start), uint32(*end)
	log.Printf("Querying shortest path %d -> %d...", s, e)
	path, err := routing.ShortestPath(g, combine, s, e)
	if err != nil {
		log.Fatalf("Query failed: %v", err)
	}

	if len(path) == 0 {
		fmt.Printf("no path from %d to %d\n", s, e)
	} else {
		total := 0.0
		fmt.Printf("path from %d to %d:\n", s, e)
		for _, arc := range path {
			fmt.Printf("  %d -> %d (%.3f km)\n", arc.Key.Source, arc.Key.Target, arc.Cost)
			total += arc.Cost
		}
		fmt.Printf("total: %.3f km\n", total)
	}

	log.Printf("Done in %s.", time.Since(startTime).Round(time.Millisecond))
}

func readRecords(path string) ([]graph.RawRoadSegment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var raw []segmentRecord
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return nil, err
	}

	records := make([]graph.RawRoadSegment, len(raw))
	for i, r := range raw {
		records[i] = graph.RawRoadSegment{
			Name:     r.Name,
			StartLat: r.StartLat,
			StartLon: r.StartLon,
			EndLat:   r.EndLat,
			EndLon:   r.EndLon,
			Length:   r.Length,
		}
	}
	return records, nil
}
