// Command frontier-demo builds a random graph, runs a query batch on the
// simulated device list and on the reference engine, and reports whether
// the results agree.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/frontiergraph/frontier"
)

func main() {
	var (
		vertices = flag.Int("vertices", 10000, "number of vertices")
		degree   = flag.Int("degree", 8, "outgoing edges per vertex")
		queries  = flag.Int("queries", 16, "number of source-vertex queries")
		seed     = flag.Uint64("seed", 42, "graph generator seed")
		ratio    = flag.Float64("ratio", frontier.DefaultThroughputRatio,
			"CPU-class to accelerator-class throughput ratio")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	g := frontier.GenerateGraph(*vertices, *degree, *seed)
	sources := frontier.GenerateSources(*queries, g.VertexCount(), *seed+1)

	logger.Info("graph built",
		"vertices", g.VertexCount(),
		"edges", g.EdgeCount(),
		"queries", len(sources))

	devices := frontier.EnumerateDevices()
	for _, dev := range devices {
		logger.Info("device",
			"id", dev.ID,
			"name", dev.Name,
			"class", dev.Class.String(),
			"workers", dev.Workers)
	}

	deviceOut := make([]float32, len(sources)*g.VertexCount())
	counters, err := frontier.MeasureRun(func() error {
		return frontier.RunMultiDevice(g, sources, deviceOut, devices,
			frontier.WithThroughputRatio(*ratio),
			frontier.WithLogger(logger))
	})
	if err != nil {
		logger.Error("multi-device run failed", "err", err)
		os.Exit(1)
	}
	counters.CalculateMetrics(uint64(g.EdgeCount()) * uint64(len(sources)))
	logger.Info("multi-device run complete",
		"duration", counters.Duration,
		"edge-relaxations-per-sec", fmt.Sprintf("%.2fM", counters.EdgesPerSecond/1e6))
	if counters.Cycles > 0 {
		logger.Info("hardware counters",
			"cycles", counters.Cycles,
			"instructions", counters.Instructions,
			"ipc", fmt.Sprintf("%.2f", counters.IPC),
			"cache-miss-rate", fmt.Sprintf("%.2f%%", counters.CacheMissRate*100))
	}

	refOut := make([]float32, len(sources)*g.VertexCount())
	refCounters, err := frontier.MeasureRun(func() error {
		return frontier.RunReference(g, sources, refOut)
	})
	if err != nil {
		logger.Error("reference run failed", "err", err)
		os.Exit(1)
	}
	logger.Info("reference run complete", "duration", refCounters.Duration)

	result := frontier.VerifyCosts(refOut, deviceOut, frontier.DefaultTolerance())
	fmt.Println(result)
	if !result.Ok() {
		os.Exit(1)
	}
}
