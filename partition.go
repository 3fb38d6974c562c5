package frontier

import (
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// DevicePlan assigns one device its contiguous slice of the query batch and
// the matching window of the output buffer. Plans are created once per run
// by Partition, consumed by exactly one worker, and discarded after join.
type DevicePlan struct {
	Device  *Device
	Sources []int32   // source vertices this device owns
	Out     []float32 // output rows this device owns
}

// Count returns the number of queries assigned to this plan.
func (p DevicePlan) Count() int {
	return len(p.Sources)
}

// Options configures the workload partitioner.
type Options struct {
	// ThroughputRatio weights CPU-class devices relative to
	// accelerator-class devices when splitting the batch. A ratio of 2
	// assigns a CPU-class device twice the share of an accelerator-class
	// device. Must be positive.
	ThroughputRatio float64

	// Logger receives per-device assignment and completion events at
	// Debug level.
	Logger *slog.Logger
}

// Option customizes partitioner behavior.
type Option func(*Options)

// WithThroughputRatio sets the CPU-class to accelerator-class throughput
// weight. Panics if ratio is not positive.
func WithThroughputRatio(ratio float64) Option {
	if ratio <= 0 {
		panic("frontier: throughput ratio must be positive")
	}
	return func(o *Options) {
		o.ThroughputRatio = ratio
	}
}

// WithLogger sets the logger used for partition and completion events.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// DefaultOptions returns the partitioner defaults.
func DefaultOptions() Options {
	return Options{
		ThroughputRatio: DefaultThroughputRatio,
		Logger:          slog.Default(),
	}
}

// classWeight returns the partition weight of a device under opts.
func classWeight(dev *Device, opts Options) float64 {
	if dev.Class == ClassCPU {
		return opts.ThroughputRatio
	}
	return 1.0
}

// Partition divides numResults queries statically across the devices.
// Each device receives a contiguous slice proportional to its class weight
// (floor of the weighted share); any remainder from integer division is
// appended entirely to the last device in enumeration order. With a ratio
// of 1 every device receives floor(numResults/deviceCount).
//
// Output rows are bound to devices here, so result ordering is independent
// of device completion order.
func Partition(sources []int32, out []float32, vertexCount int, devices []*Device, opts Options) ([]DevicePlan, error) {
	if len(devices) == 0 {
		return nil, ErrNoDevices
	}

	numResults := len(sources)

	totalWeight := 0.0
	for _, dev := range devices {
		totalWeight += classWeight(dev, opts)
	}

	plans := make([]DevicePlan, len(devices))
	offset := 0
	for i, dev := range devices {
		count := int(float64(numResults) * classWeight(dev, opts) / totalWeight)
		if offset+count > numResults {
			count = numResults - offset
		}
		plans[i] = DevicePlan{
			Device:  dev,
			Sources: sources[offset : offset+count],
			Out:     out[offset*vertexCount : (offset+count)*vertexCount],
		}
		offset += count
	}

	// Append any remaining work to the last device
	if offset < numResults {
		last := &plans[len(plans)-1]
		start := offset - last.Count()
		last.Sources = sources[start:numResults]
		last.Out = out[start*vertexCount : numResults*vertexCount]
	}

	return plans, nil
}

// RunMultiDevice computes the shortest-path costs for every query in
// sources, splitting the batch across the supplied devices. One worker per
// device is launched concurrently and joined before returning; result row q
// always corresponds to input query q regardless of how the work was
// partitioned or in which order devices finish.
//
// A failure on any device is fatal to the run: workers are joined and the
// first error is returned. There is no partial-result contract: on error
// the contents of out are unspecified.
func RunMultiDevice(g *Graph, sources []int32, out []float32, devices []*Device, opts ...Option) error {
	if err := checkRunArgs(g, sources, out); err != nil {
		return err
	}

	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	plans, err := Partition(sources, out, g.VertexCount(), devices, cfg)
	if err != nil {
		return err
	}

	var eg errgroup.Group
	for _, plan := range plans {
		cfg.Logger.Debug("device assigned",
			"device", plan.Device.Name,
			"class", plan.Device.Class.String(),
			"queries", plan.Count())

		p := plan
		eg.Go(func() error {
			ctx := NewContext(p.Device)
			defer ctx.Close()

			if err := runOn(ctx, g, p.Sources, p.Out); err != nil {
				return NewExecutionError("RunMultiDevice",
					"device worker failed: "+p.Device.Name, err)
			}
			cfg.Logger.Debug("device done", "device", p.Device.Name)
			return nil
		})
	}

	return eg.Wait()
}
