package frontier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simDevices(count int) []*Device {
	devices := make([]*Device, count)
	for i := range devices {
		devices[i] = NewDevice(i, "sim", ClassAccelerator, 2)
	}
	return devices
}

func TestPartitionEvenSplit(t *testing.T) {
	const vc = 4
	sources := GenerateSources(8, vc, 1)
	out := make([]float32, len(sources)*vc)

	plans, err := Partition(sources, out, vc, simDevices(4), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, plans, 4)

	for _, plan := range plans {
		assert.Equal(t, 2, plan.Count())
		assert.Len(t, plan.Out, 2*vc)
	}
}

// Any remainder from integer division goes entirely to the last device.
func TestPartitionRemainderToLastDevice(t *testing.T) {
	const vc = 4
	sources := GenerateSources(10, vc, 1)
	out := make([]float32, len(sources)*vc)

	plans, err := Partition(sources, out, vc, simDevices(3), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 3, plans[0].Count())
	assert.Equal(t, 3, plans[1].Count())
	assert.Equal(t, 4, plans[2].Count())
}

// Plans must be contiguous, ordered, and cover the batch exactly.
func TestPartitionContiguity(t *testing.T) {
	const vc = 4
	sources := GenerateSources(13, vc, 2)
	out := make([]float32, len(sources)*vc)

	for _, deviceCount := range []int{1, 2, 3, 5, 13} {
		plans, err := Partition(sources, out, vc, simDevices(deviceCount), DefaultOptions())
		require.NoError(t, err)

		offset := 0
		for _, plan := range plans {
			require.Equal(t, sources[offset:offset+plan.Count()], plan.Sources)
			require.Equal(t, len(plan.Sources)*vc, len(plan.Out))
			offset += plan.Count()
		}
		assert.Equal(t, len(sources), offset, "%d devices must cover the batch", deviceCount)
	}
}

func TestPartitionZeroDevices(t *testing.T) {
	sources := []int32{0}
	out := make([]float32, 3)

	_, err := Partition(sources, out, 3, nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrNoDevices)
}

// A CPU-class device with ratio 2 receives twice the share of an
// accelerator-class device.
func TestPartitionThroughputRatio(t *testing.T) {
	const vc = 2
	sources := GenerateSources(9, vc, 3)
	out := make([]float32, len(sources)*vc)

	devices := []*Device{
		NewDevice(0, "accel", ClassAccelerator, 2),
		NewDevice(1, "cpu", ClassCPU, 2),
	}

	opts := DefaultOptions()
	opts.ThroughputRatio = 2

	plans, err := Partition(sources, out, vc, devices, opts)
	require.NoError(t, err)

	// Weights 1:2 over 9 queries: floor shares 3 and 6
	assert.Equal(t, 3, plans[0].Count())
	assert.Equal(t, 6, plans[1].Count())
}

func TestWithThroughputRatioPanicsOnBadValue(t *testing.T) {
	assert.Panics(t, func() { WithThroughputRatio(0) })
	assert.Panics(t, func() { WithThroughputRatio(-1) })
}

// Splitting a batch across 1, 2, or N devices must produce identical
// results in identical order.
func TestMultiDevicePartitioningInvariance(t *testing.T) {
	g := GenerateGraph(64, 4, 11)
	sources := GenerateSources(12, g.VertexCount(), 12)

	expected := ReferenceCosts(t, g, sources)

	for _, deviceCount := range []int{1, 2, 3, 5} {
		actual := make([]float32, len(expected))
		err := RunMultiDevice(g, sources, actual, simDevices(deviceCount))
		require.NoError(t, err, "%d devices", deviceCount)

		result := VerifyCosts(expected, actual, DefaultTolerance())
		assert.True(t, result.Ok(), "%d devices: %s", deviceCount, result)
	}
}

// A batch of 4 sources on an 8-vertex graph split across 2 simulated
// devices must match the single-device result matrix exactly.
func TestMultiDeviceTwoSimulatedDevices(t *testing.T) {
	g := GenerateGraph(8, 3, 21)
	sources := []int32{0, 3, 5, 7}

	single := make([]float32, len(sources)*g.VertexCount())
	require.NoError(t, RunSingleDevice(g, sources, single, NewDevice(0, "sim", ClassAccelerator, 2)))

	split := make([]float32, len(sources)*g.VertexCount())
	require.NoError(t, RunMultiDevice(g, sources, split, simDevices(2)))

	assert.Equal(t, single, split)
}

// Mixed device classes with a throughput ratio still preserve ordering and
// correctness.
func TestMultiDeviceHeterogeneous(t *testing.T) {
	g := GenerateGraph(96, 4, 31)
	sources := GenerateSources(10, g.VertexCount(), 32)

	devices := []*Device{
		NewDevice(0, "accel-0", ClassAccelerator, 4),
		NewDevice(1, "accel-1", ClassAccelerator, 4),
		NewDevice(2, "cpu", ClassCPU, 2),
	}

	expected := ReferenceCosts(t, g, sources)
	actual := make([]float32, len(expected))

	err := RunMultiDevice(g, sources, actual, devices, WithThroughputRatio(0.5))
	require.NoError(t, err)

	result := VerifyCosts(expected, actual, DefaultTolerance())
	assert.True(t, result.Ok(), result.String())
}

func TestMultiDeviceZeroDevices(t *testing.T) {
	g := TriangleGraph()
	out := make([]float32, g.VertexCount())

	err := RunMultiDevice(g, []int32{0}, out, nil)
	assert.ErrorIs(t, err, ErrNoDevices)
}

// More devices than queries: trailing devices receive empty slices and the
// run still completes correctly.
func TestMultiDeviceMoreDevicesThanQueries(t *testing.T) {
	g := TriangleGraph()
	sources := []int32{0, 2}

	expected := ReferenceCosts(t, g, sources)
	actual := make([]float32, len(expected))

	err := RunMultiDevice(g, sources, actual, simDevices(5))
	require.NoError(t, err)
	assert.Equal(t, expected, actual)
}
