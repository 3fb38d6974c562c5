package frontier

import (
	"sync"
)

// launchInternal implements the core kernel execution logic: the grid of
// blocks is fanned out across the device's worker lanes, and threads within
// a block run sequentially on the lane that owns the block.
func (ctx *Context) launchInternal(
	kernelFunc func(ThreadID, ...interface{}),
	grid, block Dim3,
	stream *Stream,
	args ...interface{},
) error {
	gridSize := grid.Size()
	blockSize := block.Size()

	// Handle edge case where grid size is zero
	if gridSize == 0 {
		// Submit an empty task to maintain stream ordering
		stream.Submit(func() {})
		return nil
	}

	if blockSize > MaxThreadsPerBlock {
		return NewInvalidArgError("Launch", "block size exceeds MaxThreadsPerBlock")
	}

	// Worker lane count comes from the owning device
	numWorkers := ctx.device.Workers
	if gridSize < numWorkers {
		numWorkers = gridSize
	}

	// Each worker processes a contiguous range of blocks to maximize
	// cache reuse
	blocksPerWorker := (gridSize + numWorkers - 1) / numWorkers

	stream.Submit(func() {
		var wg sync.WaitGroup
		wg.Add(numWorkers)

		for workerID := 0; workerID < numWorkers; workerID++ {
			startBlock := workerID * blocksPerWorker
			endBlock := startBlock + blocksPerWorker
			if endBlock > gridSize {
				endBlock = gridSize
			}

			go func(startBlock, endBlock int) {
				defer wg.Done()

				for blockID := startBlock; blockID < endBlock; blockID++ {
					blockIdx := linearTo3D(blockID, grid)

					for threadID := 0; threadID < blockSize; threadID++ {
						threadIdx := linearTo3D(threadID, block)

						tid := ThreadID{
							BlockIdx:  blockIdx,
							ThreadIdx: threadIdx,
							BlockDim:  block,
							GridDim:   grid,
						}

						kernelFunc(tid, args...)
					}
				}
			}(startBlock, endBlock)
		}

		wg.Wait()
	})

	return nil
}

// linearTo3D converts a linear index to 3D coordinates
func linearTo3D(linear int, dim Dim3) Dim3 {
	z := linear / (dim.X * dim.Y)
	y := (linear % (dim.X * dim.Y)) / dim.X
	x := linear % dim.X
	return Dim3{X: x, Y: y, Z: z}
}

// launchConfig computes the 1D grid/block configuration covering n threads.
func launchConfig(n int) (grid, block Dim3) {
	block = Dim3{X: DefaultBlockSize, Y: 1, Z: 1}
	grid = Dim3{X: (n + DefaultBlockSize - 1) / DefaultBlockSize, Y: 1, Z: 1}
	return grid, block
}
