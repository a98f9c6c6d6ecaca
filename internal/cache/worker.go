package cache

import "flightsim/internal/terrain"

func (c *Cache) worker() {
	defer c.wg.Done()
	c.log.Debug("chunk worker started", "poll_delay", c.pollDelay)
	for c.ctx.Err() == nil {
		if c.buildNext() {
			continue
		}
		if !c.loads.wait(c.ctx, c.pollDelay) {
			break
		}
	}
	c.log.Debug("chunk worker stopped")
}

// buildNext builds the oldest load request into a fresh mesh and hands it to
// the render thread. Requests for slots invalidated since they were queued
// are skipped. It reports whether a request was taken.
func (c *Cache) buildNext() bool {
	req, ok := c.loads.tryPop()
	if !ok {
		return false
	}
	if req.slot.gen.Load() != req.gen {
		c.stats.stale.Add(1)
		c.log.Debug("skipped stale load", "chunk", req.coord)
		return true
	}
	mesh := terrain.NewChunkMesh(c.gen)
	mesh.Build(req.coord)
	c.stats.builds.Add(1)
	c.inits.push(initRequest{
		coord: req.coord,
		slot:  req.slot,
		gen:   req.gen,
		mesh:  mesh,
	})
	return true
}
