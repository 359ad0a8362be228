package game

// SimulationClock advances discrete game ticks and fans each tick out to
// its stages in a fixed order, so no stage ever observes another stage's
// partially-updated state mid-tick.
type SimulationClock struct {
	bus    *Bus
	tick   int64
	stages []func()
}

func NewSimulationClock(bus *Bus, stages ...func()) *SimulationClock {
	if bus == nil {
		bus = NewBus()
	}
	return &SimulationClock{bus: bus, stages: stages}
}

func (c *SimulationClock) Tick() int64 { return c.tick }

// Advance runs exactly one tick and returns the new tick index.
func (c *SimulationClock) Advance() int64 {
	c.tick++
	c.bus.publishTick(TickEvent{Tick: c.tick})
	for _, stage := range c.stages {
		stage()
	}
	return c.tick
}

func (c *SimulationClock) Reset() {
	c.tick = 0
}
