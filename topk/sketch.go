package topk

import (
	"sync"
	"time"

	"github.com/keilerkonzept/topk/sliding"
)

// SketchParams configures a TopKSketch.
// TickSize is the number of requests between sketch ticks. ActivationRPS is
// the overall request rate below which no blocking happens at all.
// MaxSharePercent is the share of the window capacity a single key may
// consume before it is reported.
type SketchParams struct {
	K               int
	WindowSize      int
	Width           int
	Depth           int
	TickSize        uint64
	MaxSharePercent int
	ActivationRPS   int
}

// TopKSketch provides thread-safe access to a sliding top-k sketch and
// manages ticking. It acts as a circuit breaker: keys are only reported when
// the server is under real load AND a key consumes an outsized share of it.
type TopKSketch struct {
	mu              sync.Mutex
	sketch          *sliding.Sketch
	tickSize        uint64
	tickReq         uint64 // requests processed since last tick
	maxSharePercent int
	activationRPS   int
	threshold       uint32 // precomputed request count per window
	lastTick        time.Time
}

func New(params SketchParams) *TopKSketch {
	if params.TickSize == 0 {
		params.TickSize = 1000
	}

	instance := sliding.New(params.K, params.WindowSize,
		sliding.WithWidth(params.Width),
		sliding.WithDepth(params.Depth))

	windowCapacity := uint64(params.WindowSize) * params.TickSize
	threshold := uint32((windowCapacity * uint64(params.MaxSharePercent)) / 100)

	return &TopKSketch{
		sketch:          instance,
		tickSize:        params.TickSize,
		maxSharePercent: params.MaxSharePercent,
		activationRPS:   params.ActivationRPS,
		threshold:       threshold,
		lastTick:        time.Now(),
	}
}

// SizeBytes returns the memory footprint of the underlying sketch.
func (cs *TopKSketch) SizeBytes() int {
	return cs.sketch.SizeBytes()
}

// ProcessTick counts one request for the given key. Every tickSize requests
// the window advances; if the observed request rate since the previous tick
// reached the activation rate, keys above the share threshold are returned.
func (cs *TopKSketch) ProcessTick(key string) []string {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.sketch.Incr(key)
	cs.tickReq++

	if cs.tickReq < cs.tickSize {
		return nil
	}

	now := time.Now()
	elapsed := now.Sub(cs.lastTick)
	cs.lastTick = now
	cs.tickReq = 0

	cs.sketch.Tick()

	// A zero elapsed time means the whole tick arrived faster than the
	// clock resolution; that is the highest rate we can observe.
	if elapsed > 0 {
		rps := float64(cs.tickSize) / elapsed.Seconds()
		if rps < float64(cs.activationRPS) {
			return nil
		}
	}

	var keysToBlock []string
	for _, item := range cs.sketch.SortedSlice() {
		if item.Count > cs.threshold {
			keysToBlock = append(keysToBlock, item.Item)
		} else {
			break // sorted, nothing further can exceed the threshold
		}
	}
	return keysToBlock
}
