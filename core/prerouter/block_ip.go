package prerouter

import (
	"fmt"
	"net/http"
	"time"

	"github.com/caasmo/balancescale/core"
	"github.com/caasmo/balancescale/topk"
)

const (
	blockingDuration = 3 * time.Minute
	defaultBlockCost = 1
)

const (
	bucketDurationSec = 3600 // 1 hour buckets
)

// getTimeBucket returns the bucket number for a given time (periods since Unix epoch).
func getTimeBucket(t time.Time) int64 {
	return t.Unix() / bucketDurationSec
}

// formatBlockKey creates a consistent cache key for blocked IPs.
func formatBlockKey(ip string, bucket int64) string {
	return fmt.Sprintf("%s|%d", ip, bucket)
}

// BlockIp is a circuit breaker against request floods from single sources.
// It is not a nuanced, application-aware rate-limiting system (quotas, etc).
type BlockIp struct {
	app    *core.App
	sketch *topk.TopKSketch
}

// sketchLevels defines the parameter presets for different sensitivity levels.
// These presets balance memory usage against detection accuracy.
// - "low":    ~10 KB memory. For low-traffic sites (< 50 RPS). Less accurate.
// - "medium": ~120 KB memory. Balanced profile for most use cases (50-500 RPS).
// - "high":   ~640 KB memory. For high-traffic sites (> 500 RPS) needing max accuracy.
var sketchLevels = map[string]topk.SketchParams{
	"low": {
		K:               2,
		WindowSize:      5,
		Width:           256,
		Depth:           2,
		TickSize:        100,
		MaxSharePercent: 50,
		ActivationRPS:   20,
	},
	"medium": {
		K:               3,
		WindowSize:      10,
		Width:           1024,
		Depth:           3,
		TickSize:        100,
		MaxSharePercent: 25,
		ActivationRPS:   50,
	},
	"high": {
		K:               5,
		WindowSize:      10,
		Width:           4096,
		Depth:           4,
		TickSize:        200,
		MaxSharePercent: 10,
		ActivationRPS:   500,
	},
}

func NewBlockIp(app *core.App) *BlockIp {
	level := app.Config().BlockIp.Level
	// The level is validated in config.Validate, so the lookup cannot miss.
	params := sketchLevels[level]

	return &BlockIp{
		app:    app,
		sketch: topk.New(params),
	}
}

func (b *BlockIp) Execute(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cfg := b.app.Config().BlockIp
		if cfg.Enabled && cfg.Activated {
			ip := b.app.ClientIP(r)

			if b.IsBlocked(ip) {
				core.WriteJsonIpBlocked(w)
				return
			}
			b.Process(ip)
		}

		next.ServeHTTP(w, r)
	})
}

// IsBlocked checks if a given IP address is currently blocked by looking in the cache.
func (b *BlockIp) IsBlocked(ip string) bool {
	currentBucket := getTimeBucket(time.Now())
	key := formatBlockKey(ip, currentBucket)
	_, found := b.app.Cache().Get(key)
	return found
}

// Block adds the given IP to the block list. The block is written to the
// current time bucket and, when the blocking window crosses the bucket
// boundary, to the next one with the remaining TTL.
func (b *BlockIp) Block(ip string) error {
	now := time.Now()
	currentBucket := getTimeBucket(now)
	nextBucket := currentBucket + 1

	currentKey := formatBlockKey(ip, currentBucket)
	if !b.app.Cache().SetWithTTL(currentKey, true, defaultBlockCost, blockingDuration) {
		return fmt.Errorf("failed to block IP %s in current bucket %d", ip, currentBucket)
	}
	b.app.Logger().Info("IP blocked",
		"ip", ip,
		"bucket", currentBucket,
		"duration", blockingDuration)

	timeUntilNextBucket := (nextBucket * bucketDurationSec) - now.Unix()
	ttlNext := blockingDuration - time.Duration(timeUntilNextBucket)*time.Second

	if ttlNext > 0 {
		nextKey := formatBlockKey(ip, nextBucket)
		if !b.app.Cache().SetWithTTL(nextKey, true, defaultBlockCost, ttlNext) {
			return fmt.Errorf("failed to block IP %s in next bucket %d", ip, nextBucket)
		}
		b.app.Logger().Info("IP blocked in next bucket",
			"ip", ip,
			"bucket", nextBucket,
			"duration", ttlNext)
	}

	return nil
}

// Process passes the IP to the underlying TopK sketch for tracking and
// triggers blocking when the sketch reports offenders.
//
// Blocking runs asynchronously. Even if multiple goroutines block the same
// IP concurrently, Ristretto batches the Set calls into a ring buffer and
// merges writes for the same key, so double-blocking is harmless.
func (b *BlockIp) Process(ip string) {
	blockedIPs := b.sketch.ProcessTick(ip)
	if len(blockedIPs) == 0 {
		return
	}

	b.app.Logger().Info("IPs to be blocked", "ips", blockedIPs)
	go func(ips []string) {
		for _, ip := range ips {
			if err := b.Block(ip); err != nil {
				b.app.Logger().Error("failed to block IP", "ip", ip, "error", err)
			}
		}
	}(blockedIPs)
}
