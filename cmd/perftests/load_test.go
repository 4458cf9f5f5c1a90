package perftests

import (
	"context"
	"errors"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"souq-market/internal/auctionerrors"
	"souq-market/internal/lifecycle"
	"souq-market/internal/query"
)

// LoadScenario defines configurable benchmark parameters
type LoadScenario struct {
	Name            string
	NumBidders      int
	NumAuctions     int
	ReadRatio       int
	MaxBidIncrement int
	Burst           bool // if true, no delay between ops
}

// OperationMetrics collects latencies from concurrent workers
type OperationMetrics struct {
	mu        sync.Mutex
	latencies []time.Duration
}

func (om *OperationMetrics) Record(d time.Duration) {
	om.mu.Lock()
	om.latencies = append(om.latencies, d)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (min, max, avg, p95, p99 time.Duration) {
	om.mu.Lock()
	defer om.mu.Unlock()
	if len(om.latencies) == 0 {
		return
	}
	latencies := om.latencies
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	min = latencies[0]
	max = latencies[len(latencies)-1]

	var total time.Duration
	for _, d := range latencies {
		total += d
	}
	avg = total / time.Duration(len(latencies))
	p95 = latencies[int(0.95*float64(len(latencies)-1))]
	p99 = latencies[int(0.99*float64(len(latencies)-1))]
	return
}

// Benchmark_Load_AuctionSystem runs bidders against auction detail readers
func Benchmark_Load_AuctionSystem(b *testing.B) {
	scenarios := []LoadScenario{
		{"Low-Contention-WriteHeavy", 200, 200, 0, 5000, false},
		{"High-Contention-WriteHeavy", 500, 10, 0, 2000, false},
		{"Mixed-Workload", 300, 50, 7, 3000, false},
		{"ReadHeavy", 200, 50, 9, 2000, false},
		{"Edge-Case-SingleAuction", 100, 1, 5, 1000, false},
		{"Peak-Burst", 500, 50, 0, 2000, true},
	}

	for _, s := range scenarios {
		b.Run(s.Name, func(b *testing.B) {
			runParallelScenario(b, s)
		})
	}
}

func runParallelScenario(b *testing.B, s LoadScenario) {
	b.ReportAllocs()

	ids, repo, svc := setupAuctions(b, s.NumAuctions)
	reader := query.NewAuctionQuery(repo, repo, lifecycle.NewManager(repo, repo))
	ctx := context.Background()

	var totalOps, acceptedBids, rejectedBids, conflicts, totalReads int64
	auctionAccepted := make([]int64, s.NumAuctions)
	metrics := &OperationMetrics{}

	start := time.Now()

	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

		for pb.Next() {
			idx := rnd.Intn(s.NumAuctions)
			opType := rnd.Intn(10)

			opStart := time.Now()
			if opType < s.ReadRatio {
				if _, err := reader.GetAuctionDetail(ctx, ids[idx]); err != nil {
					b.Logf("ignored read error: %v", err)
				}
				atomic.AddInt64(&totalReads, 1)
			} else {
				bidder := int64(2 + rnd.Intn(s.NumBidders))
				amount := benchStartPrice + int64(1+rnd.Intn(s.MaxBidIncrement))
				_, err := svc.PlaceBid(ctx, ids[idx], bidder, amount)
				switch {
				case err == nil:
					atomic.AddInt64(&acceptedBids, 1)
					atomic.AddInt64(&auctionAccepted[idx], 1)
				case errors.Is(err, auctionerrors.ErrConflict):
					atomic.AddInt64(&conflicts, 1)
				default:
					atomic.AddInt64(&rejectedBids, 1)
				}
			}

			metrics.Record(time.Since(opStart))
			atomic.AddInt64(&totalOps, 1)

			if !s.Burst {
				time.Sleep(time.Millisecond)
			}
		}
	})

	elapsed := time.Since(start)
	throughput := float64(totalOps) / elapsed.Seconds()
	min, max, avg, p95, p99 := metrics.Stats()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	b.Logf(
		"Scenario: %s | Auctions: %d | Total Ops: %d | Accepted: %d | Rejected: %d | Conflicts: %d | Reads: %d | Elapsed: %s | Throughput: %.2f ops/sec | Latency(us) min: %.2f avg: %.2f max: %.2f p95: %.2f p99: %.2f | Memory Alloc: %.2f MB",
		s.Name, s.NumAuctions, totalOps, acceptedBids, rejectedBids, conflicts, totalReads, elapsed,
		throughput,
		float64(min.Microseconds()), float64(avg.Microseconds()), float64(max.Microseconds()),
		float64(p95.Microseconds()), float64(p99.Microseconds()),
		float64(mem.Alloc)/1024/1024,
	)

	for i, v := range auctionAccepted {
		if v > 0 {
			b.Logf("Auction %d accepted bids: %d", ids[i], v)
		}
	}

	// every auction must still agree with its own bid history
	for _, id := range ids {
		report, err := svc.Reconcile(ctx, id)
		if err != nil {
			b.Fatalf("reconcile auction %d: %v", id, err)
		}
		if !report.Consistent {
			b.Fatalf("auction %d inconsistent after load: %+v", id, report.Discrepancies)
		}
	}
}
