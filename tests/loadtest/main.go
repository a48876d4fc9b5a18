package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand/v2"
	"net"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/pflag"
)

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

type statsBody struct {
	BlocksToday int `json:"blocksToday"`
	Streak      struct {
		Count int `json:"count"`
	} `json:"streak"`
}

var (
	baseURL    string
	numWorkers int
	duration   time.Duration
)

func main() {
	flagSet := pflag.NewFlagSet("loadtest", pflag.ContinueOnError)
	flagSet.StringVar(&baseURL, "url", "http://127.0.0.1:8787", "daemon base URL")
	flagSet.IntVar(&numWorkers, "workers", 50, "concurrent clients")
	flagSet.DurationVar(&duration, "duration", 10*time.Second, "length of each phase")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fmt.Println("=== Mindful Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Target: %s\n\n", numWorkers, duration, baseURL)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			os.Exit(1)
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	before, err := fetchStats()
	if err != nil {
		fmt.Println("FAILED:", err)
		os.Exit(1)
	}

	// Phase 1: concurrent writers on the same daily counter and streak.
	fmt.Println("\n--- Phase 1: Concurrent blocks (POST /message) ---")
	var recorded atomic.Int64
	runPhase(func(rng *rand.Rand) result {
		var r result
		if rng.IntN(2) == 0 {
			r = postMessage("recordBlock")
			if !r.err {
				recorded.Add(1)
			}
			return r
		}
		return postMessage("recordBlockedVisit")
	})

	after, err := fetchStats()
	if err != nil {
		fmt.Println("FAILED:", err)
		os.Exit(1)
	}
	// The delta is only exact when the run stays within one calendar day.
	delta := int64(after.BlocksToday - before.BlocksToday)
	fmt.Printf("\n  blocksToday: %d -> %d (recorded %d)\n", before.BlocksToday, after.BlocksToday, recorded.Load())
	if delta != recorded.Load() {
		fmt.Printf("  LOST UPDATES: %d\n", recorded.Load()-delta)
	}
	fmt.Printf("  streak: %d -> %d\n", before.Streak.Count, after.Streak.Count)

	// Phase 2: read-heavy, as popups and block pages poll.
	fmt.Println("\n--- Phase 2: Read-heavy load (10% write, 90% read) ---")
	runPhase(func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.10:
			return postMessage("recordBlock")
		case r < 0.40:
			return postMessage("getStreak")
		case r < 0.60:
			return get("/stats")
		case r < 0.80:
			return get("/check?url=youtube.com")
		default:
			return get("/quote")
		}
	})
}

func runPhase(workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed uint64) {
			defer wg.Done()
			rng := rand.New(rand.NewPCG(seed, seed>>1))
			for {
				select {
				case <-stop:
					return
				default:
					results <- workFn(rng)
				}
			}
		}(rand.Uint64() + uint64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults)
}

func printResults(allResults map[string]*stats) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-32s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 98))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-32s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 98))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func postMessage(action string) result {
	data, _ := json.Marshal(map[string]string{"action": action})
	endpoint := "POST /message " + action

	start := time.Now()
	resp, err := httpClient.Post(baseURL+"/message", "application/json", bytes.NewReader(data))
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	defer resp.Body.Close()

	var body struct {
		Success bool `json:"success"`
	}
	decodeErr := json.NewDecoder(resp.Body).Decode(&body)
	return result{endpoint, resp.StatusCode, lat, decodeErr != nil || !body.Success}
}

func get(path string) result {
	endpoint := "GET " + strings.SplitN(path, "?", 2)[0]
	start := time.Now()
	resp, err := httpClient.Get(baseURL + path)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
}

func fetchStats() (statsBody, error) {
	var body statsBody
	resp, err := httpClient.Get(baseURL + "/stats")
	if err != nil {
		return body, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return body, fmt.Errorf("GET /stats: status %d", resp.StatusCode)
	}
	err = json.NewDecoder(resp.Body).Decode(&body)
	return body, err
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
