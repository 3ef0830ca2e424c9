// Command wfc-sweep runs a tileset across every selection mode, radius and
// affinity setting for a range of seeds and reports how often each setting
// needed a recovery path.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"strconv"
	"sync"
	"time"

	"tilewave/internal/config"
	"tilewave/internal/core"
	"tilewave/internal/logging"
	"tilewave/internal/sims/wavesim"
	"tilewave/pkg/wfc"
)

type scenario struct {
	mode   wfc.Mode
	radius int
	cube   bool
}

func (s scenario) String() string {
	return fmt.Sprintf("mode=%s radius=%d cube=%t", s.mode, s.radius, s.cube)
}

type job struct {
	scenario scenario
	seed     int64
}

type runResult struct {
	scenario scenario
	stats    wfc.Stats
	elapsed  time.Duration
	err      error
}

type summary struct {
	scenario        scenario
	runs            int
	exact           int
	contradictions  int
	emptyCandidates int
	finishPicks     int
	finishFallbacks int
	elapsed         time.Duration
}

func (s *summary) add(r runResult) {
	s.runs++
	if r.stats.Exact() {
		s.exact++
	}
	s.contradictions += r.stats.Contradictions
	s.emptyCandidates += r.stats.EmptyCandidates
	s.finishPicks += r.stats.FinishPicks
	s.finishFallbacks += r.stats.FinishFallbacks
	s.elapsed += r.elapsed
}

type opener func(params map[string]string) (core.Sim, error)

type statsSim interface {
	core.Sim
	core.Runner
	Stats() wfc.Stats
}

func main() {
	seeds := flag.Int("seeds", 32, "seeds to run per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	width := flag.Int("w", 40, "map width in cells")
	height := flag.Int("h", 40, "map height in cells")
	tileset := flag.String("tileset", "terrain-classic", "built-in tileset name")
	file := flag.String("file", "", "HCL tileset file (overrides -tileset)")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn or error")
	logFormat := flag.String("log-format", "text", "log format: text or json")
	flag.Parse()

	log := logging.New(*logLevel, *logFormat, os.Stderr)
	slog.SetDefault(log)

	open, err := newOpener(*tileset, *file)
	if err != nil {
		log.Error("Failed to open tileset.", "error", err)
		os.Exit(1)
	}

	scenarios := allScenarios()
	log.Info("Sweeping scenarios.", "scenarios", len(scenarios), "seeds", *seeds, "workers", *workers, "w", *width, "h", *height)

	start := time.Now()
	summaries, err := sweep(open, scenarios, *seeds, max(*workers, 1), *width, *height)
	if err != nil {
		log.Error("Sweep failed.", "error", err)
		os.Exit(1)
	}
	report(os.Stdout, summaries, time.Since(start))
}

func newOpener(name, file string) (opener, error) {
	if file != "" {
		ts, err := config.LoadTileset(file)
		if err != nil {
			return nil, err
		}
		set := wavesim.FileTileset(ts)
		return func(params map[string]string) (core.Sim, error) {
			s, err := wavesim.New(set, wavesim.FromMap(params))
			if err != nil {
				return nil, err
			}
			return s, nil
		}, nil
	}
	factory, ok := core.Sims()[name]
	if !ok {
		return nil, fmt.Errorf("unknown tileset %q (available: %v)", name, core.Names())
	}
	return opener(factory), nil
}

func allScenarios() []scenario {
	var out []scenario
	for _, mode := range []wfc.Mode{wfc.ModeGlobalEntropy, wfc.ModeScanOrder} {
		for _, radius := range []int{1, 2} {
			for _, cube := range []bool{false, true} {
				out = append(out, scenario{mode: mode, radius: radius, cube: cube})
			}
		}
	}
	return out
}

func sweep(open opener, scenarios []scenario, seeds, workers, w, h int) ([]summary, error) {
	jobs := make(chan job)
	results := make(chan runResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results <- runScenario(open, j, w, h)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, sc := range scenarios {
			for seed := 1; seed <= seeds; seed++ {
				jobs <- job{scenario: sc, seed: int64(seed)}
			}
		}
		close(jobs)
	}()

	byScenario := map[scenario]*summary{}
	var firstErr error
	for res := range results {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		s, ok := byScenario[res.scenario]
		if !ok {
			s = &summary{scenario: res.scenario}
			byScenario[res.scenario] = s
		}
		s.add(res)
	}
	if firstErr != nil {
		return nil, firstErr
	}

	out := make([]summary, 0, len(byScenario))
	for _, s := range byScenario {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].exact != out[j].exact {
			return out[i].exact > out[j].exact
		}
		return out[i].contradictions < out[j].contradictions
	})
	return out, nil
}

func runScenario(open opener, j job, w, h int) runResult {
	params := map[string]string{
		"w":      strconv.Itoa(w),
		"h":      strconv.Itoa(h),
		"seed":   strconv.FormatInt(j.seed, 10),
		"mode":   j.scenario.mode.String(),
		"radius": strconv.Itoa(j.scenario.radius),
		"cube":   strconv.FormatBool(j.scenario.cube),
	}
	sim, err := open(params)
	if err != nil {
		return runResult{scenario: j.scenario, err: err}
	}
	s, ok := sim.(statsSim)
	if !ok {
		return runResult{scenario: j.scenario, err: fmt.Errorf("tileset %s does not report generator stats", sim.Name())}
	}
	start := time.Now()
	s.Run()
	return runResult{scenario: j.scenario, stats: s.Stats(), elapsed: time.Since(start)}
}

func report(w io.Writer, summaries []summary, elapsed time.Duration) {
	fmt.Fprintf(w, "Results (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for i, s := range summaries {
		avg := time.Duration(0)
		if s.runs > 0 {
			avg = s.elapsed / time.Duration(s.runs)
		}
		fmt.Fprintf(w, "%2d) %s exact=%d/%d contradictions=%d empty=%d finishPicks=%d finishFallbacks=%d avg=%s\n",
			i+1, s.scenario, s.exact, s.runs, s.contradictions, s.emptyCandidates, s.finishPicks, s.finishFallbacks, avg.Round(time.Microsecond))
	}
}
