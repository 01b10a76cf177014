// Command falseshare measures the cost of false sharing between per-worker
// counters and shows that cache-line padding removes it.
//
// With no flags it runs the paired comparison and prints the narrative
// report. -mode=packed or -mode=padded runs a single variant standalone at a
// higher iteration count.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/perfbench/falseshare"
)

func main() {
	mode := flag.String("mode", "compare", "compare, packed or padded")
	pin := flag.Bool("pin", false, "bind each worker to an OS thread and CPU (Linux)")
	flag.Parse()

	if err := run(*mode, *pin); err != nil {
		fmt.Fprintln(os.Stderr, "falseshare:", err)
		os.Exit(1)
	}
}

func run(mode string, pin bool) error {
	cfg := falseshare.DefaultConfig()
	cfg.PinWorkers = pin

	switch mode {
	case "compare":
		return compare(cfg)
	case "packed", "padded":
		cfg.Iterations = falseshare.SingleIterations
		cfg.Trials = 1
		return single(mode, cfg)
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}

func compare(cfg falseshare.Config) error {
	fmt.Println("=== FALSE SHARING PERFORMANCE COMPARISON ===")
	fmt.Println()
	printSystemInfo(cfg)
	if err := printMemoryLayout(cfg); err != nil {
		return err
	}

	fmt.Println("=== PERFORMANCE TESTING ===")
	fmt.Printf("Running %d trials for statistical accuracy...\n\n", cfg.Trials)

	d := falseshare.Driver{
		Observer: func(trial int, packedMS, paddedMS float64) {
			fmt.Printf("Trial %d/%d: packed %.2f ms, padded %.2f ms\n",
				trial+1, cfg.Trials, packedMS, paddedMS)
		},
	}
	rep, err := d.Compare(cfg)
	if err != nil {
		return err
	}
	fmt.Println()
	rep.Fprint(os.Stdout)
	return nil
}

func single(mode string, cfg falseshare.Config) error {
	var (
		layout falseshare.Layout
		err    error
	)
	if mode == "packed" {
		fmt.Println("=== FALSE SHARING DEMONSTRATION ===")
		layout, err = falseshare.NewPackedLayout(cfg.WorkerCount)
	} else {
		fmt.Println("=== FALSE SHARING MITIGATION (PADDED) ===")
		layout, err = falseshare.NewPaddedLayout(cfg.WorkerCount)
	}
	if err != nil {
		return err
	}

	printSystemInfo(cfg)
	printLayoutInfo(falseshare.Inspect(layout), cfg)

	var d falseshare.Driver
	res, err := d.Single(layout, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Execution time: %.2f ms\n", res.ElapsedMS)
	fmt.Printf("Throughput: %.0f ops/sec (%.2f million ops/sec)\n",
		res.OpsPerSec, res.OpsPerSec/1e6)
	fmt.Println("Final counter values:")
	for i, v := range res.Counters {
		fmt.Printf("  worker %d: %d\n", i, v)
	}
	return nil
}

func printSystemInfo(cfg falseshare.Config) {
	fmt.Println("=== SYSTEM INFORMATION ===")
	fmt.Printf("Number of CPUs: %d\n", runtime.NumCPU())
	fmt.Printf("GOMAXPROCS: %d\n", runtime.GOMAXPROCS(0))
	fmt.Printf("Workers: %d\n", cfg.WorkerCount)
	fmt.Printf("Iterations per worker: %d\n", cfg.Iterations)
	fmt.Printf("Total operations per run: %d\n", cfg.WorkerCount*cfg.Iterations)
	fmt.Printf("Publish interval: every %d iterations\n", cfg.PublishInterval)
	fmt.Printf("Cache line size (assumed): %d bytes\n", cfg.CacheLineBytes)
	fmt.Println()
}

func printMemoryLayout(cfg falseshare.Config) error {
	packed, err := falseshare.NewPackedLayout(cfg.WorkerCount)
	if err != nil {
		return err
	}
	padded, err := falseshare.NewPaddedLayout(cfg.WorkerCount)
	if err != nil {
		return err
	}

	fmt.Println("=== MEMORY LAYOUT ANALYSIS ===")
	printLayoutInfo(falseshare.Inspect(packed), cfg)
	printLayoutInfo(falseshare.Inspect(padded), cfg)
	return nil
}

func printLayoutInfo(info falseshare.LayoutInfo, cfg falseshare.Config) {
	fmt.Printf("%s layout:\n", info.Name)
	fmt.Printf("  total size: %d bytes\n", info.SizeInBytes)
	fmt.Printf("  counter spacing: %d bytes\n", info.Stride)
	for i := 0; i < info.Slots && i < 2; i++ {
		fmt.Printf("  counter[%d] at offset: %d bytes\n", i, uintptr(i)*info.Stride)
	}
	if info.Aliased() {
		fmt.Printf("  -> up to %d counters share one cache line!\n", info.SlotsPerLine)
	} else {
		fmt.Println("  -> each counter in its own cache line")
	}
	fmt.Println()
}
