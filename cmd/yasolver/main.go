// Command yasolver is the CLI front-end for the solver: parse a DIMACS CNF
// instance, search for a satisfying assignment, print a certificate and
// exit with the status code spec.md §6 assigns it.
//
// Grounded on yass's root main.go: the same flag-var-then-parseConfig
// shape, the same profiling flags, and the same printf-based report
// written straight to os.Stdout. Extended with the full option table
// (internal/config), gzip-transparent loading and DRAT proof emission.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/yasat-dev/yasat/internal/config"
	"github.com/yasat-dev/yasat/internal/proof"
	"github.com/yasat-dev/yasat/parsers"
	"github.com/yasat-dev/yasat/sat"
)

var (
	flagCPUProfile = flag.Bool("cpuprof", false, "save pprof CPU profile to cpuprof")
	flagMemProfile = flag.Bool("memprof", false, "save pprof memory profile to memprof")
	flagGzip       = flag.Bool("gzip", false, "treat the instance file as gzip-compressed")
	flagProofFile  = flag.String("proof", "", "write a DRAT proof to this file when certify is enabled")
)

type cliConfig struct {
	instanceFile string
	gzip         bool
	cpuProfile   bool
	memProfile   bool
	proofFile    string
	options      config.Options
}

func parseConfig() (*cliConfig, error) {
	opt := config.Default()
	opt.Register(flag.CommandLine)
	flag.Parse()

	if flag.NArg() == 0 || flag.Arg(0) == "" {
		return nil, fmt.Errorf("missing instance file")
	}
	return &cliConfig{
		instanceFile: flag.Arg(0),
		gzip:         *flagGzip,
		cpuProfile:   *flagCPUProfile,
		memProfile:   *flagMemProfile,
		proofFile:    *flagProofFile,
		options:      opt,
	}, nil
}

func run(cfg *cliConfig) (sat.Status, error) {
	s := sat.NewSolver(cfg.options)

	if err := parsers.LoadDIMACS(cfg.instanceFile, cfg.gzip, s); err != nil {
		return sat.StatusAborted, fmt.Errorf("could not parse instance: %s", err)
	}

	var proofWriter *proof.Writer
	if cfg.options.Certify {
		target := cfg.proofFile
		if target == "" {
			target = cfg.instanceFile + ".drat"
		}
		f, err := os.Create(target)
		if err != nil {
			return sat.StatusAborted, fmt.Errorf("could not create proof file: %s", err)
		}
		defer f.Close()
		proofWriter = proof.NewWriter(f)
		s.SetProofSink(proofWriter)
		defer proofWriter.Flush()
	}

	fmt.Printf("c variables:  %d\n", s.NumVariables())
	fmt.Printf("c clauses:    %d\n", s.NumConstraints())

	start := time.Now()
	status := s.Solve()
	elapsed := time.Since(start)

	stats := s.Stats()
	fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
	fmt.Printf("c conflicts:  %d (%.2f /sec)\n", stats.Conflicts, float64(stats.Conflicts)/elapsed.Seconds())
	fmt.Printf("c restarts:   %d\n", stats.Restarts)
	fmt.Printf("c eliminated: %d\n", stats.Eliminated)
	fmt.Printf("s %s\n", status)

	if status == sat.StatusSAT {
		model := s.Models[len(s.Models)-1]
		for v, val := range model {
			if val {
				fmt.Printf("v %d\n", v+1)
			} else {
				fmt.Printf("v -%d\n", v+1)
			}
		}
		fmt.Println("v 0")
	}

	return status, nil
}

func main() {
	cfg, err := parseConfig()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.cpuProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	status, err := run(cfg)
	if err != nil {
		log.Print(err)
		os.Exit(1)
	}

	if cfg.memProfile {
		f, err := os.Create("memprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}

	switch status {
	case sat.StatusSAT:
		os.Exit(0)
	case sat.StatusUNSAT:
		os.Exit(20)
	default:
		os.Exit(1)
	}
}
