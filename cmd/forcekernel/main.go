// Copyright 2024 The forcekernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command forcekernel runs the force-evaluation SPMD service loop
// against a scenario file, reading flag/parameter-vector requests from
// stdin and writing the resulting weighted sum of squared residuals to
// stdout -- one line per compute request (a sync request prints
// nothing), the simplest possible coprocess wire
// format for an external optimizer to drive. mpi.Start/Stop bracket
// the run, only rank 0 talks to the outside world, and a deferred
// recover prints a clean error instead of a raw panic trace.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
	"github.com/potfit-go/forcekernel/bounds"
	"github.com/potfit-go/forcekernel/kernel"
	"github.com/potfit-go/forcekernel/service"
)

func main() {

	verbose := true

	defer func() {
		if err := recover(); err != nil {
			if mpi.Rank() == 0 {
				chk.Verbose = true
				io.PfRed("ERROR: %v\n", err)
			}
		}
		mpi.Stop(false)
	}()
	mpi.Start(false)

	if mpi.Rank() == 0 {
		io.PfWhite("\nforcekernel -- force-evaluation service for potential fitting\n\n")
		io.Pf("Copyright 2024 The forcekernel Authors. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n\n")
	}

	flag.Parse()
	if len(flag.Args()) < 1 {
		chk.Panic("Please, provide a scenario filename. Ex.: scenario.json")
	}
	fnamepath := flag.Arg(0)

	sc, err := LoadScenario(fnamepath)
	if err != nil {
		chk.Panic("%v", err)
	}
	ctx, err := sc.Build()
	if err != nil {
		chk.Panic("%v", err)
	}

	var bnd *bounds.Range
	if len(flag.Args()) > 1 && flag.Arg(1) == "bounds" {
		bnd = &bounds.Range{} // empty box: caller-supplied bounds are a future CLI flag, not yet wired
	}

	loop := &service.Loop{Ctx: ctx, NParams: sc.NParams}
	if bnd != nil {
		loop.Bounds = bnd
	}

	if mpi.Rank() == 0 && verbose {
		io.Pf("ready: %d atoms, %d configurations, %d parameters\n", len(ctx.Atoms), len(ctx.Configs), sc.NParams)
	}

	scanner := bufio.NewScanner(os.Stdin)
	writer := bufio.NewWriter(os.Stdout)
	defer writer.Flush()

	err = loop.Run(
		func() (int, []float64) {
			if mpi.Rank() != 0 {
				return service.FlagShutdown, nil
			}
			if !scanner.Scan() {
				return service.FlagShutdown, nil
			}
			return parseRequest(scanner.Text())
		},
		func(res *kernel.Residuals, sum float64) {
			if mpi.Rank() == 0 {
				if verbose {
					if kappa := ctx.Table.AuxParams.Find("kappa"); kappa != nil {
						io.Pforan("fcalls=%d kappa=%g\n", loop.FCalls, kappa.V)
					}
				}
				fmt.Fprintf(writer, "%.15g\n", sum)
				writer.Flush()
			}
		},
	)
	if err != nil {
		chk.Panic("%v", err)
	}
}

// parseRequest decodes one stdin line of the form "flag p0 p1 p2 ...".
func parseRequest(line string) (int, []float64) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return service.FlagShutdown, nil
	}
	flagVal, err := strconv.Atoi(fields[0])
	if err != nil {
		chk.Panic("forcekernel: malformed request line %q: %v", line, err)
	}
	params := make([]float64, len(fields)-1)
	for i, f := range fields[1:] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			chk.Panic("forcekernel: malformed parameter %q: %v", f, err)
		}
		params[i] = v
	}
	return flagVal, params
}
