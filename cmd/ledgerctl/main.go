// Command ledgerctl is a conformance harness, not a production node: it
// applies a JSON-encoded transaction trace against a genesis state and
// logs a summary of the resulting ledger state (step count, UTxO size,
// fees, deposits) or the error list of the first failing step. It
// exists so the core can be exercised from the outside without pulling in
// networking, persistence, or consensus.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"ledgerengine/genesis"
	"ledgerengine/ledgerconfig"
	"ledgerengine/ledgerlog"
	"ledgerengine/trace"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "run":
		runCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: ledgerctl run -genesis <file> -trace <file> [-config <file>]")
}

func runCmd(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	genesisPath := fs.String("genesis", "", "path to a genesis spec JSON file")
	tracePath := fs.String("trace", "", "path to a transaction trace JSON file")
	configPath := fs.String("config", "", "path to a ledgerctl TOML config file")
	_ = fs.Parse(args)

	cfg := ledgerconfig.Default()
	if *configPath != "" {
		loaded, err := ledgerconfig.Load(*configPath)
		if err != nil {
			fail(err)
		}
		cfg = loaded
	}

	logger := ledgerlog.Setup(cfg.LogComponent, cfg.Network)

	if *genesisPath == "" {
		*genesisPath = cfg.GenesisFile
	}
	if *genesisPath == "" || *tracePath == "" {
		usage()
		os.Exit(2)
	}

	spec, err := genesis.Load(*genesisPath)
	if err != nil {
		fail(err)
	}

	deps := trace.DefaultDeps()

	epochState, err := spec.Build(deps.Hasher, cfg.ProtocolParams)
	if err != nil {
		fail(err)
	}

	steps, err := loadTrace(*tracePath)
	if err != nil {
		fail(err)
	}

	genesisDelegates := epochState.LedgerState.DelegationState.DState.GenesisDelegates

	outcomes, final := trace.Run(deps, epochState.LedgerState, genesisDelegates, steps)
	for _, outcome := range outcomes {
		if len(outcome.Errors) > 0 {
			errs := make([]error, len(outcome.Errors))
			for i, e := range outcome.Errors {
				errs[i] = e
			}
			ledgerlog.LogValidationErrors(logger, fmt.Sprintf("step-%d", outcome.Step), errs)
			os.Exit(1)
		}
		if outcome.InvariantFailure != nil {
			logger.Error("invariant violated", slog.Int("step", outcome.Step), slog.String("error", outcome.InvariantFailure.Error()))
			os.Exit(1)
		}
	}

	logger.Info("trace applied",
		slog.Int("steps", len(outcomes)),
		slog.Uint64("utxoSize", uint64(len(final.UTxOState.UTxO))),
		slog.Uint64("fees", final.UTxOState.Fees.Uint64()),
		slog.Uint64("deposited", final.UTxOState.Deposited.Uint64()),
	)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
