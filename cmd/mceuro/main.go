package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/meenmo/optlib/montecarlo"
	"github.com/meenmo/optlib/option"
)

func main() {
	optionType := flag.String("type", "call", "Option type: call or put")
	underlying := flag.Float64("underlying", 100, "Underlying level")
	strike := flag.Float64("strike", 100, "Strike")
	dividendYield := flag.Float64("q", 0.0, "Continuous dividend yield")
	riskFreeRate := flag.Float64("r", 0.05, "Continuously compounded risk-free rate")
	residualTime := flag.Float64("t", 1.0, "Residual time in years")
	volatility := flag.Float64("vol", 0.2, "Black volatility")
	antithetic := flag.Bool("antithetic", false, "Enable antithetic-variance sampling")
	seed := flag.Uint64("seed", 42, "Random seed")
	samples := flag.Int("samples", 100000, "Number of Monte Carlo samples")
	verbose := flag.Bool("v", false, "Log run diagnostics to stderr")
	flag.Parse()

	logLevel := zerolog.Disabled
	if *verbose {
		logLevel = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(logLevel).With().Timestamp().Logger()

	var typ option.Type
	switch strings.ToLower(*optionType) {
	case "call":
		typ = option.Call
	case "put":
		typ = option.Put
	default:
		fmt.Fprintf(os.Stderr, "mceuro: unsupported option type %q\n", *optionType)
		os.Exit(2)
	}

	pricer, err := montecarlo.NewMcEuropean(typ, *underlying, *strike, *dividendYield,
		*riskFreeRate, *residualTime, *volatility, *antithetic, *seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mceuro: %v\n", err)
		os.Exit(1)
	}

	log.Debug().
		Str("type", typ.String()).
		Float64("underlying", *underlying).
		Float64("strike", *strike).
		Int("samples", *samples).
		Bool("antithetic", *antithetic).
		Msg("sampling")

	value := pricer.Value(*samples)

	fmt.Printf("%-16s %12.6f\n", "Estimate", value)
	fmt.Printf("%-16s %12.6f\n", "Error estimate", pricer.ErrorEstimate())
	fmt.Printf("%-16s %12d\n", "Samples", *samples)
}
