package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/meenmo/optlib/calendar"
	"github.com/meenmo/optlib/curve"
	"github.com/meenmo/optlib/forward"
	"github.com/meenmo/optlib/option"
	"github.com/meenmo/optlib/vanilla"
	"github.com/meenmo/optlib/vol"
)

type priceInput struct {
	TaskID         string  `json:"task_id,omitempty"`
	OptionType     string  `json:"option_type"`      // "call" or "put"
	Payoff         string  `json:"payoff,omitempty"` // "forward" (default) or "performance"
	EvaluationDate string  `json:"evaluation_date"`  // YYYY-MM-DD
	ResetDate      string  `json:"reset_date"`       // YYYY-MM-DD, rolled to a business day
	Underlying     float64 `json:"underlying"`
	Moneyness      float64 `json:"moneyness"`
	DividendYield  float64 `json:"dividend_yield"`
	RiskFreeRate   float64 `json:"risk_free_rate"`
	Volatility     float64 `json:"volatility"`
	Maturity       float64 `json:"maturity"` // years from evaluation date
}

type priceOutput struct {
	TaskID      string  `json:"task_id,omitempty"`
	Payoff      string  `json:"payoff,omitempty"`
	Value       float64 `json:"value"`
	Delta       float64 `json:"delta"`
	Gamma       float64 `json:"gamma"`
	Theta       float64 `json:"theta"`
	Vega        float64 `json:"vega"`
	Rho         float64 `json:"rho"`
	DividendRho float64 `json:"dividend_rho"`
	Error       string  `json:"error,omitempty"`
}

func main() {
	inputPath := flag.String("input", "", "JSON input path (reads stdin if omitted)")
	verbose := flag.Bool("v", false, "Log run diagnostics to stderr")
	help := flag.Bool("h", false, "Show help")
	flag.BoolVar(help, "help", false, "Show help")
	flag.Parse()

	if *help {
		fmt.Fprintln(os.Stderr, "Usage: fwdprice -input <path>")
		fmt.Fprintln(os.Stderr, "Price a forward-start (or performance) option around the analytic European engine.")
		return
	}

	logLevel := zerolog.Disabled
	if *verbose {
		logLevel = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(logLevel).With().Timestamp().Logger()

	path := strings.TrimSpace(*inputPath)
	if path == "" {
		if stat, err := os.Stdin.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
			fmt.Fprintln(os.Stderr, "Usage: fwdprice -input <path>")
			os.Exit(2)
		}
	}

	raw, err := readInput(path)
	if err != nil {
		exitError(fmt.Sprintf("read input: %v", err))
	}

	inputs, isArray, err := parseInputs(raw)
	if err != nil {
		exitError(fmt.Sprintf("parse JSON: %v", err))
	}

	hadError := false
	outputs := make([]priceOutput, 0, len(inputs))
	for _, in := range inputs {
		out, err := process(in, log)
		if err != nil {
			hadError = true
			outputs = append(outputs, priceOutput{TaskID: in.TaskID, Error: err.Error()})
			continue
		}
		outputs = append(outputs, *out)
	}

	if isArray {
		b, _ := json.Marshal(outputs)
		fmt.Println(string(b))
	} else {
		b, _ := json.Marshal(outputs[0])
		fmt.Println(string(b))
	}

	if hadError {
		os.Exit(1)
	}
}

func process(in priceInput, log zerolog.Logger) (*priceOutput, error) {
	evaluation, err := time.Parse("2006-01-02", in.EvaluationDate)
	if err != nil {
		return nil, fmt.Errorf("invalid evaluation_date: %v", err)
	}
	reset, err := time.Parse("2006-01-02", in.ResetDate)
	if err != nil {
		return nil, fmt.Errorf("invalid reset_date: %v", err)
	}
	reset = calendar.AdjustFollowing(calendar.TARGET, reset)

	var typ option.Type
	switch strings.ToLower(in.OptionType) {
	case "call":
		typ = option.Call
	case "put":
		typ = option.Put
	default:
		return nil, fmt.Errorf("unsupported option_type %q", in.OptionType)
	}

	delegate := vanilla.NewAnalyticEuropeanEngine()

	payoff := strings.ToLower(in.Payoff)
	build := forward.New[*vanilla.Arguments, *vanilla.Results]
	if payoff == "performance" {
		build = forward.NewPerformance[*vanilla.Arguments, *vanilla.Results]
	} else {
		payoff = "forward"
	}
	fe, err := build(delegate)
	if err != nil {
		return nil, err
	}

	args := fe.Arguments()
	args.Type = typ
	args.Underlying = in.Underlying
	args.DividendTS = curve.NewFlatForward(evaluation, in.DividendYield)
	args.RiskFreeTS = curve.NewFlatForward(evaluation, in.RiskFreeRate)
	args.VolTS = vol.NewBlackConstantVol(evaluation, in.Volatility)
	args.Exercise = option.European
	args.Maturity = in.Maturity
	args.Moneyness = in.Moneyness
	args.ResetDate = reset

	log.Debug().
		Str("task_id", in.TaskID).
		Str("payoff", payoff).
		Str("reset_date", reset.Format("2006-01-02")).
		Float64("moneyness", in.Moneyness).
		Msg("pricing")

	if err := fe.Calculate(); err != nil {
		return nil, err
	}

	res := fe.Results()
	return &priceOutput{
		TaskID:      in.TaskID,
		Payoff:      payoff,
		Value:       res.Value,
		Delta:       res.Delta,
		Gamma:       res.Gamma,
		Theta:       res.Theta,
		Vega:        res.Vega,
		Rho:         res.Rho,
		DividendRho: res.DividendRho,
	}, nil
}

func readInput(path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	return io.ReadAll(os.Stdin)
}

func parseInputs(raw []byte) ([]priceInput, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false, fmt.Errorf("empty input")
	}
	if trimmed[0] == '[' {
		var inputs []priceInput
		if err := json.Unmarshal(trimmed, &inputs); err != nil {
			return nil, true, err
		}
		if len(inputs) == 0 {
			return nil, true, fmt.Errorf("empty input array")
		}
		return inputs, true, nil
	}
	var input priceInput
	if err := json.Unmarshal(trimmed, &input); err != nil {
		return nil, false, err
	}
	return []priceInput{input}, false, nil
}

func exitError(msg string) {
	b, _ := json.Marshal(priceOutput{Error: msg})
	fmt.Println(string(b))
	os.Exit(1)
}
