package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/iwvelando/amortize/internal/config"
	"github.com/iwvelando/amortize/internal/logging"
	"github.com/iwvelando/amortize/pkg/constants"
	"github.com/iwvelando/amortize/pkg/output"
	"github.com/iwvelando/amortize/pkg/validation"
	"go.uber.org/zap"
)

type options struct {
	configLocation  string
	outputFormat    string
	outputFile      string
	logLevel        string
	adHocLoan       bool
	principal       float64
	annualRate      float64
	termYears       float64
	paymentsPerYear float64
	method          string
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("amortize", flag.ContinueOnError)
	fs.StringVar(&opts.configLocation, "config", constants.DefaultConfigFile, "path to configuration file")
	fs.StringVar(&opts.outputFormat, "output-format", "", "type of output override: pretty, csv, json, xlsx")
	fs.StringVar(&opts.outputFile, "output", "", "file to write output to (required for xlsx)")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	fs.Float64Var(&opts.principal, "principal", 0, "compute a single loan with this principal instead of the configured loans")
	fs.Float64Var(&opts.annualRate, "rate", 0, "annual interest rate in percent for -principal")
	fs.Float64Var(&opts.termYears, "years", 0, "term in years for -principal")
	fs.Float64Var(&opts.paymentsPerYear, "payments-per-year", 12, "payments per year for -principal")
	fs.StringVar(&opts.method, "method", "", "amortization method for -principal: french or german")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "principal" {
			opts.adHocLoan = true
		}
	})
	return opts, nil
}

// loadConfiguration reads the config file. A single loan given on the command
// line replaces the configured loans, and then a missing file is not an error.
func loadConfiguration(opts options) (*config.Configuration, error) {
	conf, err := config.LoadConfiguration(opts.configLocation)
	if err != nil {
		if !opts.adHocLoan {
			return nil, err
		}
		if _, statErr := os.Stat(opts.configLocation); !errors.Is(statErr, os.ErrNotExist) {
			return nil, err
		}
		conf = &config.Configuration{}
	}

	if opts.adHocLoan {
		conf.Loans = []config.Loan{{
			Name:            "command line",
			Principal:       opts.principal,
			AnnualRate:      opts.annualRate,
			TermYears:       opts.termYears,
			PaymentsPerYear: opts.paymentsPerYear,
			Method:          opts.method,
		}}
	}
	return conf, nil
}

// writeResults renders the computed schedules in the requested format.
func writeResults(w io.Writer, format, outputFile string, results []output.NamedSchedule) error {
	var buf bytes.Buffer
	switch format {
	case constants.OutputFormatPretty:
		if err := output.PrettyFormat(&buf, results); err != nil {
			return err
		}
	case constants.OutputFormatCSV:
		if err := output.CsvFormat(&buf, results); err != nil {
			return err
		}
	case constants.OutputFormatJSON:
		if err := output.JSONFormat(&buf, results); err != nil {
			return err
		}
	case constants.OutputFormatXLSX:
		if outputFile == "" {
			return fmt.Errorf("xlsx output requires an output file")
		}
		if len(results) != 1 {
			return fmt.Errorf("xlsx output holds a single schedule, got %d loans", len(results))
		}
		exporter, err := output.NewExporter(format)
		if err != nil {
			return err
		}
		data, err := output.ExportSchedule(exporter, results[0].Schedule)
		if err != nil {
			return err
		}
		return os.WriteFile(outputFile, data, 0644)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}

	if outputFile != "" {
		return os.WriteFile(outputFile, buf.Bytes(), 0644)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	conf, err := loadConfiguration(opts)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", opts.configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(conf.Logging, opts.logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
	outputFormat := conf.Output.Format
	if opts.outputFormat != "" {
		outputFormat = opts.outputFormat
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	outputFile := conf.Output.File
	if opts.outputFile != "" {
		outputFile = opts.outputFile
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	if err := conf.ProcessLoans(logger); err != nil {
		logger.Fatal("failed to process loan amortization schedules",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	if err := writeResults(os.Stdout, outputFormat, outputFile, conf.Schedules()); err != nil {
		logger.Fatal("failed to write output",
			zap.String("op", "main"),
			zap.String("format", outputFormat),
			zap.Error(err),
		)
	}
}
