package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dnlab/dncheck"
	tt "github.com/dnlab/dncheck/internal/types"
)

var (
	disableCodes    string
	checkJSONOutput bool
	outPath         string
	noCache         bool
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check proof files and report diagnostics",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: please provide proof file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, err := newEngine()
		if err != nil {
			logger.Fatal("failed to initialize proof engine", zap.Error(err))
		}

		runCheck(ctx, logger, engine, args, checkJSONOutput, outPath)
	},
}

func init() {
	checkCmd.Flags().StringVar(&disableCodes, "disable", "", "Comma-separated list of rule codes to switch off")
	checkCmd.Flags().BoolVar(&checkJSONOutput, "json", false, "Output verdicts in JSON format")
	checkCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "Check every file even when a cached verdict exists")
}

// newEngine loads the configuration and applies the command-line
// overrides shared by check and watch.
func newEngine() (*dncheck.Engine, error) {
	config, err := dncheck.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	if noCache {
		config.Cache.Enabled = false
	}

	engine, err := dncheck.NewFromConfig(config)
	if err != nil {
		return nil, err
	}

	if disableCodes != "" {
		for _, code := range strings.Split(disableCodes, ",") {
			engine.DisableRule(strings.TrimSpace(code))
		}
	}
	return engine, nil
}

func runCheck(ctx context.Context, logger *zap.Logger, engine *dncheck.Engine, paths []string, asJSON bool, outPath string) {
	results, err := dncheck.ProcessFiles(ctx, logger, engine, paths)
	if err != nil {
		logger.Error("error processing files", zap.Error(err))
		os.Exit(1)
	}

	invalid := printResults(logger, results, asJSON, outPath)
	if invalid > 0 {
		os.Exit(1)
	}
}

// printResults renders every verdict and returns how many were invalid.
func printResults(logger *zap.Logger, results []dncheck.FileResult, asJSON bool, outPath string) int {
	invalid := 0

	if asJSON {
		verdictsByFile := make(map[string]tt.Verdict, len(results))
		for _, result := range results {
			verdictsByFile[result.Path] = result.Verdict
			if !result.Verdict.Valid {
				invalid++
			}
		}
		d, err := json.Marshal(verdictsByFile)
		if err != nil {
			logger.Error("error marshalling verdicts to JSON", zap.Error(err))
			return invalid
		}
		if outPath == "" {
			fmt.Println(string(d))
		} else if err := os.WriteFile(outPath, d, 0o644); err != nil {
			logger.Error("error writing JSON output file", zap.Error(err))
		}
		return invalid
	}

	for _, result := range results {
		if result.Verdict.Valid {
			fmt.Printf("%s: ok (%d records)\n", result.Path, result.Verdict.Records)
			continue
		}
		invalid++

		src, err := os.ReadFile(result.Path)
		if err != nil {
			logger.Error("error reading source file", zap.String("file", result.Path), zap.Error(err))
			continue
		}
		fmt.Println(dncheck.FormatVerdict(src, result.Verdict))
	}
	return invalid
}
