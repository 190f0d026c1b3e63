package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dnlab/dncheck"
)

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Re-check proof files whenever they change",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: please provide proof file or directory paths")
			os.Exit(1)
		}

		engine, err := newEngine()
		if err != nil {
			logger.Fatal("failed to initialize proof engine", zap.Error(err))
		}

		watcher, err := dncheck.NewWatcher(engine, logger, reportResult)
		if err != nil {
			logger.Fatal("failed to initialize watcher", zap.Error(err))
		}

		if err := watcher.Watch(args...); err != nil {
			logger.Fatal("failed to watch paths", zap.Error(err))
		}
		logger.Info("watching for changes", zap.Strings("paths", args))

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh

		if err := watcher.Close(); err != nil {
			logger.Error("error closing watcher", zap.Error(err))
		}
	},
}

func reportResult(result dncheck.FileResult) {
	if result.Verdict.Valid {
		fmt.Printf("%s: ok (%d records)\n", result.Path, result.Verdict.Records)
		return
	}

	src, err := os.ReadFile(result.Path)
	if err != nil {
		logger.Error("error reading source file", zap.String("file", result.Path), zap.Error(err))
		return
	}
	fmt.Println(dncheck.FormatVerdict(src, result.Verdict))
}
