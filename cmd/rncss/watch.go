package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yacobolo/rncss"
)

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Convert stylesheets and reconvert them on change",
	Long: `Convert all stylesheets once, then watch the sources and reconvert
files as they change. A change to a Sass partial reconverts everything.
Stop with Ctrl+C.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runWatch,
}

func init() {
	addConvertFlags(watchCmd)
	watchCmd.Flags().String("debounce", "300ms", "Delay before reconverting after a change")
}

func runWatch(_ *cobra.Command, args []string) error {
	config, err := buildConvertConfig(args)
	if err != nil {
		return err
	}
	debounce, err := watchDebounce()
	if err != nil {
		return err
	}

	log, useColors := newCLILogger()
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = rncss.Watch(ctx, config, debounce, log, func(result *rncss.GenerateResult) {
		printReport(result, useColors)
	})
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
