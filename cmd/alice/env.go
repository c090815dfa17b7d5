package main

import (
	"fmt"

	"github.com/sandevgo/alicebot/internal/config"
	"github.com/sandevgo/alicebot/pkg/env"
	"github.com/spf13/cobra"
)

// envCmd prints the effective non-secret configuration as .env lines, useful
// for checking which defaults a deployment is actually running with.
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}

		// Secret-bearing configs (API keys, page tokens) are deliberately
		// not printed here.
		out, err := env.MarshalEnv(config.NewAppConfig(ctx))
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(envCmd)
}
