// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ezrec/rvcm/harness"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "run the core bring-up scenario.",
	Long: `Halt the core, load the bring-up program at block memory offset 0,
run it and check the registers and memory it writes. With --step the core
is single stepped instead and each instruction is checked as it retires.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBoard(cmd, func(ctx context.Context, bd *board) (err error) {
			sc := harness.Verify()

			var rep harness.Report
			if getFlag(cmd, "step") {
				rep, err = bd.Harness.StepScenario(ctx, sc)
			} else {
				rep, err = bd.Harness.RunScenario(ctx, sc)
			}
			if err != nil {
				return
			}

			_, err = rep.WriteTo(cmd.OutOrStdout())
			if err != nil {
				return
			}

			if !rep.OK() {
				err = ErrChecksFailed(rep.Failed())
				return
			}

			log.Debugf("%s: %d checks passed", sc.Name, rep.Passed())
			return
		})
	},
}

func init() {
	verifyCmd.Flags().Bool("step", false, "single step the program")
	rootCmd.AddCommand(verifyCmd)
}
