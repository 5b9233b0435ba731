// Command irqsim plays pin interrupt scenarios against the simulated
// controller.
//
//	irqsim run -f scenario.yaml [-v]
//	irqsim conditions
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "irqsim",
	Short:        "Simulate pin interrupt subscriptions",
	Long:         "Load a YAML scenario, subscribe its pins on a simulated interrupt controller and drive a scripted sequence of levels and events.",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(runCmd, conditionsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
