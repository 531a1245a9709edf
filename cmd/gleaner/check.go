package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <processor.json>...",
	Short: "Validate processor files without executing them",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	var failed int
	for _, path := range args {
		proc, err := loadProcessor(path)
		if err != nil {
			failed++
			fmt.Fprintf(cmd.OutOrStdout(), "%s: INVALID: %v\n", path, err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d anchors, %d regions, %d ops, %d validations)\n",
			path, len(proc.Anchors), len(proc.Regions), len(proc.ExtractionOps), len(proc.Validations))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d processor file(s) invalid", failed, len(args))
	}
	return nil
}
