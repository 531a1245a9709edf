package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint <layout>...",
	Short: "Print the structural fingerprint of document layouts",
	Long: `Print the structural fingerprint of document layouts. Documents
with the same visual structure share a fingerprint regardless of their
text, which is how layouts are routed to processors.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFingerprint,
}

func runFingerprint(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		layout, err := loadLayout(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", layout.Fingerprint, path)
	}
	return nil
}
