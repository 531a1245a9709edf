package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/tsawler/gleaner"
	"github.com/tsawler/gleaner/model"
	"github.com/tsawler/gleaner/processor"
	"github.com/tsawler/gleaner/provider"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute a processor against a document layout",
	Long: `Execute a processor against a document layout and print the
extracted data and validation report as JSON.

The layout may be a layout JSON file or hOCR markup (detected by a
.hocr/.html extension). With --strict, a failed validation sets a
non-zero exit code.`,
	RunE: runExecute,
}

func init() {
	runCmd.Flags().String("layout", "", "layout JSON or hOCR file (required)")
	runCmd.Flags().String("processor", "", "processor JSON file (required)")
	runCmd.Flags().String("output", "", "write the result to a file instead of stdout")
	runCmd.Flags().Bool("strict", false, "exit non-zero when validation fails")
	runCmd.MarkFlagRequired("layout")
	runCmd.MarkFlagRequired("processor")
	viper.BindPFlag("strict", runCmd.Flags().Lookup("strict"))
}

func runExecute(cmd *cobra.Command, args []string) error {
	layoutPath, _ := cmd.Flags().GetString("layout")
	procPath, _ := cmd.Flags().GetString("processor")
	outputPath, _ := cmd.Flags().GetString("output")

	layout, err := loadLayout(layoutPath)
	if err != nil {
		return err
	}

	proc, err := loadProcessor(procPath)
	if err != nil {
		return err
	}

	result, err := gleaner.NewExecutor(zap.L()).Execute(layout, proc)
	if err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	out = append(out, '\n')

	if outputPath != "" {
		if err := os.WriteFile(outputPath, out, 0o644); err != nil {
			return fmt.Errorf("writing result: %w", err)
		}
	} else {
		cmd.OutOrStdout().Write(out)
	}

	if viper.GetBool("strict") && !result.Validation.Success {
		return fmt.Errorf("validation failed with %d error(s)", len(result.Validation.Errors))
	}
	return nil
}

func loadLayout(path string) (*model.DocumentLayout, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hocr", ".html", ".xml":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening layout file: %w", err)
		}
		defer f.Close()
		return provider.ParseHOCR(f, filepath.Base(path))
	default:
		return provider.LoadLayoutFile(path)
	}
}

func loadProcessor(path string) (*processor.Processor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading processor file: %w", err)
	}
	proc, err := processor.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("processor %s: %w", path, err)
	}
	return proc, nil
}
