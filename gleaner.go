// Package gleaner executes declarative extraction processors against
// positioned-text document layouts.
//
// Basic usage:
//
//	result, err := gleaner.Execute(layout, proc)
//	if err != nil {
//	    // handle error
//	}
//	if !result.Validation.Success {
//	    log.Println("extraction did not validate:", result.Validation.Errors)
//	}
//
// With a shared executor and custom tolerances:
//
//	exec := gleaner.NewExecutorWithConfig(logger, gleaner.Config{
//	    Match:   match.DefaultConfig(),
//	    Extract: extract.DefaultConfig(),
//	})
//	result, err := exec.Execute(layout, proc)
//
// Execution is pure: it never mutates the layout or the processor, and the
// same inputs always produce the same result. The lower-level match, region,
// extract, formula, and predicate packages are also available directly.
package gleaner

import (
	"errors"

	"go.uber.org/zap"

	"github.com/tsawler/gleaner/extract"
	"github.com/tsawler/gleaner/formula"
	"github.com/tsawler/gleaner/match"
	"github.com/tsawler/gleaner/model"
	"github.com/tsawler/gleaner/predicate"
	"github.com/tsawler/gleaner/processor"
	"github.com/tsawler/gleaner/region"
	"github.com/tsawler/gleaner/tree"
)

// Config bundles the tolerances of the pipeline stages.
type Config struct {
	Match   match.Config
	Extract extract.Config
}

// DefaultConfig returns the stage defaults.
func DefaultConfig() Config {
	return Config{
		Match:   match.DefaultConfig(),
		Extract: extract.DefaultConfig(),
	}
}

// Result is the outcome of executing one processor against one layout.
type Result struct {
	// Data is the extracted-data tree, including calculated fields.
	Data *tree.Value `json:"data"`

	// Validation reports the processor's rule checks over Data.
	Validation predicate.Result `json:"validation"`
}

// Executor runs processors against document layouts. It is safe for
// concurrent use; each Execute call works on its own state.
type Executor struct {
	log      *zap.Logger
	anchors  *match.Resolver
	regions  *region.Resolver
	fields   *extract.Extractor
	formulas *formula.Engine
	rules    *predicate.Validator
}

// NewExecutor creates an executor with default tolerances. A nil logger
// disables logging.
func NewExecutor(log *zap.Logger) *Executor {
	return NewExecutorWithConfig(log, DefaultConfig())
}

// NewExecutorWithConfig creates an executor with custom stage tolerances.
func NewExecutorWithConfig(log *zap.Logger, config Config) *Executor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Executor{
		log:      log,
		anchors:  match.NewResolverWithConfig(log, config.Match),
		regions:  region.NewResolver(log),
		fields:   extract.NewExtractorWithConfig(log, config.Extract),
		formulas: formula.NewEngine(log),
		rules:    predicate.NewValidator(log),
	}
}

// Execute runs a processor against a layout: anchors are resolved, regions
// bounded, extraction operations applied in order, calculations computed,
// and validations checked. The only fatal condition is a missing required
// anchor (a *match.RequiredAnchorError); everything else degrades to logged
// warnings and validation failures so callers always learn how far the
// document got.
func (e *Executor) Execute(layout *model.DocumentLayout, proc *processor.Processor) (*Result, error) {
	if layout == nil {
		return nil, errors.New("execute: nil layout")
	}
	if proc == nil {
		return nil, errors.New("execute: nil processor")
	}

	e.log.Info("executing processor",
		zap.String("processor", proc.Name),
		zap.String("document", layout.Filename),
		zap.Int("blocks", len(layout.Blocks)))

	anchors, err := e.anchors.Resolve(layout, proc.Anchors)
	if err != nil {
		return nil, err
	}

	regions := e.regions.Resolve(layout, anchors, proc.Regions)

	root := tree.NewMap()
	in := &extract.Input{
		Layout:         layout,
		Anchors:        anchors,
		Regions:        regions,
		ColumnMarkers:  proc.ColumnMarkers(),
		FieldColumnMap: proc.FieldColumnMap,
	}
	for _, op := range proc.ExtractionOps {
		value, err := e.fields.Extract(in, op)
		if err != nil {
			e.log.Warn("extraction op skipped",
				zap.String("field", op.FieldPath),
				zap.Error(err))
			continue
		}
		if value == nil {
			continue
		}
		if err := tree.Write(root, op.FieldPath, value); err != nil {
			e.log.Warn("extracted value not written",
				zap.String("field", op.FieldPath),
				zap.Error(err))
		}
	}

	e.formulas.Run(root, proc.Calculations)

	validation := e.rules.Validate(root, proc.Validations)

	e.log.Info("execution finished",
		zap.String("processor", proc.Name),
		zap.Bool("valid", validation.Success),
		zap.Int("validation_errors", len(validation.Errors)),
		zap.Int("validation_warnings", len(validation.Warnings)))

	return &Result{Data: root, Validation: validation}, nil
}

// Execute runs a processor against a layout with a default executor.
func Execute(layout *model.DocumentLayout, proc *processor.Processor) (*Result, error) {
	return NewExecutor(nil).Execute(layout, proc)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	result := gleaner.Must(gleaner.Execute(layout, proc))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
