package predicate

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tsawler/gleaner/processor"
	"github.com/tsawler/gleaner/tree"
)

// Issue is one failed validation rule.
type Issue struct {
	Name     string             `json:"name"`
	Check    string             `json:"check"`
	Message  string             `json:"message"`
	Severity processor.Severity `json:"severity"`
}

// Result is the outcome of running every validation rule. Success means no
// error-severity rule failed; warnings never affect it.
type Result struct {
	Success  bool    `json:"success"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// Validator runs validation rules against an extracted-data tree.
type Validator struct {
	log *zap.Logger
}

// NewValidator creates a validator. A nil logger disables logging.
func NewValidator(log *zap.Logger) *Validator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Validator{log: log}
}

// Validate evaluates every rule and collects failures by severity. A rule
// whose check does not parse, or whose evaluation hits missing or malformed
// data, fails with the underlying reason. All rules are evaluated even after
// failures.
func (v *Validator) Validate(root *tree.Value, rules []processor.Validation) Result {
	result := Result{Success: true}

	for _, rule := range rules {
		message, ok := v.check(root, rule.Check)
		if ok {
			continue
		}

		issue := Issue{
			Name:     rule.Name,
			Check:    rule.Check,
			Message:  message,
			Severity: rule.Severity,
		}
		if rule.Severity == processor.SeverityWarning {
			result.Warnings = append(result.Warnings, issue)
			v.log.Info("validation warning",
				zap.String("rule", rule.Name),
				zap.String("message", message))
			continue
		}
		issue.Severity = processor.SeverityError
		result.Errors = append(result.Errors, issue)
		result.Success = false
		v.log.Warn("validation failed",
			zap.String("rule", rule.Name),
			zap.String("message", message))
	}

	return result
}

// check evaluates one check expression; on failure it returns the reason.
func (v *Validator) check(root *tree.Value, check string) (string, bool) {
	n, err := parse(check)
	if err != nil {
		return fmt.Sprintf("invalid check: %v", err), false
	}

	value, err := n.eval(root)
	if err != nil {
		return err.Error(), false
	}
	if !truthy(value) {
		return "check evaluated to false", false
	}
	return "", true
}
