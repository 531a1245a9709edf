package extract

import (
	"strconv"
	"strings"

	"github.com/tsawler/gleaner/processor"
)

// Apply coerces an extracted string with the named transform. Coercion
// failures degrade to the type's zero value (0 for to_int, 0.0 for to_float)
// rather than aborting extraction. An empty or unknown transform returns the
// value unchanged.
func Apply(value string, t processor.Transform) any {
	switch t {
	case processor.TransformToInt:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0
		}
		return n

	case processor.TransformToFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0.0
		}
		return f

	case processor.TransformStrip:
		return strings.TrimSpace(value)

	case processor.TransformUpper:
		return strings.ToUpper(value)

	case processor.TransformLower:
		return strings.ToLower(value)

	case processor.TransformLastNameOnly:
		fields := strings.Fields(value)
		if len(fields) == 0 {
			return value
		}
		return fields[len(fields)-1]
	}

	return value
}
