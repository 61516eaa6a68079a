package manifest

import (
	"fmt"
	"strconv"
	"strings"

	"reparto/internal/pkg/errs"
)

// NumberPrefix starts every confirmed delivery-sheet number.
const NumberPrefix = "HR-SDA-"

// FormatNumber renders a sequence value as a human-readable sheet number,
// e.g. FormatNumber(1) == "HR-SDA-00001". Sequence values are strictly
// increasing and allocated by the manifest sequence, never derived from
// existing numbers.
func FormatNumber(seq int) string {
	return fmt.Sprintf("%s%05d", NumberPrefix, seq)
}

// NumberSuffix extracts the numeric suffix of a sheet number for numeric
// ordering. Comparison must be numeric, not lexicographic: "HR-SDA-100000"
// outranks "HR-SDA-99999" even though it sorts lower as a string.
func NumberSuffix(number string) (int, error) {
	raw, ok := strings.CutPrefix(number, NumberPrefix)
	if !ok {
		return 0, errs.NewValueIsInvalidError("manifest number")
	}

	suffix, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("manifest number", err)
	}
	return suffix, nil
}
