package templates

import (
	"fmt"
	"strings"
)

// typeParams returns "T0, T1, ..." for count sources.
func typeParams(count int) string {
	return indexed("T%[1]d", count, ", ")
}

// indexed formats format once per index and joins the results. The index is
// available to format as %[1]d.
func indexed(format string, count int, sep string) string {
	var sb strings.Builder
	for i := 0; i < count; i++ {
		if i > 0 {
			sb.WriteString(sep)
		}
		fmt.Fprintf(&sb, format, i)
	}
	return sb.String()
}
