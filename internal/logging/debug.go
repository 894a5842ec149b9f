package logging

import (
	"fmt"
	"os"
	"strings"
)

// DebugEnv enables debug output when set to any non-empty value.
const DebugEnv = "TASK_DEBUG"

// DebugEnabled returns true if debug mode is enabled via TASK_DEBUG
func DebugEnabled() bool {
	return os.Getenv(DebugEnv) != ""
}

// Debugf logs a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		Default().Print(strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
	}
}
