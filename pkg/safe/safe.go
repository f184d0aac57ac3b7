package safe

import (
	"log/slog"
	"runtime/debug"
	"strings"
)

func Run(fn func()) {
	RunWithComponent(fn, "safe.Run")
}

// RunWithComponent executes fn and logs any panic with a trimmed stack trace
func RunWithComponent(fn func(), component string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic recovered",
				slog.Any("recover", r),
				slog.String("component", component),
				slog.String("stack", stackTrace(3)),
			)
		}
	}()

	fn()
}

func stackTrace(skipFrames int) string {
	lines := strings.Split(string(debug.Stack()), "\n")

	formatted := []string{"Stack trace:"}
	if len(lines) > 0 {
		formatted = append(formatted, "  "+lines[0])
	}
	for i := skipFrames; i < len(lines) && i < skipFrames+20; i++ {
		line := strings.TrimSpace(lines[i])
		if line != "" {
			formatted = append(formatted, "  "+line)
		}
	}
	if len(lines) > skipFrames+20 {
		formatted = append(formatted, "  ... (truncated)")
	}

	return strings.Join(formatted, "\n")
}
