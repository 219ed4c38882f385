package log

import (
	"context"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
)

const contextKeyRequestID = "request_id"

// WithRequestID adds the request ID to the context for logging.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID, requestID)
}

func getRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(contextKeyRequestID).(string); ok {
		return id
	}
	return ""
}

func format(requestID string, format string, a ...interface{}) string {
	msg := fmt.Sprintf(format, a...)
	if requestID != "" {
		return fmt.Sprintf("[req_id=%s] %s", requestID, msg)
	}
	return msg
}

// Info logs an informational message.
func Info(formatStr string, a ...interface{}) {
	tag := color.New(color.FgWhite, color.BgGreen).SprintFunc()
	fmt.Printf("%s ", tag("[INFO] "))
	fmt.Printf(formatStr, a...)
	fmt.Println()
}

// InfoWithContext logs an informational message, including the request ID when present.
func InfoWithContext(ctx context.Context, formatStr string, a ...interface{}) {
	tag := color.New(color.FgWhite, color.BgGreen).SprintFunc()
	fmt.Printf("%s ", tag("[INFO] "))
	fmt.Println(format(getRequestID(ctx), formatStr, a...))
}

// Warn logs a warning.
func Warn(formatStr string, a ...interface{}) {
	tag := color.New(color.FgWhite, color.BgYellow).SprintFunc()
	fmt.Printf("%s ", tag("[WARN] "))
	fmt.Printf(formatStr, a...)
	fmt.Println()
}

// WarnWithContext logs a warning, including the request ID when present.
func WarnWithContext(ctx context.Context, formatStr string, a ...interface{}) {
	tag := color.New(color.FgWhite, color.BgYellow).SprintFunc()
	fmt.Printf("%s ", tag("[WARN] "))
	fmt.Println(format(getRequestID(ctx), formatStr, a...))
}

// Error logs an error.
func Error(formatStr string, a ...interface{}) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Printf("%s ", red("[Error]"))
	fmt.Printf(formatStr, a...)
	fmt.Println()
}

// ErrorWithContext logs an error, including the request ID when present.
func ErrorWithContext(ctx context.Context, formatStr string, a ...interface{}) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Printf("%s ", red("[Error]"))
	fmt.Println(format(getRequestID(ctx), formatStr, a...))
}

// Dump returns a deep-printed representation of the given values for debugging.
func Dump(a ...interface{}) string {
	return spew.Sdump(a...)
}
