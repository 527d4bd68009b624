package logging

import (
	"fmt"
	"log"
	"os"
)

var logger = log.New(os.Stderr, "", log.LstdFlags)

func Logf(format string, args ...interface{}) {
	logger.Output(2, fmt.Sprintf(format, args...))
}

// Prefixed returns a Logf that starts every message with prefix.
func Prefixed(prefix string) func(format string, args ...interface{}) {
	return func(format string, args ...interface{}) {
		logger.Output(2, prefix+": "+fmt.Sprintf(format, args...))
	}
}
