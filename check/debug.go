package check

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Debug switches. The binaries wire them to command-line flags.
var (
	DebugAll     bool
	DebugGeneral bool
	DebugChecker bool
	DebugSubst   bool

	DebugWriter io.Writer = os.Stderr

	debugMux sync.Mutex
)

func GeneralPrintf(format string, args ...interface{}) {
	if DebugAll || DebugGeneral {
		debugPrintf(format, args...)
	}
}

func CheckerPrintf(format string, args ...interface{}) {
	if DebugAll || DebugChecker {
		debugPrintf(format, args...)
	}
}

func SubstPrintf(format string, args ...interface{}) {
	if DebugAll || DebugSubst {
		debugPrintf(format, args...)
	}
}

func debugPrintf(format string, args ...interface{}) {
	debugMux.Lock()
	defer debugMux.Unlock()
	_, err := fmt.Fprintf(DebugWriter, format, args...)
	if err != nil {
		panic(err)
	}
}
