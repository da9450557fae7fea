package interpreter

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mattn/go-isatty"
)

const logPrefixColor = "\x1b[36m"
const colorReset = "\x1b[0m"

// newLogger logs to stderr, coloring the prefix on terminals.
func newLogger(prefix string) *log.Logger {
	if _, ok := os.LookupEnv("NO_COLOR"); !ok && prefix != "" &&
		(isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) {
		prefix = logPrefixColor + prefix + colorReset
	}
	return log.New(os.Stderr, prefix, log.LstdFlags)
}

// invoke runs a dispatcher, logging the call when profiling or debugging.
func (in *Interpreter) invoke(module *Atom, name string, args []Term, fn NativeFunction) (Term, error) {
	if !in.options.Profiling && !in.options.Debug {
		return fn(args...)
	}

	mfa := fmt.Sprintf("%s.%s/%d", Inspect(module), name, len(args))
	if in.options.Debug {
		in.logger.Printf("call %s(%s)", mfa, inspectAll(args, ", "))
	}

	start := time.Now()
	result, err := fn(args...)
	if err != nil {
		if in.options.Debug {
			in.logger.Printf("%s raised %v", mfa, err)
		}
		return nil, err
	}

	if in.options.Profiling {
		in.logger.Printf("function %s executed in %s", mfa, time.Since(start))
	}
	if in.options.Debug {
		in.logger.Printf("%s returned %s", mfa, Inspect(result))
	}
	return result, nil
}
