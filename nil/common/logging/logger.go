package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/journald"
	"golang.org/x/term"
)

type Logger = zerolog.Logger

var GlobalLogger Logger

var (
	componentsFilter = make(map[string]bool)
	all              = true
	lock             = sync.RWMutex{}
)

// ComponentFilterWriter drops records of components disabled via ApplyComponentsFilter.
type ComponentFilterWriter struct {
	Writer io.Writer
	Name   string
}

func (w ComponentFilterWriter) Write(p []byte) (n int, err error) {
	if !isComponentEnabled(w.Name) {
		return len(p), nil
	}
	return w.Writer.Write(p)
}

func isComponentEnabled(name string) bool {
	lock.RLock()
	defer lock.RUnlock()

	enabled, found := componentsFilter[name]
	if !found {
		return all
	}
	return enabled
}

func ApplyComponentsFilterEnv() {
	if logFilter := os.Getenv("NIL_LOG_FILTER"); logFilter != "" {
		ApplyComponentsFilter(logFilter)
	}
}

// ApplyComponentsFilter parses a colon-separated list of components.
// A leading '-' disables the component, "all" applies to every component.
func ApplyComponentsFilter(filter string) {
	comps := strings.Split(filter, ":")

	lock.Lock()
	defer lock.Unlock()

	for _, comp := range comps {
		if comp == "" {
			continue
		}

		enabled := true
		if comp[0] == '-' {
			enabled = false
			comp = comp[1:]
		}

		if comp == "all" {
			all = enabled
			for k := range componentsFilter {
				componentsFilter[k] = enabled
			}
		} else {
			componentsFilter[comp] = enabled
		}
	}
}

func SetupGlobalLogger(level string) {
	if err := TrySetupGlobalLevel(level); err != nil {
		panic(err)
	}
	GlobalLogger = NewLogger("global")
}

func TrySetupGlobalLevel(level string) error {
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(l)
	return nil
}

// isSystemd returns true if the process is running under systemd
func isSystemd() bool {
	return os.Getenv("INVOCATION_ID") != ""
}

func NewLogger(component string) Logger {
	var logger zerolog.Logger
	if isSystemd() {
		logger = zerolog.New(ComponentFilterWriter{
			Writer: journald.NewJournalDWriter(),
			Name:   component,
		})
	} else {
		logger = newConsoleLogger(component)
	}

	return logger.With().
		Str(FieldComponent, component).
		Caller().
		Timestamp().
		Logger()
}

func NewLoggerWithWriter(component string, writer io.Writer) Logger {
	logger := zerolog.New(ComponentFilterWriter{
		Writer: writer,
		Name:   component,
	})

	return logger.With().
		Str(FieldComponent, component).
		Caller().
		Timestamp().
		Logger()
}

func newConsoleLogger(component string) zerolog.Logger {
	noColor := os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(os.Stdout.Fd()))

	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.DateTime,
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			FieldComponent,
			zerolog.CallerFieldName,
			zerolog.MessageFieldName,
		},
		FieldsExclude: []string{FieldComponent},
		NoColor:       noColor,
	}
	return zerolog.New(ComponentFilterWriter{
		Writer: consoleWriter,
		Name:   component,
	})
}

func Nop() Logger {
	return zerolog.Nop()
}
