package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Filter is a parsed LOG_FILTER value such as "info,http=debug".
type Filter struct {
	Default zapcore.Level
	Targets map[string]zapcore.Level
}

// ParseFilter accepts comma separated directives, each either a bare level
// or target=level. The last bare level wins.
func ParseFilter(s string) (Filter, error) {
	f := Filter{Default: zapcore.InfoLevel, Targets: map[string]zapcore.Level{}}
	for _, directive := range strings.Split(s, ",") {
		directive = strings.TrimSpace(directive)
		if directive == "" {
			continue
		}

		target, rawLevel, ok := strings.Cut(directive, "=")
		if !ok {
			rawLevel, target = target, ""
		}
		lvl, err := zapcore.ParseLevel(strings.TrimSpace(rawLevel))
		if err != nil {
			return Filter{}, fmt.Errorf("invalid log filter directive %q: %w", directive, err)
		}

		target = strings.TrimSpace(target)
		if target == "" {
			f.Default = lvl
			continue
		}
		f.Targets[target] = lvl
	}
	return f, nil
}

// Level resolves the level for a dotted logger name, falling back to the
// closest configured parent and then the default.
func (f Filter) Level(target string) zapcore.Level {
	for name := target; name != ""; {
		if lvl, ok := f.Targets[name]; ok {
			return lvl
		}
		i := strings.LastIndexByte(name, '.')
		if i < 0 {
			break
		}
		name = name[:i]
	}
	return f.Default
}

func (f Filter) min() zapcore.Level {
	lvl := f.Default
	for _, l := range f.Targets {
		if l < lvl {
			lvl = l
		}
	}
	return lvl
}

// Logger is the root logger. Its embedded *zap.Logger logs at the filter's
// default level; For hands out named children at their own level.
type Logger struct {
	*zap.Logger
	base   *zap.Logger
	filter Filter
}

func New(production bool, filter string) (*Logger, error) {
	f, err := ParseFilter(filter)
	if err != nil {
		return nil, err
	}

	var cfg zap.Config
	if production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(f.min())

	base, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return wrap(base, f), nil
}

// NewWithCore is used by tests to capture output.
func NewWithCore(core zapcore.Core, filter Filter) *Logger {
	return wrap(zap.New(core), filter)
}

func Nop() *Logger {
	return wrap(zap.NewNop(), Filter{Default: zapcore.InfoLevel})
}

func wrap(base *zap.Logger, f Filter) *Logger {
	return &Logger{
		Logger: base.WithOptions(zap.IncreaseLevel(f.Default)),
		base:   base,
		filter: f,
	}
}

func (l *Logger) For(target string) *zap.Logger {
	return l.base.Named(target).WithOptions(zap.IncreaseLevel(l.filter.Level(target)))
}
