package pathdoc

import "log/slog"

type Options struct {
	convertFunc func(value interface{}) interface{}
	logger      *slog.Logger
}

// The default options.
var DefaultOptions = Options{}

// WithConvertFunc creates a new option object with a given convert function.
//
// The convert function is applied by Set, New and Reset to every value they
// store. This can be used to support additional types by converting them into
// one of the supported types.
func (options Options) WithConvertFunc(convertFunc func(value interface{}) interface{}) Options {
	options.convertFunc = convertFunc
	return options
}

// WithLogger creates a new option object which reports failed lookups and
// rejected mutations to logger instead of slog.Default().
func (options Options) WithLogger(logger *slog.Logger) Options {
	options.logger = logger
	return options
}

func (options *Options) log() *slog.Logger {
	if options.logger != nil {
		return options.logger
	}
	return slog.Default()
}

func (options *Options) convert(value interface{}) interface{} {
	if options.convertFunc != nil {
		return options.convertFunc(value)
	}
	return value
}
