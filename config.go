package streamjson

import "github.com/mstoykov/envconfig"

// RootFlag forbids a VALUE variant from appearing at the document root
// (spec.md §4.3's "six configuration bits").
type RootFlag uint16

const (
	NoNullAsRoot RootFlag = 1 << iota
	NoBoolAsRoot
	NoNumberAsRoot
	NoStringAsRoot
	NoArrayAsRoot
	NoObjectAsRoot
)

// Config is the JSON_CONFIG of spec.md §6: resource limits (0 = unlimited),
// the root-type filter, and the UTF-8 mode used for keys and values
// separately. It is built with functional options in the teacher's style of
// small composable constructors, and can also be populated from the
// environment via LoadConfigFromEnv.
type Config struct {
	MaxTotalLen     int
	MaxTotalValues  int
	MaxNestingLevel int
	MaxNumberLen    int
	MaxStringLen    int
	MaxKeyLen       int

	RootFlags RootFlag
	KeyUTF8   UTF8Mode
	ValueUTF8 UTF8Mode

	Logger Logger
}

// envLimits mirrors only the envconfig-eligible numeric fields of Config;
// RootFlags, the UTF-8 modes, and Logger are not primitive-typed and are
// never handed to envconfig.Process.
type envLimits struct {
	MaxTotalLen     int `envconfig:"max_total_len"`
	MaxTotalValues  int `envconfig:"max_total_values"`
	MaxNestingLevel int `envconfig:"max_nesting_level"`
	MaxNumberLen    int `envconfig:"max_number_len"`
	MaxStringLen    int `envconfig:"max_string_len"`
	MaxKeyLen       int `envconfig:"max_key_len"`
}

// Option mutates a Config under construction.
type Option func(*Config)

// NewConfig builds a Config from the given options, all limits defaulting
// to unlimited and both UTF-8 modes defaulting to UTF8Strict.
func NewConfig(opts ...Option) Config {
	var c Config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func WithMaxTotalLen(n int) Option     { return func(c *Config) { c.MaxTotalLen = n } }
func WithMaxTotalValues(n int) Option  { return func(c *Config) { c.MaxTotalValues = n } }
func WithMaxNestingLevel(n int) Option { return func(c *Config) { c.MaxNestingLevel = n } }
func WithMaxNumberLen(n int) Option    { return func(c *Config) { c.MaxNumberLen = n } }
func WithMaxStringLen(n int) Option    { return func(c *Config) { c.MaxStringLen = n } }
func WithMaxKeyLen(n int) Option       { return func(c *Config) { c.MaxKeyLen = n } }

// WithNoRootType ORs f into the set of variants forbidden at the root.
func WithNoRootType(f RootFlag) Option {
	return func(c *Config) { c.RootFlags |= f }
}

// WithKeyUTF8Mode sets how ill-formed UTF-8 in object keys is handled.
func WithKeyUTF8Mode(m UTF8Mode) Option { return func(c *Config) { c.KeyUTF8 = m } }

// WithValueUTF8Mode sets how ill-formed UTF-8 in string values is handled.
func WithValueUTF8Mode(m UTF8Mode) Option { return func(c *Config) { c.ValueUTF8 = m } }

// WithLogger installs an embedder-supplied Logger; the parser itself never
// logs unless one is installed (logging is a hot-path cost it does not pay
// by default).
func WithLogger(l Logger) Option { return func(c *Config) { c.Logger = l } }

// LoadConfigFromEnv applies resource-limit overrides from environment
// variables prefixed JSONPARSE_ (e.g. JSONPARSE_MAX_STRING_LEN), layered on
// top of an already-built Config. Root-type flags, UTF-8 modes, and the
// logger are not environment-configurable; they stay whatever base already
// has.
func LoadConfigFromEnv(base Config) (Config, error) {
	lim := envLimits{
		MaxTotalLen:     base.MaxTotalLen,
		MaxTotalValues:  base.MaxTotalValues,
		MaxNestingLevel: base.MaxNestingLevel,
		MaxNumberLen:    base.MaxNumberLen,
		MaxStringLen:    base.MaxStringLen,
		MaxKeyLen:       base.MaxKeyLen,
	}
	if err := envconfig.Process("jsonparse", &lim); err != nil {
		return base, err
	}
	cfg := base
	cfg.MaxTotalLen = lim.MaxTotalLen
	cfg.MaxTotalValues = lim.MaxTotalValues
	cfg.MaxNestingLevel = lim.MaxNestingLevel
	cfg.MaxNumberLen = lim.MaxNumberLen
	cfg.MaxStringLen = lim.MaxStringLen
	cfg.MaxKeyLen = lim.MaxKeyLen
	return cfg, nil
}
