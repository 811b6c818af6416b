package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Paths      PathsConfig      `mapstructure:"paths"`
	Translator TranslatorConfig `mapstructure:"translator"`
	Server     ServerConfig     `mapstructure:"server"`
	LogLevel   string           `mapstructure:"log_level"`
}

type PathsConfig struct {
	// DictionaryPath is a word list with one word per line. Empty selects
	// the built-in English list.
	DictionaryPath string `mapstructure:"dictionary_path"`
}

type TranslatorConfig struct {
	Separators       []string `mapstructure:"separators"`
	NormalizeUnicode bool     `mapstructure:"normalize_unicode"`
}

type ServerConfig struct {
	ListenAddr      string   `mapstructure:"listen_addr"`
	Workers         int      `mapstructure:"workers"`
	MaxTextBytes    int      `mapstructure:"max_text_bytes"`
	RequestTimeout  int      `mapstructure:"request_timeout"`
	ShutdownTimeout int      `mapstructure:"shutdown_timeout"`
	CORSOrigins     []string `mapstructure:"cors_origins"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			DictionaryPath: "",
		},
		Translator: TranslatorConfig{
			Separators:       nil,
			NormalizeUnicode: false,
		},
		Server: ServerConfig{
			ListenAddr:      ":8080",
			Workers:         4,
			MaxTextBytes:    64 * 1024,
			RequestTimeout:  10,
			ShutdownTimeout: 30,
			CORSOrigins:     []string{"*"},
		},
		LogLevel: "info",
	}
}

// flagKeys maps config keys to the flags registered by RegisterFlags.
var flagKeys = []struct {
	key  string
	flag string
}{
	{"paths.dictionary_path", "dictionary"},
	{"translator.separators", "separator"},
	{"translator.normalize_unicode", "nfc"},
	{"server.listen_addr", "server-listen-addr"},
	{"server.workers", "workers"},
	{"server.max_text_bytes", "max-text-bytes"},
	{"server.request_timeout", "request-timeout"},
	{"server.shutdown_timeout", "shutdown-timeout"},
	{"server.cors_origins", "cors-origin"},
	{"log_level", "log-level"},
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("dictionary", defaults.Paths.DictionaryPath, "Word list used for decoding, one word per line (empty: built-in list)")
	fs.StringArray("separator", defaults.Translator.Separators, "Word separator character or name such as space, em-dash (repeatable)")
	fs.Bool("nfc", defaults.Translator.NormalizeUnicode, "Compose input text to Unicode NFC before translating")
	fs.String("server-listen-addr", defaults.Server.ListenAddr, "HTTP listen address")
	fs.Int("workers", defaults.Server.Workers, "Max concurrent HTTP translations (0: unlimited)")
	fs.Int("max-text-bytes", defaults.Server.MaxTextBytes, "Max request text size in bytes")
	fs.Int("request-timeout", defaults.Server.RequestTimeout, "Per-request translation timeout in seconds")
	fs.Int("shutdown-timeout", defaults.Server.ShutdownTimeout, "Graceful shutdown drain period in seconds")
	fs.StringSlice("cors-origin", defaults.Server.CORSOrigins, "Allowed CORS origins (repeatable)")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix("PIGLATIN")
	replacer := strings.NewReplacer("-", "_", ".", "_")
	v.SetEnvKeyReplacer(replacer)
	if err := v.BindEnv("paths.dictionary_path", "PIGLATIN_DICTIONARY", "PIGLATIN_PATHS_DICTIONARY_PATH"); err != nil {
		return Config{}, fmt.Errorf("bind dictionary env vars: %w", err)
	}
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("piglatin")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	seps, err := NormalizeSeparators(cfg.Translator.Separators)
	if err != nil {
		return Config{}, err
	}
	cfg.Translator.Separators = seps

	return cfg, nil
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	if _, err := NormalizeSeparators(c.Translator.Separators); err != nil {
		return err
	}
	if c.Server.Workers < 0 {
		return fmt.Errorf("server workers must be >= 0, got %d", c.Server.Workers)
	}
	if c.Server.MaxTextBytes <= 0 {
		return fmt.Errorf("server max_text_bytes must be > 0, got %d", c.Server.MaxTextBytes)
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("server request_timeout must be > 0, got %d", c.Server.RequestTimeout)
	}
	return nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("paths.dictionary_path", c.Paths.DictionaryPath)
	v.SetDefault("translator.separators", c.Translator.Separators)
	v.SetDefault("translator.normalize_unicode", c.Translator.NormalizeUnicode)
	v.SetDefault("server.listen_addr", c.Server.ListenAddr)
	v.SetDefault("server.workers", c.Server.Workers)
	v.SetDefault("server.max_text_bytes", c.Server.MaxTextBytes)
	v.SetDefault("server.request_timeout", c.Server.RequestTimeout)
	v.SetDefault("server.shutdown_timeout", c.Server.ShutdownTimeout)
	v.SetDefault("server.cors_origins", c.Server.CORSOrigins)
	v.SetDefault("log_level", c.LogLevel)
}

// bindFlags binds each registered flag to its nested key, so a changed
// flag overrides the environment and config file.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, fk := range flagKeys {
		f := fs.Lookup(fk.flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(fk.key, f); err != nil {
			return fmt.Errorf("bind flag --%s: %w", fk.flag, err)
		}
	}
	return nil
}
