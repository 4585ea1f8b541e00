// Package config loads factory settings for services that issue secids.
// It merges Defaults -> Environment Variables, with validation.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/zoobzio/secid"
)

/*
Usage example (in main package):

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	ids, err := cfg.Factory()
*/

// EnvPrefix is stripped from environment variable names before they are
// matched against Config keys, e.g. SECID_STYLE -> style.
const EnvPrefix = "SECID_"

// Config holds the settings needed to build a *secid.Factory.
type Config struct {
	Secret     string      `koanf:"secret" validate:"required,min=8"`
	Style      secid.Style `koanf:"style" validate:"secid_style"`
	Iterations int         `koanf:"iterations" validate:"min=1000"`
}

// DefaultConfig holds every value except the secret, which has no safe default.
var DefaultConfig = Config{
	Style:      secid.DefaultStyle,
	Iterations: secid.DefaultIterations,
}

// Loader hooks. Tests swap these to inject failures.
var (
	defaultLoader = func(k *koanf.Koanf) error {
		return k.Load(structs.Provider(DefaultConfig, "koanf"), nil)
	}

	envLoader = func(k *koanf.Koanf) error {
		return k.Load(env.Provider(".", env.Opt{
			Prefix:        EnvPrefix,
			TransformFunc: envKey,
		}), nil)
	}

	registerValidators = func(v *validator.Validate) error {
		return v.RegisterValidation("secid_style", validStyle)
	}
)

// envKey maps SECID_ITERATIONS to iterations. Empty values are dropped so
// an exported but blank variable leaves the default in place.
func envKey(key, value string) (string, any) {
	if value == "" {
		return "", nil
	}
	return strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), value
}

func validStyle(fl validator.FieldLevel) bool {
	return secid.IsValidStyle(secid.Style(fl.Field().String()))
}

// Load returns the merged configuration.
// Order of precedence (lowest → highest): Defaults → Environment.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := defaultLoader(k); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	if err := envLoader(k); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.TextUnmarshallerHookFunc(),
			Result:           &cfg,
			TagName:          "koanf",
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its field rules. Load calls it; callers that
// build a Config by hand can call it directly.
func Validate(cfg *Config) error {
	v := validator.New()
	if err := registerValidators(v); err != nil {
		return fmt.Errorf("register validators: %w", err)
	}
	if err := v.Struct(cfg); err != nil {
		return describe(err)
	}
	return nil
}

// describe turns validator output into messages that name the env variable
// and never echo the secret.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := EnvPrefix + strings.ToUpper(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, name+" is required")
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", name, fe.Param()))
		case "secid_style":
			msgs = append(msgs, fmt.Sprintf("%s must be one of hex, base64, hashids, got %q", name, fe.Value()))
		default:
			msgs = append(msgs, name+" is invalid")
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// Factory builds a factory from cfg. Extra options are applied last.
func (c *Config) Factory(opts ...secid.Option) (*secid.Factory, error) {
	all := append([]secid.Option{
		secid.WithStyle(c.Style),
		secid.WithIterations(c.Iterations),
	}, opts...)
	return secid.New([]byte(c.Secret), all...)
}
