// Package config loads startup settings from the environment.
package config

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/a-peyrard/lazydi/option"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultEnvPrefix is the prefix of the environment variables holding Settings.
const DefaultEnvPrefix = "LAZYDI"

type (
	// Settings are the container settings decided once at startup.
	Settings struct {
		// Introspection exposes the developer accessors of the container.
		Introspection bool `mapstructure:"introspection"`
		// LogLevel is a zerolog level name.
		LogLevel string `mapstructure:"log_level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
		// DebugAddr is the listen address of the introspection endpoint, empty to disable it.
		DebugAddr string `mapstructure:"debug_addr" validate:"omitempty,hostname_port"`
	}

	Options struct {
		prefix   string
		envFiles []string
	}

	// WithDefault is implemented by configurations filling their own default values after loading.
	WithDefault interface {
		ApplyDefault()
	}
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func (s *Settings) ApplyDefault() {
	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))
	if s.LogLevel == "" {
		s.LogLevel = "info"
	}
}

func WithEnvPrefix(prefix string) option.Option[Options] {
	return func(opts *Options) {
		opts.prefix = prefix
	}
}

// WithDotEnv loads the given .env files in the process environment before reading it.
// Variables already set in the environment are kept.
func WithDotEnv(files ...string) option.Option[Options] {
	return func(opts *Options) {
		opts.envFiles = append(opts.envFiles, files...)
	}
}

// LoadSettings loads Settings using DefaultEnvPrefix, unless overridden by opts.
func LoadSettings(opts ...option.Option[Options]) (*Settings, error) {
	return Load[Settings](append([]option.Option[Options]{WithEnvPrefix(DefaultEnvPrefix)}, opts...)...)
}

// Load reads a T from the environment, applies its defaults and validates it.
func Load[T any](opts ...option.Option[Options]) (*T, error) {
	options := option.Build(&Options{}, opts...)

	if len(options.envFiles) > 0 {
		if err := godotenv.Load(options.envFiles...); err != nil {
			return nil, fmt.Errorf("unable to load env files %v:\n\t%w", options.envFiles, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(options.prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var vT T
	bindEnvs(v, options.prefix, reflect.TypeOf(vT))

	if err := v.Unmarshal(&vT); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config:\n\t%w", err)
	}

	if withDefault, ok := any(&vT).(WithDefault); ok {
		withDefault.ApplyDefault()
	}

	if typ := reflect.TypeOf(vT); typ != nil && typ.Kind() == reflect.Struct {
		if err := getValidator().Struct(&vT); err != nil {
			return nil, fmt.Errorf("invalid config:\n\t%w", err)
		}
	}

	return &vT, nil
}

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// bindEnvs binds every leaf field of typ, so that Unmarshal sees variables never read through Get.
func bindEnvs(v *viper.Viper, envPrefix string, typ reflect.Type, parts ...string) {
	if typ == nil {
		return
	}
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		tag, ok := field.Tag.Lookup("mapstructure")
		if !ok {
			tag = field.Name
		}

		fieldTyp := field.Type
		if fieldTyp.Kind() == reflect.Pointer {
			fieldTyp = fieldTyp.Elem()
		}
		if fieldTyp.Kind() == reflect.Struct {
			bindEnvs(v, envPrefix, fieldTyp, append(parts, tag)...)
			continue
		}

		key := strings.Join(append(parts, tag), ".")
		envParts := make([]string, 0, len(parts)+1)
		for _, part := range append(parts, tag) {
			envParts = append(envParts, toScreamingSnakeCase(part))
		}
		_ = v.BindEnv(key, mergeWithEnvPrefix(envPrefix, strings.Join(envParts, "_")))
	}
}

func mergeWithEnvPrefix(envPrefix string, in string) string {
	if envPrefix != "" {
		return strings.ToUpper(envPrefix + "_" + in)
	}

	return strings.ToUpper(in)
}

// toScreamingSnakeCase turns fooBar, foo-bar or foo_bar into FOO_BAR.
func toScreamingSnakeCase(in string) string {
	in = strings.TrimSpace(in)
	if len(in) == 0 {
		return in
	}

	sb := strings.Builder{}
	sb.Grow(len(in) + len(in)/3)

	previousWasSeparator := false
	for i, b := range []byte(in) {
		switch {
		case 'a' <= b && b <= 'z':
			sb.WriteByte(b - ('a' - 'A'))
			previousWasSeparator = false
		case 'A' <= b && b <= 'Z':
			if i > 0 && !previousWasSeparator {
				sb.WriteByte('_')
			}
			sb.WriteByte(b)
			previousWasSeparator = false
		case b == '_' || b == '-':
			if i > 0 && !previousWasSeparator {
				sb.WriteByte('_')
			}
			previousWasSeparator = true
		default:
			sb.WriteByte(b)
			previousWasSeparator = false
		}
	}

	return sb.String()
}
