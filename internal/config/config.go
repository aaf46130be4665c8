package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/jcdickinson/jsdocgen/internal/docs"
)

type LinksConfig struct {
	ExternalNamespace bool            `mapstructure:"external_namespace"`
	ExternalPrefix    string          `mapstructure:"external_prefix" validate:"required_if=ExternalNamespace true"`
	ExternalBaseURL   string          `mapstructure:"external_base_url" validate:"omitempty,url"`
	Labels            docs.LabelStyle `mapstructure:"labels" validate:"oneof=short full"`
}

type TreeConfig struct {
	Root string `mapstructure:"root"`
}

type OutputConfig struct {
	Format       string `mapstructure:"format" validate:"oneof=markdown html json yaml"`
	Experimental bool   `mapstructure:"experimental"`
}

type Config struct {
	Links  LinksConfig  `mapstructure:"links"`
	Tree   TreeConfig   `mapstructure:"tree"`
	Output OutputConfig `mapstructure:"output"`
}

// LinkConfig returns the resolver settings.
func (c *Config) LinkConfig() docs.LinkConfig {
	return docs.LinkConfig{
		ExternalNamespace: c.Links.ExternalNamespace,
		ExternalPrefix:    c.Links.ExternalPrefix,
		ExternalBaseURL:   c.Links.ExternalBaseURL,
		Labels:            c.Links.Labels,
	}
}

// validate reports config errors using mapstructure key names.
var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// versionRe matches package versions starting with 1.4.x.
var versionRe = regexp.MustCompile(`^(\d\.\d)\.x`)

// Version extracts the "X.Y" documentation version from a "X.Y.x" package
// version. Anything else is returned unchanged.
func Version(raw string) string {
	if m := versionRe.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return raw
}

// cacheBase returns the base cache directory for jsdocgen.
// Checks XDG_CACHE_HOME, then ~/.cache, then /tmp/jsdocgen as fallback.
func cacheBase() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "jsdocgen")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".cache", "jsdocgen")
	}
	return filepath.Join(os.TempDir(), "jsdocgen")
}

// CASDir returns the path to the archive of rendered documents.
func CASDir() string {
	return filepath.Join(cacheBase(), "cas")
}

func InitializeViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	viper.AddConfigPath(".")
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		viper.AddConfigPath(filepath.Join(xdg, "jsdocgen"))
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "jsdocgen"))
	}

	viper.SetDefault("links.external_namespace", false)
	viper.SetDefault("links.external_prefix", docs.DefaultExternalPrefix)
	viper.SetDefault("links.external_base_url", docs.DefaultExternalBaseURL)
	viper.SetDefault("links.labels", string(docs.LabelShort))
	viper.SetDefault("tree.root", "woosmap")
	viper.SetDefault("output.format", "markdown")
	viper.SetDefault("output.experimental", false)

	viper.SetEnvPrefix("JSDOCGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return nil
}

func stringToLabelStyleHookFunc() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t != reflect.TypeOf(docs.LabelStyle("")) || f.Kind() != reflect.String {
			return data, nil
		}
		switch style := docs.LabelStyle(strings.ToLower(strings.TrimSpace(data.(string)))); style {
		case docs.LabelShort, docs.LabelFull:
			return style, nil
		case "":
			return docs.LabelShort, nil
		default:
			return nil, fmt.Errorf("unknown label style %q (want short or full)", data)
		}
	}
}

func Load() (*Config, error) {
	if err := InitializeViper(); err != nil {
		return nil, err
	}

	var config Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       stringToLabelStyleHookFunc(),
		WeaklyTypedInput: true,
		Result:           &config,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(viper.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks a decoded config, joining one error per bad field.
func Validate(c *Config) error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate config: %w", err)
	}
	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, fmt.Errorf("invalid config %s: failed %q check (value %v)", keyPath(fe.Namespace()), fe.Tag(), fe.Value()))
	}
	return errors.Join(errs...)
}

// keyPath turns a validator namespace such as "Config.links.labels" into the
// dotted config key.
func keyPath(namespace string) string {
	_, key, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}
	return key
}
