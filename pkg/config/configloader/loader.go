package configloader

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Validator interface {
	Validate() error
}

// Options controls where configuration is read from.
type Options struct {
	// ConfigFile is the YAML file to read. Missing files are ignored.
	ConfigFile string
	// EnvFile is the dotenv file to read. Missing files are ignored.
	EnvFile string
	// Defaults are loaded first and have the lowest priority.
	Defaults map[string]any
	// EnvAliases maps unprefixed environment variables to config keys, e.g. MONGODB_URI -> database.uri.
	// They are read from both the dotenv file and the process environment; within each source
	// the prefixed variables win, and the process environment overrides the file.
	EnvAliases map[string]string
}

// DefaultOptions returns the conventional locations: config.yaml and .env in the working directory.
func DefaultOptions() Options {
	return Options{
		ConfigFile: "config.yaml",
		EnvFile:    ".env",
	}
}

// Load builds a T from defaults, the YAML file, the dotenv file and the process environment,
// in increasing priority. Environment keys are prefixed with <SERVICENAME>_ and use "_" as the
// path separator, e.g. INVENTORY_DATABASE_URI -> database.uri.
// Comma-separated values decode into slices.
func Load[T Validator](serviceName string, opts Options) (T, error) {
	var cfg T
	// Create a new Koanf instance
	k := koanf.New(".")

	envPrefix := fmt.Sprintf("%s_", strings.ToUpper(serviceName))

	// 0. Defaults
	if len(opts.Defaults) > 0 {
		if err := k.Load(confmap.Provider(opts.Defaults, "."), nil); err != nil {
			return cfg, fmt.Errorf("error loading default config: %w", err)
		}
	}

	// 1. Load configuration from yaml file
	if opts.ConfigFile != "" {
		if err := k.Load(file.Provider(opts.ConfigFile), yaml.Parser()); err != nil {
			if !os.IsNotExist(err) {
				log.Printf("WARN: error loading YAML config file '%s': %v", opts.ConfigFile, err)
			}
		}
	}

	// 2. Load environment variables from .env file: aliases first, prefixed keys over them
	envTransformer := func(key string) string {
		key = strings.ToLower(key)
		key = strings.TrimPrefix(key, strings.ToLower(envPrefix))
		return strings.ReplaceAll(key, "_", ".")
	}
	if opts.EnvFile != "" {
		if envFileMap, err := godotenv.Read(opts.EnvFile); err == nil {
			fileAliases := aliasValues(opts.EnvAliases, func(name string) (string, bool) {
				v, ok := envFileMap[name]
				return v, ok
			})
			if err := k.Load(confmap.Provider(fileAliases, "."), nil); err != nil {
				log.Printf("WARN: error loading .env aliases: %v", err)
			}
			envMap := make(map[string]any)
			for key, value := range envFileMap {
				if !strings.HasPrefix(strings.ToUpper(key), envPrefix) {
					continue
				}
				envMap[envTransformer(key)] = value
			}
			// Load the envMap into Koanf
			if err := k.Load(confmap.Provider(envMap, "."), nil); err != nil {
				log.Printf("WARN: error loading .env config: %v", err)
			}
		} else if !os.IsNotExist(err) {
			log.Printf("WARN: error reading .env file: %v", err)
		}
	}

	// 3. Unprefixed aliases from the process environment
	if err := k.Load(confmap.Provider(aliasValues(opts.EnvAliases, os.LookupEnv), "."), nil); err != nil {
		log.Printf("WARN: error loading env aliases: %v", err)
	}

	// 4. Load environment variables from the system, the highest priority
	if err := k.Load(env.Provider(envPrefix, ".", envTransformer), nil); err != nil {
		log.Printf("WARN: error loading system env vars: %v", err)
	}

	// 5. Unmarshal the configuration into the Config struct
	unmarshalConf := koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return cfg, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// 6. Validate the configuration: struct tags first, then the hand-written rules
	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// aliasValues resolves each alias name with lookup and keys the found values by their config path.
func aliasValues(aliases map[string]string, lookup func(string) (string, bool)) map[string]any {
	values := make(map[string]any, len(aliases))
	for name, key := range aliases {
		if value, ok := lookup(name); ok {
			values[key] = value
		}
	}
	return values
}
