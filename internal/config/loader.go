package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".codefolio"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix.
const envPrefix = "CODEFOLIO"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// LoadConfig loads configuration from defaults, file and environment.
// If configPath is non-empty it is the explicit config file; otherwise
// .codefolio.yaml is searched in CWD and $HOME. A missing file is not an error.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

// Default returns the configuration used when no file or environment is set.
func Default() *Config {
	viperCfg := viper.New()
	applyDefaults(viperCfg)

	var cfg Config

	_ = viperCfg.Unmarshal(&cfg)

	return &cfg
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("data.loc", DefaultDataLoc)
	viperCfg.SetDefault("data.projects", DefaultDataProjects)

	viperCfg.SetDefault("repo.url", DefaultRepoURL)
	viperCfg.SetDefault("repo.path", DefaultRepoPath)

	viperCfg.SetDefault("extract.indent_width", DefaultExtractIndentWidth)
	viperCfg.SetDefault("extract.languages", DefaultExtractLanguages)
	viperCfg.SetDefault("extract.cache_dir", DefaultExtractCacheDir)
	viperCfg.SetDefault("extract.skip", []string{})

	viperCfg.SetDefault("render.theme", DefaultRenderTheme)
	viperCfg.SetDefault("render.output", DefaultRenderOutput)
	viperCfg.SetDefault("render.latest_projects", DefaultRenderLatestProjects)
	viperCfg.SetDefault("render.timezone", DefaultRenderTimezone)

	viperCfg.SetDefault("server.addr", DefaultServerAddr)
	viperCfg.SetDefault("server.watch", DefaultServerWatch)

	viperCfg.SetDefault("github.user", DefaultGitHubUser)
	viperCfg.SetDefault("github.token", "")
	viperCfg.SetDefault("github.rate", DefaultGitHubRate)
	viperCfg.SetDefault("github.cache_ttl", DefaultGitHubCacheTTL)

	viperCfg.SetDefault("log.level", DefaultLogLevel)
	viperCfg.SetDefault("log.json", DefaultLogJSON)

	viperCfg.SetDefault("otel.endpoint", "")
	viperCfg.SetDefault("otel.insecure", DefaultOTelInsecure)
	viperCfg.SetDefault("otel.sample_ratio", DefaultOTelSampleRatio)
}
