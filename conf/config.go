/*
 * Copyright 2025 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package conf

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	ProviderOpenAI   = "openai"
	ProviderDeepSeek = "deepseek"
	ProviderArk      = "ark"
	ProviderOllama   = "ollama"

	RunnerModeSequential = "sequential"
	RunnerModeWorkflow   = "workflow"

	DefaultConfigPath = "conf/companion.yaml"
	DefaultOutputPath = "research_analysis_output.md"
)

// Config is the companion configuration: defaults, then the YAML file, then env overrides.
type Config struct {
	Model struct {
		Provider    string        `yaml:"provider"`
		Name        string        `yaml:"name"`
		Temperature float64       `yaml:"temperature"`
		BaseURL     string        `yaml:"base_url"`
		APIKeyEnv   string        `yaml:"api_key_env"`
		Timeout     time.Duration `yaml:"timeout"`

		// APIKey is only ever read from the environment variable named by APIKeyEnv.
		APIKey string `yaml:"-"`
	} `yaml:"model"`
	Runner struct {
		Mode string `yaml:"mode"`
	} `yaml:"runner"`
	Search struct {
		Enabled    bool          `yaml:"enabled"`
		MaxResults int           `yaml:"max_results"`
		Timeout    time.Duration `yaml:"timeout"`
	} `yaml:"search"`
	Output struct {
		Path           string `yaml:"path"`
		TranscriptPath string `yaml:"transcript_path"`
		PreviewChars   int    `yaml:"preview_chars"`
	} `yaml:"output"`
	CLI struct {
		// ExitCodeOnFailure is the process exit code after a caught analysis or
		// persistence failure. 0 reports the failure and still exits successfully.
		ExitCodeOnFailure int `yaml:"exit_code_on_failure"`
	} `yaml:"cli"`
	Log struct {
		Level   string `yaml:"level"`
		Verbose bool   `yaml:"verbose"`
	} `yaml:"log"`
}

func Default() *Config {
	c := &Config{}
	c.Model.Provider = ProviderOpenAI
	c.Model.Name = "gpt-3.5-turbo"
	c.Model.Temperature = 0.1
	c.Model.APIKeyEnv = "OPENAI_API_KEY"
	c.Runner.Mode = RunnerModeSequential
	c.Search.MaxResults = 5
	c.Search.Timeout = 10 * time.Second
	c.Output.Path = DefaultOutputPath
	c.Output.PreviewChars = 500
	c.CLI.ExitCodeOnFailure = 1
	c.Log.Level = "info"
	c.Log.Verbose = true
	return c
}

// PathFromEnv returns COMPANION_CONFIG, or DefaultConfigPath when unset.
func PathFromEnv() string {
	if p := strings.TrimSpace(os.Getenv("COMPANION_CONFIG")); p != "" {
		return p
	}
	return DefaultConfigPath
}

// Load builds the configuration. A missing file at path is not an error; a
// present but malformed one is. A .env file in the working directory is
// loaded into the environment first, without overriding variables already set.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(errors.Cause(err)) {
		return nil, errors.Wrap(err, "load .env")
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrapf(err, "parse config %s", path)
			}
		case os.IsNotExist(err):
		default:
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	setString("COMPANION_PROVIDER", &c.Model.Provider)
	setString("OPENAI_MODEL_NAME", &c.Model.Name)
	setString("OPENAI_BASE_URL", &c.Model.BaseURL)
	setString("COMPANION_RUNNER_MODE", &c.Runner.Mode)
	setString("COMPANION_OUTPUT", &c.Output.Path)
	setString("COMPANION_LOG_LEVEL", &c.Log.Level)

	if v := strings.TrimSpace(os.Getenv("COMPANION_TEMPERATURE")); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrapf(err, "COMPANION_TEMPERATURE=%q", v)
		}
		c.Model.Temperature = t
	}

	if c.Model.APIKeyEnv != "" {
		c.Model.APIKey = strings.TrimSpace(os.Getenv(c.Model.APIKeyEnv))
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	c.Model.Provider = strings.ToLower(strings.TrimSpace(c.Model.Provider))
	switch c.Model.Provider {
	case ProviderOpenAI, ProviderDeepSeek, ProviderArk:
		if c.Model.APIKey == "" {
			return fmt.Errorf("missing API key for provider %q: set the %s environment variable", c.Model.Provider, c.Model.APIKeyEnv)
		}
	case ProviderOllama:
	default:
		return fmt.Errorf("unknown model provider %q", c.Model.Provider)
	}
	if strings.TrimSpace(c.Model.Name) == "" {
		return errors.New("model name is empty")
	}
	if c.Model.Temperature < 0 || c.Model.Temperature > 2 {
		return fmt.Errorf("temperature %.2f out of range [0, 2]", c.Model.Temperature)
	}

	c.Runner.Mode = strings.ToLower(strings.TrimSpace(c.Runner.Mode))
	if c.Runner.Mode != RunnerModeSequential && c.Runner.Mode != RunnerModeWorkflow {
		return fmt.Errorf("unknown runner mode %q", c.Runner.Mode)
	}

	if strings.TrimSpace(c.Output.Path) == "" {
		return errors.New("output path is empty")
	}
	if c.Output.PreviewChars < 0 {
		return fmt.Errorf("preview_chars must not be negative, got %d", c.Output.PreviewChars)
	}
	if c.Search.Enabled && c.Search.MaxResults <= 0 {
		return fmt.Errorf("search max_results must be positive, got %d", c.Search.MaxResults)
	}
	return nil
}
