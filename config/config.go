// Package config loads the performance configuration from YAML with
// environment fallbacks for secrets.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Generation struct {
	Model string `yaml:"model"`
	Voice string `yaml:"voice"`
}

type Planning struct {
	Model         string   `yaml:"model"`
	BannedPhrases []string `yaml:"banned_phrases"`
}

type Performance struct {
	Theme                  string `yaml:"theme"`
	Opener                 string `yaml:"opener"`
	CollectionDeadlineSecs int    `yaml:"collection_deadline_seconds"`
	ReactionStalenessSecs  int    `yaml:"reaction_staleness_seconds"`
}

type Root struct {
	OpenAIAPIKey string      `yaml:"openai_api_key"`
	Generation   Generation  `yaml:"generation"`
	Planning     Planning    `yaml:"planning"`
	Performance  Performance `yaml:"performance"`
}

// Load reads the config file and fills the API key from OPENAI_API_KEY when
// the file leaves it empty. A missing file is fine as long as the key is in
// the environment.
func Load(path string) (*Root, error) {
	var cfg Root

	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to open config %s: %w", path, err)
	}

	if cfg.OpenAIAPIKey == "" {
		cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("openai api key not found in %s or OPENAI_API_KEY", path)
	}
	return &cfg, nil
}

// CollectionDeadline converts the configured seconds to a duration, zero
// meaning "use the default".
func (r *Root) CollectionDeadline() time.Duration {
	return time.Duration(r.Performance.CollectionDeadlineSecs) * time.Second
}

// ReactionStaleness converts the configured seconds to a duration, zero
// meaning "use the default".
func (r *Root) ReactionStaleness() time.Duration {
	return time.Duration(r.Performance.ReactionStalenessSecs) * time.Second
}
