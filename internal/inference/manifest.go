package inference

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the file name looked up inside the model artifact directory.
const ManifestFile = "manifest.yaml"

const (
	GeneratorOpenAI    = "openai"
	GeneratorAnthropic = "anthropic"
)

var ErrInvalidManifest = errors.New("invalid model manifest")

// Manifest describes a model artifact directory.
//
//	name: seamless-m4t-v2-large
//	generator:
//	  kind: openai # or anthropic
//	  base_url: http://llm:8080/v1/
//	  model: seamless-m4t-v2-large
//	  api_key_env: POLYGLOT_MODEL_API_KEY
//	  max_tokens: 512
//	concurrency: 1
//	languages: [eng, fra, deu]
//	special_tokens: ["<s>", "</s>", "<pad>", "<unk>"]
type Manifest struct {
	Name          string          `yaml:"name"`
	Generator     GeneratorConfig `yaml:"generator"`
	Concurrency   int64           `yaml:"concurrency"`
	Languages     []string        `yaml:"languages"`
	SpecialTokens []string        `yaml:"special_tokens"`
}

type GeneratorConfig struct {
	Kind         string `yaml:"kind"`
	BaseURL      string `yaml:"base_url"`
	Model        string `yaml:"model"`
	APIKeyEnv    string `yaml:"api_key_env"`
	MaxTokens    int64  `yaml:"max_tokens"`
	SystemPrompt string `yaml:"system_prompt"`
	// SkipVerify disables the model lookup performed at load time.
	SkipVerify bool `yaml:"skip_verify"`
}

var defaultSpecialTokens = []string{"<s>", "</s>", "<pad>", "<unk>", "<mask>"}

// LoadManifest reads and validates dir/manifest.yaml.
func LoadManifest(dir string) (Manifest, error) {
	path := filepath.Join(dir, ManifestFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest %s: %w", path, err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return Manifest{}, fmt.Errorf("%w: %s: %v", ErrInvalidManifest, path, err)
	}
	if manifest.Name == "" {
		manifest.Name = filepath.Base(filepath.Clean(dir))
	}
	if err := manifest.Validate(); err != nil {
		return Manifest{}, err
	}
	return manifest, nil
}

func (m Manifest) Validate() error {
	switch strings.ToLower(strings.TrimSpace(m.Generator.Kind)) {
	case GeneratorOpenAI, GeneratorAnthropic:
		if strings.TrimSpace(m.Generator.Model) == "" {
			return fmt.Errorf("%w: generator.model is required", ErrInvalidManifest)
		}
	case "":
		return fmt.Errorf("%w: generator.kind is required", ErrInvalidManifest)
	default:
		return fmt.Errorf("%w: unknown generator kind %q", ErrInvalidManifest, m.Generator.Kind)
	}
	if m.Concurrency < 0 {
		return fmt.Errorf("%w: concurrency must not be negative", ErrInvalidManifest)
	}
	if m.Generator.MaxTokens < 0 {
		return fmt.Errorf("%w: generator.max_tokens must not be negative", ErrInvalidManifest)
	}
	return nil
}

func (m Manifest) specialTokens() []string {
	if len(m.SpecialTokens) == 0 {
		return defaultSpecialTokens
	}
	return m.SpecialTokens
}
