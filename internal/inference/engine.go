//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package inference

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"

	"polyglot/backend/internal/model"
	"polyglot/backend/pkg/logger"
)

var ErrGeneration = errors.New("generation failed")

// Translator is the contract the inference HTTP handler depends on.
type Translator interface {
	Translate(ctx context.Context, req model.TranslationRequest) (model.Translation, error)
	Name() string
}

// Engine holds the loaded model. It is immutable after construction and safe
// for concurrent use.
type Engine struct {
	manifest     Manifest
	generator    Generator
	languages    map[string]bool
	slots        *semaphore.Weighted // nil means unbounded
	loadDuration time.Duration
}

// Load reads the artifact directory and prepares the generator. Callers must
// not serve requests when it fails.
func Load(ctx context.Context, dir string) (*Engine, error) {
	start := time.Now()
	logger.Info("loading model", "module", "inference", "action", "load", "resource", "model", "path", dir)

	manifest, err := LoadManifest(dir)
	if err != nil {
		return nil, err
	}
	generator, err := NewGenerator(ctx, manifest.Generator)
	if err != nil {
		return nil, err
	}
	engine, err := New(manifest, generator)
	if err != nil {
		return nil, err
	}
	engine.loadDuration = time.Since(start)

	logger.Info("model loaded", "module", "inference", "action", "load", "resource", "model", "result", "ok", "name", manifest.Name, "languages", len(engine.languages), "duration", engine.loadDuration)
	return engine, nil
}

// New builds an engine from an already constructed generator.
func New(manifest Manifest, generator Generator) (*Engine, error) {
	if generator == nil {
		return nil, fmt.Errorf("%w: no generator", ErrInvalidManifest)
	}
	languages := make(map[string]bool, len(manifest.Languages))
	for _, code := range manifest.Languages {
		if trimmed := strings.ToLower(strings.TrimSpace(code)); trimmed != "" {
			languages[trimmed] = true
		}
	}
	engine := &Engine{manifest: manifest, generator: generator, languages: languages}
	if manifest.Concurrency > 0 {
		engine.slots = semaphore.NewWeighted(manifest.Concurrency)
	}
	return engine, nil
}

func (e *Engine) Name() string {
	return e.manifest.Name
}

// LoadDuration is how long Load took. It is reported at startup only; per
// request records carry model_load_time = 0.
func (e *Engine) LoadDuration() time.Duration {
	return e.loadDuration
}

// Translate runs the three timed stages for one request.
func (e *Engine) Translate(ctx context.Context, req model.TranslationRequest) (model.Translation, error) {
	start := time.Now()

	prepStart := time.Now()
	input, err := e.prepare(req.Text, req.SourceLang, req.TargetLang)
	if err != nil {
		return model.Translation{}, err
	}
	inputPrepTime := time.Since(prepStart)

	generateStart := time.Now()
	raw, err := e.generate(ctx, input)
	if err != nil {
		logger.Error("generation failed", "module", "inference", "action", "generate", "resource", "model", "result", "failed", "error", err)
		return model.Translation{}, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	translationTime := time.Since(generateStart)

	decodeStart := time.Now()
	translated := e.decode(raw, input)
	decodingTime := time.Since(decodeStart)

	totalTime := time.Since(start)

	logger.Debug("translation timings", "module", "inference", "action", "translate", "resource", "model",
		"input_prep", inputPrepTime, "generation", translationTime, "decoding", decodingTime, "total", totalTime)

	return model.Translation{
		OriginalText:    req.Text,
		TranslatedText:  translated,
		SourceLang:      req.SourceLang,
		TargetLang:      req.TargetLang,
		TotalTime:       totalTime.Seconds(),
		InputPrepTime:   inputPrepTime.Seconds(),
		TranslationTime: translationTime.Seconds(),
		DecodingTime:    decodingTime.Seconds(),
		ModelLoadTime:   0,
	}, nil
}

// generate runs the model, waiting for a free slot when concurrency is bounded.
// Time spent waiting counts as generation time.
func (e *Engine) generate(ctx context.Context, input Input) (string, error) {
	if e.slots != nil {
		if err := e.slots.Acquire(ctx, 1); err != nil {
			return "", err
		}
		defer e.slots.Release(1)
	}
	return e.generator.Generate(ctx, input)
}
