package inference

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"golang.org/x/text/unicode/norm"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

// Input is the model-ready form of a translation request.
type Input struct {
	Text       string
	SourceCode string
	TargetCode string
	Source     language.Tag
	Target     language.Tag
	SourceName string
	TargetName string
}

var (
	// language markers such as __fra__ or __cmn_Hant__
	languageMarkerRe = regexp.MustCompile(`__[a-z]{2,3}(?:_[A-Za-z]{4})?__`)
	thinkingBlockRe  = regexp.MustCompile(`(?is)<think>.*?</think>|<thinking>.*?</thinking>`)
	horizontalRunRe  = regexp.MustCompile(`[ \t\p{Zs}]{2,}`)
)

// prepare is stage A: normalize the text and resolve both language codes.
func (e *Engine) prepare(text, sourceLang, targetLang string) (Input, error) {
	normalized := strings.TrimSpace(norm.NFC.String(text))
	if normalized == "" {
		return Input{}, fmt.Errorf("%w: text must not be empty", ErrInvalidInput)
	}

	source, sourceName, err := e.resolveLanguage(sourceLang)
	if err != nil {
		return Input{}, fmt.Errorf("source_lang: %w", err)
	}
	target, targetName, err := e.resolveLanguage(targetLang)
	if err != nil {
		return Input{}, fmt.Errorf("target_lang: %w", err)
	}

	return Input{
		Text:       normalized,
		SourceCode: strings.TrimSpace(sourceLang),
		TargetCode: strings.TrimSpace(targetLang),
		Source:     source,
		Target:     target,
		SourceName: sourceName,
		TargetName: targetName,
	}, nil
}

func (e *Engine) resolveLanguage(code string) (language.Tag, string, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return language.Und, "", fmt.Errorf("%w: empty language code", ErrInvalidInput)
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return language.Und, "", fmt.Errorf("%w: %q: %v", ErrUnsupportedLanguage, trimmed, err)
	}
	if len(e.languages) > 0 && !e.languages[strings.ToLower(trimmed)] {
		return language.Und, "", fmt.Errorf("%w: %q is not served by model %s", ErrUnsupportedLanguage, trimmed, e.manifest.Name)
	}

	name := display.English.Languages().Name(tag)
	if name == "" {
		name = trimmed
	}
	return tag, name, nil
}

// decode is stage C: drop control tokens and generation artifacts from raw
// model output.
func (e *Engine) decode(raw string, input Input) string {
	text := thinkingBlockRe.ReplaceAllString(raw, "")
	for _, token := range e.manifest.specialTokens() {
		text = strings.ReplaceAll(text, token, " ")
	}
	text = languageMarkerRe.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(horizontalRunRe.ReplaceAllString(line, " "))
	}
	text = strings.TrimSpace(strings.Join(lines, "\n"))

	if isQuoted(text) && !isQuoted(input.Text) {
		text = strings.TrimSpace(text[1 : len(text)-1])
	}
	return text
}

func isQuoted(text string) bool {
	if len(text) < 2 {
		return false
	}
	first, last := text[0], text[len(text)-1]
	return (first == '"' && last == '"') || (first == '\'' && last == '\'')
}
