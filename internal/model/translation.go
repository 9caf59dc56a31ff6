package model

// TranslationRequest is the transient input of a translate call. It is never stored.
type TranslationRequest struct {
	Text       string
	SourceLang string
	TargetLang string
}

// Translation is a translated text with per-stage timings in seconds.
// ID is zero until the record has been persisted by the gateway.
type Translation struct {
	ID              int64
	OriginalText    string
	TranslatedText  string
	SourceLang      string
	TargetLang      string
	TotalTime       float64
	InputPrepTime   float64
	TranslationTime float64
	DecodingTime    float64
	ModelLoadTime   float64
}

// Persisted reports whether the store has assigned an id.
func (t Translation) Persisted() bool {
	return t.ID > 0
}
