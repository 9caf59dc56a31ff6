package client

import (
	"fmt"
	"io"
	"text/tabwriter"

	"polyglot/backend/internal/model"
)

// PrintTranslation writes the result block, or "Translation failed." for nil.
func PrintTranslation(w io.Writer, t *model.Translation) {
	if t == nil {
		fmt.Fprintln(w, "Translation failed.")
		return
	}
	fmt.Fprintln(w, "\nTranslation Result:")
	fmt.Fprintf(w, "Original text: %s\n", t.OriginalText)
	fmt.Fprintf(w, "Translated text: %s\n", t.TranslatedText)
	fmt.Fprintf(w, "Source language: %s\n", t.SourceLang)
	fmt.Fprintf(w, "Target language: %s\n", t.TargetLang)
	fmt.Fprintf(w, "Total translation time: %.2f seconds\n", t.TotalTime)
	fmt.Fprintf(w, "Input preparation time: %.2f seconds\n", t.InputPrepTime)
	fmt.Fprintf(w, "Translation time: %.2f seconds\n", t.TranslationTime)
	fmt.Fprintf(w, "Decoding time: %.2f seconds\n", t.DecodingTime)
}

// PrintTranslations writes one row per stored record.
func PrintTranslations(w io.Writer, translations []model.Translation) error {
	if len(translations) == 0 {
		_, err := fmt.Fprintln(w, "No translations stored.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSOURCE\tTARGET\tTOTAL\tORIGINAL\tTRANSLATED")
	for _, t := range translations {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2fs\t%s\t%s\n", t.ID, t.SourceLang, t.TargetLang, t.TotalTime, t.OriginalText, t.TranslatedText)
	}
	return tw.Flush()
}
