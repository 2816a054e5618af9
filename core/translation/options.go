// Package translation defines the boundary to text translation providers.
package translation

// TranslationOptions configures one translation request.
type TranslationOptions struct {
	// SourceLanguage is the language of the input text, e.g. "English".
	SourceLanguage string
	// TargetLanguage is the language to translate into, e.g. "Spanish".
	TargetLanguage string
}

type TranslationOption func(*TranslationOptions)

func WithSourceLanguage(language string) TranslationOption {
	return func(o *TranslationOptions) {
		if language != "" {
			o.SourceLanguage = language
		}
	}
}

func WithTargetLanguage(language string) TranslationOption {
	return func(o *TranslationOptions) {
		if language != "" {
			o.TargetLanguage = language
		}
	}
}
