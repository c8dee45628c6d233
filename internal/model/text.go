package model

import "strings"

// Text is a translatable field. It holds either an original value or a
// translated value together with the original it replaced.
type Text struct {
	current    string
	original   string
	translated bool
}

// NewText returns an untranslated field.
func NewText(s string) Text {
	return Text{current: s}
}

// TranslatedText returns a field showing current whose original was original.
func TranslatedText(current, original string) Text {
	return Text{current: current, original: original, translated: true}
}

// Value returns the text currently shown.
func (t Text) Value() string { return t.current }

// IsTranslated reports whether the field carries a translation.
func (t Text) IsTranslated() bool { return t.translated }

// Original returns the pre-translation text if the field is translated.
func (t Text) Original() (string, bool) {
	return t.original, t.translated
}

// IsBlank reports whether the current value is empty after trimming.
func (t Text) IsBlank() bool {
	return strings.TrimSpace(t.current) == ""
}

// Set replaces the current value. An existing original is kept.
func (t *Text) Set(s string) {
	t.current = s
}

// Translate shows s. The original is captured only on the first translation,
// so repeated calls keep the true original.
func (t *Text) Translate(s string) {
	if !t.translated {
		t.original = t.current
		t.translated = true
	}
	t.current = s
}

// TranslateFrom shows s and records original as the shadow unless one exists.
func (t *Text) TranslateFrom(s, original string) {
	if !t.translated {
		t.original = original
		t.translated = true
	}
	t.current = s
}

// Revert restores the original. It returns false if the field was not translated.
func (t *Text) Revert() bool {
	if !t.translated {
		return false
	}
	t.current = t.original
	t.original = ""
	t.translated = false
	return true
}
