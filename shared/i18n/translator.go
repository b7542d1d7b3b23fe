// Package i18n turns provider error codes and application message keys into
// localized user-facing text.
package i18n

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/tr"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	trtranslations "github.com/go-playground/validator/v10/translations/tr"

	"github.com/vasapolrittideah/school-site-api/shared/provider"
)

// Supported locales.
const (
	LocaleTurkish = "tr"
	LocaleEnglish = "en"
)

var ErrUnsupportedLocale = errors.New("unsupported locale")

// Translator resolves messages for a single locale.
type Translator struct {
	locale string
	trans  ut.Translator
}

// New creates a translator for the given locale. An empty locale selects
// Turkish.
func New(locale string) (*Translator, error) {
	if locale == "" {
		locale = LocaleTurkish
	}

	var (
		fallback locales.Translator
		table    map[string]string
	)
	switch locale {
	case LocaleTurkish:
		fallback, table = tr.New(), turkish
	case LocaleEnglish:
		fallback, table = en.New(), english
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLocale, locale)
	}

	uni := ut.New(fallback, fallback)
	trans, _ := uni.GetTranslator(locale)

	for key, text := range table {
		if err := trans.Add(key, text, false); err != nil {
			return nil, fmt.Errorf("failed to add %q translation: %w", key, err)
		}
	}

	return &Translator{locale: locale, trans: trans}, nil
}

// MustNew is like New but panics on an unsupported locale.
func MustNew(locale string) *Translator {
	t, err := New(locale)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Translator) Locale() string {
	return t.locale
}

// Message returns the text for an application message key. Unknown keys are
// returned unchanged.
func (t *Translator) Message(key string) string {
	text, err := t.trans.T(key)
	if err != nil || text == "" {
		return key
	}
	return text
}

// Translate returns the user-facing text for err. Known provider codes map to
// the localized table; anything else passes the provider's own message
// through.
func (t *Translator) Translate(err error) string {
	if err == nil {
		return ""
	}

	var pErr *provider.Error
	if !errors.As(err, &pErr) {
		return err.Error()
	}

	if text, tErr := t.trans.T(pErr.Code); tErr == nil && text != "" {
		return text
	}

	return pErr.Message
}

// RegisterValidator installs the locale's default field translations on v.
func (t *Translator) RegisterValidator(v *validator.Validate) error {
	switch t.locale {
	case LocaleEnglish:
		return entranslations.RegisterDefaultTranslations(v, t.trans)
	default:
		return trtranslations.RegisterDefaultTranslations(v, t.trans)
	}
}

// ValidationMessage joins the translated messages of a validation failure.
// Validators passed here must have been set up with RegisterValidator.
func (t *Translator) ValidationMessage(err error) string {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return t.Message(MsgInvalidRequestBody)
	}

	msgs := make([]string, 0, len(vErrs))
	for _, fe := range vErrs {
		msgs = append(msgs, fe.Translate(t.trans))
	}

	return strings.Join(msgs, ", ")
}
