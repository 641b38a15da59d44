package i18n

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"pt":    LangPT,
		"pt-BR": LangPT,
		"en":    LangEN,
		"en-US": LangEN,
		"EN_gb": LangEN,
		"fr":    LangPT, // unsupported falls back to the default
		"":      LangPT,
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), "Normalize(%q)", in)
	}
}

func TestTFallsBackToPortuguese(t *testing.T) {
	assert.Equal(t, catalogs[LangPT][KeyNotFound], T("de", KeyNotFound))
	assert.Equal(t, catalogs[LangPT][KeyGenericError], T(LangPT, Key("no_such_key")))
}

func TestMapPublicErrorKnownTokens(t *testing.T) {
	cases := []struct {
		err  error
		want Key
	}{
		{errors.New("not_authorized"), KeyNotAuthorized},
		{errors.New("pq: permission denied (SQLSTATE 42501)"), KeyNotAuthorized},
		{errors.New("not_found"), KeyNotFound},
		{errors.New("email_taken"), KeyEmailTaken},
		{errors.New("activity_already_open"), KeyActivityOpen},
		{errors.New("no_open_activity"), KeyNoOpenActivity},
		{errors.New("activity_already_closed"), KeyActivityClosed},
		{errors.New("end_odometer_below_start"), KeyOdometerBelow},
		{errors.New("image_too_large"), KeyImageTooLarge},
		{errors.New("invalid_image_type"), KeyInvalidImageType},
		{errors.New("file_too_large"), KeyFileTooLarge},
		{errors.New("invalid_file_type"), KeyInvalidFileType},
		{errors.New("invalid_photo_prefix"), KeyInvalidFileType},
		{errors.New("invalid_doc_type"), KeyInvalidDocType},
		{errors.New("invalid_email"), KeyInvalidEmail},
		{errors.New("cannot_change_self"), KeyCannotChangeSelf},
		{errors.New("invalid login credentials"), KeyInvalidLogin},
	}
	for _, c := range cases {
		assert.Equal(t, T(LangEN, c.want), MapPublicError(c.err, LangEN), "token %q (en)", c.err)
		assert.Equal(t, T(LangPT, c.want), MapPublicError(c.err, LangPT), "token %q (pt)", c.err)
	}
}

// Unknown accounts must answer with the generic message even though the token
// contains the plain "not_found" substring.
func TestMapPublicErrorHidesUnknownUsers(t *testing.T) {
	got := MapPublicError(errors.New("user_not_found"), LangEN)
	assert.Equal(t, T(LangEN, KeyGenericError), got)
	assert.NotEqual(t, T(LangEN, KeyNotFound), got)
}

func TestMapPublicErrorNeverLeaksInternals(t *testing.T) {
	for _, err := range []error{
		errors.New(`pq: duplicate key value violates unique constraint "uni_activities_open_per_operator"`),
		errors.New("jwt: token signature invalid"),
		errors.New("invalid login credentials"),
		nil,
	} {
		got := MapPublicError(err, LangEN)
		assert.NotContains(t, got, "pq:")
		assert.NotContains(t, got, "jwt")
		assert.NotContains(t, got, "constraint")
	}
}
