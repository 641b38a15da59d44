// Package i18n holds the static pt/en message catalogs and the mapping of
// technical errors (DB, auth, storage) to safe, localized, user-facing
// messages. Internal identifiers — table names, constraint names, RPC-style
// error details — must never reach a client.
package i18n

import "strings"

// Language codes supported by the UI. Portuguese is the default.
const (
	LangPT = "pt"
	LangEN = "en"
)

// Key is a message catalog key.
type Key string

const (
	KeyGenericError     Key = "genericError"
	KeyNotAuthorized    Key = "notAuthorized"
	KeyInvalidEmail     Key = "invalidEmail"
	KeyCannotChangeSelf Key = "cannotChangeSelf"
	KeyInvalidLogin     Key = "invalidLogin"
	KeyNotFound         Key = "notFound"
	KeyEmailTaken       Key = "emailTaken"
	KeyActivityOpen     Key = "activityAlreadyOpen"
	KeyNoOpenActivity   Key = "noOpenActivity"
	KeyActivityClosed   Key = "activityAlreadyClosed"
	KeyOdometerBelow    Key = "odometerBelowStart"
	KeyImageTooLarge    Key = "imageTooLarge"
	KeyInvalidImageType Key = "invalidImageType"
	KeyFileTooLarge     Key = "fileTooLarge"
	KeyInvalidFileType  Key = "invalidFileType"
	KeyInvalidDocType   Key = "invalidDocType"
)

var catalogs = map[string]map[Key]string{
	LangPT: {
		KeyGenericError:     "Ocorreu um erro. Tente novamente.",
		KeyNotAuthorized:    "Não tem permissão para esta operação.",
		KeyInvalidEmail:     "E-mail inválido.",
		KeyCannotChangeSelf: "Não pode alterar o seu próprio papel.",
		KeyInvalidLogin:     "Credenciais inválidas.",
		KeyNotFound:         "Registo não encontrado.",
		KeyEmailTaken:       "Este e-mail já está registado.",
		KeyActivityOpen:     "Já existe uma atividade em aberto.",
		KeyNoOpenActivity:   "Não existe nenhuma atividade em aberto.",
		KeyActivityClosed:   "A atividade já foi terminada.",
		KeyOdometerBelow:    "O hodómetro final não pode ser inferior ao inicial.",
		KeyImageTooLarge:    "Imagem demasiado grande (máx. 5MB).",
		KeyInvalidImageType: "Tipo de imagem inválido.",
		KeyFileTooLarge:     "Ficheiro demasiado grande (máx. 10MB).",
		KeyInvalidFileType:  "Tipo de ficheiro inválido.",
		KeyInvalidDocType:   "Tipo de documento inválido.",
	},
	LangEN: {
		KeyGenericError:     "Something went wrong. Please try again.",
		KeyNotAuthorized:    "You are not allowed to perform this operation.",
		KeyInvalidEmail:     "Invalid email.",
		KeyCannotChangeSelf: "You cannot change your own role.",
		KeyInvalidLogin:     "Invalid credentials.",
		KeyNotFound:         "Record not found.",
		KeyEmailTaken:       "This email is already registered.",
		KeyActivityOpen:     "There is already an open activity.",
		KeyNoOpenActivity:   "There is no open activity.",
		KeyActivityClosed:   "The activity is already closed.",
		KeyOdometerBelow:    "End odometer cannot be below the start value.",
		KeyImageTooLarge:    "Image too large (max 5MB).",
		KeyInvalidImageType: "Invalid image type.",
		KeyFileTooLarge:     "File too large (max 10MB).",
		KeyInvalidFileType:  "Invalid file type.",
		KeyInvalidDocType:   "Invalid document type.",
	},
}

// T resolves a catalog key for the given language, falling back to Portuguese
// and finally to the generic error message.
func T(lang string, key Key) string {
	cat, ok := catalogs[lang]
	if !ok {
		cat = catalogs[LangPT]
	}
	if msg, ok := cat[key]; ok {
		return msg
	}
	return catalogs[LangPT][KeyGenericError]
}

// Normalize reduces an arbitrary language tag ("en-US", "pt-BR") to a
// supported language code.
func Normalize(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if idx := strings.IndexAny(tag, "-_,;"); idx > 0 {
		tag = tag[:idx]
	}
	switch tag {
	case LangEN:
		return LangEN
	default:
		return LangPT
	}
}

// MapPublicError maps a technical error to a localized public message.
// Matching is deliberately by substring/code tokens: the set of known cases is
// small and the fallback is always the generic message (never the raw error).
func MapPublicError(err error, lang string) string {
	generic := T(lang, KeyGenericError)
	if err == nil {
		return generic
	}
	lower := strings.ToLower(err.Error())

	switch {
	// Permission denied — Postgres 42501 or our own token
	case strings.Contains(lower, "not_authorized"), strings.Contains(lower, "42501"):
		return T(lang, KeyNotAuthorized)
	case strings.Contains(lower, "invalid_email"):
		return T(lang, KeyInvalidEmail)
	case strings.Contains(lower, "cannot_change_self"):
		return T(lang, KeyCannotChangeSelf)
	// Avoid user enumeration: unknown accounts answer with the generic message.
	// Checked before the plain not_found token, which it contains.
	case strings.Contains(lower, "user_not_found"):
		return generic
	case strings.Contains(lower, "not_found"):
		return T(lang, KeyNotFound)
	case strings.Contains(lower, "email_taken"):
		return T(lang, KeyEmailTaken)
	case strings.Contains(lower, "activity_already_open"):
		return T(lang, KeyActivityOpen)
	case strings.Contains(lower, "no_open_activity"):
		return T(lang, KeyNoOpenActivity)
	case strings.Contains(lower, "activity_already_closed"):
		return T(lang, KeyActivityClosed)
	case strings.Contains(lower, "end_odometer_below_start"):
		return T(lang, KeyOdometerBelow)
	case strings.Contains(lower, "image_too_large"):
		return T(lang, KeyImageTooLarge)
	case strings.Contains(lower, "invalid_image_type"):
		return T(lang, KeyInvalidImageType)
	case strings.Contains(lower, "file_too_large"):
		return T(lang, KeyFileTooLarge)
	case strings.Contains(lower, "invalid_file_type"), strings.Contains(lower, "invalid_photo_prefix"):
		return T(lang, KeyInvalidFileType)
	case strings.Contains(lower, "invalid_doc_type"):
		return T(lang, KeyInvalidDocType)
	// Same message whether the account is unknown or the password is wrong.
	case strings.Contains(lower, "invalid login"):
		return T(lang, KeyInvalidLogin)
	// Auth/session issues never leak token details
	case strings.Contains(lower, "not_authenticated"),
		strings.Contains(lower, "jwt"):
		return generic
	case strings.Contains(lower, "signed_url_missing"):
		return generic
	default:
		return generic
	}
}
