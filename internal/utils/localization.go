package contextutils

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Locale represents a language locale (e.g., "en", "tr")
type Locale string

const (
	// LocaleEnglish represents English language
	LocaleEnglish Locale = "en"
	// LocaleTurkish represents Turkish language
	LocaleTurkish Locale = "tr"
)

// LocalizedMessages contains localized error messages for different locales
type LocalizedMessages struct {
	messages map[ErrorCode]map[Locale]string
}

// NewLocalizedMessages creates a new instance of localized messages
func NewLocalizedMessages() *LocalizedMessages {
	return &LocalizedMessages{
		messages: make(map[ErrorCode]map[Locale]string),
	}
}

// AddMessage adds a localized message for a specific error code and locale
func (lm *LocalizedMessages) AddMessage(code ErrorCode, locale Locale, message string) {
	if lm.messages[code] == nil {
		lm.messages[code] = make(map[Locale]string)
	}
	lm.messages[code][locale] = message
}

// GetMessage returns the localized message for an error code and locale
func (lm *LocalizedMessages) GetMessage(code ErrorCode, locale Locale) string {
	if localeMessages, exists := lm.messages[code]; exists {
		if message, exists := localeMessages[locale]; exists {
			return message
		}

		// Fallback to English if the specific locale doesn't have a message
		if message, exists := localeMessages[LocaleEnglish]; exists {
			return message
		}
	}

	return getDefaultMessage(code)
}

// GetMessageWithDetails returns a localized message with additional details
func (lm *LocalizedMessages) GetMessageWithDetails(code ErrorCode, locale Locale, details string) string {
	message := lm.GetMessage(code, locale)
	if details != "" {
		return fmt.Sprintf("%s: %s", message, details)
	}
	return message
}

// getDefaultMessage returns a default English message for error codes
func getDefaultMessage(code ErrorCode) string {
	switch code {
	case ErrorCodeDatabaseConnection:
		return "Database connection failed"
	case ErrorCodeDatabaseQuery:
		return "Database query failed"
	case ErrorCodeRecordNotFound:
		return "Record not found"
	case ErrorCodeInvalidInput:
		return "Invalid input"
	case ErrorCodeValidationFailed:
		return "Validation failed"
	case ErrorCodeInvalidSubjectObject:
		return "Invalid subject and object combination"
	case ErrorCodeMarkerRequiresObject:
		return "Applicative and causative markers require an object"
	case ErrorCodeConflictingMarkers:
		return "Conflicting markers"
	case ErrorCodeVerbClassForbidsObject:
		return "This verb does not take an object"
	case ErrorCodeVerbClassForbidsMarker:
		return "This verb does not take applicative or causative markers"
	case ErrorCodeInfinitiveNotFound:
		return "Infinitive not found"
	case ErrorCodeNoOutputProduced:
		return "No forms were produced for this request"
	case ErrorCodeInvalidTenseOrAspect:
		return "Invalid tense or aspect"
	case ErrorCodeServiceUnavailable:
		return "Service temporarily unavailable"
	case ErrorCodeTimeout:
		return "Request timeout"
	case ErrorCodeInternalError:
		return "Internal server error"
	case ErrorCodeDictionaryInvalid:
		return "Verb dictionary is invalid"
	default:
		return "An error occurred"
	}
}

// LoadMessagesFromJSON loads localized messages from a JSON structure
func (lm *LocalizedMessages) LoadMessagesFromJSON(jsonData string) error {
	var data map[string]map[string]string
	if err := json.Unmarshal([]byte(jsonData), &data); err != nil {
		return WrapError(err, "failed to parse localization JSON")
	}

	for codeStr, localeMessages := range data {
		code := ErrorCode(codeStr)
		for localeStr, message := range localeMessages {
			lm.AddMessage(code, Locale(localeStr), message)
		}
	}

	return nil
}

// GetSupportedLocales returns a list of supported locales
func (lm *LocalizedMessages) GetSupportedLocales() []Locale {
	locales := make(map[Locale]bool)

	for _, localeMessages := range lm.messages {
		for locale := range localeMessages {
			locales[locale] = true
		}
	}

	result := make([]Locale, 0, len(locales))
	for locale := range locales {
		result = append(result, locale)
	}

	return result
}

// ParseLocale parses a locale string (e.g., "en-US", "tr-TR", "tr,en;q=0.8") and returns the language part
func ParseLocale(localeStr string) Locale {
	localeStr = strings.TrimSpace(localeStr)
	if i := strings.IndexAny(localeStr, ",;"); i >= 0 {
		localeStr = localeStr[:i]
	}
	parts := strings.Split(localeStr, "-")
	if len(parts) > 0 && parts[0] != "" {
		return Locale(strings.ToLower(parts[0]))
	}
	return LocaleEnglish
}

// Global instance of localized messages
var globalLocalizedMessages = NewLocalizedMessages()

func init() {
	turkish := map[ErrorCode]string{
		ErrorCodeInvalidInput:           "Geçersiz giriş",
		ErrorCodeValidationFailed:       "Doğrulama başarısız",
		ErrorCodeRecordNotFound:         "Kayıt bulunamadı",
		ErrorCodeInvalidSubjectObject:   "Geçersiz özne ve nesne birleşimi",
		ErrorCodeMarkerRequiresObject:   "Uygulama ve ettirgen ekleri bir nesne gerektirir",
		ErrorCodeConflictingMarkers:     "Çakışan ekler",
		ErrorCodeVerbClassForbidsObject: "Bu fiil nesne almaz",
		ErrorCodeVerbClassForbidsMarker: "Bu fiil uygulama veya ettirgen eki almaz",
		ErrorCodeInfinitiveNotFound:     "Mastar bulunamadı",
		ErrorCodeNoOutputProduced:       "Bu istek için çekim üretilmedi",
		ErrorCodeInvalidTenseOrAspect:   "Geçersiz zaman veya görünüş",
		ErrorCodeInternalError:          "Sunucu iç hatası",
		ErrorCodeDictionaryInvalid:      "Fiil sözlüğü geçersiz",
	}
	for code, message := range turkish {
		globalLocalizedMessages.AddMessage(code, LocaleEnglish, getDefaultMessage(code))
		globalLocalizedMessages.AddMessage(code, LocaleTurkish, message)
	}
}

// GetLocalizedMessage returns a localized error message using the global instance
func GetLocalizedMessage(code ErrorCode, locale Locale) string {
	return globalLocalizedMessages.GetMessage(code, locale)
}

// GetLocalizedMessageWithDetails returns a localized error message with details
func GetLocalizedMessageWithDetails(code ErrorCode, locale Locale, details string) string {
	return globalLocalizedMessages.GetMessageWithDetails(code, locale, details)
}

// SetGlobalLocalizedMessages sets the global localized messages instance
func SetGlobalLocalizedMessages(messages *LocalizedMessages) {
	globalLocalizedMessages = messages
}
