package contextutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalizedMessages_AddMessage_GetMessage(t *testing.T) {
	lm := NewLocalizedMessages()

	lm.AddMessage(ErrorCodeInvalidInput, LocaleEnglish, "Invalid input")
	lm.AddMessage(ErrorCodeInvalidInput, LocaleTurkish, "Geçersiz giriş")

	assert.Equal(t, "Invalid input", lm.GetMessage(ErrorCodeInvalidInput, LocaleEnglish))
	assert.Equal(t, "Geçersiz giriş", lm.GetMessage(ErrorCodeInvalidInput, LocaleTurkish))

	// Fallback to English for unsupported locale
	assert.Equal(t, "Invalid input", lm.GetMessage(ErrorCodeInvalidInput, Locale("de")))

	assert.Equal(t, "An error occurred", lm.GetMessage(ErrorCode("UNKNOWN_ERROR"), LocaleEnglish))
}

func TestLocalizedMessages_GetMessageWithDetails(t *testing.T) {
	lm := NewLocalizedMessages()
	lm.AddMessage(ErrorCodeInfinitiveNotFound, LocaleEnglish, "Infinitive not found")

	msg := lm.GetMessageWithDetails(ErrorCodeInfinitiveNotFound, LocaleEnglish, "oxoxu")
	assert.Equal(t, "Infinitive not found: oxoxu", msg)

	msg = lm.GetMessageWithDetails(ErrorCodeInfinitiveNotFound, LocaleEnglish, "")
	assert.Equal(t, "Infinitive not found", msg)
}

func TestLocalizedMessages_LoadMessagesFromJSON(t *testing.T) {
	lm := NewLocalizedMessages()
	err := lm.LoadMessagesFromJSON(`{
		"CONFLICTING_MARKERS": {"en": "Conflicting markers", "tr": "Çakışan ekler"}
	}`)
	require.NoError(t, err)

	assert.Equal(t, "Çakışan ekler", lm.GetMessage(ErrorCodeConflictingMarkers, LocaleTurkish))
	assert.ElementsMatch(t, []Locale{LocaleEnglish, LocaleTurkish}, lm.GetSupportedLocales())

	assert.Error(t, lm.LoadMessagesFromJSON("{not json"))
}

func TestGlobalMessagesCoverConjugationErrors(t *testing.T) {
	codes := []ErrorCode{
		ErrorCodeInvalidInput,
		ErrorCodeInvalidSubjectObject,
		ErrorCodeMarkerRequiresObject,
		ErrorCodeConflictingMarkers,
		ErrorCodeVerbClassForbidsObject,
		ErrorCodeVerbClassForbidsMarker,
		ErrorCodeInfinitiveNotFound,
		ErrorCodeNoOutputProduced,
		ErrorCodeInvalidTenseOrAspect,
	}
	for _, code := range codes {
		t.Run(string(code), func(t *testing.T) {
			en := GetLocalizedMessage(code, LocaleEnglish)
			tr := GetLocalizedMessage(code, LocaleTurkish)
			assert.NotEqual(t, "An error occurred", en)
			assert.NotEqual(t, en, tr)
		})
	}
}
