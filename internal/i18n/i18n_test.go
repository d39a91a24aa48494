// internal/i18n/i18n_test.go
package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslations(t *testing.T) {
	require.NoError(t, Initialize("en"))

	assert.Equal(t, "en", DefaultLanguage())
	assert.ElementsMatch(t, []string{"en", "zh_TW", "zh_CN"}, GetSupportedLanguages())

	assert.Equal(t, "Draft d-1 not found", T("en", KeyDraftNotFound, "d-1"))
	assert.NotEqual(t, T("en", KeyDraftNoChanges), T("zh_TW", KeyDraftNoChanges))

	// Unknown languages fall back to the default, unknown keys to the key.
	assert.Equal(t, T("en", KeyDraftDeleted), T("fr", KeyDraftDeleted))
	assert.Equal(t, "missing.key", T("en", "missing.key"))
}

func TestCatalogsDefineEveryKey(t *testing.T) {
	require.NoError(t, Initialize("en"))

	keys := []string{
		KeySuccess, KeyError, KeyAuthInvalidToken,
		KeyDraftCreated, KeyDraftUpdated, KeyDraftDeleted, KeyDraftNotFound,
		KeyDraftAccessDenied, KeyDraftNoChanges, KeyDraftIDRequired,
		KeyExportUnsupported, KeyToolUnknown, KeyValidationInvalid, KeyRateLimited,
	}

	for _, lang := range GetSupportedLanguages() {
		for _, key := range keys {
			_, ok := instance.lookup(lang, key)
			assert.True(t, ok, "%s missing %s", lang, key)
		}
	}
}
