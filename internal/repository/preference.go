package repository

import (
	"context"

	"github.com/lusotown/community-platform/internal/model"
	"github.com/lusotown/community-platform/internal/storage"
)

// PreferenceRepo persists the language preference that drives all display
// text.
type PreferenceRepo struct {
	store storage.Store
}

// NewPreferenceRepo returns a PreferenceRepo bound to the given storage
// backend.
func NewPreferenceRepo(store storage.Store) *PreferenceRepo {
	return &PreferenceRepo{store: store}
}

func languageKey(userID string) string { return "lang:" + userID }

// Language returns the stored language code, defaulting to English.
func (r *PreferenceRepo) Language(ctx context.Context, userID string) string {
	var lang string
	if !loadState(ctx, r.store, languageKey(userID), &lang) {
		return model.LanguageEN
	}
	if lang != model.LanguageEN && lang != model.LanguagePT {
		return model.LanguageEN
	}
	return lang
}

// SetLanguage stores the language code. Only English and Portuguese are
// accepted.
func (r *PreferenceRepo) SetLanguage(ctx context.Context, userID, lang string) error {
	if lang != model.LanguageEN && lang != model.LanguagePT {
		return model.ErrUnsupportedLanguage
	}
	return saveState(ctx, r.store, languageKey(userID), lang)
}
