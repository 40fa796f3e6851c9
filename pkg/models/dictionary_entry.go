package models

import (
	"time"

	"github.com/uptrace/bun"
)

// DictionaryEntry is one curated search-keyword translation, keyed by the
// canonical answer string. The JSON field names match the admin UI payloads.
type DictionaryEntry struct {
	bun.BaseModel `bun:"table:dictionary,alias:d"`

	Answer        string    `bun:"answer,pk" json:"answer"`
	InputHiragana string    `bun:"input_hiragana,nullzero" json:"inputHiragana"`
	InputRomaji   string    `bun:"input_romaji,nullzero" json:"inputRomaji"`
	InputEnglish  *string   `bun:"input_english" json:"inputEnglish"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
