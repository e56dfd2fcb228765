package letsread

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexString accepts either a JSON string or a JSON number. Upstream ids
// and reading levels are not consistent about which one they send.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("letsread: expected string or number, got %s", data)
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }

// Int parses the leading decimal digits, ignoring anything after them.
// ok is false when there are no leading digits.
func (f FlexString) Int() (n int, ok bool) {
	s := strings.TrimSpace(string(f))
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return v, true
}

// IDName is the {id, name} shape shared by tags and language variants.
type IDName struct {
	ID   FlexString `json:"id"`
	Name string     `json:"name"`
}

type Language struct {
	ID   FlexString `json:"id"`
	Name string     `json:"name"`
}

// CatalogPage matches /api/book/elastic/search. A body without "other"
// is rejected; an empty array is a valid, empty page.
type CatalogPage struct {
	Books  []BookSummary `json:"other" validate:"required,dive"`
	Cursor *string       `json:"cursorWebSafeString"`
}

// NextCursor reports the cursor of the following page. A null, missing or
// empty cursor ends the walk.
func (p *CatalogPage) NextCursor() (string, bool) {
	if p.Cursor == nil || *p.Cursor == "" {
		return "", false
	}
	return *p.Cursor, true
}

// BookSummary is one entry of a catalog page.
type BookSummary struct {
	MasterBookID         string     `json:"masterBookId" validate:"required"`
	Name                 string     `json:"name"`
	Description          string     `json:"description"`
	ThumborCoverImageURL string     `json:"thumborCoverImageUrl"`
	Language             Language   `json:"language"`
	LanguageID           FlexString `json:"languageId"`
	ReadingLevel         FlexString `json:"readingLevel"`
	Tags                 []IDName   `json:"tags"`
	AvailableLanguages   []IDName   `json:"availableLanguages"`
}

// BookDetail matches /api/v5/book/preview/language/{lId}/book/{id}.
type BookDetail struct {
	Pages                []Page                    `json:"pages" validate:"required,dive"`
	CollaboratorsByRole  map[string][]Collaborator `json:"collaboratorsByRole"`
	ThumborCoverImageURL string                    `json:"thumborCoverImageUrl"`
}

type Page struct {
	ID                        FlexString `json:"id" validate:"required"`
	ExtractedLongContentValue string     `json:"extractedLongContentValue"`
	ImageURL                  string     `json:"imageUrl"`
}

type Collaborator struct {
	Name string `json:"name"`
}
