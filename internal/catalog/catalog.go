package catalog

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("not found")

// IDName is a tag or an available-language variant.
type IDName struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Book is keyed by MasterBookID. A re-sync replaces every other field.
type Book struct {
	MasterBookID       string    `json:"masterBookId"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	CoverImage         string    `json:"coverImage"`
	Language           string    `json:"language"`
	LanguageID         string    `json:"languageId"`
	ReadingLevel       *int      `json:"readingLevel"`
	TotalPages         int       `json:"totalPages"`
	Authors            string    `json:"authors"`
	Tags               []IDName  `json:"tags"`
	AvailableLanguages []IDName  `json:"availableLanguages"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// BookDetail is one page of a book, keyed by BookDetailID across the whole corpus.
type BookDetail struct {
	BookDetailID string `json:"bookDetailId"`
	BookID       string `json:"bookId"`
	Content      string `json:"content"`
	ContentRaw   string `json:"contentRaw,omitempty"`
	ImageURL     string `json:"imageUrl"`
	PageNum      int    `json:"pageNum"`
}

// ImageRef is a source image to store as {bookId}/{Page}. Page 0 is the cover.
type ImageRef struct {
	Page int
	URL  string
}

type ListQuery struct {
	Language string
	Limit    int
	Offset   int
}
