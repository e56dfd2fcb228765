// Package expand turns a catalog summary and its detail payload into the
// Book, page records and image references that a sync pass persists.
package expand

import (
	"errors"
	"fmt"
	"strings"

	"bookmirror/internal/catalog"
	"bookmirror/internal/normalize"
	"bookmirror/internal/platform/letsread"
)

const authorRole = "AUTHOR"

// ErrMissingAuthor means the detail payload has no AUTHOR list, either because
// the role is absent or because it is null. Upstream always sends one, so this
// stops the run instead of storing "". An empty list is accepted.
var ErrMissingAuthor = errors.New("expand: detail payload has no AUTHOR collaborators")

// Result is the expansion of one book.
type Result struct {
	Book    catalog.Book
	Details []catalog.BookDetail
	// Images holds the cover as page 0 followed by one entry per accepted page.
	Images []catalog.ImageRef
}

// Expand accepts pages in upstream order, dropping pages without an image
// and later duplicates of an already accepted page id. Accepted pages are
// numbered from 1 and TotalPages counts them.
func Expand(summary letsread.BookSummary, detail letsread.BookDetail) (*Result, error) {
	authors, err := joinAuthors(detail.CollaboratorsByRole)
	if err != nil {
		return nil, fmt.Errorf("book %s: %w", summary.MasterBookID, err)
	}

	res := &Result{
		Details: make([]catalog.BookDetail, 0, len(detail.Pages)),
		Images:  make([]catalog.ImageRef, 0, len(detail.Pages)+1),
	}
	res.Images = append(res.Images, catalog.ImageRef{Page: 0, URL: detail.ThumborCoverImageURL})

	seen := make(map[string]struct{}, len(detail.Pages))
	pageNum := 1
	for _, page := range detail.Pages {
		if page.ImageURL == "" {
			continue
		}
		id := page.ID.String()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		res.Details = append(res.Details, catalog.BookDetail{
			BookDetailID: id,
			BookID:       summary.MasterBookID,
			Content:      normalize.Content(page.ExtractedLongContentValue),
			ContentRaw:   page.ExtractedLongContentValue,
			ImageURL:     page.ImageURL,
			PageNum:      pageNum,
		})
		res.Images = append(res.Images, catalog.ImageRef{Page: pageNum, URL: page.ImageURL})
		pageNum++
	}

	res.Book = catalog.Book{
		MasterBookID:       summary.MasterBookID,
		Name:               summary.Name,
		Description:        summary.Description,
		CoverImage:         summary.ThumborCoverImageURL,
		Language:           summary.Language.Name,
		LanguageID:         summary.LanguageID.String(),
		ReadingLevel:       readingLevel(summary.ReadingLevel),
		TotalPages:         len(res.Details),
		Authors:            authors,
		Tags:               idNames(summary.Tags),
		AvailableLanguages: idNames(summary.AvailableLanguages),
	}
	return res, nil
}

func joinAuthors(byRole map[string][]letsread.Collaborator) (string, error) {
	collaborators, ok := byRole[authorRole]
	if !ok || collaborators == nil {
		return "", ErrMissingAuthor
	}
	names := make([]string, len(collaborators))
	for i, c := range collaborators {
		names[i] = c.Name
	}
	return strings.TrimSpace(strings.Join(names, ", ")), nil
}

func readingLevel(raw letsread.FlexString) *int {
	n, ok := raw.Int()
	if !ok {
		return nil
	}
	return &n
}

func idNames(in []letsread.IDName) []catalog.IDName {
	out := make([]catalog.IDName, len(in))
	for i, v := range in {
		out[i] = catalog.IDName{ID: v.ID.String(), Name: v.Name}
	}
	return out
}
