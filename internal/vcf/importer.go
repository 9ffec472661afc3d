// Package vcf imports friend candidates from vCard address books, either a
// local .vcf file or a CardDAV/WebDAV export fetched over HTTP.
package vcf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/emersion/go-vcard"

	"github.com/lowhung/wagwan/internal/config"
)

// Card is one contact candidate extracted from a vCard.
type Card struct {
	Name  string
	Phone string
	Email string
	Notes string
}

// Source selects where the vCard stream comes from.
type Source struct {
	// LocalPath is the absolute path to a .vcf file. Takes precedence when set.
	LocalPath string

	// WebURL is a CardDAV or WebDAV URL; WebUser/WebPass are HTTP Basic Auth.
	WebURL  string
	WebUser string
	WebPass string
}

// Open returns the vCard stream for the source. The fetcher is only required
// for web sources.
func Open(ctx context.Context, src Source, fetcher Fetcher) (io.ReadCloser, error) {
	switch {
	case src.LocalPath != "":
		return os.Open(src.LocalPath)
	case src.WebURL != "":
		if fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return fetcher.Fetch(ctx, src.WebURL, src.WebUser, src.WebPass)
	default:
		return nil, errors.New(config.ErrLocalPathEmpty)
	}
}

// Parse decodes the stream into cards. Malformed cards are skipped with a log
// entry to maximize data recovery; only a broken stream aborts the import.
func Parse(ctx context.Context, r io.Reader) ([]Card, error) {
	decoder := vcard.NewDecoder(r)
	var cards []Card

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompImporter,
				config.LogKeyError, err)
			continue
		}

		// Name Strategy: FN (Formatted) > N (Structured) > Fallback
		name := config.FallbackName
		if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
			name = fn.Value
		} else if n := card.Get(config.VCardN); n != nil && n.Value != "" {
			name = n.Value
		}

		c := Card{Name: name}
		if tel := card.Get(config.VCardTel); tel != nil {
			c.Phone = tel.Value
		}
		if email := card.Get(config.VCardEmail); email != nil {
			c.Email = email.Value
		}
		if note := card.Get(config.VCardNote); note != nil {
			c.Notes = note.Value
		}
		cards = append(cards, c)
	}

	if len(cards) == 0 && ctx.Err() != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, ctx.Err())
	}
	return cards, nil
}
