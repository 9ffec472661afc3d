package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/lowhung/wagwan/internal/config"
	"github.com/lowhung/wagwan/internal/store"
	"github.com/lowhung/wagwan/internal/vcf"
)

// ImportResult summarizes an address-book import.
type ImportResult struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// Import creates friends from vCard candidates. Existing friends (matched by
// case-insensitive name) and cards with unusable names are skipped, never
// overwritten; the import is additive only. intervalDays 0 applies the
// configured default.
func (t *Tracker) Import(ctx context.Context, cards []vcf.Card, intervalDays int) (ImportResult, error) {
	slog.Info(config.MsgImportStarted, config.LogKeyComponent, config.CompImporter)

	var res ImportResult
	for _, c := range cards {
		name := strings.TrimSpace(c.Name)
		if name == "" || name == config.FallbackName {
			res.Skipped++
			continue
		}

		_, err := t.store.FindFriendByName(ctx, name)
		if err == nil {
			res.Skipped++
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return res, err
		}

		if _, err := t.AddFriend(ctx, AddParams{
			Name:         name,
			Phone:        c.Phone,
			Email:        c.Email,
			Notes:        c.Notes,
			IntervalDays: intervalDays,
		}); err != nil {
			return res, err
		}
		res.Added++
	}

	slog.Info(config.MsgImportDone,
		config.LogKeyComponent, config.CompImporter,
		config.LogKeyAdded, res.Added,
		config.LogKeySkipped, res.Skipped,
	)
	return res, nil
}
