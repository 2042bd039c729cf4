package catalogue

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Badpoolinator/strata-wiki/internal/logfields"
)

// MetaFileName is the per-game declaration file inside the pages root.
const MetaFileName = "meta.json"

// Load reads every game declaration under the pages root, in directory
// name order. A malformed or structurally invalid meta.json is a fatal
// configuration error; the returned error names the offending path.
func Load(pagesRoot string) ([]*Game, error) {
	entries, err := os.ReadDir(pagesRoot)
	if err != nil {
		return nil, fmt.Errorf("read pages root %s: %w", pagesRoot, err)
	}

	games := make([]*Game, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(pagesRoot, entry.Name(), MetaFileName)
		raw, err := os.ReadFile(metaPath)
		if os.IsNotExist(err) {
			slog.Debug("Skipping directory without game meta", logfields.Path(metaPath))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read game meta %s: %w", metaPath, err)
		}

		game := &Game{}
		if err := json.Unmarshal(raw, game); err != nil {
			return nil, fmt.Errorf("parse game meta %s: %w", metaPath, err)
		}
		game.ID = entry.Name()

		if err := validateGame(game); err != nil {
			return nil, fmt.Errorf("invalid game meta %s: %w", metaPath, err)
		}

		slog.Debug("Loaded game", logfields.Game(game.ID), slog.Int("categories", len(game.Categories)))
		games = append(games, game)
	}

	return games, nil
}

func validateGame(g *Game) error {
	if g.Name == "" {
		return fmt.Errorf("game %s: missing name", g.ID)
	}

	seenCategories := map[string]bool{}
	for _, category := range g.Categories {
		if category.ID == "" {
			return fmt.Errorf("game %s: category with empty id", g.ID)
		}
		if seenCategories[category.ID] {
			return fmt.Errorf("game %s: duplicate category %s", g.ID, category.ID)
		}
		seenCategories[category.ID] = true

		if category.Label == "" {
			return fmt.Errorf("game %s: category %s: missing label", g.ID, category.ID)
		}

		seenTopics := map[string]bool{}
		for _, topic := range category.Topics {
			if topic.ID == "" {
				return fmt.Errorf("game %s: category %s: topic with empty id", g.ID, category.ID)
			}
			if seenTopics[topic.ID] {
				return fmt.Errorf("game %s: category %s: duplicate topic %s", g.ID, category.ID, topic.ID)
			}
			seenTopics[topic.ID] = true

			switch topic.Kind() {
			case SourceMarkdown, SourceTypedoc, SourceMaterial:
			default:
				return fmt.Errorf("game %s: category %s: topic %s: unknown source type %q", g.ID, category.ID, topic.ID, topic.Type)
			}
		}
	}

	return nil
}
