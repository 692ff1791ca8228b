package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/casefile-games/mystery-engine/pkg/game"
)

// gameLibrary serves authored game content from a directory of JSON
// files, one game per file, named <gameID>.json. It is embedded by
// every Storage backend so the catalog behaves the same regardless of
// where sessions live.
type gameLibrary struct {
	dataDir string
	logger  *slog.Logger
}

func (l *gameLibrary) ListGames(ctx context.Context) ([]GameInfo, error) {
	entries, err := os.ReadDir(l.dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []GameInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read games directory: %w", err)
	}

	var games []GameInfo
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		path := filepath.Join(l.dataDir, entry.Name())
		file, err := os.ReadFile(path)
		if err != nil {
			l.logger.Warn("Failed to read game file", "path", path, "error", err)
			continue
		}

		var g game.Game
		if err := json.Unmarshal(file, &g); err != nil {
			l.logger.Warn("Failed to unmarshal game file", "path", path, "error", err)
			continue
		}

		// Filename overrides any ID in the JSON
		g.ID = strings.TrimSuffix(entry.Name(), ".json")
		games = append(games, GameInfo{ID: g.ID, Title: g.Title})
	}

	sort.Slice(games, func(i, j int) bool { return games[i].ID < games[j].ID })
	return games, nil
}

func (l *gameLibrary) GetGame(ctx context.Context, gameID string) (*game.Game, error) {
	// Reject ids that could escape the games directory.
	if gameID == "" || gameID != filepath.Base(gameID) || strings.Contains(gameID, "..") {
		return nil, fmt.Errorf("invalid game id: %q", gameID)
	}

	path := filepath.Join(l.dataDir, gameID+".json")
	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read game file: %w", err)
	}

	var g game.Game
	if err := json.Unmarshal(file, &g); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}
	g.ID = gameID

	return &g, nil
}
