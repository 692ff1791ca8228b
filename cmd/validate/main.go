package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/casefile-games/mystery-engine/pkg/game"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <game.json> [more.json ...]\n", os.Args[0])
		os.Exit(1)
	}

	failed := false
	for _, filename := range os.Args[1:] {
		if err := validateFile(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".json") {
		return fmt.Errorf("game file must have .json extension: %s", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	if !json.Valid(data) {
		return fmt.Errorf("file %s contains invalid JSON", filename)
	}

	var g game.Game
	if err := json.Unmarshal(data, &g); err != nil {
		return fmt.Errorf("file %s failed to unmarshal: %w", filename, err)
	}
	g.ID = strings.TrimSuffix(baseName, ".json")

	issues := g.Validate()

	errors := 0
	for _, issue := range issues {
		switch issue.Severity {
		case game.SeverityError:
			errors++
			fmt.Printf("  ERROR   %s\n", issue.Message)
		default:
			fmt.Printf("  warning %s\n", issue.Message)
		}
	}

	if errors > 0 {
		return fmt.Errorf("%s has %d error(s)", filename, errors)
	}
	if len(issues) > 0 {
		fmt.Printf("%s is playable with %d warning(s)\n", filename, len(issues))
	} else {
		fmt.Printf("%s is valid!\n", filename)
	}
	return nil
}
