package handlers

import (
	"log/slog"
	"os"

	"github.com/casefile-games/mystery-engine/internal/services"
	"github.com/casefile-games/mystery-engine/internal/storage"
	"github.com/casefile-games/mystery-engine/pkg/engine"
	"github.com/casefile-games/mystery-engine/pkg/game"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// testGame is a minimal playable mystery for handler tests.
func testGame() *game.Game {
	persona := game.Localized{EN: "You know where the body was found."}
	scripted := false
	return &game.Game{
		ID:           "velvet",
		Title:        game.Localized{EN: "The Velvet Room", KO: "벨벳 룸"},
		StartSceneID: "lobby",
		Scenes: map[string]*game.Scene{
			"lobby": {
				ID: "lobby",
				Hotspots: []game.Hotspot{
					{ID: "hs_key", ActionType: game.ActionGetItem, TargetID: "key"},
					{ID: "hs_talk", ActionType: game.ActionTalk, TargetID: "npc_clerk"},
					{ID: "hs_porter", ActionType: game.ActionTalk, TargetID: "npc_porter"},
				},
				NPCConfigs: []game.SceneNPC{{NPCID: "npc_clerk"}, {NPCID: "npc_porter"}},
			},
		},
		Items: map[string]*game.Item{
			"key": {ID: "key", IsCrucialEvidence: true},
		},
		NPCs: map[string]*game.NPC{
			"npc_clerk": {
				ID:                "npc_clerk",
				Name:              game.Localized{EN: "The Clerk"},
				InitialDialogueID: "c1",
				IsKiller:          true,
				SecretPersona:     &persona,
				DialogueTree: map[string]*game.DialogueNode{
					"c1": {ID: "c1", Options: []game.DialogueOption{{NextNodeID: "c2"}, {}}},
					"c2": {ID: "c2", Options: []game.DialogueOption{{}}},
				},
			},
			"npc_porter": {
				ID:                "npc_porter",
				Name:              game.Localized{EN: "The Porter"},
				InitialDialogueID: "p1",
				UseAIOnlyChat:     &scripted,
				DialogueTree: map[string]*game.DialogueNode{
					"p1": {ID: "p1", Options: []game.DialogueOption{{}}},
				},
			},
		},
	}
}

type fixture struct {
	storage   *storage.MockStorage
	autosaver *services.Autosaver
	resolver  *engine.Resolver
	ai        *services.MockAIService
}

func newFixture() *fixture {
	mock := storage.NewMockStorage()
	mock.AddGame(testGame())
	return &fixture{
		storage:   mock,
		autosaver: services.NewAutosaver(mock, 0, testLogger()),
		resolver:  engine.New("en", testLogger()),
		ai:        services.NewMockAIService(),
	}
}
