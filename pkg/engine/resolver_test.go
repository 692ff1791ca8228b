package engine

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casefile-games/mystery-engine/pkg/game"
	"github.com/casefile-games/mystery-engine/pkg/session"
)

func testResolver() *Resolver {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError, // Reduce noise in tests
	}))
	return New("en", logger)
}

// manorGame builds the content fixture used across the engine tests:
// a two-scene mystery with a gated passage, a hidden hotspot chain, a
// safe puzzle, an item combination and an interrogatable killer.
func manorGame() *game.Game {
	return &game.Game{
		ID:           "manor",
		StartSceneID: "s1",
		Scenes: map[string]*game.Scene{
			"s1": {
				ID: "s1",
				Hotspots: []game.Hotspot{
					{
						ID:             "hs_goto",
						ActionType:     game.ActionGoto,
						TargetID:       "s2",
						RequiredItemID: "key1",
						ItemMissingMessage: &game.Localized{
							EN: "The door is locked tight.",
						},
					},
					{
						ID:         "hs_get",
						ActionType: game.ActionGetItem,
						TargetID:   "key1",
						SuccessMessage: &game.Localized{
							EN: "A key glints under the rug.",
						},
					},
					{
						ID:                "hs_exam",
						ActionType:        game.ActionExamine,
						VisualEffect:      game.EffectFlash,
						RevealsHotspotIDs: []string{"hs_hidden"},
					},
					{
						ID:            "hs_hidden",
						ActionType:    game.ActionGetItem,
						TargetID:      "item_letter",
						InitialHidden: true,
						IsSubAction:   true,
					},
					{
						ID:           "hs_safe",
						ActionType:   game.ActionInputPuzzle,
						PuzzleAnswer: "1234",
						TargetID:     "item_gold",
						FailureMessage: &game.Localized{
							EN: "The dial refuses to budge.",
						},
					},
					{ID: "hs_talk", ActionType: game.ActionTalk, TargetID: "npc_butler"},
					{
						ID:         "hs_poison",
						ActionType: game.ActionExamine,
						IsEnding:   true,
						EndingType: game.EndingFailure,
					},
				},
				Exits: []game.SceneExit{
					{ID: "ex_hall", TargetSceneID: "s2", RequiredItemID: "key1"},
				},
				NPCConfigs: []game.SceneNPC{
					{NPCID: "npc_butler"},
					{NPCID: "npc_maid", RequiredItemID: "item_letter"},
				},
			},
			"s2": {ID: "s2"},
		},
		Items: map[string]*game.Item{
			"key1":        {ID: "key1"},
			"item_letter": {ID: "item_letter", IsCrucialEvidence: true},
			"item_gold":   {ID: "item_gold", IsCrucialEvidence: true},
			"handle":      {ID: "handle", CombinableWith: "blade", ResultItemID: "knife"},
			"blade":       {ID: "blade"},
			"knife":       {ID: "knife", IsCrucialEvidence: true},
		},
		NPCs: map[string]*game.NPC{
			"npc_butler": {
				ID:                "npc_butler",
				InitialDialogueID: "n1",
				IsKiller:          true,
				DialogueTree: map[string]*game.DialogueNode{
					"n1": {
						ID: "n1",
						Options: []game.DialogueOption{
							{NextNodeID: "n2"},
							{RequiredItems: []string{"item_letter"}, RewardItemID: "blade", NextNodeID: "n2"},
							{}, // no next node: ends the conversation
						},
					},
					"n2": {
						ID: "n2",
						Options: []game.DialogueOption{
							{NextNodeID: "n_confession"},
							{},
						},
					},
					"n_confession": {
						ID:         "n_confession",
						IsEnding:   true,
						EndingType: game.EndingSuccess,
					},
				},
			},
			"npc_maid": {
				ID:                "npc_maid",
				InitialDialogueID: "m1",
				DialogueTree: map[string]*game.DialogueNode{
					"m1": {ID: "m1", Options: []game.DialogueOption{{}}},
				},
			},
		},
	}
}

func TestResolve_FreshSession(t *testing.T) {
	g := manorGame()
	st := session.New(g)

	assert.Equal(t, "s1", st.CurrentSceneID)
	assert.Empty(t, st.SceneHistory)
	assert.Empty(t, st.Inventory)
	assert.Equal(t, []string{"s1"}, st.VisitedSceneIDs)
}

func TestResolve_Purity(t *testing.T) {
	g := manorGame()
	st := session.New(g)
	r := testResolver()

	next, _ := r.Resolve(g, st, TriggerHotspot{HotspotID: "hs_get"})

	assert.Empty(t, st.Inventory, "input state must not be mutated")
	assert.Equal(t, []string{"key1"}, next.Inventory)
	assert.Empty(t, st.SolvedHotspotIDs)
}

func TestResolve_HotspotGate(t *testing.T) {
	g := manorGame()
	st := session.New(g)
	r := testResolver()

	// Locked without the key: custom missing message plus a shake,
	// and no movement.
	next, effects := r.Resolve(g, st, TriggerHotspot{HotspotID: "hs_goto"})
	assert.Equal(t, "s1", next.CurrentSceneID)
	require.Len(t, effects, 2)
	assert.Equal(t, EffectShowMessage, effects[0].Type)
	assert.Equal(t, "The door is locked tight.", effects[0].Message)
	assert.Equal(t, EffectShowShake, effects[1].Type)
	assert.Empty(t, next.SolvedHotspotIDs, "a refused hotspot is not marked solved")

	// With the key the passage opens.
	next, _ = r.Resolve(g, next, TriggerHotspot{HotspotID: "hs_get"})
	next, effects = r.Resolve(g, next, TriggerHotspot{HotspotID: "hs_goto"})
	assert.Equal(t, "s2", next.CurrentSceneID)
	assert.Equal(t, []string{"s1"}, next.SceneHistory)
	assert.Contains(t, next.VisitedSceneIDs, "s2")
	assert.True(t, HasEffect(effects, EffectSceneChanged))
}

func TestResolve_GateStaysSatisfied(t *testing.T) {
	g := manorGame()
	st := session.New(g)
	r := testResolver()

	st, _ = r.Resolve(g, st, TriggerHotspot{HotspotID: "hs_get"})
	st, _ = r.Resolve(g, st, TriggerHotspot{HotspotID: "hs_goto"})
	require.Equal(t, "s2", st.CurrentSceneID)

	// Losing the key later must not re-lock an already-visited scene.
	st.RemoveItem("key1")
	st, _ = r.Resolve(g, st, GoBack{})
	st, effects := r.Resolve(g, st, TriggerHotspot{HotspotID: "hs_goto"})
	assert.Equal(t, "s2", st.CurrentSceneID)
	assert.False(t, HasEffect(effects, EffectShowShake))
}

func TestResolve_RevisitIdempotence(t *testing.T) {
	g := manorGame()
	st := session.New(g)
	r := testResolver()

	st, _ = r.Resolve(g, st, TriggerHotspot{HotspotID: "hs_get"})
	st, _ = r.Resolve(g, st, TriggerHotspot{HotspotID: "hs_goto"})
	st, _ = r.Resolve(g, st, GoBack{})
	st, _ = r.Resolve(g, st, TriggerHotspot{HotspotID: "hs_goto"})

	count := 0
	for _, id := range st.VisitedSceneIDs {
		if id == "s2" {
			count++
		}
	}
	assert.Equal(t, 1, count, "visited set must not grow on revisits")
	assert.Equal(t, []string{"s1"}, st.SceneHistory, "one transition pushes one history entry")
}

func TestResolve_GetItem(t *testing.T) {
	g := manorGame()
	st := session.New(g)
	r := testResolver()

	st, effects := r.Resolve(g, st, TriggerHotspot{HotspotID: "hs_get"})
	assert.Equal(t, []string{"key1"}, st.Inventory)
	assert.True(t, HasEffect(effects, EffectItemObtained))
	assert.True(t, HasEffect(effects, EffectShowMessage))
	assert.Contains(t, st.SolvedHotspotIDs, "hs_get")

	// Picking it up twice: no duplicate, no obtained effect, but the
	// success message still shows as flavor text.
	st, effects = r.Resolve(g, st, TriggerHotspot{HotspotID: "hs_get"})
	assert.Equal(t, []string{"key1"}, st.Inventory)
	assert.False(t, HasEffect(effects, EffectItemObtained))
	assert.True(t, HasEffect(effects, EffectShowMessage))
}

func TestResolve_ExamineRevealsHidden(t *testing.T) {
	g := manorGame()
	st := session.New(g)
	r := testResolver()

	st, effects := r.Resolve(g, st, TriggerHotspot{HotspotID: "hs_exam"})
	assert.True(t, HasEffect(effects, EffectOpenExamine))
	assert.True(t, HasEffect(effects, EffectShowFlash), "authored visual effect passes through")
	assert.Equal(t, []string{"hs_hidden"}, st.RevealedHotspotIDs)

	// The revealed sub-action is now triggerable.
	st, effects = r.Resolve(g, st, TriggerHotspot{HotspotID: "hs_hidden"})
	assert.Contains(t, st.Inventory, "item_letter")
	assert.True(t, HasEffect(effects, EffectItemObtained))
}

func TestResolve_ExitGate(t *testing.T) {
	g := manorGame()
	st := session.New(g)
	r := testResolver()

	next, effects := r.Resolve(g, st, TriggerExit{ExitID: "ex_hall"})
	assert.Equal(t, "s1", next.CurrentSceneID)
	assert.True(t, HasEffect(effects, EffectShowMessage))
	assert.True(t, HasEffect(effects, EffectShowShake))

	next.AddItem("key1")
	next, effects = r.Resolve(g, next, TriggerExit{ExitID: "ex_hall"})
	assert.Equal(t, "s2", next.CurrentSceneID)
	assert.Equal(t, []string{"s1"}, next.SceneHistory)
	assert.True(t, HasEffect(effects, EffectSceneChanged))
}

func TestResolve_GoBack(t *testing.T) {
	g := manorGame()
	st := session.New(g)
	r := testResolver()

	// Empty history: nothing to pop.
	next, effects := r.Resolve(g, st, GoBack{})
	assert.Equal(t, "s1", next.CurrentSceneID)
	assert.Empty(t, effects)

	next.AddItem("key1")
	next, _ = r.Resolve(g, next, TriggerExit{ExitID: "ex_hall"})
	next, _ = r.Resolve(g, next, GoBack{})
	assert.Equal(t, "s1", next.CurrentSceneID)
	assert.Empty(t, next.SceneHistory)
}

func TestResolve_PuzzleFlow(t *testing.T) {
	g := manorGame()
	st := session.New(g)
	r := testResolver()

	// Triggering the puzzle opens it without mutating solve state.
	st, effects := r.Resolve(g, st, TriggerHotspot{HotspotID: "hs_safe"})
	assert.True(t, HasEffect(effects, EffectOpenPuzzle))
	assert.Empty(t, st.SolvedHotspotIDs)

	// Wrong answer: shake plus the authored failure message, puzzle
	// stays open for another try.
	st, effects = r.Resolve(g, st, SubmitPuzzleAnswer{HotspotID: "hs_safe", Answer: "0000"})
	assert.True(t, HasEffect(effects, EffectShowShake))
	assert.False(t, HasEffect(effects, EffectClosePuzzle))
	assert.Empty(t, st.SolvedHotspotIDs)

	// Comparison is case-sensitive and exact.
	st, effects = r.Resolve(g, st, SubmitPuzzleAnswer{HotspotID: "hs_safe", Answer: " 1234"})
	assert.True(t, HasEffect(effects, EffectShowShake))

	// Correct answer: reward item, flash, solved, puzzle closes.
	st, effects = r.Resolve(g, st, SubmitPuzzleAnswer{HotspotID: "hs_safe", Answer: "1234"})
	assert.Contains(t, st.Inventory, "item_gold")
	assert.Contains(t, st.SolvedHotspotIDs, "hs_safe")
	assert.True(t, HasEffect(effects, EffectItemObtained))
	assert.True(t, HasEffect(effects, EffectShowFlash), "puzzles default to a flash confirmation")
	assert.True(t, HasEffect(effects, EffectClosePuzzle))
}

func TestResolve_SolvedPuzzleIsInert(t *testing.T) {
	g := manorGame()
	st := session.New(g)
	r := testResolver()

	st, _ = r.Resolve(g, st, SubmitPuzzleAnswer{HotspotID: "hs_safe", Answer: "1234"})
	require.Contains(t, st.SolvedHotspotIDs, "hs_safe")

	before := st.Clone()
	next, effects := r.Resolve(g, st, TriggerHotspot{HotspotID: "hs_safe"})
	assert.Empty(t, effects, "re-triggering a solved puzzle emits nothing")
	assert.Equal(t, before.SolvedHotspotIDs, next.SolvedHotspotIDs)
	assert.Equal(t, before.Inventory, next.Inventory)

	// Re-submitting is equally inert.
	next, effects = r.Resolve(g, next, SubmitPuzzleAnswer{HotspotID: "hs_safe", Answer: "1234"})
	assert.Empty(t, effects)
	assert.Equal(t, before.Inventory, next.Inventory)
}

func TestResolve_PuzzleWithoutAnswerNeverMatches(t *testing.T) {
	g := manorGame()
	s1 := g.Scenes["s1"]
	s1.Hotspots = append(s1.Hotspots, game.Hotspot{ID: "hs_broken", ActionType: game.ActionInputPuzzle})
	st := session.New(g)
	r := testResolver()

	st, effects := r.Resolve(g, st, SubmitPuzzleAnswer{HotspotID: "hs_broken", Answer: ""})
	assert.True(t, HasEffect(effects, EffectShowShake))
	assert.Empty(t, st.SolvedHotspotIDs)
}

func TestResolve_CombineItems(t *testing.T) {
	g := manorGame()
	r := testResolver()

	tests := []struct {
		name string
		a, b string
	}{
		{name: "declared direction", a: "handle", b: "blade"},
		{name: "reverse direction", a: "blade", b: "handle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := session.New(g)
			st.AddItem("handle")
			st.AddItem("blade")

			next, effects := r.Resolve(g, st, CombineItems{ItemA: tt.a, ItemB: tt.b})
			assert.Equal(t, []string{"knife"}, next.Inventory, "both sources consumed, result gained")
			assert.True(t, HasEffect(effects, EffectItemObtained))
			assert.True(t, HasEffect(effects, EffectShowFlash))
		})
	}
}

func TestResolve_CombineItemsFailure(t *testing.T) {
	g := manorGame()
	st := session.New(g)
	st.AddItem("handle")
	st.AddItem("key1")
	r := testResolver()

	next, effects := r.Resolve(g, st, CombineItems{ItemA: "handle", ItemB: "key1"})
	assert.ElementsMatch(t, []string{"handle", "key1"}, next.Inventory, "failed combination keeps both items")
	assert.True(t, HasEffect(effects, EffectShowMessage))
	assert.True(t, HasEffect(effects, EffectShowShake))

	// Unknown items are a silent no-op.
	next, effects = r.Resolve(g, st, CombineItems{ItemA: "handle", ItemB: "ghost"})
	assert.Empty(t, effects)
	assert.ElementsMatch(t, []string{"handle", "key1"}, next.Inventory)
}

func TestResolve_CombineWithoutResultItem(t *testing.T) {
	g := manorGame()
	delete(g.Items, "knife")
	st := session.New(g)
	st.AddItem("handle")
	st.AddItem("blade")
	r := testResolver()

	next, effects := r.Resolve(g, st, CombineItems{ItemA: "handle", ItemB: "blade"})
	assert.ElementsMatch(t, []string{"handle", "blade"}, next.Inventory,
		"a rule whose result item does not exist must not consume the sources")
	assert.True(t, HasEffect(effects, EffectShowShake))
}

func TestResolve_EndingHotspot(t *testing.T) {
	g := manorGame()
	st := session.New(g)
	r := testResolver()

	st, effects := r.Resolve(g, st, TriggerHotspot{HotspotID: "hs_poison"})
	assert.True(t, st.IsGameFinished)
	assert.Equal(t, game.EndingFailure, st.EndingType)
	assert.True(t, HasEffect(effects, EffectGameEnded))
}

func TestResolve_TerminalUntilRestart(t *testing.T) {
	g := manorGame()
	st := session.New(g)
	r := testResolver()

	st, _ = r.Resolve(g, st, TriggerHotspot{HotspotID: "hs_poison"})
	require.True(t, st.IsGameFinished)

	// Every non-restart action is ignored after the ending.
	next, effects := r.Resolve(g, st, TriggerHotspot{HotspotID: "hs_get"})
	assert.Empty(t, effects)
	assert.Empty(t, next.Inventory)

	// Restart rebuilds a fresh playthrough under the same session id.
	next, _ = r.Resolve(g, next, Restart{})
	assert.False(t, next.IsGameFinished)
	assert.Equal(t, "s1", next.CurrentSceneID)
	assert.Empty(t, next.Inventory)
	assert.Equal(t, st.ID, next.ID)
}

func TestResolve_InspectItem(t *testing.T) {
	g := manorGame()
	st := session.New(g)
	r := testResolver()

	// Inspecting an item not held is refused.
	next, _ := r.Resolve(g, st, InspectItem{ItemID: "key1"})
	assert.Empty(t, next.InspectedItemID)

	next.AddItem("key1")
	next, _ = r.Resolve(g, next, InspectItem{ItemID: "key1"})
	assert.Equal(t, "key1", next.InspectedItemID)

	next, _ = r.Resolve(g, next, CloseInspect{})
	assert.Empty(t, next.InspectedItemID)
}

func TestResolve_DanglingReferencesAreNoOps(t *testing.T) {
	g := manorGame()
	s1 := g.Scenes["s1"]
	s1.Hotspots = append(s1.Hotspots,
		game.Hotspot{ID: "hs_bad_goto", ActionType: game.ActionGoto, TargetID: "nowhere"},
		game.Hotspot{ID: "hs_bad_item", ActionType: game.ActionGetItem, TargetID: "ghost_item"},
		game.Hotspot{ID: "hs_bad_talk", ActionType: game.ActionTalk, TargetID: "phantom"},
	)
	st := session.New(g)
	r := testResolver()

	next, _ := r.Resolve(g, st, TriggerHotspot{HotspotID: "hs_bad_goto"})
	assert.Equal(t, "s1", next.CurrentSceneID)

	next, effects := r.Resolve(g, next, TriggerHotspot{HotspotID: "hs_bad_item"})
	assert.Empty(t, next.Inventory)
	assert.False(t, HasEffect(effects, EffectItemObtained))

	next, _ = r.Resolve(g, next, TriggerHotspot{HotspotID: "hs_bad_talk"})
	assert.False(t, next.InDialogue())

	// Unknown hotspot, exit and NPC ids all resolve to no-ops.
	next, effects = r.Resolve(g, next, TriggerHotspot{HotspotID: "hs_ghost"})
	assert.Empty(t, effects)
	next, effects = r.Resolve(g, next, TriggerExit{ExitID: "ex_ghost"})
	assert.Empty(t, effects)
	next, effects = r.Resolve(g, next, SubmitAccusation{NPCID: "phantom"})
	assert.Empty(t, effects)
	assert.False(t, next.IsGameFinished)
}
