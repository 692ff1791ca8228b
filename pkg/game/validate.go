package game

import "fmt"

// Severity classifies a validation issue. Errors make a game
// unplayable or ambiguous; warnings degrade gracefully at play time
// (the resolver treats dangling references as no-ops).
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single authoring problem found during validation.
type Issue struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] %s", i.Severity, i.Message)
}

// Validate runs the authoring-time integrity pass over the game.
// It never mutates the game and returns all issues found rather than
// stopping at the first.
//
// Hotspot ids must be unique across the entire game, not just within
// their scene: solved/revealed state is tracked in global sets, so a
// collision would make two hotspots share solved-state.
func (g *Game) Validate() []Issue {
	var issues []Issue

	errf := func(format string, args ...any) {
		issues = append(issues, Issue{SeverityError, fmt.Sprintf(format, args...)})
	}
	warnf := func(format string, args ...any) {
		issues = append(issues, Issue{SeverityWarning, fmt.Sprintf(format, args...)})
	}

	if len(g.Scenes) == 0 {
		errf("game has no scenes")
	}
	if g.StartSceneID != "" {
		if _, ok := g.Scene(g.StartSceneID); !ok {
			errf("startSceneId %q does not reference an existing scene", g.StartSceneID)
		}
	}

	// Global hotspot id uniqueness.
	hotspotScene := make(map[string]string)
	for sceneID, scene := range g.Scenes {
		if scene == nil {
			errf("scene %q is null", sceneID)
			continue
		}
		for i := range scene.Hotspots {
			hs := &scene.Hotspots[i]
			if prev, dup := hotspotScene[hs.ID]; dup {
				errf("hotspot id %q in scene %q collides with scene %q; hotspot ids must be unique across the game", hs.ID, sceneID, prev)
				continue
			}
			hotspotScene[hs.ID] = sceneID
		}
	}

	for sceneID, scene := range g.Scenes {
		if scene == nil {
			continue
		}
		for i := range scene.Hotspots {
			g.validateHotspot(sceneID, &scene.Hotspots[i], hotspotScene, warnf)
		}
		for i := range scene.Exits {
			exit := &scene.Exits[i]
			if _, ok := g.Scene(exit.TargetSceneID); !ok {
				warnf("exit %q in scene %q targets unknown scene %q", exit.ID, sceneID, exit.TargetSceneID)
			}
			if exit.RequiredItemID != "" {
				if _, ok := g.Item(exit.RequiredItemID); !ok {
					warnf("exit %q in scene %q requires unknown item %q", exit.ID, sceneID, exit.RequiredItemID)
				}
			}
		}
		for _, cfg := range scene.NPCConfigs {
			if _, ok := g.NPC(cfg.NPCID); !ok {
				warnf("scene %q places unknown npc %q", sceneID, cfg.NPCID)
			}
		}
	}

	g.validateItems(warnf)
	g.validateNPCs(warnf)

	if len(g.CrucialItemIDs()) == 0 {
		warnf("no items are marked as crucial evidence; the accusation can never unlock")
	}

	return issues
}

func (g *Game) validateHotspot(sceneID string, hs *Hotspot, known map[string]string, warnf func(string, ...any)) {
	switch hs.ActionType {
	case ActionGoto:
		if hs.TargetID != "" {
			if _, ok := g.Scene(hs.TargetID); !ok {
				warnf("hotspot %q in scene %q targets unknown scene %q", hs.ID, sceneID, hs.TargetID)
			}
		}
	case ActionGetItem:
		if hs.TargetID != "" {
			if _, ok := g.Item(hs.TargetID); !ok {
				warnf("hotspot %q in scene %q grants unknown item %q", hs.ID, sceneID, hs.TargetID)
			}
		}
	case ActionTalk:
		if hs.TargetID != "" {
			if _, ok := g.NPC(hs.TargetID); !ok {
				warnf("hotspot %q in scene %q talks to unknown npc %q", hs.ID, sceneID, hs.TargetID)
			}
		}
	case ActionInputPuzzle:
		if hs.PuzzleAnswer == "" {
			warnf("puzzle hotspot %q in scene %q has no answer and can never be solved", hs.ID, sceneID)
		}
		if hs.TargetID != "" {
			if _, ok := g.Item(hs.TargetID); !ok {
				warnf("puzzle hotspot %q in scene %q rewards unknown item %q", hs.ID, sceneID, hs.TargetID)
			}
		}
	}

	if hs.RequiredItemID != "" {
		if _, ok := g.Item(hs.RequiredItemID); !ok {
			warnf("hotspot %q in scene %q requires unknown item %q", hs.ID, sceneID, hs.RequiredItemID)
		}
	}
	for _, rid := range hs.RevealsHotspotIDs {
		if _, ok := known[rid]; !ok {
			warnf("hotspot %q in scene %q reveals unknown hotspot %q", hs.ID, sceneID, rid)
		}
	}
}

func (g *Game) validateItems(warnf func(string, ...any)) {
	for id, it := range g.Items {
		if it == nil {
			continue
		}
		if it.CombinableWith != "" {
			if _, ok := g.Item(it.CombinableWith); !ok {
				warnf("item %q combines with unknown item %q", id, it.CombinableWith)
			}
			if it.ResultItemID == "" {
				warnf("item %q declares a combination partner but no result item", id)
			}
		}
		if it.ResultItemID != "" {
			if _, ok := g.Item(it.ResultItemID); !ok {
				warnf("item %q produces unknown result item %q", id, it.ResultItemID)
			}
		}
	}
}

func (g *Game) validateNPCs(warnf func(string, ...any)) {
	killers := 0
	for id, npc := range g.NPCs {
		if npc == nil {
			continue
		}
		if npc.IsKiller {
			killers++
		}
		if npc.InitialDialogueID != "" {
			if _, ok := npc.Node(npc.InitialDialogueID); !ok {
				warnf("npc %q initial dialogue %q does not exist in its tree", id, npc.InitialDialogueID)
			}
		}
		for nodeID, node := range npc.DialogueTree {
			if node == nil {
				continue
			}
			for _, opt := range node.Options {
				if opt.NextNodeID != "" {
					if _, ok := npc.Node(opt.NextNodeID); !ok {
						warnf("npc %q node %q has an option leading to unknown node %q", id, nodeID, opt.NextNodeID)
					}
				}
				for _, req := range opt.RequiredItems {
					if _, ok := g.Item(req); !ok {
						warnf("npc %q node %q option requires unknown item %q", id, nodeID, req)
					}
				}
				if opt.RewardItemID != "" {
					if _, ok := g.Item(opt.RewardItemID); !ok {
						warnf("npc %q node %q option rewards unknown item %q", id, nodeID, opt.RewardItemID)
					}
				}
			}
		}
	}
	if killers > 1 {
		warnf("%d NPCs are marked as the killer; a well-formed game has at most one", killers)
	}
}
