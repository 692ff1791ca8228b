package game

import "sort"

// CaseConclusion is the end-of-game text shown with the verdict.
type CaseConclusion struct {
	MysterySolution Localized `json:"mysterySolution"`
	SuccessTitle    Localized `json:"successTitle"`
	SuccessBody     Localized `json:"successBody"`
	FailureTitle    Localized `json:"failureTitle"`
	FailureBody     Localized `json:"failureBody"`
}

// Game is the complete authored definition of a mystery: scenes,
// items, NPCs, dialogue trees and the case conclusion. It is read-only
// during play; only the editor collaborator mutates it.
//
// All cross-references are bare string ids. Lookups go through the
// accessors below so every callsite gets uniform missing-reference
// handling: a dangling id resolves to (nil, false), never a panic.
type Game struct {
	ID           string            `json:"id"`
	Title        Localized         `json:"title"`
	Description  *Localized        `json:"description,omitempty"`
	VisualStyle  string            `json:"visualStyle,omitempty"`
	StartSceneID string            `json:"startSceneId"`
	Scenes       map[string]*Scene `json:"scenes"`
	Items        map[string]*Item  `json:"items"`
	NPCs         map[string]*NPC   `json:"npcs"`
	InitialFlags map[string]bool   `json:"initialFlags,omitempty"`
	Conclusion   *CaseConclusion   `json:"conclusion,omitempty"`
	GlobalBgmURL string            `json:"globalBgmUrl,omitempty"`
}

// Scene returns the scene with the given id.
func (g *Game) Scene(id string) (*Scene, bool) {
	s, ok := g.Scenes[id]
	if !ok || s == nil {
		return nil, false
	}
	return s, true
}

// Item returns the item with the given id.
func (g *Game) Item(id string) (*Item, bool) {
	it, ok := g.Items[id]
	if !ok || it == nil {
		return nil, false
	}
	return it, true
}

// NPC returns the NPC with the given id.
func (g *Game) NPC(id string) (*NPC, bool) {
	n, ok := g.NPCs[id]
	if !ok || n == nil {
		return nil, false
	}
	return n, true
}

// StartScene returns the configured start scene id, falling back to
// the lexically first scene when none is set. Partially-authored
// games remain playable this way.
func (g *Game) StartScene() string {
	if g.StartSceneID != "" {
		return g.StartSceneID
	}
	if len(g.Scenes) == 0 {
		return ""
	}
	keys := make([]string, 0, len(g.Scenes))
	for k := range g.Scenes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys[0]
}

// CrucialItemIDs returns the ids of all crucial-evidence items,
// sorted for stable output.
func (g *Game) CrucialItemIDs() []string {
	var ids []string
	for id, it := range g.Items {
		if it != nil && it.IsCrucialEvidence {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
