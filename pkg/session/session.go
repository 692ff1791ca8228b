package session

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/casefile-games/mystery-engine/pkg/game"
)

// State is the mutable record of one playthrough, distinct from the
// authored content. It is mutated exclusively by the engine's resolver
// and serialized as-is for persistence: the ordered slices double as
// sets (membership is the operative invariant, insertion order is kept
// for the UI) and SceneHistory is a stack whose order must round-trip.
type State struct {
	ID     uuid.UUID `json:"id"`
	GameID string    `json:"gameId,omitempty"`

	CurrentSceneID string   `json:"currentSceneId"`
	SceneHistory   []string `json:"sceneHistory"`

	Inventory []string        `json:"inventory"`
	Flags     map[string]bool `json:"flags,omitempty"`

	RevealedHotspotIDs []string `json:"revealedHotspotIds,omitempty"`
	SolvedHotspotIDs   []string `json:"solvedHotspotIds,omitempty"`
	VisitedSceneIDs    []string `json:"visitedSceneIds"`
	TalkedToNPCIDs     []string `json:"talkedToNpcIds"`

	ActiveDialogueNPCID  string `json:"activeDialogueNpcId,omitempty"`
	ActiveDialogueNodeID string `json:"activeDialogueNodeId,omitempty"`
	InspectedItemID      string `json:"inspectedItemId,omitempty"`

	// ChatSeq increments on every free-text AI request so that a reply
	// arriving after the dialogue moved on can be recognized as stale.
	ChatSeq int `json:"chatSeq,omitempty"`

	IsGameFinished bool            `json:"isGameFinished"`
	EndingType     game.EndingType `json:"endingType,omitempty"`

	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// New creates a fresh session for the given game: positioned at the
// start scene, empty-handed, with flags seeded from the content's
// initial flags. The start scene counts as visited from the beginning.
func New(g *game.Game) *State {
	startID := g.StartScene()

	flags := make(map[string]bool, len(g.InitialFlags))
	for k, v := range g.InitialFlags {
		flags[k] = v
	}

	st := &State{
		ID:              uuid.New(),
		GameID:          g.ID,
		CurrentSceneID:  startID,
		SceneHistory:    make([]string, 0),
		Inventory:       make([]string, 0),
		Flags:           flags,
		VisitedSceneIDs: make([]string, 0, 1),
		TalkedToNPCIDs:  make([]string, 0),
	}
	if startID != "" {
		st.VisitedSceneIDs = append(st.VisitedSceneIDs, startID)
	}
	return st
}

// Clone returns a deep copy. The resolver clones before mutating so
// that resolution is a pure function of its inputs.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	dup := *s
	dup.SceneHistory = slices.Clone(s.SceneHistory)
	dup.Inventory = slices.Clone(s.Inventory)
	dup.RevealedHotspotIDs = slices.Clone(s.RevealedHotspotIDs)
	dup.SolvedHotspotIDs = slices.Clone(s.SolvedHotspotIDs)
	dup.VisitedSceneIDs = slices.Clone(s.VisitedSceneIDs)
	dup.TalkedToNPCIDs = slices.Clone(s.TalkedToNPCIDs)
	if s.Flags != nil {
		dup.Flags = make(map[string]bool, len(s.Flags))
		for k, v := range s.Flags {
			dup.Flags[k] = v
		}
	}
	return &dup
}

// HasItem reports whether the item is in the inventory.
func (s *State) HasItem(itemID string) bool {
	return slices.Contains(s.Inventory, itemID)
}

// AddItem appends the item unless already held.
func (s *State) AddItem(itemID string) {
	if !s.HasItem(itemID) {
		s.Inventory = append(s.Inventory, itemID)
	}
}

// RemoveItem drops the item from the inventory if present.
func (s *State) RemoveItem(itemID string) {
	for i, id := range s.Inventory {
		if id == itemID {
			s.Inventory = append(s.Inventory[:i], s.Inventory[i+1:]...)
			return
		}
	}
}

// HasVisited reports whether the scene has ever been entered.
func (s *State) HasVisited(sceneID string) bool {
	return slices.Contains(s.VisitedSceneIDs, sceneID)
}

// AddVisited marks the scene visited, once.
func (s *State) AddVisited(sceneID string) {
	if !s.HasVisited(sceneID) {
		s.VisitedSceneIDs = append(s.VisitedSceneIDs, sceneID)
	}
}

// HasSolved reports whether the hotspot was solved or triggered.
func (s *State) HasSolved(hotspotID string) bool {
	return slices.Contains(s.SolvedHotspotIDs, hotspotID)
}

// AddSolved marks the hotspot solved, once.
func (s *State) AddSolved(hotspotID string) {
	if !s.HasSolved(hotspotID) {
		s.SolvedHotspotIDs = append(s.SolvedHotspotIDs, hotspotID)
	}
}

// HasRevealed reports whether a hidden hotspot has been unlocked.
func (s *State) HasRevealed(hotspotID string) bool {
	return slices.Contains(s.RevealedHotspotIDs, hotspotID)
}

// Reveal unlocks the given hidden hotspots.
func (s *State) Reveal(hotspotIDs ...string) {
	for _, id := range hotspotIDs {
		if !s.HasRevealed(id) {
			s.RevealedHotspotIDs = append(s.RevealedHotspotIDs, id)
		}
	}
}

// HasTalkedTo reports whether the NPC has ever been spoken to.
func (s *State) HasTalkedTo(npcID string) bool {
	return slices.Contains(s.TalkedToNPCIDs, npcID)
}

// AddTalkedTo marks the NPC as spoken to, once.
func (s *State) AddTalkedTo(npcID string) {
	if !s.HasTalkedTo(npcID) {
		s.TalkedToNPCIDs = append(s.TalkedToNPCIDs, npcID)
	}
}

// InDialogue reports whether a conversation is currently open.
func (s *State) InDialogue() bool {
	return s.ActiveDialogueNPCID != "" && s.ActiveDialogueNodeID != ""
}

// DialogueTag identifies the current dialogue moment. AI replies carry
// the tag they were requested under; a reply whose tag no longer
// matches is stale and must be discarded.
func (s *State) DialogueTag() string {
	return fmt.Sprintf("%s|%s|%d", s.ActiveDialogueNPCID, s.ActiveDialogueNodeID, s.ChatSeq)
}
