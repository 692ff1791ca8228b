package engine

// Action is one discrete player input. The resolver matches the
// variants exhaustively; unknown variants resolve to no-ops so a
// malformed request can never crash a session.
type Action interface {
	isAction()
}

// TriggerHotspot fires a hotspot in the current scene: examine,
// collect, navigate, talk, or open a puzzle, depending on the
// hotspot's action type.
type TriggerHotspot struct {
	HotspotID string `json:"hotspotId"`
}

// TriggerExit follows an exit out of the current scene.
type TriggerExit struct {
	ExitID string `json:"exitId"`
}

// GoBack pops the scene history stack and returns to the previous
// scene. No gate applies; the player has already been there.
type GoBack struct{}

// TalkToNPC opens a conversation with an NPC placed in the current
// scene, subject to the placement's required-item gate.
type TalkToNPC struct {
	NPCID string `json:"npcId"`
}

// SelectDialogueOption chooses an option on the active dialogue node
// by its index in the node's option list.
type SelectDialogueOption struct {
	OptionIndex int `json:"optionIndex"`
}

// CloseDialogue dismisses the open conversation.
type CloseDialogue struct{}

// SubmitPuzzleAnswer submits an answer for an open puzzle hotspot.
type SubmitPuzzleAnswer struct {
	HotspotID string `json:"hotspotId"`
	Answer    string `json:"answer"`
}

// CombineItems attempts to combine two held items.
type CombineItems struct {
	ItemA string `json:"itemA"`
	ItemB string `json:"itemB"`
}

// InspectItem opens the detail view for a held item.
type InspectItem struct {
	ItemID string `json:"itemId"`
}

// CloseInspect dismisses the item detail view.
type CloseInspect struct{}

// OpenAccusation asks to open the accusation screen. It is refused
// with a message until all crucial evidence is held.
type OpenAccusation struct{}

// SubmitAccusation names a suspect and ends the game.
type SubmitAccusation struct {
	NPCID string `json:"npcId"`
}

// Restart discards the session and rebuilds a fresh one from content.
type Restart struct{}

func (TriggerHotspot) isAction()       {}
func (TriggerExit) isAction()          {}
func (GoBack) isAction()               {}
func (TalkToNPC) isAction()            {}
func (SelectDialogueOption) isAction() {}
func (CloseDialogue) isAction()        {}
func (SubmitPuzzleAnswer) isAction()   {}
func (CombineItems) isAction()         {}
func (InspectItem) isAction()          {}
func (CloseInspect) isAction()         {}
func (OpenAccusation) isAction()       {}
func (SubmitAccusation) isAction()     {}
func (Restart) isAction()              {}
