package game

// ActionType is the kind of interaction a hotspot triggers.
type ActionType string

const (
	ActionGoto        ActionType = "GOTO"
	ActionGetItem     ActionType = "GET_ITEM"
	ActionTalk        ActionType = "TALK"
	ActionExamine     ActionType = "EXAMINE"
	ActionInputPuzzle ActionType = "INPUT_PUZZLE"
)

// VisualEffect is a presentation cue emitted when a hotspot fires.
type VisualEffect string

const (
	EffectNone  VisualEffect = "NONE"
	EffectShake VisualEffect = "SHAKE"
	EffectFlash VisualEffect = "FLASH"
)

// EndingType classifies how a finished game ended.
type EndingType string

const (
	EndingSuccess EndingType = "SUCCESS"
	EndingFailure EndingType = "FAILURE"
)

// Hotspot is a clickable region within a scene. Coordinates are
// percentages of the scene bounds. Hotspot ids are globally unique
// across the whole game, not per scene; Validate enforces this.
type Hotspot struct {
	ID     string    `json:"id"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
	Label  Localized `json:"label"`

	ActionType     ActionType `json:"actionType"`
	TargetID       string     `json:"targetId,omitempty"`       // scene, item or NPC id depending on ActionType
	RequiredItemID string     `json:"requiredItemId,omitempty"` // inventory gate

	SuccessMessage     *Localized   `json:"successMessage,omitempty"`
	ItemMissingMessage *Localized   `json:"itemMissingMessage,omitempty"`
	VisualEffect       VisualEffect `json:"visualEffect,omitempty"`

	DetailImageURL string `json:"detailImageUrl,omitempty"`

	// Linked interactions: hidden hotspots become interactable once
	// revealed by another hotspot. Sub-actions never render directly
	// on the scene and are reachable only through reveals.
	InitialHidden     bool     `json:"initialHidden,omitempty"`
	RevealsHotspotIDs []string `json:"revealsHotspotIds,omitempty"`
	IsSubAction       bool     `json:"isSubAction,omitempty"`

	// Puzzle fields, meaningful only for ActionInputPuzzle.
	PuzzleAnswer   string     `json:"puzzleAnswer,omitempty"`
	PuzzlePrompt   *Localized `json:"puzzlePrompt,omitempty"`
	FailureMessage *Localized `json:"failureMessage,omitempty"`

	IsEnding   bool       `json:"isEnding,omitempty"`
	EndingType EndingType `json:"endingType,omitempty"`
}

// SceneExit is navigation-only: no reveals, no endings, just an
// optional item gate. Exits are deliberately simpler than hotspots.
type SceneExit struct {
	ID             string    `json:"id"`
	TargetSceneID  string    `json:"targetSceneId"`
	Label          Localized `json:"label"`
	RequiredItemID string    `json:"requiredItemId,omitempty"`
}

// SceneNPC places an NPC in a scene, optionally gated by an item.
type SceneNPC struct {
	NPCID          string `json:"npcId"`
	RequiredItemID string `json:"requiredItemId,omitempty"`
}

// Scene is one location in the game with its interactive elements.
type Scene struct {
	ID              string     `json:"id"`
	Name            Localized  `json:"name"`
	DescriptionText Localized  `json:"descriptionText,omitempty"`
	ImageURL        string     `json:"imageUrl,omitempty"`
	BgmID           string     `json:"bgmId,omitempty"`
	Hotspots        []Hotspot  `json:"hotspots"`
	Exits           []SceneExit `json:"exits,omitempty"`
	NPCConfigs      []SceneNPC `json:"npcConfigs,omitempty"`
}

// Hotspot returns the hotspot with the given id within this scene.
func (s *Scene) Hotspot(id string) (*Hotspot, bool) {
	for i := range s.Hotspots {
		if s.Hotspots[i].ID == id {
			return &s.Hotspots[i], true
		}
	}
	return nil, false
}

// Exit returns the exit with the given id within this scene.
func (s *Scene) Exit(id string) (*SceneExit, bool) {
	for i := range s.Exits {
		if s.Exits[i].ID == id {
			return &s.Exits[i], true
		}
	}
	return nil, false
}

// NPCConfig returns the placement config for an NPC in this scene.
func (s *Scene) NPCConfig(npcID string) (*SceneNPC, bool) {
	for i := range s.NPCConfigs {
		if s.NPCConfigs[i].NPCID == npcID {
			return &s.NPCConfigs[i], true
		}
	}
	return nil, false
}
