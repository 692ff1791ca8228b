package engine

import "github.com/casefile-games/mystery-engine/pkg/game"

// EffectType identifies a presentation effect the UI should perform.
type EffectType string

const (
	EffectShowMessage    EffectType = "show_message"
	EffectShowShake      EffectType = "show_shake"
	EffectShowFlash      EffectType = "show_flash"
	EffectItemObtained   EffectType = "item_obtained"
	EffectOpenExamine    EffectType = "open_examine"
	EffectOpenPuzzle     EffectType = "open_puzzle"
	EffectClosePuzzle    EffectType = "close_puzzle"
	EffectSceneChanged   EffectType = "scene_changed"
	EffectDialogueOpened EffectType = "dialogue_opened"
	EffectDialogueClosed EffectType = "dialogue_closed"
	EffectOpenAccusation EffectType = "open_accusation"
	EffectGameEnded      EffectType = "game_ended"
)

// Effect is a presentation instruction emitted by the resolver. The
// engine only produces these as data; rendering belongs to the UI.
type Effect struct {
	Type      EffectType      `json:"type"`
	Message   string          `json:"message,omitempty"`
	ItemID    string          `json:"itemId,omitempty"`
	SceneID   string          `json:"sceneId,omitempty"`
	HotspotID string          `json:"hotspotId,omitempty"`
	NPCID     string          `json:"npcId,omitempty"`
	Ending    game.EndingType `json:"ending,omitempty"`
}

func showMessage(text string) Effect {
	return Effect{Type: EffectShowMessage, Message: text}
}

func showShake() Effect {
	return Effect{Type: EffectShowShake}
}

func showFlash() Effect {
	return Effect{Type: EffectShowFlash}
}

func itemObtained(itemID string) Effect {
	return Effect{Type: EffectItemObtained, ItemID: itemID}
}

func sceneChanged(sceneID string) Effect {
	return Effect{Type: EffectSceneChanged, SceneID: sceneID}
}

func gameEnded(ending game.EndingType) Effect {
	return Effect{Type: EffectGameEnded, Ending: ending}
}

// HasEffect reports whether the list contains an effect of the given
// type. Convenience for tests and thin UI wrappers.
func HasEffect(effects []Effect, et EffectType) bool {
	for _, e := range effects {
		if e.Type == et {
			return true
		}
	}
	return false
}
