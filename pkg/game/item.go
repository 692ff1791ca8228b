package game

// Item is an inventory object. Combination rules are pairwise: the
// declaring item names its partner and the result. The rule works in
// both directions regardless of which item declares it.
type Item struct {
	ID          string    `json:"id"`
	Name        Localized `json:"name"`
	Description Localized `json:"description"`

	IconURL        string `json:"iconUrl,omitempty"`
	DetailImageURL string `json:"detailImageUrl,omitempty"`

	CombinableWith string `json:"combinableWith,omitempty"`
	ResultItemID   string `json:"resultItemId,omitempty"`

	// Crucial evidence gates the accusation: every crucial item must
	// be held before the player may accuse anyone.
	IsCrucialEvidence bool `json:"isCrucialEvidence,omitempty"`
}

// CombinesInto returns the result item id when this item declares a
// combination with other.
func (i *Item) CombinesInto(otherID string) (string, bool) {
	if i.CombinableWith == otherID && i.ResultItemID != "" {
		return i.ResultItemID, true
	}
	return "", false
}
