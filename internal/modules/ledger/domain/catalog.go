package domain

import apperrors "selfforge/internal/platform/errors"

// ShopItem is a static catalog entry. Items are never marked owned; a repeat
// purchase charges the full cost again.
type ShopItem struct {
	ID          string
	Name        string
	Description string
	Cost        int
	Icon        string
}

var catalog = []ShopItem{
	{ID: "rest-permit", Name: "Rest Permit", Description: "One guilt-free hour of rest.", Cost: 5, Icon: "☕"},
	{ID: "oracle-secret", Name: "Oracle's Secret", Description: "Unlocks a special meditation theme.", Cost: 20, Icon: "🔮"},
	{ID: "courage-medal", Name: "Medal of Courage", Description: "Digital badge for one hundred tasks.", Cost: 50, Icon: "🛡️"},
	{ID: "golden-hammer", Name: "Golden Hammer", Description: "Upgrades the furnace visuals.", Cost: 100, Icon: "🔨"},
}

// Catalog returns the fixed shop inventory in display order.
func Catalog() []ShopItem {
	items := make([]ShopItem, len(catalog))
	copy(items, catalog)
	return items
}

func ItemByID(itemID string) (ShopItem, error) {
	for _, item := range catalog {
		if item.ID == itemID {
			return item, nil
		}
	}
	return ShopItem{}, apperrors.ErrUnknownItem
}
