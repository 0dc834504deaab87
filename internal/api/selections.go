package api

import "context"

// ListUserSelections returns every saved selection for the user.
func (c *Client) ListUserSelections(ctx context.Context, token string) ([]Selection, error) {
	var selections []Selection
	err := c.do(ctx, "GET", "/user-selections", token, nil, &selections)
	return selections, err
}

// SelectionInput is the upsert payload for a meal choice. Exactly one
// of SelectedOptionID / IsSkipped carries the choice: a skip sends a
// null option id.
type SelectionInput struct {
	DailyMenuID      int  `json:"daily_menu_id"`
	SelectedOptionID *int `json:"selected_option_id"`
	IsSkipped        bool `json:"is_skipped"`
}

// UpsertSelection saves a choice for a daily menu. The backend keys
// the record on (user, daily_menu), so a later save overwrites the
// earlier one and repeating an unchanged save is a no-op.
func (c *Client) UpsertSelection(ctx context.Context, token string, in SelectionInput) (Selection, error) {
	var selection Selection
	err := c.do(ctx, "POST", "/user-selections", token, in, &selection)
	return selection, err
}

// TogglePause flips the subscription's paused state and returns the
// backend's acknowledgement message.
func (c *Client) TogglePause(ctx context.Context, token string) (string, error) {
	var result MessageResult
	err := c.do(ctx, "POST", "/subscriptions/toggle-pause", token, struct{}{}, &result)
	return result.Message, err
}
