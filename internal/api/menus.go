package api

import (
	"context"
	"fmt"
)

// ListDailyMenus returns the published daily menus. The endpoint is
// public; the backend limits it to the upcoming window.
func (c *Client) ListDailyMenus(ctx context.Context) ([]DailyMenu, error) {
	var menus []DailyMenu
	err := c.do(ctx, "GET", "/daily-menus", "", nil, &menus)
	return menus, err
}

// ListAdminDailyMenus returns every daily menu for the admin table.
func (c *Client) ListAdminDailyMenus(ctx context.Context, token string) ([]DailyMenu, error) {
	var menus []DailyMenu
	err := c.do(ctx, "GET", "/admin/daily-menus", token, nil, &menus)
	return menus, err
}

// DailyMenuInput is the create/update payload for a daily menu slot.
// Option2ID is nil when the slot has a single option.
type DailyMenuInput struct {
	MenuDate  string `json:"menu_date"`
	MealType  string `json:"meal_type"`
	Option1ID int    `json:"option_1_id"`
	Option2ID *int   `json:"option_2_id"`
}

func (c *Client) CreateDailyMenu(ctx context.Context, token string, in DailyMenuInput) error {
	return c.do(ctx, "POST", "/daily-menus", token, in, nil)
}

func (c *Client) UpdateDailyMenu(ctx context.Context, token string, id int, in DailyMenuInput) error {
	return c.do(ctx, "PUT", fmt.Sprintf("/daily-menus/%d", id), token, in, nil)
}

func (c *Client) DeleteDailyMenu(ctx context.Context, token string, id int) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/daily-menus/%d", id), token, nil, nil)
}

// ListMenuItems returns the full menu item catalog.
func (c *Client) ListMenuItems(ctx context.Context, token string) ([]MenuItem, error) {
	var items []MenuItem
	err := c.do(ctx, "GET", "/menu-items", token, nil, &items)
	return items, err
}

// MenuItemInput is the create/update payload for a menu item. Image
// is optional; when present it rides a multipart request.
type MenuItemInput struct {
	Name        string
	Description string
	MealType    string
	Image       *Upload
}

func (c *Client) CreateMenuItem(ctx context.Context, token string, in MenuItemInput) error {
	return c.doMultipart(ctx, "POST", "/menu-items", token, map[string]string{
		"name":        in.Name,
		"description": in.Description,
		"meal_type":   in.MealType,
	}, in.Image, nil)
}

func (c *Client) UpdateMenuItem(ctx context.Context, token string, id int, in MenuItemInput) error {
	return c.doMultipart(ctx, "PUT", fmt.Sprintf("/menu-items/%d", id), token, map[string]string{
		"name":        in.Name,
		"description": in.Description,
		"meal_type":   in.MealType,
	}, in.Image, nil)
}

func (c *Client) DeleteMenuItem(ctx context.Context, token string, id int) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/menu-items/%d", id), token, nil, nil)
}
