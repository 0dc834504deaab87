package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// UserFilter narrows the admin user listing.
type UserFilter struct {
	Page    int
	PerPage int
	// Active filters on subscription state when non-nil.
	Active *bool
}

// ListUsers returns a page of users for the admin panel.
func (c *Client) ListUsers(ctx context.Context, token string, filter UserFilter) (UserPage, error) {
	q := url.Values{}
	if filter.Page > 0 {
		q.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(filter.PerPage))
	}
	if filter.Active != nil {
		q.Set("is_active", strconv.FormatBool(*filter.Active))
	}

	endpoint := "/admin/users"
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var page UserPage
	err := c.do(ctx, "GET", endpoint, token, nil, &page)
	return page, err
}

// GetUser returns one user with subscription and meal history.
func (c *Client) GetUser(ctx context.Context, token string, id int) (User, error) {
	var user User
	err := c.do(ctx, "GET", fmt.Sprintf("/admin/users/%d", id), token, nil, &user)
	return user, err
}

func (c *Client) DeleteUser(ctx context.Context, token string, id int) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/admin/users/%d", id), token, nil, nil)
}

// ActivateSubscription assigns a plan and meal-type preference to a
// user, creating or replacing their subscription.
func (c *Client) ActivateSubscription(ctx context.Context, token string, userID, planID int, mealTypes []string) (string, error) {
	var result MessageResult
	err := c.do(ctx, "POST", "/subscriptions", token, map[string]any{
		"user_id":               userID,
		"plan_id":               planID,
		"meals_time_preference": mealTypes,
	}, &result)
	return result.Message, err
}

// ListReviews returns every submitted review for the admin panel.
func (c *Client) ListReviews(ctx context.Context, token string) ([]Review, error) {
	var reviews []Review
	err := c.do(ctx, "GET", "/admin/reviews", token, nil, &reviews)
	return reviews, err
}

// GetReport returns the kitchen and delivery aggregates for a date
// (YYYY-MM-DD). The frontend only filters rows by meal type for
// display; aggregation stays server-side.
func (c *Client) GetReport(ctx context.Context, token, date string) (Report, error) {
	var report Report
	err := c.do(ctx, "GET", "/admin/reports/"+url.PathEscape(date), token, nil, &report)
	return report, err
}
