package api

import "context"

// ProfileInput is the multipart payload for a profile update. Empty
// fields are omitted; the backend keeps their current values.
type ProfileInput struct {
	Name               string
	Email              string
	PhoneNumber        string
	Address            string
	ProfileImage       *Upload
	RemoveProfileImage bool
}

// UpdateProfile saves the user's personal details and returns the
// refreshed user record.
func (c *Client) UpdateProfile(ctx context.Context, token string, in ProfileInput) (User, error) {
	fields := map[string]string{}
	if in.Name != "" {
		fields["name"] = in.Name
	}
	if in.Email != "" {
		fields["email"] = in.Email
	}
	if in.PhoneNumber != "" {
		fields["phone_number"] = in.PhoneNumber
	}
	if in.Address != "" {
		fields["address"] = in.Address
	}
	if in.RemoveProfileImage {
		fields["remove_profile_image"] = "true"
	}

	var user User
	err := c.doMultipart(ctx, "POST", "/profile", token, fields, in.ProfileImage, &user)
	return user, err
}

// SubmitReview records a review. Reviews are write-once for the
// customer; only admins list them.
func (c *Client) SubmitReview(ctx context.Context, token, mealRating, customMessage string) (string, error) {
	var result MessageResult
	err := c.do(ctx, "POST", "/reviews", token, map[string]string{
		"meal_rating":    mealRating,
		"custom_message": customMessage,
	}, &result)
	return result.Message, err
}
