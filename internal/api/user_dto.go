package api

// UpdateUserBody defines the profile fields PATCH /v1/users/:id accepts.
// Pointers distinguish "field not sent" from "field sent empty".
type UpdateUserBody struct {
	Name        *string           `json:"name"`
	Bio         *string           `json:"bio"`
	SocialMedia map[string]string `json:"social_media"`
}
