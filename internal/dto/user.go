package dto

type MeResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	PlanTier string `json:"planTier"`
	Consent  bool   `json:"consent"`
}

type UpdateProfileRequest struct {
	Nickname string `json:"nickname" binding:"required"`
}

type ConsentRequest struct {
	Consent *bool `json:"consent" binding:"required"`
}
