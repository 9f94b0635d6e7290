package dto

type UpsertProfileRequest struct {
	DisplayName       string `json:"displayName" binding:"required"`
	PersonalityPrompt string `json:"personalityPrompt" binding:"required"`
}

type UpsertProfileResponse struct {
	DisplayName       string `json:"displayName"`
	PersonalityPrompt string `json:"personalityPrompt"`
}

type ProfileResponse struct {
	ProfileID         string `json:"profileId"`
	DisplayName       string `json:"displayName"`
	PersonalityPrompt string `json:"personalityPrompt"`
	PhotoURL          string `json:"photoUrl,omitempty"`
	VoiceCloneID      string `json:"voiceCloneId,omitempty"`
}

type ChatSendRequest struct {
	Text string `json:"text" binding:"required"`
}

type ChatSendResponse struct {
	Reply               string `json:"reply"`
	RemainingCharsToday int    `json:"remainingCharsToday"`
}

type ChatQuotaResponse struct {
	RemainingCharsToday int `json:"remainingCharsToday"`
	PlanLimit           int `json:"planLimit"`
}
