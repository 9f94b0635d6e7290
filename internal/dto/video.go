package dto

type GenerateVideoRequest struct {
	Text string `json:"text" binding:"required"`
}

type GenerateFromAudioRequest struct {
	AudioURL string `json:"audioUrl" binding:"required,url"`
}

type GenerateVideoResponse struct {
	JobID  string `json:"jobId"`
	Status string `json:"status"` // PENDING | PROCESSING | DONE | ERROR
}

type UploadPhotoResponse struct {
	PhotoURL string `json:"photoUrl"`
}

type VideoStatusResponse struct {
	Status   string `json:"status"`
	VideoURL string `json:"videoUrl,omitempty"` // set only when DONE
}
