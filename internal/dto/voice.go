package dto

type GenerateVoiceRequest struct {
	Text string `json:"text" binding:"required"`
}

type AudioResponse struct {
	AudioURL string `json:"audioUrl"`
}

type UploadSampleResponse struct {
	VoiceID string `json:"voiceId"`
}

type VoiceSample struct {
	SampleID string `json:"sampleId"`
	URL      string `json:"url"`
}
