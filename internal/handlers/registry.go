package handlers

// AppHandlers bundles the initialized handlers for route registration.
type AppHandlers struct {
	AuthHandler  *AuthHandler
	UserHandler  *UserHandler
	ChatHandler  *ChatHandler
	VoiceHandler *VoiceHandler
	VideoHandler *VideoHandler
	FileHandler  *FileHandler
}
