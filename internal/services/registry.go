package services

// ServiceContainer bundles the initialized services for wiring into
// handlers.
type ServiceContainer struct {
	AuthService  AuthService
	UserService  UserService
	ChatService  ChatService
	VoiceService VoiceService
	VideoService VideoService
	QuotaService QuotaService
}
