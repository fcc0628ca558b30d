package services

// Services defined in this package:
// - AuthService: registration, login and refresh token rotation
// - PlanService: plan decoding, plan mutations and saved plan slots

// Services holds all the service instances
type Services struct {
	AuthService *AuthService
	PlanService *PlanService
}
