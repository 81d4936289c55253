package api

// API paths, relative to the configured base URL.
const (
	RouteCheckUserExists   = "/users/user-exist"
	RouteLogin             = "/auth/login"
	RouteSignup            = "/auth/signup"
	RouteGoogleCallback    = "/auth/google-callback"
	RouteGoogleAppCallback = "/auth/google-app-callback"
	RouteSendOTP           = "/auth/send-otp"
	RouteVerifyOTP         = "/auth/verify-otp"
	RouteResetPassword     = "/auth/reset-password"
	RouteLoggedUser        = "/users/get-logged-user"
	RouteLocations         = "/locations"
	RoutePropertyTypes     = "/property-types"
	RouteProperties        = "/properties"
	RouteUploadSignature   = "/upload/generate-signature"
)
