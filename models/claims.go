package models

import "github.com/golang-jwt/jwt/v5"

// SupabaseClaims represents the claims in a Supabase-issued JWT. The mobile
// client signs in against Supabase directly; this API only verifies the token.
type SupabaseClaims struct {
	jwt.RegisteredClaims
	Email        string `json:"email"`
	Sub          string `json:"sub"`
	Role         string `json:"role"`
	UserMetadata struct {
		DisplayName string `json:"display_name"`
	} `json:"user_metadata"`
	AppMetadata struct {
		Provider string `json:"provider"`
	} `json:"app_metadata"`
}
