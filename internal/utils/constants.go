package utils

const (
	CORSLowSecurityAllowedOriginLocalhost = "http://localhost:*"

	DefaultPageLimit = 100
	MaxPageLimit     = 1000
)
