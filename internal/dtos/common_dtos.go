package dtos

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthCheckResponse struct {
	Status   string            `json:"status"`
	Backends map[string]string `json:"backends,omitempty"`
}
