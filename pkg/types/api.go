package types

import "github.com/google/uuid"

// MetasResponse wraps the speakers returned by GET /metas.
type MetasResponse struct {
	Speakers []SpeakerMeta `json:"speakers" yaml:"speakers" toml:"speakers"`
}

// StyleResponse is returned by GET /styles/{id}.
type StyleResponse struct {
	Speaker     string       `json:"speaker"`
	SpeakerUUID uuid.UUID    `json:"speaker_uuid"`
	Style       SpeakerStyle `json:"style"`
}

// StatusResponse reports the binding's lifecycle state.
type StatusResponse struct {
	// example: initialized
	State string `json:"state" example:"initialized"`
	Ready bool   `json:"ready"`
}

// LastErrorResponse carries the engine's most recent diagnostic text.
type LastErrorResponse struct {
	// example: failed to load model
	Message string `json:"message" example:"failed to load model"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: metas unavailable
	Error string `json:"error" example:"metas unavailable"`
	// HTTP status code.
	// example: 503
	Code int `json:"code" example:"503"`
}
