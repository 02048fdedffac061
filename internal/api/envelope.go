package api

import (
	"strconv"

	"github.com/danielgtaylor/huma/v2"
)

// envelopeVersion is the wire version of the response envelope. Clients key
// parsing off this number; bump it only with a coordinated client release.
const envelopeVersion = 1

// successEnvelope wraps successful responses.
type successEnvelope struct {
	V       int  `json:"v"`
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// simpleErrorEnvelope wraps errors that carry only a message.
type simpleErrorEnvelope struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// detailedErrorEnvelope wraps errors with a machine-readable code and
// optional details payload.
type detailedErrorEnvelope struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps every response body in the versioned envelope the
// web and mobile clients expect. Registered as a huma transformer, so
// handlers return bare DTOs and never see the envelope.
//
// The field name "v" is part of the client contract; see the fixtures under
// testdata/envelope.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		if apiErr.Code != "" {
			return &detailedErrorEnvelope{
				V:       envelopeVersion,
				Success: false,
				Code:    apiErr.Code,
				Message: apiErr.Message,
				Details: apiErr.Details,
			}, nil
		}
		return &simpleErrorEnvelope{
			V:       envelopeVersion,
			Success: false,
			Error:   apiErr.Message,
		}, nil
	}

	code, err := strconv.Atoi(status)
	success := err == nil && code < 400

	return &successEnvelope{
		V:       envelopeVersion,
		Success: success,
		Data:    v,
	}, nil
}
