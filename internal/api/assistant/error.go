package assistant

import "PawPalGolang/pkg/response"

var (
	ErrSessionNotFound = response.NewError(404, "assistant session not found")
	ErrSessionBusy     = response.NewError(409, "assistant session is still waiting for an answer")
	ErrEmptyQuestion   = response.NewError(400, "question text is required")
)
