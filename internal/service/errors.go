package service

import "errors"

// ErrTemplateNotFound means a required prompt template is missing or
// inactive. The current generation step aborts; the operator fixes the
// template and retries.
var ErrTemplateNotFound = errors.New("prompt template not found")

// ErrRegenerationLimit means the bounded regeneration count is exhausted.
// No external call is made and the draft stays unchanged.
var ErrRegenerationLimit = errors.New("regeneration limit reached")

// ErrNoSuggestions means the edited suggestion list contained no valid
// lines. Rejected before any external call.
var ErrNoSuggestions = errors.New("no valid improvement suggestions")

// ErrSessionNotFound means the draft session id is unknown or already saved.
var ErrSessionNotFound = errors.New("draft session not found")

// ErrUnknownPostType means the requested post type is outside the closed
// Promotional/Educational set.
var ErrUnknownPostType = errors.New("unknown post type")

// ErrNoContent means the action needs generated content the session does
// not have yet.
var ErrNoContent = errors.New("no generated content in session")
