package ask

import "errors"

// ErrNoAnswerService is returned when no answer service is wired.
var ErrNoAnswerService = errors.New("ask: answer service not available")
