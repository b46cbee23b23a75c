package core

import "errors"

var (
	// ErrInvalidTransition reports an input or tick arriving in a state that
	// forbids it. Callers recover by ignoring the operation.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrExhaustedPlacement reports that no valid slot is left for a spawn.
	// It ends the current session.
	ErrExhaustedPlacement = errors.New("exhausted placement")

	// ErrPersistenceUnavailable reports that the best-score store could not
	// be read or written. Gameplay continues with an in-memory best.
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
)
