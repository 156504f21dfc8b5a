package config

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors returned by Validate and ApplyEnv. Compare with errors.Is.
var (
	// ErrInvalidLayout indicates geometry that the tile layout cannot use.
	ErrInvalidLayout = constError("invalid layout")

	// ErrInvalidConfig indicates any other invalid setting.
	ErrInvalidConfig = constError("invalid config")
)
