package util

type Envelope map[string]any

func Error(message string) Envelope {
	return Envelope{"error": message}
}

// Success is the fixed body for idempotent delete endpoints.
func Success() Envelope {
	return Envelope{"success": true}
}
