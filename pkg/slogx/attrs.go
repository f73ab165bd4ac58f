package slogx

import (
	"log/slog"

	"github.com/google/uuid"
)

const (
	// KeyLoggerName is the key for the component that emitted a record.
	KeyLoggerName = "logger"
	// KeyTool is the key for a canonical tool name.
	KeyTool = "tool"
	// KeyFingerprint is the key for a result cache fingerprint.
	KeyFingerprint = "fingerprint"
	// KeyRound is the key for the zero-based round of a conversation.
	KeyRound = "round"
	// KeyRunID is the key for the id of a single question run.
	KeyRunID = "run_id"
)

// Error returns a slog.Attr representing the provided error.
// The attribute key is "error" and the value is the error's message.
func Error(err error) slog.Attr {
	return slog.String("error", err.Error())
}

// LoggerName creates a slog.Attr with the provided logger name.
func LoggerName(name string) slog.Attr {
	return slog.String(KeyLoggerName, name)
}

// Tool creates a slog.Attr carrying a tool name.
func Tool(name string) slog.Attr {
	return slog.String(KeyTool, name)
}

// Fingerprint creates a slog.Attr carrying a cache key.
func Fingerprint(key string) slog.Attr {
	return slog.String(KeyFingerprint, key)
}

// Round creates a slog.Attr carrying a conversation round.
func Round(round int) slog.Attr {
	return slog.Int(KeyRound, round)
}

// RunID creates a slog.Attr carrying the id of a question run.
func RunID(id uuid.UUID) slog.Attr {
	return slog.String(KeyRunID, id.String())
}
