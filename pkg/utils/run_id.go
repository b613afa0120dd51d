package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateRunID creates a short, human-readable ID for one CLI run.
// Format: {operation}-{shipSymbolWithoutAgentPrefix}-{8charHexUUID}
//
// Example:
//   - Input: operation="mine", shipSymbol="AGENT-MINER-1"
//   - Output: "mine-MINER-1-a3f8e2b1"
//
// An empty ship symbol yields "{operation}-{8charHexUUID}".
func GenerateRunID(operation, shipSymbol string) string {
	if operation == "" {
		operation = "run"
	}
	if shipSymbol == "" {
		return operation + "-" + generateShortUUID()
	}
	return operation + "-" + stripAgentPrefix(shipSymbol) + "-" + generateShortUUID()
}

// stripAgentPrefix keeps the last two hyphen-separated segments:
//   - "AGENT-SCOUT-1" -> "SCOUT-1"
//   - "MY-AGENT-MINER-2" -> "MINER-2"
//   - "SCOUT-1" -> "SCOUT-1"
//   - "SINGLE" -> "SINGLE"
func stripAgentPrefix(shipSymbol string) string {
	parts := strings.Split(shipSymbol, "-")
	if len(parts) <= 2 {
		return shipSymbol
	}
	return strings.Join(parts[len(parts)-2:], "-")
}

func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
