package utils

import "fmt"

// FormatPresenceKey returns the Redis key holding a user's presence state.
// Key format: "presence:user:{userID}"
func FormatPresenceKey(userID string) string {
	return fmt.Sprintf("presence:user:%s", userID)
}

// FormatConnectionKey returns the Redis key mapping a socket connection id
// back to its user. Key format: "presence:conn:{clientID}"
func FormatConnectionKey(clientID string) string {
	return fmt.Sprintf("presence:conn:%s", clientID)
}

// PresenceKeyPattern matches every presence entry, used for lobby listings.
const PresenceKeyPattern = "presence:user:*"
