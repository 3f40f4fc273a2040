package redis

type UserStatus string

const (
	StatusOffline UserStatus = "OFFLINE"
	StatusLobby   UserStatus = "LOBBY"
	StatusGame    UserStatus = "GAME"
)

// UserPresence is the live state of a connected user. ClientID is the socket
// connection id of the latest connection; it goes stale when the user
// reconnects and is overwritten on the next handshake.
type UserPresence struct {
	UserID   string     `json:"user_id"`
	Name     string     `json:"name"`
	Status   UserStatus `json:"status"`
	ClientID string     `json:"client_id"`
	Score    int        `json:"score"`
}
