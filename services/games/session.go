package games

import (
	models "Guessify/models/postgres"
)

// Membership mutations are pure functions on a fetched game record. The caller
// owns the read-modify-write cycle: fetch, mutate, save, broadcast.

// AddMember appends a membership entry unless one already exists for the same
// user id, so interleaved joins never produce duplicates. Rejoining with a new
// connection rebinds the existing entry to it. The first member becomes admin.
// Returns true when the record changed.
func AddMember(game *models.Game, member models.ConnectedUser) bool {
	members := game.Members()
	for i := range members {
		if members[i].ID == member.ID {
			if members[i].ClientID == member.ClientID {
				return false
			}
			members[i].ClientID = member.ClientID
			game.SetMembers(members)
			return true
		}
	}

	members = append(members, member)
	game.SetMembers(members)
	if game.AdminID == "" {
		game.AdminID = member.ID
	}
	return true
}

// RemoveMemberByClientID drops the membership entry backed by the given socket
// connection. When the leaving user was the admin, the earliest joined
// remaining member inherits the role; an emptied room clears it.
func RemoveMemberByClientID(game *models.Game, clientID string) (models.ConnectedUser, bool) {
	members := game.Members()
	for i := range members {
		if members[i].ClientID == clientID {
			removed := members[i]
			members = append(members[:i], members[i+1:]...)
			game.SetMembers(members)
			reassignAdmin(game, removed, members)
			return removed, true
		}
	}
	return models.ConnectedUser{}, false
}

// RemoveMemberByUserID drops the membership entry of a user regardless of
// which connection backs it.
func RemoveMemberByUserID(game *models.Game, userID string) (models.ConnectedUser, bool) {
	members := game.Members()
	for i := range members {
		if members[i].ID == userID {
			removed := members[i]
			members = append(members[:i], members[i+1:]...)
			game.SetMembers(members)
			reassignAdmin(game, removed, members)
			return removed, true
		}
	}
	return models.ConnectedUser{}, false
}

func reassignAdmin(game *models.Game, removed models.ConnectedUser, remaining []models.ConnectedUser) {
	if game.AdminID != removed.ID {
		return
	}
	if len(remaining) > 0 {
		game.AdminID = remaining[0].ID
	} else {
		game.AdminID = ""
	}
}

// CheckPassword gates entry to private games. Comparison is plain equality,
// matching what clients send at join time.
func CheckPassword(game *models.Game, password string) bool {
	if !game.IsPrivate {
		return true
	}
	return game.Password == password
}
