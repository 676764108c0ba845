package session

import "time"

// Store holds the terminal's local session record: the credential
// token, the owning user's id, the sign-in time and the cached
// organization display name. All four are written and wiped together.
//
// Getters degrade to zero values when the backing state is missing or
// unreadable; a missing token is the ordinary logged-out state, not an
// error.
type Store interface {
	Token() string
	UserID() string
	LoginTime() time.Time
	Organization() string

	SetSession(token, userID string) error
	SetOrganization(name string) error
	Clear() error
}

// record is the stored shape shared by the file and memory backends.
// LoginTime is epoch milliseconds.
type record struct {
	Token        string `json:"token"`
	UserID       string `json:"userId"`
	LoginTime    int64  `json:"loginTime"`
	Organization string `json:"organization"`
}

func (r record) loginTime() time.Time {
	if r.LoginTime == 0 {
		return time.Time{}
	}
	return time.UnixMilli(r.LoginTime)
}
