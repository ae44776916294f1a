package constants

// Session / context keys
const (
	SessionCookieName = "collab_session"
	ContextKeyUserID  = "user_id"
)

// Password rules
const (
	MinPasswordLength = 8
)

// Pagination limits
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// DeletedUserName is rendered in place of a username whose user no longer exists.
const DeletedUserName = "DELETED_USER"
