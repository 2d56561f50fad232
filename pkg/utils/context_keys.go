package utils

// Keys under which the auth middleware stores the caller identity in the gin context.
const (
	ContextUserIDKey   = "userID"
	ContextChurchIDKey = "churchID"
	ContextGroupIDKey  = "groupID"
	ContextStatusKey   = "status"
)
