package constant

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	PrincipalKey contextKey = "principal"
	SessionIDKey contextKey = "session_id"
)
