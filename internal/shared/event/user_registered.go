package event

// UserRegisteredDestination is the topic/subject for registration events.
const UserRegisteredDestination = "account_user_registered"

// UserRegisteredMessage is the payload published after a successful registration.
type UserRegisteredMessage struct {
	UserID   int64  `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}
