package event

// OTPIssuedDestination is the topic/subject for issued OTP challenges.
//
// Consumers of this event own the delivery channel (email, SMS, push). The
// authentication service only records that a code must reach the principal.
const OTPIssuedDestination = "account_otp_issued"

// OTPIssuedMessage is the payload published when an OTP challenge is issued.
type OTPIssuedMessage struct {
	UserID    int64  `json:"user_id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Code      string `json:"code"`
	ExpiresAt string `json:"expires_at"`
}
