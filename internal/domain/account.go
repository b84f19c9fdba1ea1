package domain

// Known position values returned by the operations API.
const (
	PositionAdmin      = "admin"
	PositionSupervisor = "supervisor"
	PositionWorker     = "worker"
)

// Account is the identity record the operations API returns on a successful
// credential check. It is captured at login time and promoted to a session
// once the emailed passcode is verified.
type Account struct {
	UserID   string `json:"id"`
	Name     string `json:"name"`
	LastName string `json:"last_name"`
	Email    string `json:"email"`
	Position string `json:"position"`
}
