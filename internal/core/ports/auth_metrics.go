package ports

// AuthMetrics records auth outcomes. Results are "success", "rejected" or
// "error"; guard reasons are "missing_token", "invalid_token" or
// "unknown_user".
type AuthMetrics interface {
	Signup(result string)
	Login(result string)
	GuestProvisioned()
	GuardRejected(reason string)
}
