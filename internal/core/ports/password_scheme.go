package ports

// PasswordScheme turns a submitted password into its stored form and checks
// later submissions against it.
type PasswordScheme interface {
	Prepare(password string) (string, error)
	Compare(stored, submitted string) bool
}
