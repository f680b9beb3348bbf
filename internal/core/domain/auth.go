package domain

// AuthStatus distingue um cliente anônimo de um cuja credencial não pôde ser
// verificada. Ambos recebem a cota anônima.
type AuthStatus string

const (
	AuthAnonymous     AuthStatus = "anonymous"
	AuthAuthenticated AuthStatus = "authenticated"
	AuthUnverified    AuthStatus = "unverified"
)

type AuthResult struct {
	Status AuthStatus
	Err    error
}

func (r AuthResult) Authenticated() bool {
	return r.Status == AuthAuthenticated
}
