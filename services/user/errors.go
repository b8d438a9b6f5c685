package user

import "errors"

var (
	ErrEmailTaken          = errors.New("email già registrata")
	ErrInvalidCredentials  = errors.New("email o password errati")
	ErrAccountDisabled     = errors.New("account disabilitato")
	ErrAccountNotFound     = errors.New("utente non trovato")
	ErrInvalidUserType     = errors.New("user type non valido")
	ErrBusinessNameMissing = errors.New("business name obbligatorio per provider")
	ErrInvalidCategory     = errors.New("categoria di servizio non valida")
	ErrNoFieldsToUpdate    = errors.New("nessun campo da aggiornare")
	ErrInvalidFullName     = errors.New("il nome deve essere tra 2 e 100 caratteri")
	ErrWrongPassword       = errors.New("password attuale errata")
	ErrSamePassword        = errors.New("nuova password deve essere diversa dalla vecchia")
	ErrUnauthorized        = errors.New("credenziali non valide")
)

// PasswordPolicyError explains which complexity rule a password breaks.
type PasswordPolicyError struct {
	Reason string
}

func (e PasswordPolicyError) Error() string {
	return e.Reason
}
