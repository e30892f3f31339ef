package models

import "time"

// Credential is the secret a trainer authenticates with. It is either a
// PermanentCredential chosen by the trainer or a TemporaryCredential minted by
// an admin. The plaintext mirror only exists on the temporary variant, so the
// temp_password and is_temp_password columns cannot drift apart.
type Credential interface {
	PasswordHash() string
	isCredential()
}

type PermanentCredential struct {
	Hash string
}

func (c PermanentCredential) PasswordHash() string { return c.Hash }
func (PermanentCredential) isCredential()          {}

type TemporaryCredential struct {
	Hash      string
	Plaintext string
	IssuedAt  time.Time
}

func (c TemporaryCredential) PasswordHash() string { return c.Hash }
func (TemporaryCredential) isCredential()          {}

// CredentialColumns flattens a credential into its persisted columns.
func CredentialColumns(c Credential) (hash string, tempPassword *string, isTemp bool) {
	switch v := c.(type) {
	case TemporaryCredential:
		plain := v.Plaintext
		return v.Hash, &plain, true
	case PermanentCredential:
		return v.Hash, nil, false
	default:
		return "", nil, false
	}
}

// CredentialFromColumns rebuilds the union from stored columns.
func CredentialFromColumns(hash string, tempPassword *string, isTemp bool, issuedAt time.Time) Credential {
	if !isTemp {
		return PermanentCredential{Hash: hash}
	}
	c := TemporaryCredential{Hash: hash, IssuedAt: issuedAt}
	if tempPassword != nil {
		c.Plaintext = *tempPassword
	}
	return c
}
