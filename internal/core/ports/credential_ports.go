package ports

import (
	"context"

	"github.com/adi3433/DS-project/internal/core/domain"
)

// CredentialVerifier redeems a one-time access code, atomically marking it
// used and returning the access-code record it is bound to. Exactly one of
// two concurrent redemptions of the same code succeeds.
type CredentialVerifier interface {
	Redeem(ctx context.Context, code string) (domain.AccessCode, error)
}

// CredentialVerifierFactory binds a verifier to a transaction scope so the
// redemption commits or rolls back together with the rest of the cast.
type CredentialVerifierFactory interface {
	Bind(tx TxRepos) CredentialVerifier
}

// CredentialCipher is the opaque hashing capability: one-way digests for
// voter identifiers and access codes, and fresh code generation.
type CredentialCipher interface {
	IdentityDigest(voterID string) string
	CodeDigest(code string) string
	GenerateCode() (code string, digest string, err error)
}

type RegistrationResult struct {
	RegisteredCount int   `json:"registered_count"`
	DuplicateCount  int   `json:"duplicate_count"`
	TotalVoters     int64 `json:"total_voters"`
}

type IssuedCode struct {
	VoterID string `json:"voter_id"`
	Code    string `json:"otac"`
}

type IssuanceResult struct {
	Codes       []IssuedCode `json:"otacs"`
	IssuedCount int          `json:"issued_count"`
}

type CredentialService interface {
	RegisterVoters(ctx context.Context, voterIDs []string) (RegistrationResult, error)
	IssueCodes(ctx context.Context, voterIDs []string) (IssuanceResult, error)
}
