package services

import (
	"context"
	"time"

	"github.com/adi3433/DS-project/internal/core/domain"
	"github.com/adi3433/DS-project/internal/core/ports"
)

// CredentialService handles voter registration and access-code issuance, and
// binds transaction-scoped code verifiers for the cast path. Only digests of
// voter identifiers ever reach the store.
type CredentialService struct {
	state  *ElectionState
	store  ports.Store
	cipher ports.CredentialCipher
	now    func() time.Time
}

func NewCredentialService(state *ElectionState, store ports.Store, cipher ports.CredentialCipher) *CredentialService {
	return &CredentialService{
		state:  state,
		store:  store,
		cipher: cipher,
		now:    time.Now,
	}
}

func (s *CredentialService) RegisterVoters(ctx context.Context, voterIDs []string) (ports.RegistrationResult, error) {
	if err := s.state.acquire(ctx); err != nil {
		return ports.RegistrationResult{}, err
	}
	defer s.state.release()

	var (
		result ports.RegistrationResult
		added  []domain.VoterRecord
		event  domain.RegisterEvent
	)
	err := s.store.WithinTx(ctx, func(tx ports.TxRepos) error {
		result = ports.RegistrationResult{}
		added = added[:0]
		for _, voterID := range voterIDs {
			digest := s.cipher.IdentityDigest(voterID)
			existing, err := tx.Voters().GetByDigest(ctx, digest)
			if err != nil {
				return err
			}
			if existing != nil {
				result.DuplicateCount++
				continue
			}
			voter := domain.VoterRecord{IdentityDigest: digest, RegisteredAt: s.now()}
			if err := tx.Voters().Create(ctx, &voter); err != nil {
				return err
			}
			added = append(added, voter)
			result.RegisteredCount++
		}

		event = domain.NewRegisterEvent(s.now(), result.RegisteredCount, result.DuplicateCount, len(voterIDs))
		if err := tx.Audit().Insert(ctx, event); err != nil {
			return err
		}

		total, err := tx.Voters().Count(ctx)
		if err != nil {
			return err
		}
		result.TotalVoters = total
		return nil
	})
	if err != nil {
		return ports.RegistrationResult{}, err
	}

	for _, v := range added {
		s.state.index.Upsert(v)
	}
	s.state.audit.Push(event)

	return result, nil
}

func (s *CredentialService) IssueCodes(ctx context.Context, voterIDs []string) (ports.IssuanceResult, error) {
	if err := s.state.acquire(ctx); err != nil {
		return ports.IssuanceResult{}, err
	}
	defer s.state.release()

	var (
		result ports.IssuanceResult
		event  domain.IssueEvent
	)
	err := s.store.WithinTx(ctx, func(tx ports.TxRepos) error {
		result = ports.IssuanceResult{}
		for _, voterID := range voterIDs {
			digest := s.cipher.IdentityDigest(voterID)
			voter, err := tx.Voters().GetByDigest(ctx, digest)
			if err != nil {
				return err
			}
			if voter == nil {
				continue
			}
			code, codeDigest, err := s.cipher.GenerateCode()
			if err != nil {
				return err
			}
			err = tx.Codes().Insert(ctx, domain.AccessCode{
				CodeDigest:     codeDigest,
				IdentityDigest: digest,
				IssuedAt:       s.now(),
			})
			if err != nil {
				return err
			}
			result.Codes = append(result.Codes, ports.IssuedCode{VoterID: voterID, Code: code})
			result.IssuedCount++
		}

		event = domain.NewIssueEvent(s.now(), result.IssuedCount, len(voterIDs))
		return tx.Audit().Insert(ctx, event)
	})
	if err != nil {
		return ports.IssuanceResult{}, err
	}

	s.state.audit.Push(event)
	return result, nil
}

// Bind returns a verifier whose check-and-mark runs inside tx, so a rejected
// cast rolls the redemption back with everything else.
func (s *CredentialService) Bind(tx ports.TxRepos) ports.CredentialVerifier {
	return &txVerifier{codes: tx.Codes(), cipher: s.cipher}
}

type txVerifier struct {
	codes  ports.CodeRepository
	cipher ports.CredentialCipher
}

func (v *txVerifier) Redeem(ctx context.Context, code string) (domain.AccessCode, error) {
	digest := v.cipher.CodeDigest(code)
	identity, err := v.codes.Redeem(ctx, digest)
	if err != nil {
		return domain.AccessCode{}, err
	}
	return domain.AccessCode{CodeDigest: digest, IdentityDigest: identity, Used: true}, nil
}
