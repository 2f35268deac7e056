package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"

	"github.com/tallyboard/platform/internal/domain"
)

// AuthorityLevel is the ordered privilege tier derived from a presented
// api key. Higher values satisfy lower requirements: a Submit key can read,
// an Admin key can do everything.
type AuthorityLevel int

const (
	AuthorityUnauthorized AuthorityLevel = iota
	AuthorityRead
	AuthoritySubmit
	AuthorityAdmin
)

func (a AuthorityLevel) String() string {
	switch a {
	case AuthorityRead:
		return "read"
	case AuthoritySubmit:
		return "submit"
	case AuthorityAdmin:
		return "admin"
	default:
		return "unauthorized"
	}
}

// Key lengths: read and submit keys are short, the admin key is longer.
const (
	readKeyLength   = 10
	submitKeyLength = 10
	adminKeyLength  = 20
)

const keyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateKey produces a random alphanumeric secret of the given length
// using crypto/rand.
func GenerateKey(length int) (string, error) {
	alphabetSize := big.NewInt(int64(len(keyAlphabet)))
	key := make([]byte, length)
	for i := range key {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		key[i] = keyAlphabet[n.Int64()]
	}
	return string(key), nil
}

// GenerateBoardKeys produces the read/submit/admin triple for a new board.
// All three keys belong to the same creation event.
func GenerateBoardKeys() (domain.BoardKeys, error) {
	read, err := GenerateKey(readKeyLength)
	if err != nil {
		return domain.BoardKeys{}, fmt.Errorf("generate read key: %w", err)
	}
	submit, err := GenerateKey(submitKeyLength)
	if err != nil {
		return domain.BoardKeys{}, fmt.Errorf("generate submit key: %w", err)
	}
	admin, err := GenerateKey(adminKeyLength)
	if err != nil {
		return domain.BoardKeys{}, fmt.Errorf("generate admin key: %w", err)
	}
	return domain.BoardKeys{Read: read, Submit: submit, Admin: admin}, nil
}

// AuthorityFor maps a presented key to its authority level. Tiers are
// checked highest first so an admin key can never be mistaken for a lower
// tier. Comparisons are constant-time.
func AuthorityFor(keys domain.BoardKeys, presented string) AuthorityLevel {
	if presented == "" {
		return AuthorityUnauthorized
	}
	switch {
	case equalKeys(keys.Admin, presented):
		return AuthorityAdmin
	case equalKeys(keys.Submit, presented):
		return AuthoritySubmit
	case equalKeys(keys.Read, presented):
		return AuthorityRead
	default:
		return AuthorityUnauthorized
	}
}

func equalKeys(want, got string) bool {
	return subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}

// Require checks that authority meets the minimum for an operation. No
// credential at all and an insufficient credential are distinct outcomes
// (401 vs 403).
func Require(authority, minimum AuthorityLevel) error {
	if authority == AuthorityUnauthorized {
		return domain.ErrUnauthorized("api key missing or not recognized")
	}
	if authority < minimum {
		return domain.ErrForbidden(fmt.Sprintf("%s authority required", minimum))
	}
	return nil
}
