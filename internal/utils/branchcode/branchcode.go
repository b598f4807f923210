// Package branchcode derives human-readable branch codes of the form
// NX-<2-letter prefix>-<4-digit random>-<M|S>. Codes are generated once at
// creation time and are immutable afterwards. The random suffix makes codes
// unique-looking, not guaranteed-unique; the store's unique index is the
// backstop for the rare collision.
package branchcode

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/nexusnet/branch_registry_app/internal/core/domain"
)

// ErrNameTooShort is returned when the branch name cannot yield a two-letter
// prefix. Callers must treat the missing code as a validation failure rather
// than persisting an incomplete record.
var ErrNameTooShort = errors.New("branch name must be at least 2 characters to generate a code")

// Generate produces a branch code from the branch name and type.
func Generate(branchName string, branchType domain.BranchType) (string, error) {
	name := []rune(strings.TrimSpace(branchName))
	if len(name) < 2 {
		return "", ErrNameTooShort
	}

	prefix := strings.ToUpper(string(name[:2]))
	suffix := 1000 + rand.IntN(9000)

	typeCode := "S"
	if branchType == domain.BranchTypeMain {
		typeCode = "M"
	}

	return fmt.Sprintf("NX-%s-%d-%s", prefix, suffix, typeCode), nil
}
