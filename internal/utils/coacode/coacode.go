// Package coacode generates structured chart-of-accounts codes.
//
// Codes follow the L1-L2L3[-NNN] pattern:
//
//	level 1: {categoryDigit}-0000          e.g. 1-0000
//	level 2: {categoryDigit}-{NNNN}        e.g. 1-1000, 1-2000 (step 1000 per sibling)
//	level 3+: parent's full code plus a zero-padded 3-digit suffix
//	          e.g. 1-1000-001 under 1-1000, 1-1000-002-001 under 1-1000-002
//
// Generation is a pure function of (category, parent code, existing sibling codes)
// so it can be computed inside the same transaction that persists the account.
package coacode

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/meridianlend/ledger/internal/core/domain"
)

const (
	level2Step     = 1000
	level2Max      = 9000
	suffixMax      = 999
	codePartSuffix = "%s-%03d"
)

var codePattern = regexp.MustCompile(`^[1-5]-\d{4}(-\d{3})*$`)

// CategoryDigit returns the leading digit for an account category.
func CategoryDigit(category domain.AccountCategory) (int, error) {
	switch category {
	case domain.Asset:
		return 1, nil
	case domain.Liability:
		return 2, nil
	case domain.Equity:
		return 3, nil
	case domain.Revenue:
		return 4, nil
	case domain.Expense:
		return 5, nil
	}
	return 0, fmt.Errorf("unknown account category %q", category)
}

// Valid reports whether a code matches the structured pattern.
func Valid(code string) bool {
	return codePattern.MatchString(code)
}

// Generate computes the next account code for a child of parent (nil for roots),
// given the codes of the existing siblings at that level.
func Generate(category domain.AccountCategory, parent *domain.Account, siblingCodes []string) (string, error) {
	digit, err := CategoryDigit(category)
	if err != nil {
		return "", err
	}

	if parent == nil {
		return fmt.Sprintf("%d-0000", digit), nil
	}

	if parent.Level == 1 {
		// Level-2 codes step by 1000 under the category digit.
		highest := 0
		for _, code := range siblingCodes {
			parts := strings.SplitN(code, "-", 3)
			if len(parts) < 2 {
				continue
			}
			n, err := strconv.Atoi(parts[1])
			if err != nil {
				continue
			}
			if n > highest {
				highest = n
			}
		}
		next := highest + level2Step
		if next > level2Max {
			return "", fmt.Errorf("no level-2 codes left under %s", parent.AccountCode)
		}
		return fmt.Sprintf("%d-%04d", digit, next), nil
	}

	// Level 3 and deeper append a sequential 3-digit suffix to the parent's
	// full code, so every level owns its own suffix namespace and a child can
	// never collide with the parent's siblings.
	if !Valid(parent.AccountCode) {
		return "", fmt.Errorf("parent code %q is not structured", parent.AccountCode)
	}
	base := parent.AccountCode

	highest := 0
	for _, code := range siblingCodes {
		idx := strings.LastIndex(code, "-")
		if idx < 0 {
			continue
		}
		n, err := strconv.Atoi(code[idx+1:])
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	next := highest + 1
	if next > suffixMax {
		return "", fmt.Errorf("no child codes left under %s", parent.AccountCode)
	}
	return fmt.Sprintf(codePartSuffix, base, next), nil
}
