package coacode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianlend/ledger/internal/core/domain"
	"github.com/meridianlend/ledger/internal/utils/coacode"
)

func TestCategoryDigit(t *testing.T) {
	cases := []struct {
		category domain.AccountCategory
		digit    int
	}{
		{domain.Asset, 1},
		{domain.Liability, 2},
		{domain.Equity, 3},
		{domain.Revenue, 4},
		{domain.Expense, 5},
	}
	for _, tc := range cases {
		digit, err := coacode.CategoryDigit(tc.category)
		require.NoError(t, err)
		assert.Equal(t, tc.digit, digit)
	}

	_, err := coacode.CategoryDigit(domain.AccountCategory("CONTRA"))
	assert.Error(t, err)
}

func TestValid(t *testing.T) {
	valid := []string{"1-0000", "5-9000", "1-1000-001", "2-3000-999", "1-1000-001-042"}
	for _, code := range valid {
		assert.True(t, coacode.Valid(code), code)
	}

	invalid := []string{"", "6-0000", "1-000", "1-00000", "10000", "1-1000-1", "a-1000", "1-1000-"}
	for _, code := range invalid {
		assert.False(t, coacode.Valid(code), code)
	}
}

func TestGenerate_Root(t *testing.T) {
	code, err := coacode.Generate(domain.Revenue, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "4-0000", code)
}

func TestGenerate_Level2(t *testing.T) {
	parent := &domain.Account{AccountCode: "1-0000", Category: domain.Asset, Level: 1}

	code, err := coacode.Generate(domain.Asset, parent, nil)
	require.NoError(t, err)
	assert.Equal(t, "1-1000", code)

	code, err = coacode.Generate(domain.Asset, parent, []string{"1-1000", "1-3000", "1-2000"})
	require.NoError(t, err)
	assert.Equal(t, "1-4000", code)
}

func TestGenerate_Level2Exhausted(t *testing.T) {
	parent := &domain.Account{AccountCode: "1-0000", Category: domain.Asset, Level: 1}

	_, err := coacode.Generate(domain.Asset, parent, []string{"1-9000"})
	assert.Error(t, err)
}

func TestGenerate_Level3Suffix(t *testing.T) {
	parent := &domain.Account{AccountCode: "1-1000", Category: domain.Asset, Level: 2}

	code, err := coacode.Generate(domain.Asset, parent, nil)
	require.NoError(t, err)
	assert.Equal(t, "1-1000-001", code)

	code, err = coacode.Generate(domain.Asset, parent, []string{"1-1000-001", "1-1000-007"})
	require.NoError(t, err)
	assert.Equal(t, "1-1000-008", code)
}

func TestGenerate_Level4ExtendsParentCode(t *testing.T) {
	// A level-4 child extends the parent's full code, so the first child of
	// 1-1000-002 never collides with the existing level-3 code 1-1000-001.
	parent := &domain.Account{AccountCode: "1-1000-002", Category: domain.Asset, Level: 3}

	code, err := coacode.Generate(domain.Asset, parent, nil)
	require.NoError(t, err)
	assert.Equal(t, "1-1000-002-001", code)

	code, err = coacode.Generate(domain.Asset, parent, []string{"1-1000-002-001", "1-1000-002-004"})
	require.NoError(t, err)
	assert.Equal(t, "1-1000-002-005", code)
}

func TestGenerate_Level5ExtendsParentCode(t *testing.T) {
	parent := &domain.Account{AccountCode: "1-1000-002-001", Category: domain.Asset, Level: 4}

	code, err := coacode.Generate(domain.Asset, parent, nil)
	require.NoError(t, err)
	assert.Equal(t, "1-1000-002-001-001", code)
}

func TestGenerate_SuffixExhausted(t *testing.T) {
	parent := &domain.Account{AccountCode: "1-1000", Category: domain.Asset, Level: 2}

	_, err := coacode.Generate(domain.Asset, parent, []string{"1-1000-999"})
	assert.Error(t, err)
}
