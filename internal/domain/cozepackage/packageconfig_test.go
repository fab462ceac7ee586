package cozepackage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/buildingai/cozepkg/internal/domain/cozepackage/valueobjects"
)

func yuan(v float64) vo.Money {
	m, err := vo.MoneyFromYuan(v)
	if err != nil {
		panic(err)
	}
	return m
}

func TestValidateRules_Accepts(t *testing.T) {
	rules := []Rule{
		{Name: "Monthly", DurationDays: 30, OriginalPrice: yuan(100), CurrentPrice: yuan(80)},
		{Name: "Free", DurationDays: 7, OriginalPrice: yuan(0), CurrentPrice: yuan(0)},
		{Name: "Same", DurationDays: 1, OriginalPrice: yuan(10), CurrentPrice: yuan(10)},
	}
	assert.NoError(t, ValidateRules(rules))
	assert.NoError(t, ValidateRules(nil))
}

func TestValidateRules_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		rules   []Rule
		index   int
		wantErr error
	}{
		{
			name: "duplicate name",
			rules: []Rule{
				{Name: "A", DurationDays: 30, OriginalPrice: yuan(100), CurrentPrice: yuan(80)},
				{Name: "A", DurationDays: 10, OriginalPrice: yuan(50), CurrentPrice: yuan(40)},
			},
			index:   2,
			wantErr: ErrDuplicatePackageName,
		},
		{
			name: "duplicate after trimming",
			rules: []Rule{
				{Name: "A", DurationDays: 30, OriginalPrice: yuan(100), CurrentPrice: yuan(80)},
				{Name: " A ", DurationDays: 10, OriginalPrice: yuan(50), CurrentPrice: yuan(40)},
			},
			index:   2,
			wantErr: ErrDuplicatePackageName,
		},
		{
			name:    "empty name",
			rules:   []Rule{{Name: "  ", DurationDays: 30, OriginalPrice: yuan(1), CurrentPrice: yuan(1)}},
			index:   1,
			wantErr: ErrInvalidPackage,
		},
		{
			name:    "zero duration",
			rules:   []Rule{{Name: "A", DurationDays: 0, OriginalPrice: yuan(1), CurrentPrice: yuan(1)}},
			index:   1,
			wantErr: ErrInvalidPackage,
		},
		{
			name: "current above original",
			rules: []Rule{
				{Name: "A", DurationDays: 30, OriginalPrice: yuan(100), CurrentPrice: yuan(80)},
				{Name: "B", DurationDays: 30, OriginalPrice: yuan(100), CurrentPrice: yuan(100.01)},
			},
			index:   2,
			wantErr: ErrInvalidPackage,
		},
		{
			name:    "negative price",
			rules:   []Rule{{Name: "A", DurationDays: 30, OriginalPrice: yuan(-1), CurrentPrice: yuan(-2)}},
			index:   1,
			wantErr: ErrInvalidPackage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRules(tt.rules)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var ruleErr *RuleError
			require.True(t, errors.As(err, &ruleErr))
			assert.Equal(t, tt.index, ruleErr.Index)
			assert.Contains(t, err.Error(), "rule #")
		})
	}
}

func TestPackageConfig_Apply(t *testing.T) {
	pkg, err := NewPackageConfig(" Monthly ", 30, yuan(100), yuan(80), "desc")
	require.NoError(t, err)
	assert.Equal(t, "Monthly", pkg.Name())

	err = pkg.Apply(Rule{Name: "Monthly", DurationDays: 30, OriginalPrice: yuan(50), CurrentPrice: yuan(60)})
	assert.ErrorIs(t, err, ErrInvalidPackage)
	assert.Equal(t, yuan(80), pkg.CurrentPrice())

	require.NoError(t, pkg.Apply(Rule{Name: "Quarterly", DurationDays: 90, OriginalPrice: yuan(300), CurrentPrice: yuan(199)}))
	assert.Equal(t, "Quarterly", pkg.Name())
	assert.Equal(t, 90, pkg.DurationDays())
	assert.Equal(t, "", pkg.Description())
}
