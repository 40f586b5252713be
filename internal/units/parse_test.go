package units

import (
	"testing"

	"github.com/ctessum/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Simple(t *testing.T) {
	u, err := Parse("kJ/mol")
	require.NoError(t, err)
	assert.Equal(t, "kJ/mol", u.String())

	want := unit.Div(unit.New(1000, unit.Joule), unit.New(1, unit.Dimensions{AmountDim: 1}))
	got := u.Quantity()
	assert.True(t, unit.DimensionsMatch(got, want))
	assert.InDelta(t, want.Value(), got.Value(), 1e-12)
}

func TestParse_ChainedDivision(t *testing.T) {
	u, err := Parse("J/mol/K")
	require.NoError(t, err)

	q := u.Quantity()
	assert.Equal(t, 1.0, q.Value())
	assert.True(t, q.Dimensions().Matches(unit.Dimensions{
		unit.MassDim:        1,
		unit.LengthDim:      2,
		unit.TimeDim:        -2,
		AmountDim:           -1,
		unit.TemperatureDim: -1,
	}))
}

func TestParse_Exponent(t *testing.T) {
	u, err := Parse("kmol*m**-3")
	require.NoError(t, err)

	q := u.Quantity()
	assert.Equal(t, 1000.0, q.Value())
	assert.True(t, q.Dimensions().Matches(unit.Dimensions{
		AmountDim:      1,
		unit.LengthDim: -3,
	}))

	u2, err := Parse("J/kmol/K**2")
	require.NoError(t, err)
	assert.Equal(t, "J/kmol/K**2", u2.String())
}

func TestParse_EmptyIsDimensionless(t *testing.T) {
	u, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, "dimensionless", u.String())
	assert.True(t, u.Quantity().Dimensions().Matches(unit.Dimless))
}

func TestParse_NoneRewrite(t *testing.T) {
	u, err := Parse("None")
	require.NoError(t, err)
	assert.Equal(t, "dimensionless", u.String())
}

func TestParse_UnknownUnit(t *testing.T) {
	_, err := Parse("furlongs/fortnight")
	require.Error(t, err)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Error(), "furlongs")
	assert.Contains(t, pe.Expr, "furlongs/fortnight")
}

func TestParse_Malformed(t *testing.T) {
	for _, expr := range []string{"kJ//mol", "kJ/", "m**", "m**K", "(kJ/mol", "kJ@mol"} {
		_, err := Parse(expr)
		assert.Error(t, err, "expr=%q", expr)
	}
}

func TestParse_Parens(t *testing.T) {
	u, err := Parse("kJ/(mol*K)")
	require.NoError(t, err)

	q := u.Quantity()
	assert.Equal(t, 1000.0, q.Value())
	assert.True(t, q.Dimensions().Matches(unit.Dimensions{
		unit.MassDim:        1,
		unit.LengthDim:      2,
		unit.TimeDim:        -2,
		AmountDim:           -1,
		unit.TemperatureDim: -1,
	}))
}

func TestParse_ScaledLiteral(t *testing.T) {
	u, err := Parse("0.5*m")
	require.NoError(t, err)
	assert.Equal(t, 0.5, u.Quantity().Value())
}
