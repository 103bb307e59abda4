package tax_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/tax"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestGrossToNet_KnownValues(t *testing.T) {
	c := tax.MustCodec(tax.DefaultRate)

	cases := []struct {
		gross, net, vat string
	}{
		{"1190", "1000", "190"},
		{"2380", "2000", "380"},
		{"11900", "10000", "1900"},
		{"0", "0", "0"},
	}
	for _, tc := range cases {
		net, vat := c.GrossToNet(d(tc.gross))
		assert.True(t, net.Equal(d(tc.net)), "net %s", tc.gross)
		assert.True(t, vat.Equal(d(tc.vat)), "vat %s", tc.gross)
	}
}

func TestGrossToNet_SumsBackExactly(t *testing.T) {
	c := tax.MustCodec(tax.DefaultRate)

	for _, g := range []string{"1", "99.99", "12345.67", "0.01", "1000000", "-1190", "7.77"} {
		gross := d(g)
		net, vat := c.GrossToNet(gross)
		assert.True(t, net.Add(vat).Equal(gross), "gross %s", g)
	}
}

func TestNetToGross_RoundTripWithinTolerance(t *testing.T) {
	c := tax.MustCodec(tax.DefaultRate)
	tolerance := d("0.000001")

	for _, n := range []string{"1", "3.33", "840.34", "99999.99"} {
		net := d(n)
		back, _ := c.GrossToNet(c.NetToGross(net))
		assert.True(t, back.Sub(net).Abs().LessThanOrEqual(tolerance), "net %s", n)
	}
}

func TestNetToGross_RecoversGross(t *testing.T) {
	c := tax.MustCodec(tax.DefaultRate)
	tolerance := d("0.000001")

	for _, g := range []string{"1", "99.99", "12345.67", "0.01", "1000000", "-1190", "7.77"} {
		gross := d(g)
		net, _ := c.GrossToNet(gross)
		assert.True(t, c.NetToGross(net).Sub(gross).Abs().LessThanOrEqual(tolerance), "gross %s", g)
	}
}

func TestGrossToNet_VATShareMatchesRate(t *testing.T) {
	tolerance := d("0.000000001")

	for _, rate := range []decimal.Decimal{tax.DefaultRate, d("0.10"), d("0.05")} {
		c := tax.MustCodec(rate)
		want := rate.DivRound(rate.Add(decimal.NewFromInt(1)), 16)
		for _, g := range []string{"1", "99.99", "12345.67", "0.01", "1000000", "7.77"} {
			gross := d(g)
			_, vat := c.GrossToNet(gross)
			share := vat.DivRound(gross, 16)
			assert.True(t, share.Sub(want).Abs().LessThanOrEqual(tolerance), "rate %s gross %s", rate, g)
		}
	}
}

func TestCodec_FactorAndRate(t *testing.T) {
	c := tax.MustCodec(d("0.10"))

	assert.True(t, c.Rate().Equal(d("0.10")))
	assert.True(t, c.Factor().Equal(d("1.10")))
	assert.True(t, c.NetToGross(d("100")).Equal(d("110")))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, "840.34", tax.Round2(d("840.336134")).StringFixed(2))
	assert.Equal(t, "0.00", tax.Round2(d("0.004")).StringFixed(2))
}

func TestNewCodec_RejectsNegativeRate(t *testing.T) {
	_, err := tax.NewCodec(d("-0.01"))
	assert.ErrorIs(t, err, tax.ErrNegativeRate)

	c, err := tax.NewCodec(decimal.Zero)
	assert.NoError(t, err)
	net, vat := c.GrossToNet(d("500"))
	assert.True(t, net.Equal(d("500")))
	assert.True(t, vat.IsZero())
}
