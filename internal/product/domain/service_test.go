package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceJSON(t *testing.T) {
	for _, body := range []string{`{"price":19.99}`, `{"price":"19.99"}`} {
		var f Fields
		require.NoError(t, json.Unmarshal([]byte(body), &f), body)
		require.NotNil(t, f.Price)
		assert.Equal(t, "19.99", f.Price.String())
	}

	var f Fields
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Tee"}`), &f))
	assert.Nil(t, f.Price)

	out, err := json.Marshal(Response{Price: decimal.RequireFromString("0.30")})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"price":"0.3"`)
}
