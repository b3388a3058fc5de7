//go:build jwx_es256k

package crypto

import (
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestES256k(t *testing.T) {
	t.Run("ES256K is a supported algorithm", func(t *testing.T) {
		assert.True(t, IsSupportedAlgorithm("ES256K"))
	})
	t.Run("secp256k1 key selects ES256K", func(t *testing.T) {
		privateKey, err := secp256k1.GeneratePrivateKey()
		require.NoError(t, err)
		key, err := jwk.FromRaw(privateKey.ToECDSA())
		require.NoError(t, err)

		alg, err := SelectAlgorithm(key, []string{"ES256", "ES256K"})

		require.NoError(t, err)
		assert.Equal(t, jwa.ES256K, alg)
	})
}
