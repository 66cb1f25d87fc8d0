package snip12

import (
	"testing"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitwit/paradex/utils"
)

func TestEncodeType(t *testing.T) {
	td := StarkKeyTypedData("SN_SEPOLIA")

	enc, err := td.EncodeType("StarkNetDomain")
	require.NoError(t, err)
	assert.Equal(t, "StarkNetDomain(name:felt,version:felt,chainId:felt)", enc)

	enc, err = td.EncodeType("Constant")
	require.NoError(t, err)
	assert.Equal(t, "Constant(action:felt)", enc)

	_, err = td.EncodeType("Missing")
	assert.Error(t, err)
}

func TestEncodeTypeWithDependencies(t *testing.T) {
	td := TypedData{
		Types: map[string][]TypeMember{
			"Mail":   {{Name: "from", Type: "Person"}, {Name: "to", Type: "Person"}, {Name: "tags", Type: "felt*"}},
			"Person": {{Name: "name", Type: "felt"}, {Name: "wallet", Type: "felt"}},
		},
	}
	enc, err := td.EncodeType("Mail")
	require.NoError(t, err)
	assert.Equal(t, "Mail(from:Person,to:Person,tags:felt*)Person(name:felt,wallet:felt)", enc)
}

func TestHashStructMatchesManualEncoding(t *testing.T) {
	td := StarkKeyTypedData("SN_SEPOLIA")

	got, err := td.HashStruct("Constant", td.Message)
	require.NoError(t, err)

	want := utils.PedersenArray(
		utils.StarknetKeccak([]byte("Constant(action:felt)")),
		utils.MustShortString("STARK Key"),
	)
	assert.True(t, want.Equal(got))
}

func TestMessageHash(t *testing.T) {
	account := utils.MustHexToFelt("0x1234")
	sepolia := StarkKeyTypedData("SN_SEPOLIA")
	mainnet := StarkKeyTypedData("SN_MAIN")

	h1, err := sepolia.MessageHash(account)
	require.NoError(t, err)
	again, err := sepolia.MessageHash(account)
	require.NoError(t, err)
	h2, err := mainnet.MessageHash(account)
	require.NoError(t, err)
	h3, err := sepolia.MessageHash(new(felt.Felt).SetUint64(1))
	require.NoError(t, err)

	assert.True(t, h1.Equal(again))
	assert.False(t, h1.Equal(h2))
	assert.False(t, h1.Equal(h3))
}

func TestStarkKeyMessageHashVector(t *testing.T) {
	td := StarkKeyTypedData("SN_SEPOLIA")
	account := utils.MustHexToFelt("0x4383e793c2d1bc29be7647794936371dac6955636f22069a033d4392794780a")

	domainHash, err := td.HashStruct("StarkNetDomain", td.Domain)
	require.NoError(t, err)
	assert.Equal(t, "0x7e833dd24399c911f1111f8327e72876a5dd10decba66b4dd863b46843d8e42", domainHash.String())

	h, err := td.MessageHash(account)
	require.NoError(t, err)
	assert.Equal(t, "0x2f27cff2b57ef2ad630e4635034341291e4f47b520cc0780b5e3505c7c3b2e5", h.String())
}

func TestHashStructMissingField(t *testing.T) {
	td := StarkKeyTypedData("SN_SEPOLIA")
	_, err := td.HashStruct("Constant", map[string]interface{}{})
	assert.ErrorContains(t, err, "missing field")
}
