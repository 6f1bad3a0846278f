package models

import (
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cnft/pkg/domain"
	dErrors "cnft/pkg/domain-errors"
)

var (
	alice = mustAddress("0x1111111111111111111111111111111111111111")
	bob   = mustAddress("0x2222222222222222222222222222222222222222")
)

func mustAddress(s string) domain.Address {
	addr, ok := domain.ParseAddress(s)
	if !ok {
		panic("bad test address: " + s)
	}
	return addr
}

func blob(b byte) hexutil.Bytes {
	return hexutil.Bytes{b, b, b}
}

func validAttributes() EncryptedAttributes {
	return EncryptedAttributes{
		Rarity: blob(0x01),
		Power:  blob(0x02),
		Level:  blob(0x03),
		Value:  blob(0x04),
	}
}

func TestEncryptedAttributes_Validate(t *testing.T) {
	require.NoError(t, validAttributes().Validate())

	for name, mutate := range map[string]func(*EncryptedAttributes){
		"missing rarity": func(a *EncryptedAttributes) { a.Rarity = nil },
		"missing power":  func(a *EncryptedAttributes) { a.Power = nil },
		"missing level":  func(a *EncryptedAttributes) { a.Level = hexutil.Bytes{} },
		"missing value":  func(a *EncryptedAttributes) { a.Value = nil },
	} {
		t.Run(name, func(t *testing.T) {
			attrs := validAttributes()
			mutate(&attrs)
			err := attrs.Validate()
			require.Error(t, err)
			assert.True(t, dErrors.Is(err, dErrors.CodeBadRequest))
		})
	}
}

func TestMintItem_Validate(t *testing.T) {
	item := MintItem{Recipient: alice, URI: "ipfs://token-0", Attributes: validAttributes()}
	require.NoError(t, item.Validate())

	zeroRecipient := item
	zeroRecipient.Recipient = domain.Address{}
	assert.True(t, dErrors.Is(zeroRecipient.Validate(), dErrors.CodeBadRequest))

	noURI := item
	noURI.URI = ""
	assert.True(t, dErrors.Is(noURI.Validate(), dErrors.CodeBadRequest))
}

func TestBuildMintItems(t *testing.T) {
	recipients := []domain.Address{alice, bob}
	uris := []string{"ipfs://a", "ipfs://b"}
	rarity := []hexutil.Bytes{blob(1), blob(2)}
	power := []hexutil.Bytes{blob(3), blob(4)}
	level := []hexutil.Bytes{blob(5), blob(6)}
	value := []hexutil.Bytes{blob(7), blob(8)}

	items, err := BuildMintItems(recipients, uris, rarity, power, level, value)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, alice, items[0].Recipient)
	assert.Equal(t, "ipfs://b", items[1].URI)
	assert.Equal(t, blob(2), items[1].Attributes.Rarity)
	assert.Equal(t, blob(7), items[0].Attributes.Value)
}

func TestBuildMintItems_LengthMismatch(t *testing.T) {
	recipients := []domain.Address{alice, bob}
	uris := []string{"ipfs://a", "ipfs://b"}
	two := []hexutil.Bytes{blob(1), blob(2)}
	one := []hexutil.Bytes{blob(1)}

	cases := map[string]struct {
		uris                        []string
		rarity, power, level, value []hexutil.Bytes
	}{
		"short uris":   {uris[:1], two, two, two, two},
		"short rarity": {uris, one, two, two, two},
		"short power":  {uris, two, one, two, two},
		"short level":  {uris, two, two, one, two},
		"short value":  {uris, two, two, two, one},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := BuildMintItems(recipients, c.uris, c.rarity, c.power, c.level, c.value)
			require.Error(t, err)
			assert.True(t, dErrors.Is(err, dErrors.CodeLengthMismatch))
		})
	}
}

func TestBuildMintItems_Empty(t *testing.T) {
	items, err := BuildMintItems(nil, nil, nil, nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}
