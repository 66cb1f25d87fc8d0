// Package snip12 hashes Starknet typed data (SNIP-12 revision 0), the
// format wallets sign through signMessage.
package snip12

import (
	"fmt"
	"sort"
	"strings"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/vitwit/paradex/utils"
)

const domainType = "StarkNetDomain"

// TypeMember is one field of a struct type.
type TypeMember struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// TypedData is the message structure passed to a Starknet wallet.
type TypedData struct {
	Types       map[string][]TypeMember `json:"types"`
	PrimaryType string                  `json:"primaryType"`
	Domain      map[string]interface{}  `json:"domain"`
	Message     map[string]interface{}  `json:"message"`
}

// StarkKeyTypedData builds the message a Starknet wallet signs to derive its
// Paradex stark key.
func StarkKeyTypedData(starknetChainID string) TypedData {
	return TypedData{
		Types: map[string][]TypeMember{
			domainType: {
				{Name: "name", Type: "felt"},
				{Name: "version", Type: "felt"},
				{Name: "chainId", Type: "felt"},
			},
			"Constant": {
				{Name: "action", Type: "felt"},
			},
		},
		PrimaryType: "Constant",
		Domain: map[string]interface{}{
			"name":    "Paradex",
			"version": "1",
			"chainId": starknetChainID,
		},
		Message: map[string]interface{}{
			"action": "STARK Key",
		},
	}
}

// MessageHash computes pedersen_array("StarkNet Message", domainHash, account, structHash).
func (td TypedData) MessageHash(account *felt.Felt) (*felt.Felt, error) {
	domainHash, err := td.HashStruct(domainType, td.Domain)
	if err != nil {
		return nil, fmt.Errorf("hash domain: %w", err)
	}
	structHash, err := td.HashStruct(td.PrimaryType, td.Message)
	if err != nil {
		return nil, fmt.Errorf("hash message: %w", err)
	}
	return utils.PedersenArray(
		utils.MustShortString("StarkNet Message"),
		domainHash,
		account,
		structHash,
	), nil
}

// TypeHash is starknet_keccak of the encoded type.
func (td TypedData) TypeHash(typeName string) (*felt.Felt, error) {
	enc, err := td.EncodeType(typeName)
	if err != nil {
		return nil, err
	}
	return utils.StarknetKeccak([]byte(enc)), nil
}

// EncodeType renders Name(field:type,...) followed by every referenced
// struct type in alphabetical order.
func (td TypedData) EncodeType(typeName string) (string, error) {
	if _, ok := td.Types[typeName]; !ok {
		return "", fmt.Errorf("unknown type %q", typeName)
	}
	deps := map[string]bool{}
	td.collectDeps(typeName, deps)
	delete(deps, typeName)

	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range append([]string{typeName}, names...) {
		b.WriteString(name)
		b.WriteByte('(')
		for i, m := range td.Types[name] {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(m.Name)
			b.WriteByte(':')
			b.WriteString(m.Type)
		}
		b.WriteByte(')')
	}
	return b.String(), nil
}

func (td TypedData) collectDeps(typeName string, seen map[string]bool) {
	if seen[typeName] {
		return
	}
	seen[typeName] = true
	for _, m := range td.Types[typeName] {
		base := strings.TrimSuffix(m.Type, "*")
		if _, ok := td.Types[base]; ok {
			td.collectDeps(base, seen)
		}
	}
}

// HashStruct computes pedersen_array(typeHash, encoded fields...).
func (td TypedData) HashStruct(typeName string, data map[string]interface{}) (*felt.Felt, error) {
	typeHash, err := td.TypeHash(typeName)
	if err != nil {
		return nil, err
	}
	elems := []*felt.Felt{typeHash}
	for _, m := range td.Types[typeName] {
		v, ok := data[m.Name]
		if !ok {
			return nil, fmt.Errorf("missing field %q of %s", m.Name, typeName)
		}
		enc, err := td.encodeValue(m.Type, v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", m.Name, err)
		}
		elems = append(elems, enc)
	}
	return utils.PedersenArray(elems...), nil
}

func (td TypedData) encodeValue(typ string, v interface{}) (*felt.Felt, error) {
	if _, ok := td.Types[typ]; ok {
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("expected object for %s", typ)
		}
		return td.HashStruct(typ, m)
	}
	if strings.HasSuffix(typ, "*") {
		items, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("expected array for %s", typ)
		}
		base := strings.TrimSuffix(typ, "*")
		elems := make([]*felt.Felt, 0, len(items))
		for _, item := range items {
			enc, err := td.encodeValue(base, item)
			if err != nil {
				return nil, err
			}
			elems = append(elems, enc)
		}
		return utils.PedersenArray(elems...), nil
	}

	switch typ {
	case "felt", "string", "shortstring", "selector":
		switch x := v.(type) {
		case string:
			if typ == "selector" {
				return utils.Selector(x), nil
			}
			return utils.ParseFelt(x)
		case *felt.Felt:
			return x, nil
		case int:
			return new(felt.Felt).SetUint64(uint64(x)), nil
		case uint64:
			return new(felt.Felt).SetUint64(x), nil
		}
		return nil, fmt.Errorf("unsupported felt value %T", v)
	case "bool":
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("expected bool, got %T", v)
		}
		if b {
			return new(felt.Felt).SetUint64(1), nil
		}
		return new(felt.Felt), nil
	default:
		return nil, fmt.Errorf("unsupported type %q", typ)
	}
}
