package openstack

import (
	"github.com/SebastienDorgan/anykeys/api"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

const (
	keyPairResource    = "keypair"
	keyPairsResource   = "keypairs"
	keyPairsServiceURL = "os-keypairs"
)

type keyPairBody struct {
	Name string `json:"name"`
	//left empty the provider generates a new key pair
	PublicKey string `json:"public_key,omitempty"`
}

type keyPairRequest struct {
	KeyPair keyPairBody `json:"keypair"`
}

//newKeyPairRequest builds the create/import request body
func newKeyPairRequest(name string, publicKey string) keyPairRequest {
	return keyPairRequest{
		KeyPair: keyPairBody{
			Name:      name,
			PublicKey: publicKey,
		},
	}
}

func parseBody(body []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, api.NewMappingError("body", "response is not valid JSON")
	}
	return gjson.ParseBytes(body), nil
}

//mapIdentifier returns the first identifier field present and not null in obj
func mapIdentifier(obj gjson.Result, fields []string) (string, error) {
	for _, f := range fields {
		v := obj.Get(f)
		if !v.Exists() || v.Type == gjson.Null {
			continue
		}
		switch v.Type {
		case gjson.String:
			if v.Str == "" {
				return "", api.NewMappingError(f, "key pair identifier is empty")
			}
			return v.Str, nil
		case gjson.Number:
			return v.Raw, nil
		default:
			return "", api.NewMappingError(f, "key pair identifier is malformed", v.Raw)
		}
	}
	return "", api.NewMappingError("id", "key pair identifier is missing", fields)
}

//mapKeyPair converts a wire key pair into an api.KeyPair scoped to ctx
func mapKeyPair(ctx Context, raw gjson.Result) (*api.KeyPair, error) {
	obj := raw
	if wrapped := raw.Get(keyPairResource); wrapped.IsObject() {
		obj = wrapped
	}
	if !obj.IsObject() {
		return nil, api.NewMappingError(keyPairResource, "key pair is not a JSON object")
	}
	id, err := mapIdentifier(obj, ctx.Capabilities().IDFields)
	if err != nil {
		return nil, err
	}
	return &api.KeyPair{
		ID:          id,
		Name:        obj.Get("name").String(),
		Fingerprint: obj.Get("fingerprint").String(),
		PublicKey:   obj.Get("public_key").String(),
		PrivateKey:  obj.Get("private_key").String(),
		Type:        obj.Get("type").String(),
		OwnerID:     ctx.AccountNumber(),
		RegionID:    ctx.RegionID(),
	}, nil
}

//mapKeyPairs converts a list response, the list is either wrapped in a "keypairs" field or a bare array.
//A malformed element fails the whole list.
func mapKeyPairs(ctx Context, body gjson.Result) ([]api.KeyPair, error) {
	items := body.Get(keyPairsResource)
	if !items.Exists() && body.IsArray() {
		items = body
	}
	if !items.IsArray() {
		return nil, api.NewMappingError(keyPairsResource, "key pair list is not a JSON array")
	}
	elements := items.Array()
	keypairs := make([]api.KeyPair, 0, len(elements))
	for i, e := range elements {
		kp, err := mapKeyPair(ctx, e)
		if err != nil {
			return nil, errors.Wrapf(err, "Error mapping key pair at index %d", i)
		}
		keypairs = append(keypairs, *kp)
	}
	return keypairs, nil
}
