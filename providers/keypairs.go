package providers

import (
	"github.com/SebastienDorgan/anykeys/api"
	"github.com/SebastienDorgan/talgo"
	"github.com/pkg/errors"
)

//KeyPairLister lists key pairs
type KeyPairLister interface {
	List() ([]api.KeyPair, error)
}

//FindKeyPair scans the key pairs returned by lister and returns the one identified by id.
//Providers expose a bulk list for key pairs rather than an indexed lookup, so this is the
//lookup strategy shared by all managers. It returns nil, nil when no key pair matches.
func FindKeyPair(lister KeyPairLister, id string) (*api.KeyPair, error) {
	keypairs, err := lister.List()
	if err != nil {
		return nil, err
	}
	n := talgo.FindFirst(len(keypairs), func(i int) bool {
		return keypairs[i].ID == id
	})
	if n < 0 || n >= len(keypairs) {
		return nil, nil
	}
	kp := keypairs[n]
	return &kp, nil
}

//KeyPairGetter gets a key pair
type KeyPairGetter interface {
	Get(id string) (*api.KeyPair, error)
}

//Fingerprint returns the fingerprint of the key pair identified by id
func Fingerprint(getter KeyPairGetter, id string) (string, error) {
	kp, err := getter.Get(id)
	if err != nil {
		return "", errors.Wrapf(err, "Error getting fingerprint of key pair %s", id)
	}
	if kp == nil {
		return "", api.NewNotFoundError("key pair", id)
	}
	return kp.Fingerprint, nil
}

//CheckKeyPairName validates a key pair name before it is sent to a provider
func CheckKeyPairName(name string) error {
	if len(name) == 0 {
		return api.NewInvalidArgumentError("name", "key pair name must not be empty")
	}
	return nil
}

//CheckPublicKey validates a public key before it is sent to a provider
func CheckPublicKey(publicKey []byte) error {
	if len(publicKey) == 0 {
		return api.NewInvalidArgumentError("publicKey", "public key must not be empty")
	}
	return nil
}
