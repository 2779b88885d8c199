package openstack

import (
	"github.com/SebastienDorgan/anykeys/api"
	"github.com/SebastienDorgan/anykeys/providers"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

//KeyPairManager openstack implementation of api.KeyPairManager
type KeyPairManager struct {
	Transport Transport
	Context   Context
	Logger    *logrus.Entry
}

func (mgr *KeyPairManager) logger(op string) *logrus.Entry {
	l := mgr.Logger
	if l == nil {
		l = logrus.NewEntry(logrus.StandardLogger())
	}
	return l.WithFields(logrus.Fields{
		"operation":  op,
		"request_id": uuid.New().String(),
	})
}

func (mgr *KeyPairManager) checkSubscribed() error {
	if !mgr.IsSubscribed() {
		return api.NewUnsupportedError("key pairs", string(mgr.Context.Capabilities().Flavor))
	}
	return nil
}

//Capabilities returns the key pair capabilities resolved for the provider
func (mgr *KeyPairManager) Capabilities() api.Capabilities {
	return mgr.Context.Capabilities()
}

//IsSubscribed tells if the provider serves key pairs
func (mgr *KeyPairManager) IsSubscribed() bool {
	return mgr.Context.Capabilities().KeyPairs
}

//Create asks the provider to generate a key pair, the private key is only returned by this call
func (mgr *KeyPairManager) Create(name string) (*api.KeyPair, error) {
	if err := providers.CheckKeyPairName(name); err != nil {
		return nil, err
	}
	kp, err := mgr.create("create", newKeyPairRequest(name, ""))
	if err != nil {
		return nil, errors.Wrapf(err, "Error creating key pair %s", name)
	}
	return kp, nil
}

//Import load a public key
func (mgr *KeyPairManager) Import(name string, publicKey []byte) (*api.KeyPair, error) {
	if err := providers.CheckKeyPairName(name); err != nil {
		return nil, err
	}
	if err := providers.CheckPublicKey(publicKey); err != nil {
		return nil, err
	}
	if !mgr.Context.Capabilities().Import {
		return nil, api.NewUnsupportedError("key pair import", string(mgr.Context.Capabilities().Flavor))
	}
	kp, err := mgr.create("import", newKeyPairRequest(name, string(publicKey)))
	if err != nil {
		return nil, errors.Wrapf(err, "Error importing key pair %s", name)
	}
	return kp, nil
}

func (mgr *KeyPairManager) create(op string, req keyPairRequest) (*api.KeyPair, error) {
	if err := mgr.checkSubscribed(); err != nil {
		return nil, err
	}
	log := mgr.logger(op).WithField("keypair", req.KeyPair.Name)
	log.Debug("Sending key pair request")
	resp, err := mgr.Transport.Post(keyPairsServiceURL, mgr.Context.RegionID(), req)
	if err != nil {
		log.WithError(err).Debug("Key pair request rejected")
		return nil, err
	}
	body, err := parseBody(resp)
	if err != nil {
		return nil, err
	}
	kp, err := mapKeyPair(mgr.Context, body)
	if err != nil {
		return nil, err
	}
	log.WithField("id", kp.ID).Debug("Key pair ready")
	return kp, nil
}

//Delete a key pair
func (mgr *KeyPairManager) Delete(id string) error {
	if len(id) == 0 {
		return api.NewInvalidArgumentError("id", "key pair id must not be empty")
	}
	if err := mgr.checkSubscribed(); err != nil {
		return err
	}
	mgr.logger("delete").WithField("id", id).Debug("Deleting key pair")
	err := mgr.Transport.Delete(keyPairsServiceURL, mgr.Context.RegionID(), id)
	if err != nil {
		return errors.Wrapf(err, "Error deleting key pair %s", id)
	}
	return nil
}

//List returns key pairs in provider order
func (mgr *KeyPairManager) List() ([]api.KeyPair, error) {
	if err := mgr.checkSubscribed(); err != nil {
		return nil, err
	}
	mgr.logger("list").Debug("Listing key pairs")
	resp, err := mgr.Transport.Get(keyPairsServiceURL, mgr.Context.RegionID())
	if err != nil {
		return nil, errors.Wrap(err, "Error listing key pairs")
	}
	body, err := parseBody(resp)
	if err != nil {
		return nil, errors.Wrap(err, "Error listing key pairs")
	}
	keypairs, err := mapKeyPairs(mgr.Context, body)
	if err != nil {
		return nil, errors.Wrap(err, "Error listing key pairs")
	}
	return keypairs, nil
}

//Get returns the key pair identified by id, nil if it does not exist
func (mgr *KeyPairManager) Get(id string) (*api.KeyPair, error) {
	return providers.FindKeyPair(mgr, id)
}

//GetFingerprint returns the fingerprint of the key pair identified by id
func (mgr *KeyPairManager) GetFingerprint(id string) (string, error) {
	return providers.Fingerprint(mgr, id)
}
