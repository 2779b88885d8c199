package aws

import (
	"github.com/SebastienDorgan/anykeys/api"
	"github.com/SebastienDorgan/anykeys/providers"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

//KeyPairManager aws implementation of api.KeyPairManager
type KeyPairManager struct {
	AWS *Provider
}

func (mgr *KeyPairManager) logger(op string) *logrus.Entry {
	return mgr.AWS.logger().WithFields(logrus.Fields{
		"operation":  op,
		"request_id": uuid.New().String(),
	})
}

func (mgr *KeyPairManager) checkSubscribed() error {
	if !mgr.IsSubscribed() {
		return api.NewUnsupportedError("key pairs", string(mgr.AWS.Capabilities.Flavor))
	}
	return nil
}

//keyPair maps EC2 key pair attributes, the identifier is the first of IDFields set
func (mgr *KeyPairManager) keyPair(name, fingerprint *string) (*api.KeyPair, error) {
	fields := map[string]*string{"KeyName": name}
	id := ""
	for _, f := range mgr.AWS.Capabilities.IDFields {
		if v := aws.StringValue(fields[f]); v != "" {
			id = v
			break
		}
	}
	if id == "" {
		return nil, api.NewMappingError("KeyName", "key pair identifier is missing", mgr.AWS.Capabilities.IDFields)
	}
	return &api.KeyPair{
		ID:          id,
		Name:        aws.StringValue(name),
		Fingerprint: aws.StringValue(fingerprint),
		OwnerID:     mgr.AWS.Config.AccountNumber,
		RegionID:    mgr.AWS.Config.Region,
	}, nil
}

//Capabilities returns the key pair capabilities of EC2
func (mgr *KeyPairManager) Capabilities() api.Capabilities {
	return mgr.AWS.Capabilities
}

//IsSubscribed tells if key pairs are available
func (mgr *KeyPairManager) IsSubscribed() bool {
	return mgr.AWS.Capabilities.KeyPairs
}

//Create asks EC2 to generate a key pair, the private key is only returned by this call
func (mgr *KeyPairManager) Create(name string) (*api.KeyPair, error) {
	if err := providers.CheckKeyPairName(name); err != nil {
		return nil, err
	}
	if err := mgr.checkSubscribed(); err != nil {
		return nil, err
	}
	mgr.logger("create").WithField("keypair", name).Debug("Creating key pair")
	out, err := mgr.AWS.EC2Client.CreateKeyPair(&ec2.CreateKeyPairInput{
		DryRun:  aws.Bool(false),
		KeyName: aws.String(name),
	})
	if err != nil {
		return nil, errors.Wrapf(ProviderError(err), "Error creating key pair %s", name)
	}
	kp, err := mgr.keyPair(out.KeyName, out.KeyFingerprint)
	if err != nil {
		return nil, errors.Wrapf(err, "Error creating key pair %s", name)
	}
	kp.PrivateKey = aws.StringValue(out.KeyMaterial)
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
	if !mgr.Capabilities().Import {
		return nil, api.NewUnsupportedError("key pair import", string(mgr.AWS.Capabilities.Flavor))
	}
	mgr.logger("import").WithField("keypair", name).Debug("Importing key pair")
	out, err := mgr.AWS.EC2Client.ImportKeyPair(&ec2.ImportKeyPairInput{
		DryRun:            aws.Bool(false),
		KeyName:           aws.String(name),
		PublicKeyMaterial: publicKey,
	})
	if err != nil {
		return nil, errors.Wrapf(ProviderError(err), "Error importing key pair %s", name)
	}
	kp, err := mgr.keyPair(out.KeyName, out.KeyFingerprint)
	if err != nil {
		return nil, errors.Wrapf(err, "Error importing key pair %s", name)
	}
	kp.PublicKey = string(publicKey)
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
	_, err := mgr.AWS.EC2Client.DeleteKeyPair(&ec2.DeleteKeyPairInput{
		DryRun:  aws.Bool(false),
		KeyName: aws.String(id),
	})
	if err != nil {
		return errors.Wrapf(ProviderError(err), "Error deleting key pair %s", id)
	}
	return nil
}

//List returns key pairs in the order given by EC2
func (mgr *KeyPairManager) List() ([]api.KeyPair, error) {
	if err := mgr.checkSubscribed(); err != nil {
		return nil, err
	}
	mgr.logger("list").Debug("Listing key pairs")
	out, err := mgr.AWS.EC2Client.DescribeKeyPairs(&ec2.DescribeKeyPairsInput{
		DryRun: aws.Bool(false),
	})
	if err != nil {
		return nil, errors.Wrap(ProviderError(err), "Error listing key pairs")
	}
	keypairs := make([]api.KeyPair, 0, len(out.KeyPairs))
	for i, info := range out.KeyPairs {
		if info == nil {
			return nil, errors.Wrapf(api.NewMappingError("KeyPairs", "nil key pair"), "Error mapping key pair at index %d", i)
		}
		kp, err := mgr.keyPair(info.KeyName, info.KeyFingerprint)
		if err != nil {
			return nil, errors.Wrapf(err, "Error mapping key pair at index %d", i)
		}
		keypairs = append(keypairs, *kp)
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
