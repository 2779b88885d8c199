package api

//KeyPair defines KeyPair type
type KeyPair struct {
	//provider assigned identifier of the key pair
	ID string
	//name of the key pair
	Name string
	//fingerprint of the public key, computed by the provider
	Fingerprint string
	//public key in authorized_keys format
	PublicKey string
	//private key generated by the provider on creation.
	//It belongs to the caller and must never be logged.
	PrivateKey string
	//key type (ssh, x509) when the provider reports one
	Type string
	//account owning the key pair
	OwnerID string
	//region where the key pair lives
	RegionID string
}

//KeyPairManager defines key pair management functions a provider must provide
type KeyPairManager interface {
	//Create asks the provider to generate a new key pair
	Create(name string) (*KeyPair, error)
	//Import registers an existing public key
	Import(name string, publicKey []byte) (*KeyPair, error)
	//Delete removes the key pair identified by id
	Delete(id string) error
	//Get returns the key pair identified by id or nil if it does not exist
	Get(id string) (*KeyPair, error)
	//GetFingerprint returns the fingerprint of the key pair identified by id
	GetFingerprint(id string) (string, error)
	//List returns key pairs in the order given by the provider
	List() ([]KeyPair, error)
	//Capabilities returns the key pair capabilities of the provider
	Capabilities() Capabilities
	//IsSubscribed tells if key pairs are available on the provider
	IsSubscribed() bool
}
