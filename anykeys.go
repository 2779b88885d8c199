package anykeys

import (
	"io"

	"github.com/SebastienDorgan/anykeys/api"
	"github.com/SebastienDorgan/anykeys/providers/aws"
	"github.com/SebastienDorgan/anykeys/providers/openstack"
	"github.com/pkg/errors"
)

//NewProvider returns the provider named name, not yet initialized
func NewProvider(name string) (api.Provider, error) {
	flavor := api.ParseFlavor(name)
	switch flavor {
	case api.FlavorAWS:
		return &aws.Provider{}, nil
	case api.FlavorOpenStack, api.FlavorRackspace, api.FlavorHPCloud:
		return &openstack.Provider{Flavor: flavor}, nil
	}
	return nil, api.NewUnsupportedError("key pairs", name)
}

//Load creates the provider named name and initializes it with config
func Load(name string, config io.Reader, format string) (api.Provider, error) {
	p, err := NewProvider(name)
	if err != nil {
		return nil, err
	}
	err = p.Init(config, format)
	if err != nil {
		return nil, errors.Wrapf(err, "Error initializing provider %s", name)
	}
	return p, nil
}
