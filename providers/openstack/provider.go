package openstack

import (
	"io"

	"github.com/SebastienDorgan/anykeys/api"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	gc "github.com/gophercloud/gophercloud"
	"github.com/gophercloud/gophercloud/openstack"
	"github.com/pkg/errors"
)

/*Config fields are the union of those recognized by each OpenStack identity implementation and
provider.
*/
type Config struct {
	// IdentityEndpoint specifies the HTTP endpoint that is required to work with
	// the Identity API of the appropriate version.
	IdentityEndpoint string `mapstructure:"identity_endpoint"`

	// Username is required if using Identity V2 API. In Identity V3, either
	// UserID or a combination of Username and DomainID or DomainName are needed.
	Username string `mapstructure:"username"`
	UserID   string `mapstructure:"user_id"`

	Password string `mapstructure:"password"`

	// At most one of DomainID and DomainName must be provided if using Username
	// with Identity V3. Otherwise, either are optional.
	DomainID   string `mapstructure:"domain_id"`
	DomainName string `mapstructure:"domain_name"`

	// The TenantID and TenantName fields are optional for the Identity V2 API.
	TenantID   string `mapstructure:"tenant_id"`
	TenantName string `mapstructure:"tenant_name"`

	// AllowReauth lets gophercloud re-authenticate automatically when the token expires.
	AllowReauth bool `mapstructure:"allow_reauth"`

	// TokenID allows users to authenticate (possibly as another user) with an
	// authentication token ID.
	TokenID string `mapstructure:"token_id"`

	//Openstack region (data center) where key pairs are managed
	Region string `mapstructure:"region"`

	//AccountNumber owner of the key pairs, defaults to TenantID
	AccountNumber string `mapstructure:"account_number"`

	//Flavor of the compute API (openstack, rackspace, hpcloud)
	Flavor string `mapstructure:"flavor"`

	//Release OpenStack release name of the compute API (essex, folsom, ...)
	Release string `mapstructure:"release"`
}

//ReadConfig reads an OpenStack configuration, format is a viper config type (json, yaml, toml)
func ReadConfig(config io.Reader, format string) (*Config, error) {
	v := viper.New()
	v.SetConfigType(format)
	err := v.ReadConfig(config)
	if err != nil {
		return nil, errors.Wrap(err, "Error reading provider configuration")
	}
	cfg := Config{}
	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, errors.Wrap(err, "Error reading provider configuration")
	}
	if cfg.AccountNumber == "" {
		cfg.AccountNumber = cfg.TenantID
	}
	return &cfg, nil
}

//Context scope of key pair operations
type Context interface {
	RegionID() string
	AccountNumber() string
	Capabilities() api.Capabilities
}

//StaticContext Context resolved once from the provider configuration
type StaticContext struct {
	Region  string
	Account string
	Caps    api.Capabilities
}

//NewContext resolves the context of a configuration
func NewContext(cfg *Config) *StaticContext {
	return &StaticContext{
		Region:  cfg.Region,
		Account: cfg.AccountNumber,
		Caps:    api.ResolveCapabilities(api.ParseFlavor(cfg.Flavor), api.ParseRelease(cfg.Release)),
	}
}

//RegionID returns the region of the context
func (c *StaticContext) RegionID() string {
	return c.Region
}

//AccountNumber returns the account of the context
func (c *StaticContext) AccountNumber() string {
	return c.Account
}

//Capabilities returns the capabilities of the context
func (c *StaticContext) Capabilities() api.Capabilities {
	return c.Caps
}

//Provider OpenStack provider
type Provider struct {
	//Flavor used when the configuration does not name one
	Flavor         api.Flavor
	client         *gc.ProviderClient
	Context        *StaticContext
	Transport      Transport
	KeyPairManager KeyPairManager
}

//NewProvider creates a provider using transport to reach the compute API
func NewProvider(cfg *Config, transport Transport) *Provider {
	p := &Provider{}
	p.setup(cfg, transport)
	return p
}

func (p *Provider) setup(cfg *Config, transport Transport) {
	p.Context = NewContext(cfg)
	p.Transport = transport
	p.KeyPairManager = KeyPairManager{
		Transport: transport,
		Context:   p.Context,
		Logger: logrus.WithFields(logrus.Fields{
			"provider": p.Name(),
			"region":   cfg.Region,
		}),
	}
}

//Init initialize OpenStack Provider
func (p *Provider) Init(config io.Reader, format string) error {
	cfg, err := ReadConfig(config, format)
	if err != nil {
		return err
	}
	if cfg.Flavor == "" {
		cfg.Flavor = string(p.Flavor)
	}
	opts := gc.AuthOptions{
		IdentityEndpoint: cfg.IdentityEndpoint,
		Username:         cfg.Username,
		UserID:           cfg.UserID,
		Password:         cfg.Password,
		DomainID:         cfg.DomainID,
		DomainName:       cfg.DomainName,
		TenantID:         cfg.TenantID,
		TenantName:       cfg.TenantName,
		AllowReauth:      cfg.AllowReauth,
		TokenID:          cfg.TokenID,
	}

	// Openstack client
	p.client, err = openstack.AuthenticatedClient(opts)
	if err != nil {
		return errors.Wrap(ProviderError(err), "Error initiliazing openstack driver")
	}
	p.setup(cfg, NewComputeTransport(func(region string) (*gc.ServiceClient, error) {
		return openstack.NewComputeV2(p.client, gc.EndpointOpts{
			Region: region,
		})
	}))
	return nil
}

//Name returns the provider name
func (p *Provider) Name() string {
	if p.Context == nil {
		if p.Flavor != "" {
			return string(p.Flavor)
		}
		return string(api.FlavorOpenStack)
	}
	return string(p.Context.Caps.Flavor)
}

//GetKeyPairManager returns an OpenStack KeyPairManager
func (p *Provider) GetKeyPairManager() api.KeyPairManager {
	return &p.KeyPairManager
}
