package aws

import (
	"io"

	"github.com/SebastienDorgan/anykeys/api"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/aws/aws-sdk-go/service/ec2/ec2iface"
	"github.com/sirupsen/logrus"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

//Config AWS session configuration
type Config struct {
	// AWS Region
	Region string `mapstructure:"region"`
	// AWS Access key ID
	AccessKeyID string `mapstructure:"access_key_id"`

	// AWS Secret Access Key
	SecretAccessKey string `mapstructure:"secret_access_key"`

	// AWS Session Token
	SessionToken string `mapstructure:"session_token"`

	// AWS account owning the key pairs
	AccountNumber string `mapstructure:"account_number"`
}

//Retrieve adapts Config to AWS Providder interface
func (cfg *Config) Retrieve() (credentials.Value, error) {
	return credentials.Value{
		AccessKeyID:     cfg.AccessKeyID,
		SecretAccessKey: cfg.SecretAccessKey,
		SessionToken:    cfg.SessionToken,
		ProviderName:    "anykeys",
	}, nil
}

//IsExpired adapts Config to AWS Providder interface
func (cfg *Config) IsExpired() bool {
	return false
}

//ReadConfig reads an AWS configuration, format is a viper config type (json, yaml, toml)
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
	return &cfg, nil
}

// ProviderError converts EC2 request failures into api.RemoteError
func ProviderError(err error) error {
	if e, ok := err.(awserr.RequestFailure); ok {
		return api.NewRemoteError(e, e.StatusCode(), e.Code(), e.Message())
	}
	return err
}

//Provider AWS provider
type Provider struct {
	EC2Client      ec2iface.EC2API
	Config         Config
	Capabilities   api.Capabilities
	KeyPairManager KeyPairManager
	log            *logrus.Entry
}

func getEC2Config(cfg *Config) *aws.Config {
	return &aws.Config{
		Region:      aws.String(cfg.Region),
		Credentials: credentials.NewCredentials(cfg),
	}
}

//NewProvider creates a provider on top of an EC2 client
func NewProvider(cfg *Config, client ec2iface.EC2API) *Provider {
	p := &Provider{}
	p.setup(cfg, client)
	return p
}

func (p *Provider) setup(cfg *Config, client ec2iface.EC2API) {
	p.Config = *cfg
	p.EC2Client = client
	p.Capabilities = api.ResolveCapabilities(api.FlavorAWS, api.ReleaseUnknown)
	p.log = logrus.WithFields(logrus.Fields{
		"provider": p.Name(),
		"region":   cfg.Region,
	})
	p.KeyPairManager.AWS = p
}

func (p *Provider) logger() *logrus.Entry {
	if p.log == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return p.log
}

//Init initialize AWS Provider
func (p *Provider) Init(config io.Reader, format string) error {
	cfg, err := ReadConfig(config, format)
	if err != nil {
		return err
	}
	ec2session, err := session.NewSession(getEC2Config(cfg))
	if err != nil {
		return errors.Wrap(err, "Error creation provider session")
	}
	p.setup(cfg, ec2.New(ec2session))
	return nil
}

//Name returns the provider name
func (p *Provider) Name() string {
	return string(api.FlavorAWS)
}

//GetKeyPairManager returns aws KeyPairManager
func (p *Provider) GetKeyPairManager() api.KeyPairManager {
	return &p.KeyPairManager
}
