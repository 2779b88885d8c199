package openstack

import (
	"encoding/json"
	"sync"

	"github.com/SebastienDorgan/anykeys/api"
	gc "github.com/gophercloud/gophercloud"
	"github.com/pkg/errors"
)

//Transport issues authenticated requests against the compute API of a region
type Transport interface {
	//Get returns the raw JSON body of resource
	Get(resource string, region string) ([]byte, error)
	//Post sends body to resource and returns the raw JSON response
	Post(resource string, region string, body interface{}) ([]byte, error)
	//Delete removes the resource element identified by id
	Delete(resource string, region string, id string) error
}

//ComputeClientFactory creates the compute service client of a region
type ComputeClientFactory func(region string) (*gc.ServiceClient, error)

//ComputeTransport gophercloud implementation of Transport
type ComputeTransport struct {
	factory ComputeClientFactory
	mu      sync.Mutex
	clients map[string]*gc.ServiceClient
}

//NewComputeTransport creates a ComputeTransport, compute clients are created on first use of a region
func NewComputeTransport(factory ComputeClientFactory) *ComputeTransport {
	return &ComputeTransport{
		factory: factory,
		clients: make(map[string]*gc.ServiceClient),
	}
}

func (t *ComputeTransport) client(region string) (*gc.ServiceClient, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if c, ok := t.clients[region]; ok {
		return c, nil
	}
	c, err := t.factory(region)
	if err != nil {
		return nil, errors.Wrapf(ProviderError(err), "Error creating compute client for region %s", region)
	}
	t.clients[region] = c
	return c, nil
}

//Get returns the raw JSON body of resource
func (t *ComputeTransport) Get(resource string, region string) ([]byte, error) {
	c, err := t.client(region)
	if err != nil {
		return nil, err
	}
	var body json.RawMessage
	_, err = c.Get(c.ServiceURL(resource), &body, &gc.RequestOpts{
		OkCodes: []int{200},
	})
	if err != nil {
		return nil, ProviderError(err)
	}
	return body, nil
}

//Post sends body to resource and returns the raw JSON response
func (t *ComputeTransport) Post(resource string, region string, body interface{}) ([]byte, error) {
	c, err := t.client(region)
	if err != nil {
		return nil, err
	}
	var resp json.RawMessage
	_, err = c.Post(c.ServiceURL(resource), body, &resp, &gc.RequestOpts{
		OkCodes: []int{200, 201},
	})
	if err != nil {
		return nil, ProviderError(err)
	}
	return resp, nil
}

//Delete removes the resource element identified by id
func (t *ComputeTransport) Delete(resource string, region string, id string) error {
	c, err := t.client(region)
	if err != nil {
		return err
	}
	_, err = c.Delete(c.ServiceURL(resource, id), &gc.RequestOpts{
		OkCodes: []int{202, 204},
	})
	if err != nil {
		return ProviderError(err)
	}
	return nil
}

func remoteError(e gc.ErrUnexpectedResponseCode) error {
	return api.NewRemoteError(e, e.Actual, "", "")
}

// ProviderError converts openstack api errors with a response into api.RemoteError
func ProviderError(err error) error {
	switch e := err.(type) {
	case gc.ErrDefault400:
		return remoteError(e.ErrUnexpectedResponseCode)
	case *gc.ErrDefault400:
		return remoteError(e.ErrUnexpectedResponseCode)
	case gc.ErrDefault401:
		return remoteError(e.ErrUnexpectedResponseCode)
	case *gc.ErrDefault401:
		return remoteError(e.ErrUnexpectedResponseCode)
	case gc.ErrDefault403:
		return remoteError(e.ErrUnexpectedResponseCode)
	case *gc.ErrDefault403:
		return remoteError(e.ErrUnexpectedResponseCode)
	case gc.ErrDefault404:
		return remoteError(e.ErrUnexpectedResponseCode)
	case *gc.ErrDefault404:
		return remoteError(e.ErrUnexpectedResponseCode)
	case gc.ErrDefault405:
		return remoteError(e.ErrUnexpectedResponseCode)
	case *gc.ErrDefault405:
		return remoteError(e.ErrUnexpectedResponseCode)
	case gc.ErrDefault408:
		return remoteError(e.ErrUnexpectedResponseCode)
	case *gc.ErrDefault408:
		return remoteError(e.ErrUnexpectedResponseCode)
	case gc.ErrDefault429:
		return remoteError(e.ErrUnexpectedResponseCode)
	case *gc.ErrDefault429:
		return remoteError(e.ErrUnexpectedResponseCode)
	case gc.ErrDefault500:
		return remoteError(e.ErrUnexpectedResponseCode)
	case *gc.ErrDefault500:
		return remoteError(e.ErrUnexpectedResponseCode)
	case gc.ErrDefault503:
		return remoteError(e.ErrUnexpectedResponseCode)
	case *gc.ErrDefault503:
		return remoteError(e.ErrUnexpectedResponseCode)
	case gc.ErrUnexpectedResponseCode:
		return remoteError(e)
	case *gc.ErrUnexpectedResponseCode:
		return remoteError(*e)
	default:
		return e
	}
}
