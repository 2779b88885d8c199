package tests

import (
	"github.com/SebastienDorgan/anykeys/api"
	"github.com/SebastienDorgan/anykeys/sshutils"
	"github.com/SebastienDorgan/talgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

//KeyPairManagerTestSuite test suite off api.KeyPairManagers
type KeyPairManagerTestSuite struct {
	suite.Suite
	Mgr api.KeyPairManager
	//Region and Owner expected on every key pair
	Region string
	Owner  string
	//DeleteUnknownFails tells if the provider rejects the deletion of an unknown key pair
	DeleteUnknownFails bool
}

func (s *KeyPairManagerTestSuite) count(keypairs []api.KeyPair, id string) int {
	return len(talgo.FindAll(len(keypairs), func(i int) bool {
		return keypairs[i].ID == id
	}))
}

func (s *KeyPairManagerTestSuite) checkScope(kp *api.KeyPair) {
	assert.Equal(s.T(), s.Region, kp.RegionID)
	assert.Equal(s.T(), s.Owner, kp.OwnerID)
}

//TestKeyPairManager Canonical test for KeyPairManager implementation
func (s *KeyPairManagerTestSuite) TestKeyPairManager() {
	t := s.T()
	require.True(t, s.Mgr.IsSubscribed())

	keypairs, err := s.Mgr.List()
	require.NoError(t, err)
	nkeys := len(keypairs)

	keys, err := sshutils.CreateKeyPair(2048)
	require.NoError(t, err)

	imported, err := s.Mgr.Import("pktest", keys.PublicKey)
	require.NoError(t, err)
	assert.Equal(t, "pktest", imported.Name)
	assert.NotEmpty(t, imported.ID)
	assert.NotEmpty(t, imported.Fingerprint)
	assert.Empty(t, imported.PrivateKey)
	s.checkScope(imported)

	created, err := s.Mgr.Create("pkcreated")
	require.NoError(t, err)
	assert.Equal(t, "pkcreated", created.Name)
	assert.NotEmpty(t, created.PrivateKey)
	assert.NotEqual(t, imported.ID, created.ID)
	s.checkScope(created)

	keypairs, err = s.Mgr.List()
	require.NoError(t, err)
	assert.Equal(t, nkeys+2, len(keypairs))
	assert.Equal(t, 1, s.count(keypairs, imported.ID))
	assert.Equal(t, 1, s.count(keypairs, created.ID))
	for i := range keypairs {
		s.checkScope(&keypairs[i])
	}

	kp, err := s.Mgr.Get(imported.ID)
	require.NoError(t, err)
	require.NotNil(t, kp)
	assert.Equal(t, imported.Fingerprint, kp.Fingerprint)

	fp, err := s.Mgr.GetFingerprint(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created.Fingerprint, fp)

	err = s.Mgr.Delete(imported.ID)
	assert.NoError(t, err)
	err = s.Mgr.Delete(created.ID)
	assert.NoError(t, err)

	keypairs, err = s.Mgr.List()
	require.NoError(t, err)
	assert.Equal(t, nkeys, len(keypairs))
	assert.Equal(t, 0, s.count(keypairs, imported.ID))

	kp, err = s.Mgr.Get(imported.ID)
	assert.NoError(t, err)
	assert.Nil(t, kp)

	_, err = s.Mgr.GetFingerprint(imported.ID)
	assert.True(t, api.IsNotFound(err))

	err = s.Mgr.Delete(imported.ID)
	if s.DeleteUnknownFails {
		assert.True(t, api.IsRemote(err))
	} else {
		assert.NoError(t, err)
	}
}

//TestInvalidArguments checks arguments are validated before reaching the provider
func (s *KeyPairManagerTestSuite) TestInvalidArguments() {
	t := s.T()
	_, err := s.Mgr.Create("")
	assert.True(t, api.IsInvalidArgument(err))
	_, err = s.Mgr.Import("pktest", nil)
	assert.True(t, api.IsInvalidArgument(err))
	assert.True(t, api.IsInvalidArgument(s.Mgr.Delete("")))
}
