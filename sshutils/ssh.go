package sshutils

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"io"
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh"
)

//KeyPair a key pair
type KeyPair struct {
	PublicKey  []byte
	PrivateKey []byte
}

// CreateKeyPair creates a key pair using bitsize bits
func CreateKeyPair(bitsize int) (pair *KeyPair, err error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, bitsize)
	if err != nil {
		return nil, err
	}
	publicKey := privateKey.PublicKey
	pub, err := ssh.NewPublicKey(&publicKey)
	if err != nil {
		return nil, err
	}
	publicKeyBytes := ssh.MarshalAuthorizedKey(pub)
	priBytes := x509.MarshalPKCS1PrivateKey(privateKey)
	privateKeyBytes := pem.EncodeToMemory(
		&pem.Block{
			Type:  "RSA PRIVATE KEY",
			Bytes: priBytes,
		},
	)
	return &KeyPair{
		PublicKey:  publicKeyBytes,
		PrivateKey: privateKeyBytes,
	}, nil
}

//ReadPublicKey reads a public key in authorized_keys format and returns it without trailing new line
func ReadPublicKey(r io.Reader) ([]byte, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "Error reading public key")
	}
	_, _, _, _, err = ssh.ParseAuthorizedKey(data)
	if err != nil {
		return nil, errors.Wrap(err, "Error parsing public key")
	}
	return bytes.TrimSpace(data), nil
}

//WritePrivateKey writes a private key to path, readable by its owner only
func WritePrivateKey(path string, privateKey string) error {
	if len(privateKey) == 0 {
		return errors.New("no private key to write")
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return errors.Wrap(err, "Error writing private key")
	}
	_, err = f.WriteString(privateKey)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return errors.Wrap(err, "Error writing private key")
}
