package store

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

// The current version of the sealed token file format.
const sealedFormatVersion = 1

// errWrongPassphrase is returned when the passphrase is incorrect or the
// sealed file has been modified.
var errWrongPassphrase = errors.New("wrong passphrase or corrupted token file")

// sealedBlob is the on-disk JSON structure of a sealed token file.
type sealedBlob struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	Nonce  []byte `json:"nonce"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

// kdfParams are the scrypt cost parameters used when sealing.
type kdfParams struct {
	N, R, P int
}

func defaultKDFParams() kdfParams { return kdfParams{N: 1 << 15, R: 8, P: 1} }

// sealer encrypts token maps under a passphrase.
type sealer struct {
	passphrase []byte
	params     kdfParams
}

func (s sealer) seal(raw []byte) ([]byte, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	key, err := scrypt.Key(s.passphrase, salt, s.params.N, s.params.R, s.params.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	ct := aead.Seal(nil, nonce, raw, salt)

	return json.Marshal(sealedBlob{
		V:      sealedFormatVersion,
		Salt:   salt,
		Nonce:  nonce,
		N:      s.params.N,
		R:      s.params.R,
		P:      s.params.P,
		Cipher: ct,
	})
}

func (s sealer) open(b []byte) ([]byte, error) {
	var bl sealedBlob
	if err := json.Unmarshal(b, &bl); err != nil {
		return nil, fmt.Errorf("decode sealed token file: %w", err)
	}
	if bl.V > sealedFormatVersion {
		return nil, fmt.Errorf("unsupported token file version %d", bl.V)
	}

	key, err := scrypt.Key(s.passphrase, bl.Salt, bl.N, bl.R, bl.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	if len(bl.Nonce) != aead.NonceSize() {
		return nil, errWrongPassphrase
	}
	pt, err := aead.Open(nil, bl.Nonce, bl.Cipher, bl.Salt)
	if err != nil {
		return nil, errWrongPassphrase
	}
	return pt, nil
}
