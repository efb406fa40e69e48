package enceval

import (
    "crypto/rand"
    "math/big"
    "sync"
)

// The harness asks exactly four things of a threshold cryptosystem:
// parameter validation, key generation, encryption/decryption, and
// homomorphic application of the circuit's operation kinds. Backend
// covers the first two, runtime the rest.

type Backend interface {
    Name() string

    // Validate checks the parameter set and share configuration
    // without generating anything.
    Validate(params *Parameters, parties, threshold int) error

    // GenerateKeys produces key material for one evaluation session:
    // an encryption key, an evaluation key, and decryption key shares
    // for the given number of parties.
    GenerateKeys(params *Parameters, parties, threshold int) (*KeyMaterial, error)
}

// runtime is the ciphertext algebra of generated key material. The
// decryption capability stays inside CombineDecrypt; evaluation code
// only ever reaches the homomorphic operations.
type runtime interface {
    Encrypt(value int64) (interface{}, error)
    CombineDecrypt(cipher interface{}) (int64, error)
    Add(a, b interface{}) (interface{}, error)
    Subtract(a, b interface{}) (interface{}, error)
    Scale(cipher interface{}, factor int64) (interface{}, error)
    Multiply(a, b interface{}) (interface{}, error)
}

// KeyMaterial ties generated keys to the parameter set they were
// derived from. It is read-only after generation and safe to share
// across concurrently evaluating sessions, until Drop.
type KeyMaterial struct {
    backend string
    id uint64
    parties int
    threshold int
    params *Parameters
    rt runtime

    mu sync.Mutex
    dropped bool
}

func (k *KeyMaterial) Backend() string {
    return k.backend
}

func (k *KeyMaterial) Parties() int {
    return k.parties
}

func (k *KeyMaterial) Threshold() int {
    return k.threshold
}

// Drop invalidates the key material at session end. Any later use
// fails; ciphertexts bound to it become undecryptable.
func (k *KeyMaterial) Drop() {
    k.mu.Lock()
    k.dropped = true
    k.rt = nil
    k.mu.Unlock()
}

func (k *KeyMaterial) use() (runtime, error) {
    k.mu.Lock()
    defer k.mu.Unlock()
    if k.dropped {
        return nil, configErrorf("key material has been dropped")
    }
    return k.rt, nil
}

// Ciphertext is an opaque encrypted value bound to exactly one key
// material instance. The payload is backend-owned; the binding is
// checked on every decryption and evaluation.
type Ciphertext struct {
    keyID uint64
    payload interface{}
}

func (c *Ciphertext) boundTo(k *KeyMaterial) bool {
    return c != nil && c.payload != nil && c.keyID == k.id
}

// sample a uniform random key material identifier
func sampleID() (uint64, error) {
    id, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 63))
    if err != nil {
        return 0, err
    }
    return id.Uint64(), nil
}

// Encrypt maps a plaintext integer to a ciphertext under the given
// keys. Encryption randomness is fresh per call: two encryptions of
// one plaintext are distinct ciphertexts that decrypt equal.
func Encrypt(value int64, keys *KeyMaterial) (*Ciphertext, error) {
    rt, err := keys.use()
    if err != nil {
        return nil, err
    }
    payload, err := rt.Encrypt(value)
    if err != nil {
        return nil, err
    }
    return &Ciphertext{keyID: keys.id, payload: payload}, nil
}

// Decrypt combines the decryption key shares and decodes the result.
// A malformed ciphertext or one bound to different key material fails
// with a DecryptionError, never a silently wrong value.
func Decrypt(ct *Ciphertext, keys *KeyMaterial) (int64, error) {
    if ct == nil || ct.payload == nil {
        return 0, &DecryptionError{Reason: "malformed ciphertext"}
    }
    if !ct.boundTo(keys) {
        return 0, &DecryptionError{Reason: "ciphertext bound to different key material"}
    }
    rt, err := keys.use()
    if err != nil {
        return 0, &DecryptionError{Reason: "unusable key material", Err: err}
    }
    return rt.CombineDecrypt(ct.payload)
}
