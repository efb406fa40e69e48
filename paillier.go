package enceval

import (
    "fmt"
    "math/big"

    "github.com/niclabs/tcpaillier"
)

// Threshold Paillier runtime. Additively homomorphic, which covers
// both circuit operation kinds (SUB is ADD of a (-1)-scaled
// ciphertext), with genuine t-of-n decryption shares.

type PaillierBackend struct{}

func (PaillierBackend) Name() string {
    return "paillier"
}

func (PaillierBackend) Validate(params *Parameters, parties, threshold int) error {
    if err := params.validate(); err != nil {
        return err
    }
    if parties < 1 || parties > 255 {
        return configErrorf("paillier backend supports 1 to 255 parties, got %d", parties)
    }
    if threshold < 1 || threshold > parties {
        return configErrorf("threshold %d not in 1..%d", threshold, parties)
    }
    return nil
}

type paillierRuntime struct {
    pk *tcpaillier.PubKey
    shares []*tcpaillier.KeyShare
    threshold int
    max int64
}

func (b PaillierBackend) GenerateKeys(params *Parameters, parties, threshold int) (*KeyMaterial, error) {
    if err := b.Validate(params, parties, threshold); err != nil {
        return nil, err
    }
    shares, pk, err := tcpaillier.NewKey(params.PaillierBits, 1, uint8(parties), uint8(threshold))
    if err != nil {
        return nil, &KeyGenerationError{Backend: "paillier", Err: err}
    }
    id, err := sampleID()
    if err != nil {
        return nil, &KeyGenerationError{Backend: "paillier", Err: err}
    }
    return &KeyMaterial{
        backend: "paillier",
        id: id,
        parties: parties,
        threshold: threshold,
        params: params,
        rt: &paillierRuntime{pk: pk, shares: shares, threshold: threshold, max: params.maxOperand()},
    }, nil
}

func (r *paillierRuntime) encode(value int64) *big.Int {
    m := big.NewInt(value)
    if value < 0 {
        m.Add(m, r.pk.N)
    }
    return m
}

func (r *paillierRuntime) decode(m *big.Int) int64 {
    half := new(big.Int).Rsh(r.pk.N, 1)
    if m.Cmp(half) > 0 {
        return new(big.Int).Sub(m, r.pk.N).Int64()
    }
    return m.Int64()
}

func (r *paillierRuntime) Encrypt(value int64) (interface{}, error) {
    if value > r.max || value < -r.max {
        return nil, configErrorf("operand %d outside the plaintext range ±%d", value, r.max)
    }
    cipher, _, err := r.pk.Encrypt(r.encode(value))
    if err != nil {
        return nil, err
    }
    return cipher, nil
}

// combine the first threshold many decryption shares
func (r *paillierRuntime) CombineDecrypt(cipher interface{}) (int64, error) {
    ct, ok := cipher.(*big.Int)
    if !ok {
        return 0, &DecryptionError{Reason: fmt.Sprintf("foreign ciphertext payload %T", cipher)}
    }
    parts := make([]*tcpaillier.DecryptionShare, r.threshold)
    for i := 0; i < r.threshold; i += 1 {
        part, err := r.shares[i].PartialDecrypt(ct)
        if err != nil {
            return 0, &DecryptionError{Reason: "partial decryption failed", Err: err}
        }
        parts[i] = part
    }
    plain, err := r.pk.CombineShares(parts...)
    if err != nil {
        return 0, &DecryptionError{Reason: "share combination failed", Err: err}
    }
    return r.decode(plain), nil
}

func (r *paillierRuntime) operand(cipher interface{}) (*big.Int, error) {
    ct, ok := cipher.(*big.Int)
    if !ok {
        return nil, &EvaluationError{Reason: fmt.Sprintf("foreign ciphertext payload %T", cipher)}
    }
    return ct, nil
}

func (r *paillierRuntime) Add(a, b interface{}) (interface{}, error) {
    ac, err := r.operand(a)
    if err != nil {
        return nil, err
    }
    bc, err := r.operand(b)
    if err != nil {
        return nil, err
    }
    return r.pk.Add(ac, bc)
}

func (r *paillierRuntime) Subtract(a, b interface{}) (interface{}, error) {
    ac, err := r.operand(a)
    if err != nil {
        return nil, err
    }
    bc, err := r.operand(b)
    if err != nil {
        return nil, err
    }
    neg, _, err := r.pk.Multiply(bc, big.NewInt(-1))
    if err != nil {
        return nil, err
    }
    return r.pk.Add(ac, neg)
}

func (r *paillierRuntime) Scale(cipher interface{}, factor int64) (interface{}, error) {
    ct, err := r.operand(cipher)
    if err != nil {
        return nil, err
    }
    product, _, err := r.pk.Multiply(ct, big.NewInt(factor))
    if err != nil {
        return nil, err
    }
    return product, nil
}

func (r *paillierRuntime) Multiply(a, b interface{}) (interface{}, error) {
    return nil, &EvaluationError{Reason: "ciphertext multiplication is not supported by the paillier runtime"}
}
