package enceval

import (
    "fmt"

    gm "github.com/ontanj/generic-matrix"
)

// cipherSpace exposes the key material's ciphertext algebra as an
// evaluation space, so circuit evaluation and matrix-shaped batch work
// go through one surface.
type cipherSpace struct {
    keys *KeyMaterial
}

func (s cipherSpace) Add(a, b interface{}) (interface{}, error) {
    rt, err := s.keys.use()
    if err != nil {
        return nil, err
    }
    return rt.Add(a, b)
}

func (s cipherSpace) Subtract(a, b interface{}) (diff interface{}, err error) {
    rt, err := s.keys.use()
    if err != nil {
        return nil, err
    }
    return rt.Subtract(a, b)
}

func (s cipherSpace) Multiply(a, b interface{}) (product interface{}, err error) {
    rt, err := s.keys.use()
    if err != nil {
        return nil, err
    }
    return rt.Multiply(a, b)
}

func (s cipherSpace) Scale(cipher interface{}, factor interface{}) (product interface{}, err error) {
    rt, err := s.keys.use()
    if err != nil {
        return nil, err
    }
    k, ok := factor.(int64)
    if !ok {
        return nil, &EvaluationError{Reason: "scale factor must be an int64"}
    }
    return rt.Scale(cipher, k)
}

func (s cipherSpace) Scalarspace() bool {
    return false
}

// EvaluationSpace returns the ciphertext algebra of this key material.
func (k *KeyMaterial) EvaluationSpace() gm.Space {
    return cipherSpace{keys: k}
}

// encrypt a plaintext column into a one-column matrix over the
// ciphertext space
func encryptColumn(values []int64, keys *KeyMaterial) (gm.Matrix, error) {
    data := make([]interface{}, len(values))
    for i, value := range values {
        ct, err := Encrypt(value, keys)
        if err != nil {
            return gm.Matrix{}, err
        }
        data[i] = ct.payload
    }
    return gm.NewMatrix(len(values), 1, data, keys.EvaluationSpace())
}

// EvaluateBatch applies the circuit to many operand pairs under one
// key material, amortizing key generation. The encrypted operand
// columns are held as matrices over the ciphertext space and each gate
// op acts on whole columns elementwise; decryption then yields one
// record per pair.
func EvaluateBatch(circuit *Circuit, as, bs []int64, keys *KeyMaterial, reference func(int64, int64) int64) ([]Record, error) {
    if len(as) != len(bs) {
        return nil, configErrorf("operand columns differ in length: %d vs %d", len(as), len(bs))
    }
    if err := keys.params.CompatibleWith(circuit); err != nil {
        return nil, err
    }
    if len(as) == 0 {
        return nil, nil
    }

    colA, err := encryptColumn(as, keys)
    if err != nil {
        return nil, err
    }
    colB, err := encryptColumn(bs, keys)
    if err != nil {
        return nil, err
    }

    regs := make([]gm.Matrix, circuit.registers())
    regs[0] = colA
    regs[1] = colB
    for i, op := range circuit.Ops {
        var out gm.Matrix
        switch op.Kind {
        case GateAdd:
            out, err = regs[op.Lhs].Add(regs[op.Rhs])
        case GateSub:
            out, err = regs[op.Lhs].Subtract(regs[op.Rhs])
        case GateLut:
            return nil, &EvaluationError{Reason: "lookup gates are not supported by the " + keys.backend + " runtime"}
        default:
            return nil, &EvaluationError{Reason: "unknown gate kind " + string(op.Kind)}
        }
        if err != nil {
            if _, ok := err.(*EvaluationError); ok {
                return nil, err
            }
            return nil, &EvaluationError{Reason: fmt.Sprintf("op %d failed", i), Err: err}
        }
        regs[op.Dst] = out
    }
    result := regs[circuit.Result]

    records := make([]Record, len(as))
    for i := range records {
        payload, err := result.At(i, 0)
        if err != nil {
            return nil, &EvaluationError{Reason: "result column access failed", Err: err}
        }
        decrypted, err := Decrypt(&Ciphertext{keyID: keys.id, payload: payload}, keys)
        if err != nil {
            return nil, err
        }
        expected := reference(as[i], bs[i])
        records[i] = Record{
            Match: decrypted == expected,
            Decrypted: decrypted,
            Expected: expected,
        }
    }
    return records, nil
}
