package enceval

import (
    "fmt"
)

// EvaluateCircuit homomorphically applies the circuit artifact to the
// operand pair under the given keys. Operand order is the artifact's
// order. Intermediate values are never decrypted and control flow
// never depends on plaintext values; only the ciphertext algebra
// varies.
func EvaluateCircuit(circuit *Circuit, a, b *Ciphertext, keys *KeyMaterial) (*Ciphertext, error) {
    if circuit == nil {
        return nil, &EvaluationError{Reason: "no circuit artifact"}
    }
    if circuit.Inputs != 2 || circuit.Outputs != 1 {
        return nil, &EvaluationError{Reason: "circuit arity does not match the operand pair"}
    }
    if _, err := keys.use(); err != nil {
        return nil, &EvaluationError{Reason: "unusable key material", Err: err}
    }
    if !a.boundTo(keys) || !b.boundTo(keys) {
        return nil, &EvaluationError{Reason: "operand bound to different key material"}
    }

    space := keys.EvaluationSpace()
    regs := make([]interface{}, circuit.registers())
    regs[0] = a.payload
    regs[1] = b.payload

    for i, op := range circuit.Ops {
        var out interface{}
        var err error
        switch op.Kind {
        case GateAdd:
            out, err = space.Add(regs[op.Lhs], regs[op.Rhs])
        case GateSub:
            out, err = space.Subtract(regs[op.Lhs], regs[op.Rhs])
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
    return &Ciphertext{keyID: keys.id, payload: regs[circuit.Result]}, nil
}
