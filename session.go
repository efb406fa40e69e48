package enceval

import (
    "fmt"
)

// SessionState is the position of a session in its pipeline. Forward
// transitions only; any stage failure is terminal.
type SessionState int

const (
    StateConfigured SessionState = iota
    StateKeyed
    StateEncrypted
    StateEvaluated
    StateVerified
    StateFailed
)

func (s SessionState) String() string {
    switch s {
    case StateConfigured:
        return "CONFIGURED"
    case StateKeyed:
        return "KEYED"
    case StateEncrypted:
        return "ENCRYPTED"
    case StateEvaluated:
        return "EVALUATED"
    case StateVerified:
        return "VERIFIED"
    case StateFailed:
        return "FAILED"
    }
    return fmt.Sprintf("SessionState(%d)", int(s))
}

// Session ties one parameter set, one key material instance and the
// operand ciphertexts it creates into a single evaluation pipeline.
// A session is not safe for concurrent use; independent sessions over
// the same key material are.
type Session struct {
    params *Parameters
    keys *KeyMaterial
    state SessionState
    err error
    a, b int64
    ca, cb *Ciphertext
    result *Ciphertext
}

func NewSession(params *Parameters) *Session {
    return &Session{params: params, state: StateConfigured}
}

func (s *Session) State() SessionState {
    return s.state
}

// Err returns the error that moved the session to FAILED, if any.
func (s *Session) Err() error {
    return s.err
}

func (s *Session) fail(err error) error {
    s.state = StateFailed
    s.err = err
    return err
}

func (s *Session) expect(state SessionState) error {
    if s.state == StateFailed {
        return s.err
    }
    if s.state != state {
        return s.fail(fmt.Errorf("session is %v, stage requires %v", s.state, state))
    }
    return nil
}

// Key attaches generated key material, moving the session to KEYED.
func (s *Session) Key(keys *KeyMaterial) error {
    if err := s.expect(StateConfigured); err != nil {
        return err
    }
    if keys == nil {
        return s.fail(configErrorf("no key material"))
    }
    if keys.params != s.params {
        return s.fail(configErrorf("key material was generated under a different parameter set"))
    }
    if _, err := keys.use(); err != nil {
        return s.fail(err)
    }
    s.keys = keys
    s.state = StateKeyed
    return nil
}

// Encrypt maps the operand pair to session-owned ciphertexts.
func (s *Session) Encrypt(a, b int64) error {
    if err := s.expect(StateKeyed); err != nil {
        return err
    }
    ca, err := Encrypt(a, s.keys)
    if err != nil {
        return s.fail(err)
    }
    cb, err := Encrypt(b, s.keys)
    if err != nil {
        return s.fail(err)
    }
    s.a, s.b = a, b
    s.ca, s.cb = ca, cb
    s.state = StateEncrypted
    return nil
}

// Evaluate applies the circuit artifact to the encrypted operands.
func (s *Session) Evaluate(circuit *Circuit) error {
    if err := s.expect(StateEncrypted); err != nil {
        return err
    }
    if err := s.params.CompatibleWith(circuit); err != nil {
        return s.fail(err)
    }
    result, err := EvaluateCircuit(circuit, s.ca, s.cb, s.keys)
    if err != nil {
        return s.fail(err)
    }
    s.result = result
    s.state = StateEvaluated
    return nil
}

// Verify decrypts the result and checks it against the reference
// computation. A mismatch completes the session; only decryption
// failure moves it to FAILED.
func (s *Session) Verify(reference func(int64, int64) int64) (Record, error) {
    if err := s.expect(StateEvaluated); err != nil {
        return Record{}, err
    }
    record, err := Verify(s.result, s.keys, reference, s.a, s.b)
    if err != nil {
        return Record{}, s.fail(err)
    }
    s.state = StateVerified
    return record, nil
}

// Run drives the session through all stages.
func (s *Session) Run(keys *KeyMaterial, circuit *Circuit, a, b int64, reference func(int64, int64) int64) (Record, error) {
    if err := s.Key(keys); err != nil {
        return Record{}, err
    }
    if err := s.Encrypt(a, b); err != nil {
        return Record{}, err
    }
    if err := s.Evaluate(circuit); err != nil {
        return Record{}, err
    }
    return s.Verify(reference)
}
