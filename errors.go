package enceval

import (
    "fmt"
)

// ConfigurationError reports invalid or mutually incompatible
// parameters, or an operand outside the configured plaintext space.
// Parameter validation runs before any key material is generated.
type ConfigurationError struct {
    Reason string
}

func (e *ConfigurationError) Error() string {
    return "configuration: " + e.Reason
}

func configErrorf(format string, args ...interface{}) *ConfigurationError {
    return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// KeyGenerationError reports a failed cryptographic setup.
type KeyGenerationError struct {
    Backend string
    Err error
}

func (e *KeyGenerationError) Error() string {
    return fmt.Sprintf("key generation (%s): %v", e.Backend, e.Err)
}

func (e *KeyGenerationError) Unwrap() error {
    return e.Err
}

// DecryptionError reports a malformed ciphertext or one bound to
// mismatched key material.
type DecryptionError struct {
    Reason string
    Err error
}

func (e *DecryptionError) Error() string {
    if e.Err != nil {
        return fmt.Sprintf("decryption: %s: %v", e.Reason, e.Err)
    }
    return "decryption: " + e.Reason
}

func (e *DecryptionError) Unwrap() error {
    return e.Err
}

// EvaluationError reports ciphertexts incompatible with the circuit or
// an operation the runtime cannot apply homomorphically.
type EvaluationError struct {
    Reason string
    Err error
}

func (e *EvaluationError) Error() string {
    if e.Err != nil {
        return fmt.Sprintf("evaluation: %s: %v", e.Reason, e.Err)
    }
    return "evaluation: " + e.Reason
}

func (e *EvaluationError) Unwrap() error {
    return e.Err
}
