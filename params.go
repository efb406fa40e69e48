package enceval

import (
    "github.com/ldsec/lattigo/bfv"
)

// named parameter presets
const (
    PresetDefault = "default"
    PresetLight = "light"
)

// plaintext modulus shared by all presets; operands live in (-T/2, T/2]
const plainModulus = 65537

// Parameters is a validated cryptographic parameter set. It is pure
// configuration: loading one has no side effects and no key material
// is derived until GenerateKeys.
type Parameters struct {
    Preset string
    T uint64 // plaintext modulus
    Sigma float64 // smudging noise for collective key switching
    LookupTableSize int // 0 = no table-based gates provisioned
    PaillierBits int // modulus size for the paillier backend
    bfv *bfv.Parameters
}

// LoadParameters resolves a named preset into a jointly satisfiable
// parameter set.
func LoadParameters(preset string) (*Parameters, error) {
    var set bfv.Parameters
    switch preset {
    case PresetDefault:
        set = *bfv.DefaultParams[bfv.PN14QP438]
    case PresetLight:
        set = *bfv.DefaultParams[bfv.PN13QP218]
    default:
        return nil, configErrorf("unknown parameter preset %q", preset)
    }
    set.T = plainModulus
    params := &Parameters{
        Preset: preset,
        T: plainModulus,
        Sigma: 3.19,
        LookupTableSize: 0,
        PaillierBits: 1024,
        bfv: &set,
    }
    if err := params.validate(); err != nil {
        return nil, err
    }
    return params, nil
}

func (p *Parameters) validate() error {
    if p.T < 2 {
        return configErrorf("plaintext modulus %d too small", p.T)
    }
    if p.Sigma <= 0 {
        return configErrorf("noise parameter sigma must be positive, got %f", p.Sigma)
    }
    if p.LookupTableSize < 0 {
        return configErrorf("negative lookup table size %d", p.LookupTableSize)
    }
    if p.PaillierBits < 128 {
        return configErrorf("paillier modulus of %d bits is too small", p.PaillierBits)
    }
    return nil
}

// CompatibleWith checks that the parameter set can serve the given
// circuit artifact. Called before key generation so that an
// unsatisfiable combination never produces key material.
func (p *Parameters) CompatibleWith(circuit *Circuit) error {
    if circuit == nil {
        return configErrorf("no circuit artifact")
    }
    if circuit.RequiresLookup() && p.LookupTableSize == 0 {
        return configErrorf("circuit %q contains table-lookup gates but no lookup table is provisioned", circuit.Name)
    }
    return nil
}

// largest operand magnitude representable under the plaintext modulus
func (p *Parameters) maxOperand() int64 {
    return int64(p.T / 2)
}
