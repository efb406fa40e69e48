package enceval

import (
    "crypto/rand"
    "fmt"

    "github.com/ldsec/lattigo/bfv"
    "github.com/ldsec/lattigo/dbfv"
    "github.com/ldsec/lattigo/ring"
)

// Threshold BFV runtime. Key generation runs the dbfv collective
// protocols across one goroutine per party; decryption combines a key
// switching share from every party, so the threshold equals the number
// of parties.

type BFVBackend struct{}

func (BFVBackend) Name() string {
    return "bfv"
}

func (BFVBackend) Validate(params *Parameters, parties, threshold int) error {
    if err := params.validate(); err != nil {
        return err
    }
    if parties < 1 {
        return configErrorf("need at least one party, got %d", parties)
    }
    if threshold != parties {
        return configErrorf("bfv collective decryption needs every share: threshold %d must equal parties %d", threshold, parties)
    }
    return nil
}

type bfvRuntime struct {
    params *bfv.Parameters
    t uint64
    sigma float64
    pk *bfv.PublicKey
    rlk *bfv.EvaluationKey
    tpk *bfv.PublicKey
    tsk *bfv.SecretKey
    shares []*bfv.SecretKey
}

func (b BFVBackend) GenerateKeys(params *Parameters, parties, threshold int) (*KeyMaterial, error) {
    if err := b.Validate(params, parties, threshold); err != nil {
        return nil, err
    }
    crs, crp, err := genCRP(params.bfv)
    if err != nil {
        return nil, &KeyGenerationError{Backend: "bfv", Err: err}
    }

    // one channel per outer party, the central party aggregates
    channels := make([]chan interface{}, parties-1)
    for i := range channels {
        channels[i] = make(chan interface{})
    }
    outerSks := make(chan *bfv.SecretKey, parties-1)
    for i := 0; i < parties-1; i += 1 {
        go func(i int) {
            outerSks <- outerKeyWorker(params.bfv, crs, crp, channels[i])
        }(i)
    }
    pk, centralSk, rlk := centralKeyWorker(params.bfv, crs, crp, channels)

    shares := make([]*bfv.SecretKey, parties)
    shares[0] = centralSk
    for i := 1; i < parties; i += 1 {
        shares[i] = <-outerSks
    }

    // target key pair for share-combined decryption; the evaluator
    // never sees it
    tsk, tpk := bfv.NewKeyGenerator(params.bfv).GenKeyPair()

    id, err := sampleID()
    if err != nil {
        return nil, &KeyGenerationError{Backend: "bfv", Err: err}
    }
    rt := &bfvRuntime{
        params: params.bfv,
        t: params.T,
        sigma: params.Sigma,
        pk: pk,
        rlk: rlk,
        tpk: tpk,
        tsk: tsk,
        shares: shares,
    }
    return &KeyMaterial{
        backend: "bfv",
        id: id,
        parties: parties,
        threshold: threshold,
        params: params,
        rt: rt,
    }, nil
}

// central party: aggregates every share, produces the collective
// public key and relinearization key
func centralKeyWorker(params *bfv.Parameters, crs *ring.Poly, crp []*ring.Poly, channels []chan interface{}) (*bfv.PublicKey, *bfv.SecretKey, *bfv.EvaluationKey) {
    sk := bfv.NewKeyGenerator(params).GenSecretKey()

    ckg := dbfv.NewCKGProtocol(params)
    ckgShare := ckg.AllocateShares()
    ckg.GenShare(sk.Get(), crs, ckgShare)

    ckgCombined := ckg.AllocateShares()
    ckg.AggregateShares(ckgShare, ckgCombined, ckgCombined)
    for _, ch := range channels {
        ckg.AggregateShares((<-ch).(dbfv.CKGShare), ckgCombined, ckgCombined)
    }
    pk := bfv.NewPublicKey(params)
    ckg.GenPublicKey(ckgCombined, crs, pk)

    for _, ch := range channels {
        ch <- pk
    }

    rkg := dbfv.NewEkgProtocol(params)
    contextKeys, _ := ring.NewContextWithParams(1<<params.LogN, append(params.Qi, params.Pi...))
    rlkEphemSk := contextKeys.SampleTernaryMontgomeryNTTNew(1.0 / 3)
    rkgShareOne, rkgShareTwo, rkgShareThree := rkg.AllocateShares()

    rkg.GenShareRoundOne(rlkEphemSk, sk.Get(), crp, rkgShareOne)

    rkgCombined1, rkgCombined2, rkgCombined3 := rkg.AllocateShares()
    rkg.AggregateShareRoundOne(rkgShareOne, rkgCombined1, rkgCombined1)
    for _, ch := range channels {
        rkg.AggregateShareRoundOne((<-ch).(dbfv.RKGShareRoundOne), rkgCombined1, rkgCombined1)
    }
    for _, ch := range channels {
        ch <- rkgCombined1
    }

    rkg.GenShareRoundTwo(rkgCombined1, sk.Get(), crp, rkgShareTwo)

    rkg.AggregateShareRoundTwo(rkgShareTwo, rkgCombined2, rkgCombined2)
    for _, ch := range channels {
        rkg.AggregateShareRoundTwo((<-ch).(dbfv.RKGShareRoundTwo), rkgCombined2, rkgCombined2)
    }
    for _, ch := range channels {
        ch <- rkgCombined2
    }

    rkg.GenShareRoundThree(rkgCombined2, rlkEphemSk, sk.Get(), rkgShareThree)

    rkg.AggregateShareRoundThree(rkgShareThree, rkgCombined3, rkgCombined3)
    for _, ch := range channels {
        rkg.AggregateShareRoundThree((<-ch).(dbfv.RKGShareRoundThree), rkgCombined3, rkgCombined3)
    }

    rlk := bfv.NewRelinKey(params, 1)
    rkg.GenRelinearizationKey(rkgCombined2, rkgCombined3, rlk)
    for _, ch := range channels {
        ch <- rlk
    }

    return pk, sk, rlk
}

// outer party: contributes its shares and receives the combined keys
func outerKeyWorker(params *bfv.Parameters, crs *ring.Poly, crp []*ring.Poly, channel chan interface{}) *bfv.SecretKey {
    sk := bfv.NewKeyGenerator(params).GenSecretKey()

    ckg := dbfv.NewCKGProtocol(params)
    ckgShare := ckg.AllocateShares()
    ckg.GenShare(sk.Get(), crs, ckgShare)
    channel <- ckgShare
    <-channel // collective public key

    rkg := dbfv.NewEkgProtocol(params)
    contextKeys, _ := ring.NewContextWithParams(1<<params.LogN, append(params.Qi, params.Pi...))
    rlkEphemSk := contextKeys.SampleTernaryMontgomeryNTTNew(1.0 / 3)
    rkgShareOne, rkgShareTwo, rkgShareThree := rkg.AllocateShares()

    rkg.GenShareRoundOne(rlkEphemSk, sk.Get(), crp, rkgShareOne)
    channel <- rkgShareOne
    rkgCombined1 := (<-channel).(dbfv.RKGShareRoundOne)

    rkg.GenShareRoundTwo(rkgCombined1, sk.Get(), crp, rkgShareTwo)
    channel <- rkgShareTwo
    rkgCombined2 := (<-channel).(dbfv.RKGShareRoundTwo)

    rkg.GenShareRoundThree(rkgCombined2, rlkEphemSk, sk.Get(), rkgShareThree)
    channel <- rkgShareThree
    <-channel // relinearization key

    return sk
}

// common reference polynomials for the collective protocols, seeded
// freshly per key generation
func genCRP(params *bfv.Parameters) (*ring.Poly, []*ring.Poly, error) {
    seed := make([]byte, 32)
    if _, err := rand.Read(seed); err != nil {
        return nil, nil, err
    }
    contextKeys, err := ring.NewContextWithParams(1<<params.LogN, append(params.Qi, params.Pi...))
    if err != nil {
        return nil, nil, err
    }
    crsGen := ring.NewCRPGenerator(seed, contextKeys)
    crs := crsGen.ClockNew()
    crp := make([]*ring.Poly, params.Beta())
    for i := uint64(0); i < params.Beta(); i += 1 {
        crp[i] = crsGen.ClockNew()
    }
    return crs, crp, nil
}

func (r *bfvRuntime) encode(value int64) uint64 {
    if value < 0 {
        return r.t - uint64(-value)
    }
    return uint64(value)
}

func (r *bfvRuntime) decode(coeff uint64) int64 {
    if coeff > r.t/2 {
        return int64(coeff) - int64(r.t)
    }
    return int64(coeff)
}

func (r *bfvRuntime) Encrypt(value int64) (interface{}, error) {
    max := int64(r.t / 2)
    if value > max || value < -max {
        return nil, configErrorf("operand %d outside the supported range ±%d", value, max)
    }
    encoder := bfv.NewEncoder(r.params)
    pt := bfv.NewPlaintext(r.params)
    encoder.EncodeUint([]uint64{r.encode(value)}, pt)

    encryptor := bfv.NewEncryptorFromPk(r.params, r.pk)
    return encryptor.EncryptNew(pt), nil
}

func (r *bfvRuntime) CombineDecrypt(cipher interface{}) (int64, error) {
    ct, ok := cipher.(*bfv.Ciphertext)
    if !ok {
        return 0, &DecryptionError{Reason: fmt.Sprintf("foreign ciphertext payload %T", cipher)}
    }

    // every party contributes a key switching share towards the
    // session target key
    pcks := dbfv.NewPCKSProtocol(r.params, r.sigma)
    pcksCombined := pcks.AllocateShares()
    for _, sk := range r.shares {
        share := pcks.AllocateShares()
        pcks.GenShare(sk.Get(), r.tpk, ct, share)
        pcks.AggregateShares(share, pcksCombined, pcksCombined)
    }

    encOut := bfv.NewCiphertext(r.params, 1)
    pcks.KeySwitch(pcksCombined, ct, encOut)

    decryptor := bfv.NewDecryptor(r.params, r.tsk)
    ptres := bfv.NewPlaintext(r.params)
    decryptor.Decrypt(encOut, ptres)
    dec := bfv.NewEncoder(r.params).DecodeUint(ptres)
    return r.decode(dec[0]), nil
}

func (r *bfvRuntime) operand(cipher interface{}) (*bfv.Ciphertext, error) {
    ct, ok := cipher.(*bfv.Ciphertext)
    if !ok {
        return nil, &EvaluationError{Reason: fmt.Sprintf("foreign ciphertext payload %T", cipher)}
    }
    return ct, nil
}

func (r *bfvRuntime) Add(a, b interface{}) (interface{}, error) {
    ac, err := r.operand(a)
    if err != nil {
        return nil, err
    }
    bc, err := r.operand(b)
    if err != nil {
        return nil, err
    }
    return bfv.NewEvaluator(r.params).AddNew(ac, bc), nil
}

func (r *bfvRuntime) Subtract(a, b interface{}) (interface{}, error) {
    ac, err := r.operand(a)
    if err != nil {
        return nil, err
    }
    bc, err := r.operand(b)
    if err != nil {
        return nil, err
    }
    // a + (-1)*b, with -1 taken in the plaintext ring
    evaluator := bfv.NewEvaluator(r.params)
    neg := evaluator.MulScalarNew(bc, r.t-1)
    return evaluator.AddNew(ac, neg), nil
}

func (r *bfvRuntime) Scale(cipher interface{}, factor int64) (interface{}, error) {
    ct, err := r.operand(cipher)
    if err != nil {
        return nil, err
    }
    return bfv.NewEvaluator(r.params).MulScalarNew(ct, r.encode(factor)), nil
}

func (r *bfvRuntime) Multiply(a, b interface{}) (interface{}, error) {
    ac, err := r.operand(a)
    if err != nil {
        return nil, err
    }
    bc, err := r.operand(b)
    if err != nil {
        return nil, err
    }
    evaluator := bfv.NewEvaluator(r.params)
    prod := evaluator.MulNew(ac, bc)
    return evaluator.RelinearizeNew(prod, r.rlk), nil
}
