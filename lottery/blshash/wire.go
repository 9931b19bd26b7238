package blshash

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"

	"github.com/b-wagn/jackpot/lottery"
)

// aggregateWire is the CBOR-serializable shape of an AggregateTicket:
// participant ids packed as a bitset, the aggregate signature as its
// canonical compressed bytes.
type aggregateWire struct {
	ParticipantSet []byte
	Signature      []byte
}

// Marshal encodes agg into its canonical wire form. numParticipants is
// the size of the registered-participant universe the bitset is packed
// against, not the number of signers.
func (agg *AggregateTicket) Marshal(numParticipants int) ([]byte, error) {
	set, err := lottery.EncodeParticipantSet(agg.ParticipantIDs, numParticipants)
	if err != nil {
		return nil, err
	}
	sigBytes := agg.Signature.Bytes()
	return cbor.Marshal(aggregateWire{
		ParticipantSet: set,
		Signature:      sigBytes[:],
	})
}

// UnmarshalAggregateTicket decodes the wire form Marshal produced.
func UnmarshalAggregateTicket(data []byte, numParticipants int) (*AggregateTicket, error) {
	var w aggregateWire
	if err := cbor.Unmarshal(data, &w); err != nil {
		return nil, errors.Wrap(err, "blshash: decoding aggregate ticket")
	}
	ids, err := lottery.DecodeParticipantSet(w.ParticipantSet, numParticipants)
	if err != nil {
		return nil, err
	}
	var sig bls12381.G2Affine
	if _, err := sig.SetBytes(w.Signature); err != nil {
		return nil, errors.Wrap(err, "blshash: decoding aggregate signature")
	}
	if !sig.IsInSubGroup() {
		return nil, errors.New("blshash: aggregate signature not in subgroup")
	}
	return &AggregateTicket{ParticipantIDs: ids, Signature: sig}, nil
}
