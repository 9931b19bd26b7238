package jack

import (
	bls12381fr "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"

	"github.com/b-wagn/jackpot/lottery"
	"github.com/b-wagn/jackpot/vc"
)

// aggregateWire is the CBOR-serializable shape of an AggregateTicket:
// participant ids packed as a bitset rather than a varint list, curve
// elements as their canonical compressed bytes.
type aggregateWire struct {
	Index          int
	ParticipantSet []byte
	Ys             [][]byte
	Proof          []byte
}

// Marshal encodes agg into its canonical wire form. numParticipants is
// the size of the registered-participant universe the bitset is packed
// against, not the number of winners.
func (agg *AggregateTicket) Marshal(numParticipants int) ([]byte, error) {
	set, err := lottery.EncodeParticipantSet(agg.ParticipantIDs, numParticipants)
	if err != nil {
		return nil, err
	}
	ys := make([][]byte, len(agg.Ys))
	for i := range agg.Ys {
		b := agg.Ys[i].Bytes()
		ys[i] = b[:]
	}
	return cbor.Marshal(aggregateWire{
		Index:          agg.Index,
		ParticipantSet: set,
		Ys:             ys,
		Proof:          agg.Proof.Bytes(),
	})
}

// UnmarshalAggregateTicket decodes the wire form Marshal produced.
func UnmarshalAggregateTicket(data []byte, numParticipants int) (*AggregateTicket, error) {
	var w aggregateWire
	if err := cbor.Unmarshal(data, &w); err != nil {
		return nil, errors.Wrap(err, "jack: decoding aggregate ticket")
	}
	ids, err := lottery.DecodeParticipantSet(w.ParticipantSet, numParticipants)
	if err != nil {
		return nil, err
	}
	if len(ids) != len(w.Ys) {
		return nil, errors.Errorf("jack: wire mismatch: %d participant ids, %d values", len(ids), len(w.Ys))
	}
	ys := make([]bls12381fr.Element, len(w.Ys))
	for i, b := range w.Ys {
		ys[i].SetBytes(b)
	}
	proof, err := vc.AggregatedOpeningFromBytes(w.Proof)
	if err != nil {
		return nil, err
	}
	return &AggregateTicket{Index: w.Index, ParticipantIDs: ids, Ys: ys, Proof: proof}, nil
}
