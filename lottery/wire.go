package lottery

import (
	"bytes"

	"github.com/icza/bitio"
	"github.com/pkg/errors"
	"github.com/rs/xid"
)

// NewSessionID returns a fresh correlation identifier, used only to tag
// log lines spanning one setup call or one round across every scheme
// package; it carries no cryptographic meaning and is never checked by
// any verifier.
func NewSessionID() string {
	return xid.New().String()
}

// EncodeParticipantSet packs ids into a fixed-size bitset of universe
// bits, one per possible participant, rather than a variable-length
// list of integers. The encoding is universe bits long (rounded up to
// whole bytes) however many ids are set, so it is smaller than a list
// when winners are a sizeable share of the registered population.
func EncodeParticipantSet(ids []int, universe int) ([]byte, error) {
	present := make([]bool, universe)
	for _, id := range ids {
		if id < 0 || id >= universe {
			return nil, errors.Errorf("lottery: participant id %d out of range [0,%d)", id, universe)
		}
		present[id] = true
	}
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	for _, p := range present {
		if err := w.WriteBool(p); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeParticipantSet reverses EncodeParticipantSet, returning the
// sorted list of participant ids whose bit was set.
func DecodeParticipantSet(data []byte, universe int) ([]int, error) {
	r := bitio.NewReader(bytes.NewReader(data))
	ids := make([]int, 0)
	for i := 0; i < universe; i++ {
		present, err := r.ReadBool()
		if err != nil {
			return nil, errors.Wrap(err, "lottery: decoding participant bitset")
		}
		if present {
			ids = append(ids, i)
		}
	}
	return ids, nil
}
