package oracle

import (
	"encoding/hex"
	"fmt"

	"github.com/osse101/RouletteHouse_Go/internal/domain"
)

// RandomBytes derives the settlement byte stream from a signature: every byte
// of s followed by big_r without its leading compression flag.
func RandomBytes(resp *SignatureResponse) ([]byte, error) {
	if resp == nil {
		return nil, fmt.Errorf("%w: nil response", domain.ErrMalformedSignature)
	}
	r, err := hex.DecodeString(resp.BigR.AffinePoint)
	if err != nil {
		return nil, fmt.Errorf("%w: big_r: %v", domain.ErrMalformedSignature, err)
	}
	if len(r) < 2 {
		return nil, fmt.Errorf("%w: big_r is %d bytes", domain.ErrMalformedSignature, len(r))
	}
	s, err := hex.DecodeString(resp.S.Scalar)
	if err != nil {
		return nil, fmt.Errorf("%w: s: %v", domain.ErrMalformedSignature, err)
	}
	if len(s) == 0 {
		return nil, fmt.Errorf("%w: empty s", domain.ErrMalformedSignature)
	}

	stream := make([]byte, 0, len(s)+len(r)-1)
	stream = append(stream, s...)
	stream = append(stream, r[1:]...)
	return stream, nil
}
