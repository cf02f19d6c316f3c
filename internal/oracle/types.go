// Package oracle requests signatures from a threshold signer and turns them
// into a byte stream for settling spins.
package oracle

import (
	"encoding/json"
	"fmt"

	"github.com/osse101/RouletteHouse_Go/internal/domain"
)

// Domain selects the signature scheme.
type Domain uint64

const (
	DomainECDSA Domain = 0
	DomainEdDSA Domain = 1
)

func (d Domain) String() string {
	switch d {
	case DomainECDSA:
		return payloadKeyECDSA
	case DomainEdDSA:
		return payloadKeyEdDSA
	}
	return fmt.Sprintf("Domain(%d)", uint64(d))
}

// SignRequest asks the signer to sign Payload (hex) under the key derived for
// Path.
type SignRequest struct {
	Payload string
	Path    string
	Domain  Domain
}

type wireSignRequest struct {
	PayloadV2 map[string]string `json:"payload_v2"`
	Path      string            `json:"path"`
	DomainID  uint64            `json:"domain_id"`
}

// MarshalJSON encodes the request as {"payload_v2":{"Ecdsa":hex},"path":..,"domain_id":0}.
func (r SignRequest) MarshalJSON() ([]byte, error) {
	switch r.Domain {
	case DomainECDSA, DomainEdDSA:
	default:
		return nil, fmt.Errorf("%w: %d", domain.ErrUnsupportedDomain, uint64(r.Domain))
	}
	return json.Marshal(wireSignRequest{
		PayloadV2: map[string]string{r.Domain.String(): r.Payload},
		Path:      r.Path,
		DomainID:  uint64(r.Domain),
	})
}

func (r *SignRequest) UnmarshalJSON(data []byte) error {
	var w wireSignRequest
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if len(w.PayloadV2) != 1 {
		return fmt.Errorf("%w: payload_v2 must hold exactly one variant", domain.ErrInvalidInput)
	}
	for key, payload := range w.PayloadV2 {
		switch key {
		case payloadKeyECDSA:
			r.Domain = DomainECDSA
		case payloadKeyEdDSA:
			r.Domain = DomainEdDSA
		default:
			return fmt.Errorf("%w: %s", domain.ErrUnsupportedDomain, key)
		}
		r.Payload = payload
	}
	if uint64(r.Domain) != w.DomainID {
		return fmt.Errorf("%w: domain_id %d does not match payload %s", domain.ErrInvalidInput, w.DomainID, r.Domain)
	}
	r.Path = w.Path
	return nil
}

// AffinePoint is a hex-encoded compressed curve point.
type AffinePoint struct {
	AffinePoint string `json:"affine_point"`
}

// Scalar is a hex-encoded 32-byte scalar.
type Scalar struct {
	Scalar string `json:"scalar"`
}

// SignatureResponse is the signer's answer.
type SignatureResponse struct {
	BigR       AffinePoint `json:"big_r"`
	S          Scalar      `json:"s"`
	RecoveryID uint8       `json:"recovery_id"`
}
