package oracle

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/osse101/RouletteHouse_Go/internal/domain"
	"github.com/osse101/RouletteHouse_Go/internal/logger"
)

// LocalSigner is a development stand-in for the remote signer. It derives a
// secp256k1 key per path from a master secret and signs ECDSA payloads with
// it. EdDSA is not supported.
type LocalSigner struct {
	master []byte
}

// NewLocalSigner builds a signer from a hex master key. An empty key
// generates a random one, which means signatures change across restarts.
func NewLocalSigner(masterKeyHex string) (*LocalSigner, error) {
	var master []byte
	if masterKeyHex == "" {
		master = make([]byte, scalarLen)
		if _, err := rand.Read(master); err != nil {
			return nil, fmt.Errorf("failed to generate master key: %w", err)
		}
	} else {
		decoded, err := hex.DecodeString(masterKeyHex)
		if err != nil {
			return nil, fmt.Errorf("%w: master key is not hex: %v", domain.ErrInvalidInput, err)
		}
		if len(decoded) < scalarLen {
			return nil, fmt.Errorf("%w: master key must be at least %d bytes", domain.ErrInvalidInput, scalarLen)
		}
		master = decoded
	}
	return &LocalSigner{master: master}, nil
}

// PublicKey returns the compressed public key derived for path.
func (s *LocalSigner) PublicKey(path string) []byte {
	return s.deriveKey(path).PubKey().SerializeCompressed()
}

// Sign signs the 32-byte hex payload with the key derived for req.Path.
func (s *LocalSigner) Sign(ctx context.Context, req SignRequest) (*SignatureResponse, error) {
	if req.Domain != DomainECDSA {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedDomain, req.Domain)
	}
	hash, err := hex.DecodeString(req.Payload)
	if err != nil {
		return nil, fmt.Errorf("%w: payload is not hex: %v", domain.ErrInvalidInput, err)
	}
	if len(hash) != SeedLength {
		return nil, fmt.Errorf("%w: payload must be %d bytes, got %d", domain.ErrInvalidInput, SeedLength, len(hash))
	}

	key := s.deriveKey(req.Path)
	// compact layout: header || R.x || S, header = 27 + recovery id + 4 (compressed)
	compact := ecdsa.SignCompact(key, hash, true)
	recoveryID := (compact[0] - 27) & 0x03
	rx := compact[1 : 1+scalarLen]
	sc := compact[1+scalarLen:]

	format := byte(secp256k1.PubKeyFormatCompressedEven)
	if recoveryID&0x01 == 1 {
		format = secp256k1.PubKeyFormatCompressedOdd
	}
	point := make([]byte, 0, compressedPointLen)
	point = append(point, format)
	point = append(point, rx...)

	logger.FromContext(ctx).Debug(LogMsgSigned, "path", req.Path, "recovery_id", recoveryID)

	return &SignatureResponse{
		BigR:       AffinePoint{AffinePoint: hex.EncodeToString(point)},
		S:          Scalar{Scalar: hex.EncodeToString(sc)},
		RecoveryID: recoveryID,
	}, nil
}

func (s *LocalSigner) deriveKey(path string) *secp256k1.PrivateKey {
	h := sha256.New()
	h.Write(s.master)
	h.Write([]byte(path))
	return secp256k1.PrivKeyFromBytes(h.Sum(nil))
}
