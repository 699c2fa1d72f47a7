package state

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	bin "github.com/gagliardetto/binary"

	"github.com/volatilum/volatilum-go/pkg/volatilum/types"
)

const (
	// DiscriminatorLen is the length of the Anchor account discriminator prefix.
	DiscriminatorLen = 8
	// LayoutVersionLen is major (u16) + minor (u16).
	LayoutVersionLen = 4
	// HeaderLen is the discriminator followed by the layout version.
	HeaderLen = DiscriminatorLen + LayoutVersionLen
)

// LayoutVersion declares the structural compatibility of an on-chain account layout.
// A major bump is incompatible, a minor bump is additive.
type LayoutVersion struct {
	Major uint16
	Minor uint16
}

func (v LayoutVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compatible reports whether data written with v can be read by a decoder built for expected.
func (v LayoutVersion) Compatible(expected LayoutVersion) bool {
	return v.Major == expected.Major
}

func CheckCompatible(onchain, expected LayoutVersion) error {
	if !onchain.Compatible(expected) {
		return types.NewError(types.LayoutVersionMismatch,
			fmt.Sprintf("on-chain layout %s incompatible with expected %s", onchain, expected))
	}
	return nil
}

// DecodeLayoutVersion reads a little-endian major/minor pair at offset.
func DecodeLayoutVersion(data []byte, offset int) (LayoutVersion, error) {
	if offset < 0 || len(data) < offset+LayoutVersionLen {
		return LayoutVersion{}, types.NewError(types.MalformedAccountData,
			fmt.Sprintf("account data too short for layout version: need %d bytes at offset %d, have %d", LayoutVersionLen, offset, len(data)))
	}
	var v LayoutVersion
	if err := bin.NewBorshDecoder(data[offset:]).Decode(&v); err != nil {
		return LayoutVersion{}, types.WrapError(types.MalformedAccountData, err, "failed to decode layout version")
	}
	return v, nil
}

// AccountDiscriminator returns the Anchor discriminator for the named account type:
// the first 8 bytes of sha256("account:" + name).
func AccountDiscriminator(name string) [DiscriminatorLen]byte {
	sum := sha256.Sum256([]byte("account:" + name))
	var d [DiscriminatorLen]byte
	copy(d[:], sum[:DiscriminatorLen])
	return d
}

func CheckDiscriminator(data []byte, name string) error {
	if len(data) < DiscriminatorLen {
		return types.NewError(types.MalformedAccountData,
			fmt.Sprintf("account data too short for discriminator: have %d bytes", len(data)))
	}
	expected := AccountDiscriminator(name)
	if !bytes.Equal(data[:DiscriminatorLen], expected[:]) {
		return types.NewError(types.MalformedAccountData,
			fmt.Sprintf("invalid discriminator for %s: expected %x got %x", name, expected, data[:DiscriminatorLen]))
	}
	return nil
}

// LayoutHeader is the versioned prefix of every account this module knows how to gate.
type LayoutHeader struct {
	Discriminator [DiscriminatorLen]byte
	Version       LayoutVersion
}

// ReadHeader validates the discriminator for name, decodes the layout version, and checks it
// against expected. Only the header is interpreted; the body is left to the caller's decoder.
func ReadHeader(data []byte, name string, expected LayoutVersion) (LayoutHeader, error) {
	if err := CheckDiscriminator(data, name); err != nil {
		return LayoutHeader{}, err
	}
	if len(data) < HeaderLen {
		return LayoutHeader{}, types.NewError(types.MalformedAccountData,
			fmt.Sprintf("account data too short for layout header: have %d bytes", len(data)))
	}

	var hdr LayoutHeader
	if err := bin.NewBorshDecoder(data).Decode(&hdr); err != nil {
		return LayoutHeader{}, types.WrapError(types.MalformedAccountData, err, "failed to decode layout header")
	}
	if err := CheckCompatible(hdr.Version, expected); err != nil {
		return LayoutHeader{}, err
	}
	return hdr, nil
}

// EncodeHeader returns the header bytes for name at version v.
func EncodeHeader(name string, v LayoutVersion) ([]byte, error) {
	buf := new(bytes.Buffer)
	hdr := LayoutHeader{Discriminator: AccountDiscriminator(name), Version: v}
	if err := bin.NewBorshEncoder(buf).Encode(hdr); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
