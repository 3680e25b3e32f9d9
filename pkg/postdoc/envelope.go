package postdoc

import (
	"bytes"
	"compress/zlib"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	envelopeVersion  = uint16(1)
	flagCompressed   = uint16(1 << 0)
	flagEncrypted    = uint16(1 << 1)
	kdfIterations    = 200000
	keySize          = 32
	envelopeAuthSize = 12
)

var envelopeMagic = [8]byte{'P', 'O', 'S', 'T', 'E', 'D', 'I', 'T'}

var (
	ErrPasswordRequired   = errors.New("postdoc: password required")
	ErrInvalidPassword    = errors.New("postdoc: invalid password")
	ErrInvalidEnvelope    = errors.New("postdoc: invalid envelope")
	ErrUnsupportedVersion = errors.New("postdoc: unsupported envelope version")
)

type EncryptionOptions struct {
	Enabled  bool
	Password string
}

type SaveOptions struct {
	Compression bool
	Encryption  EncryptionOptions
}

func (o SaveOptions) wrapped() bool {
	return o.Compression || o.Encryption.Enabled
}

type LoadOptions struct {
	Password string
}

type EnvelopeInfo struct {
	Wrapped    bool
	Compressed bool
	Encrypted  bool
	Version    uint16
}

type envelopeHeader struct {
	Magic   [8]byte
	Version uint16
	Flags   uint16
	Salt    [16]byte
	Nonce   [12]byte
	Length  uint64
}

var envelopeHeaderSize = binary.Size(envelopeHeader{})

func hasEnvelope(b []byte) bool {
	return len(b) >= len(envelopeMagic) && bytes.Equal(b[:len(envelopeMagic)], envelopeMagic[:])
}

func readHeader(b []byte) (envelopeHeader, error) {
	var h envelopeHeader
	if len(b) < envelopeHeaderSize {
		return h, ErrInvalidEnvelope
	}
	if err := binary.Read(bytes.NewReader(b[:envelopeHeaderSize]), binary.LittleEndian, &h); err != nil {
		return h, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	if h.Version != envelopeVersion {
		return h, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	return h, nil
}

func inspect(b []byte) (EnvelopeInfo, error) {
	if !hasEnvelope(b) {
		return EnvelopeInfo{}, nil
	}
	h, err := readHeader(b)
	if err != nil {
		return EnvelopeInfo{}, err
	}
	return EnvelopeInfo{
		Wrapped:    true,
		Compressed: h.Flags&flagCompressed != 0,
		Encrypted:  h.Flags&flagEncrypted != 0,
		Version:    h.Version,
	}, nil
}

func seal(payload []byte, opts SaveOptions) ([]byte, error) {
	h := envelopeHeader{Magic: envelopeMagic, Version: envelopeVersion}
	if opts.Compression {
		h.Flags |= flagCompressed
		var err error
		if payload, err = compress(payload); err != nil {
			return nil, err
		}
	}
	if opts.Encryption.Enabled {
		if strings.TrimSpace(opts.Encryption.Password) == "" {
			return nil, ErrPasswordRequired
		}
		h.Flags |= flagEncrypted
		if _, err := io.ReadFull(rand.Reader, h.Salt[:]); err != nil {
			return nil, err
		}
		if _, err := io.ReadFull(rand.Reader, h.Nonce[:]); err != nil {
			return nil, err
		}
		gcm, err := newGCM(opts.Encryption.Password, h.Salt[:])
		if err != nil {
			return nil, err
		}
		payload = gcm.Seal(nil, h.Nonce[:], payload, authData(h))
	}
	h.Length = uint64(len(payload))

	var buf bytes.Buffer
	buf.Grow(envelopeHeaderSize + len(payload))
	if err := binary.Write(&buf, binary.LittleEndian, h); err != nil {
		return nil, err
	}
	buf.Write(payload)
	return buf.Bytes(), nil
}

func unseal(b []byte, opts LoadOptions) ([]byte, error) {
	h, err := readHeader(b)
	if err != nil {
		return nil, err
	}
	payload := b[envelopeHeaderSize:]
	if uint64(len(payload)) != h.Length {
		return nil, fmt.Errorf("%w: payload length %d, header says %d", ErrInvalidEnvelope, len(payload), h.Length)
	}
	if h.Flags&flagEncrypted != 0 {
		if strings.TrimSpace(opts.Password) == "" {
			return nil, ErrPasswordRequired
		}
		gcm, err := newGCM(opts.Password, h.Salt[:])
		if err != nil {
			return nil, err
		}
		payload, err = gcm.Open(nil, h.Nonce[:], payload, authData(h))
		if err != nil {
			return nil, ErrInvalidPassword
		}
	}
	if h.Flags&flagCompressed != 0 {
		if payload, err = decompress(payload); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
		}
	}
	return payload, nil
}

// authData binds the magic, version and flags to the ciphertext.
func authData(h envelopeHeader) []byte {
	out := make([]byte, 0, envelopeAuthSize)
	out = append(out, h.Magic[:]...)
	out = binary.LittleEndian.AppendUint16(out, h.Version)
	out = binary.LittleEndian.AppendUint16(out, h.Flags)
	return out
}

func newGCM(password string, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key([]byte(password), salt, kdfIterations, keySize, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func compress(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(in); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompress(in []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(in))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
