package postdoc

import (
	"os"
	"path/filepath"
)

func Save(path string, doc *Document) error {
	return SaveWithOptions(path, doc, SaveOptions{})
}

// SaveWithOptions writes doc as JSON, optionally compressed and encrypted
// inside an envelope. The file is replaced atomically.
func SaveWithOptions(path string, doc *Document, opts SaveOptions) error {
	if err := Validate(doc); err != nil {
		return err
	}
	blob, err := Marshal(doc)
	if err != nil {
		return err
	}
	if opts.wrapped() {
		if blob, err = seal(blob, opts); err != nil {
			return err
		}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func Load(path string) (*Document, error) {
	return LoadWithOptions(path, LoadOptions{})
}

func LoadWithOptions(path string, opts LoadOptions) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if hasEnvelope(b) {
		if b, err = unseal(b, opts); err != nil {
			return nil, err
		}
	}
	doc, err := Unmarshal(b)
	if err != nil {
		return nil, err
	}
	if err := Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func InspectEnvelope(path string) (EnvelopeInfo, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return EnvelopeInfo{}, err
	}
	return inspect(b)
}
