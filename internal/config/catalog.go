// Package config loads signature catalogs: YAML files that name signatures
// written in any of the supported notations.
//
//	signatures:
//	  - name: mt_index
//	    pattern: "8B 15 ?? ?? ?? ?? 48 63"
//	  - name: prologue
//	    bytes: "48 83 EC 28"
//	    mask: "xxx?"
//	  - name: tail
//	    bytes: "48 83 C4 28"
//	    wildcard: "28"
//	    section: .text
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/s-hammon/memsig"
	"gopkg.in/yaml.v3"
)

var ErrNotation = errors.New("entry must set exactly one of pattern, mask or wildcard")

type Catalog struct {
	Signatures []SignatureSpec `yaml:"signatures"`
}

// SignatureSpec is one catalog entry as written in YAML.
type SignatureSpec struct {
	Name string `yaml:"name"`

	// IDA-style text.
	Pattern string `yaml:"pattern,omitempty"`

	// Hex bytes combined with either Mask (and optionally Unknown) or Wildcard.
	Bytes    string `yaml:"bytes,omitempty"`
	Mask     string `yaml:"mask,omitempty"`
	Unknown  string `yaml:"unknown,omitempty"`
	Wildcard string `yaml:"wildcard,omitempty"`

	// Section restricts the search to one ELF section.
	Section string `yaml:"section,omitempty"`
	// Offset is added to the match position when reporting.
	Offset int64 `yaml:"offset,omitempty"`
}

// Entry is a compiled catalog entry.
type Entry struct {
	Name      string
	Signature memsig.Signature
	Section   string
	Offset    int64
}

func Load(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return &c, nil
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	return &c, nil
}

func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Compile builds every entry, failing on the first invalid one.
func (c *Catalog) Compile() ([]Entry, error) {
	seen := make(map[string]struct{}, len(c.Signatures))
	out := make([]Entry, 0, len(c.Signatures))

	for i, spec := range c.Signatures {
		if spec.Name == "" {
			return nil, fmt.Errorf("signature #%d: missing name", i)
		}
		if _, ok := seen[spec.Name]; ok {
			return nil, fmt.Errorf("signature %q: duplicate name", spec.Name)
		}
		seen[spec.Name] = struct{}{}

		sig, err := spec.Compile()
		if err != nil {
			return nil, fmt.Errorf("signature %q: %w", spec.Name, err)
		}

		out = append(out, Entry{
			Name:      spec.Name,
			Signature: sig,
			Section:   spec.Section,
			Offset:    spec.Offset,
		})
	}

	return out, nil
}

func (s SignatureSpec) Compile() (memsig.Signature, error) {
	n := 0
	for _, v := range []string{s.Pattern, s.Mask, s.Wildcard} {
		if v != "" {
			n++
		}
	}
	if n != 1 || (s.Pattern != "" && s.Bytes != "") {
		return memsig.Signature{}, ErrNotation
	}

	if s.Pattern != "" {
		return memsig.Parse(s.Pattern)
	}

	b, err := parseHex(s.Bytes)
	if err != nil {
		return memsig.Signature{}, err
	}

	if s.Mask != "" {
		unknown := memsig.TextUnknown
		if s.Unknown != "" {
			if len(s.Unknown) != 1 {
				return memsig.Signature{}, fmt.Errorf("unknown marker %q must be a single character", s.Unknown)
			}
			unknown = s.Unknown[0]
		}
		return memsig.NewMaskedString(b, s.Mask, unknown)
	}

	w, err := strconv.ParseUint(s.Wildcard, 16, 8)
	if err != nil {
		return memsig.Signature{}, fmt.Errorf("bad wildcard %q: %v", s.Wildcard, err)
	}
	return memsig.New(b, byte(w)), nil
}

// parseHex decodes hex bytes, either space separated ("11 12") or packed ("1112").
func parseHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(strings.Join(strings.Fields(s), ""))
	if err != nil {
		return nil, fmt.Errorf("bad hex bytes %q: %v", s, err)
	}
	return b, nil
}
