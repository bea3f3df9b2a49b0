package cmd

import (
	"fmt"
	"io"

	"github.com/s-hammon/memsig"
	"github.com/s-hammon/memsig/internal/config"
	"github.com/s-hammon/memsig/internal/scan"
	"github.com/spf13/cobra"
)

// sigOptions selects the notation of a signature given on the command line.
type sigOptions struct {
	mask     string
	unknown  string
	wildcard string
}

func (o *sigOptions) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.mask, "mask", "", `mask for hex bytes, e.g. "xx??x"`)
	f.StringVar(&o.unknown, "unknown", "", `mask character marking a wildcard (default "?")`)
	f.StringVar(&o.wildcard, "wildcard", "", "hex byte that is itself the wildcard")
	cmd.MarkFlagsMutuallyExclusive("mask", "wildcard")
}

// signature builds arg as IDA-style text, or as hex bytes when a mask or
// wildcard is given.
func (o *sigOptions) signature(arg string) (memsig.Signature, error) {
	spec := config.SignatureSpec{
		Name:     "argument",
		Mask:     o.mask,
		Unknown:  o.unknown,
		Wildcard: o.wildcard,
	}
	if o.mask == "" && o.wildcard == "" {
		spec.Pattern = arg
	} else {
		spec.Bytes = arg
	}

	sig, err := spec.Compile()
	if err != nil {
		return memsig.Signature{}, fmt.Errorf("signature %q: %w", arg, err)
	}
	return sig, nil
}

// regionsFor returns the whole image, or one ELF section of it.
func regionsFor(r io.ReaderAt, size int64, section string) ([]scan.Region, error) {
	if section == "" {
		return scan.FileRegion(size), nil
	}

	regions, err := scan.ELFRegions(r)
	if err != nil {
		return nil, err
	}

	reg, ok := scan.FindRegion(regions, section)
	if !ok {
		return nil, fmt.Errorf("section %q not found", section)
	}
	return []scan.Region{reg}, nil
}

// locate finds the region containing off.
func locate(regions []scan.Region, off uint64) scan.Region {
	for _, r := range regions {
		if r.Contains(off) {
			return r
		}
	}
	return scan.Region{}
}
