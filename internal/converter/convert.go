package converter

import (
	"context"
	"fmt"
	"strings"

	"github.com/mglucas0123/JavaCraft-Dev/internal/models"
)

// MaxSourceSize is the hard input cap. The API layer enforces its own
// configurable limit first; this bound protects direct library callers
// from runaway pattern matching on adversarial input.
const MaxSourceSize = 4 << 20 // 4 MiB

// Convert runs the full pipeline on legacy model source and returns the
// modern dialect text.
func Convert(src string) (string, error) {
	_, code, err := ConvertFull(context.Background(), src)
	return code, err
}

// ConvertFull is Convert plus the resolved descriptor, for callers that
// record conversion metadata. The context bounds processing time; the
// pipeline checks it between stages. Any residual panic is recovered and
// reported as a generic internal error so malformed input can never take
// down the host.
func ConvertFull(ctx context.Context, src string) (desc *models.ModelDescriptor, code string, err error) {
	defer func() {
		if r := recover(); r != nil {
			desc, code = nil, ""
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	if len(src) > MaxSourceSize {
		return nil, "", ErrInputTooLarge
	}
	if strings.TrimSpace(src) == "" {
		return nil, "", ErrNoClassFound
	}

	desc, err = Extract(src)
	if err != nil {
		return nil, "", err
	}
	if err = ctx.Err(); err != nil {
		return nil, "", err
	}

	desc.Hierarchy, err = ResolveHierarchy(src, desc.Parts)
	if err != nil {
		return nil, "", err
	}
	desc.Archetype = Classify(desc.Parts)
	if err = ctx.Err(); err != nil {
		return nil, "", err
	}

	return desc, Emit(desc), nil
}
