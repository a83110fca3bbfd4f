// Package ids turns backend record ids into opaque references for URLs and
// back.
package ids

import (
	"errors"
	"fmt"

	"github.com/speps/go-hashids/v2"
)

var ErrInvalidRef = errors.New("invalid reference")

const minLength = 8

type Codec struct {
	h *hashids.HashID
}

func NewCodec(salt string) (*Codec, error) {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = minLength
	h, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, fmt.Errorf("hashids: %w", err)
	}
	return &Codec{h: h}, nil
}

// Encode returns the reference for id. Backend ids are never negative; a
// negative id encodes to "".
func (c *Codec) Encode(id int64) string {
	ref, err := c.h.EncodeInt64([]int64{id})
	if err != nil {
		return ""
	}
	return ref
}

// Decode returns the id behind ref, or ErrInvalidRef.
func (c *Codec) Decode(ref string) (int64, error) {
	nums, err := c.h.DecodeInt64WithError(ref)
	if err != nil || len(nums) != 1 {
		return 0, ErrInvalidRef
	}
	// a ref that does not re-encode to itself was not minted here
	if c.Encode(nums[0]) != ref {
		return 0, ErrInvalidRef
	}
	return nums[0], nil
}
