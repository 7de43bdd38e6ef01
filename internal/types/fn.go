package types //nolint:revive

import (
	"fmt"
	"slices"
	"strings"

	"fortio.org/safecast"
)

// FnInfo is the signature behind a KindFn type.
type FnInfo struct {
	Params []TypeID
	Result TypeID
}

// signature is the dedup key of a function type: "p1,p2>r" over raw ids.
func signature(params []TypeID, result TypeID) string {
	var sb strings.Builder
	for i, p := range params {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprint(&sb, uint32(p))
	}
	fmt.Fprintf(&sb, ">%d", uint32(result))
	return sb.String()
}

// RegisterFn returns the one TypeID for (params) => result.
func (in *Interner) RegisterFn(params []TypeID, result TypeID) TypeID {
	key := signature(params, result)
	if id, ok := in.fnIndex[key]; ok {
		return id
	}
	in.fns = append(in.fns, FnInfo{Params: slices.Clone(params), Result: result})
	slot, err := safecast.Conv[uint32](len(in.fns) - 1)
	if err != nil {
		panic(fmt.Errorf("fn info overflow: %w", err))
	}
	id := in.internRaw(Type{Kind: KindFn, Payload: slot})
	in.fnIndex[key] = id
	return id
}

// FnInfo is false for anything but a function type.
func (in *Interner) FnInfo(id TypeID) (*FnInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindFn || int(tt.Payload) >= len(in.fns) {
		return nil, false
	}
	return &in.fns[tt.Payload], true
}
