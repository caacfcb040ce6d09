package graphql

import (
	"encoding/json"

	gerrors "github.com/shyptr/gqlexec/errors"
)

// Response is the result of a single Do call: the completed data (an
// *OrderedMap, a scalar, or nil if a non-null field bubbled all the way to
// the root), every located error gathered along the way, and, when the
// operation used @defer/@stream, the incremental patches queued to follow
// it. Executed distinguishes a root-level null produced by execution
// (Data is nil but present) from a request that never got to execute at
// all (Data has no meaning and is omitted from the wire response) - the
// difference between GraphQL's {"data": null, "errors": [...]} and
// {"errors": [...]}.
type Response struct {
	Data        interface{}
	Errors      gerrors.MultiError
	Incremental []*Patch
	Executed    bool
}

// HasNext reports whether more incremental payloads follow the initial one,
// the "hasNext" field the multipart response protocol expects on every
// payload but the last.
func (r *Response) HasNext() bool {
	return len(r.Incremental) > 0
}

// responseJSON is Response's initial-payload wire shape once execution has
// begun: Data has no omitempty, since a root-level null must still appear
// as "data": null rather than vanish.
type responseJSON struct {
	Data       interface{}            `json:"data"`
	Errors     gerrors.MultiError     `json:"errors,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
	HasNext    *bool                  `json:"hasNext,omitempty"`
}

// requestErrorJSON is the wire shape for a request that failed before
// execution began (parse/validation failure): no "data" key at all.
type requestErrorJSON struct {
	Errors     gerrors.MultiError     `json:"errors,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

// MarshalJSON emits the initial GraphQL response payload. Incremental
// patches, if any, are delivered separately by whatever transport is
// streaming this Response (see PatchJSON) since they arrive over time, not
// as part of this document.
func (r *Response) MarshalJSON() ([]byte, error) {
	if !r.Executed {
		return json.Marshal(requestErrorJSON{Errors: r.Errors})
	}
	out := responseJSON{Data: r.Data, Errors: r.Errors}
	if r.HasNext() {
		hasNext := true
		out.HasNext = &hasNext
	}
	return json.Marshal(out)
}

// patchJSON is one incremental payload's wire shape, following the
// GraphQL-over-HTTP incremental delivery convention: a "path" locating it in
// the response tree that's being patched, an optional "label" copied from
// the @defer/@stream directive that produced it, and its own data/errors.
type patchJSON struct {
	Path    []interface{}      `json:"path"`
	Label   string             `json:"label,omitempty"`
	Data    interface{}        `json:"data,omitempty"`
	Errors  gerrors.MultiError `json:"errors,omitempty"`
	HasNext bool               `json:"hasNext"`
}

// PatchJSON marshals one incremental Patch, tagging it with whether further
// patches are still to come.
func PatchJSON(p *Patch, hasNext bool) ([]byte, error) {
	return json.Marshal(patchJSON{
		Path:    p.Path,
		Label:   p.Label,
		Data:    p.Data,
		Errors:  p.Errors,
		HasNext: hasNext,
	})
}
