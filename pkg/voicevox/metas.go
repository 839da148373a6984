package voicevox

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/jsonschema-go/jsonschema"

	"voicevoxcore/internal/ffi"
	"voicevoxcore/pkg/types"
)

// Metas fetches the speaker catalogue from the engine. The payload is read
// fresh on every call. A NULL or empty payload is reported with
// IsMetasUnavailable, a malformed one with IsMetasParse.
func (c *Core) Metas() ([]types.SpeakerMeta, error) {
	const fn = "metas"
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.require(fn, loadedStates...); err != nil {
		return nil, err
	}
	start := time.Now()
	raw, ok := ffi.GoString(c.fn.Metas())
	c.observe(fn, start, ok && raw != "")
	if !ok || raw == "" {
		c.log.Warn().Bool("null", !ok).Msg("metas unavailable")
		return nil, ErrMetasUnavailable()
	}
	return ParseMetas([]byte(raw))
}

// ParseMetas decodes a metas payload after checking it against the
// documented shape.
func ParseMetas(data []byte) ([]types.SpeakerMeta, error) {
	var inst any
	if err := json.Unmarshal(data, &inst); err != nil {
		return nil, metasParseError{err: err}
	}
	schema, err := metasSchema()
	if err != nil {
		return nil, metasParseError{err: err}
	}
	if err := schema.Validate(inst); err != nil {
		return nil, metasParseError{err: err}
	}
	var metas []types.SpeakerMeta
	if err := json.Unmarshal(data, &metas); err != nil {
		return nil, metasParseError{err: err}
	}
	return metas, nil
}

var metasSchema = sync.OnceValues(func() (*jsonschema.Resolved, error) {
	style := &jsonschema.Schema{
		Type:     "object",
		Required: []string{"id", "name"},
		Properties: map[string]*jsonschema.Schema{
			"id":   {Type: "integer"},
			"name": {Type: "string"},
		},
	}
	speaker := &jsonschema.Schema{
		Type:     "object",
		Required: []string{"name", "styles", "speaker_uuid", "version"},
		Properties: map[string]*jsonschema.Schema{
			"name":         {Type: "string"},
			"styles":       {Type: "array", Items: style},
			"speaker_uuid": {Type: "string"},
			"version":      {Type: "string"},
		},
	}
	root := &jsonschema.Schema{Type: "array", Items: speaker}
	return root.Resolve(nil)
})
