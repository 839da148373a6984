package types

import "github.com/google/uuid"

// SpeakerStyle is one voice variant of a speaker. Its ID is the speaker id
// passed to the inference calls.
type SpeakerStyle struct {
	// example: 0
	ID int64 `json:"id" yaml:"id" toml:"id" example:"0"`
	// example: Normal
	Name string `json:"name" yaml:"name" toml:"name" example:"Normal"`
}

// SpeakerMeta describes a speaker and its styles as reported by the engine.
type SpeakerMeta struct {
	// example: Shikoku Metan
	Name   string         `json:"name" yaml:"name" toml:"name" example:"Shikoku Metan"`
	Styles []SpeakerStyle `json:"styles" yaml:"styles" toml:"styles"`
	// example: 7ffcb7ce-00ec-4bdc-82cd-45a8889e43ff
	SpeakerUUID string `json:"speaker_uuid" yaml:"speaker_uuid" toml:"speaker_uuid" example:"7ffcb7ce-00ec-4bdc-82cd-45a8889e43ff"`
	// example: 0.10.0
	Version string `json:"version" yaml:"version" toml:"version" example:"0.10.0"`
}

// UUID parses SpeakerUUID. The engine reports it as free text, so callers that
// need a typed id must be ready for an error.
func (m SpeakerMeta) UUID() (uuid.UUID, error) {
	return uuid.Parse(m.SpeakerUUID)
}

// Style returns the style with the given id.
func (m SpeakerMeta) Style(id int64) (SpeakerStyle, bool) {
	for _, s := range m.Styles {
		if s.ID == id {
			return s, true
		}
	}
	return SpeakerStyle{}, false
}

// FindStyle returns the first speaker owning style id, along with the style.
func FindStyle(metas []SpeakerMeta, id int64) (SpeakerMeta, SpeakerStyle, bool) {
	for _, m := range metas {
		if s, ok := m.Style(id); ok {
			return m, s, true
		}
	}
	return SpeakerMeta{}, SpeakerStyle{}, false
}
