package httpapi

import (
	"voicevoxcore/pkg/types"
	"voicevoxcore/pkg/voicevox"
)

type mockService struct {
	state    voicevox.State
	metas    []types.SpeakerMeta
	metasErr error
	lastErr  string
	lastErrE error
}

func (m *mockService) State() voicevox.State { return m.state }
func (m *mockService) Ready() bool           { return m.state == voicevox.StateInitialized }
func (m *mockService) Metas() ([]types.SpeakerMeta, error) {
	if m.metasErr != nil {
		return nil, m.metasErr
	}
	return append([]types.SpeakerMeta(nil), m.metas...), nil
}
func (m *mockService) LastErrorMessage() (string, error) { return m.lastErr, m.lastErrE }

func sampleMetas() []types.SpeakerMeta {
	return []types.SpeakerMeta{
		{Name: "A", SpeakerUUID: "7ffcb7ce-00ec-4bdc-82cd-45a8889e43ff", Version: "1.0", Styles: []types.SpeakerStyle{{ID: 0, Name: "Normal"}}},
		{Name: "B", SpeakerUUID: "388f246b-8c41-4ac1-8e2d-5d79f3ff56d9", Version: "1.0", Styles: []types.SpeakerStyle{{ID: 2, Name: "Sweet"}, {ID: 3, Name: "Tsun"}}},
	}
}
