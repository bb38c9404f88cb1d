package waykit

import "encoding/json"

// SpokenInstruction is a voice prompt attached to a route step.
type SpokenInstruction struct {
	// DistanceAlongStep is the distance along the step, in meters, at
	// which to read the instruction aloud.
	DistanceAlongStep float64 `json:"distanceAlongGeometry"`

	// Text is the plain-text form of the announcement.
	Text string `json:"announcement"`

	// SSMLText is the announcement marked up for speech synthesis.
	SSMLText string `json:"ssmlAnnouncement"`
}

// UnmarshalJSON decodes the wire document. All three keys are required;
// a missing one fails the decode with a MissingFieldError.
func (s *SpokenInstruction) UnmarshalJSON(data []byte) error {
	var doc struct {
		Distance *float64 `json:"distanceAlongGeometry"`
		Text     *string  `json:"announcement"`
		SSMLText *string  `json:"ssmlAnnouncement"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc.Distance == nil {
		return &MissingFieldError{Field: "distanceAlongGeometry"}
	}
	if doc.Text == nil {
		return &MissingFieldError{Field: "announcement"}
	}
	if doc.SSMLText == nil {
		return &MissingFieldError{Field: "ssmlAnnouncement"}
	}
	s.DistanceAlongStep = *doc.Distance
	s.Text = *doc.Text
	s.SSMLText = *doc.SSMLText
	return nil
}
