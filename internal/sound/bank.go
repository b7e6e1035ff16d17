// Package sound voices the game: a drone that follows sync and short cues for
// every judgement.
package sound

// Bank is fire-and-forget. No call may block the frame loop.
type Bank interface {
	OnAmbient(syncRate float64)
	OnHit(accuracy float64)
	OnMiss()
	OnFlowEnter()
	OnAnticipationRipple()
}

// Null discards every cue.
type Null struct{}

func (Null) OnAmbient(float64) {}
func (Null) OnHit(float64) {}
func (Null) OnMiss() {}
func (Null) OnFlowEnter() {}
func (Null) OnAnticipationRipple() {}

// Recorder keeps the cues it receives, in order, for tests and replays.
type Recorder struct {
	Cues []Cue
}

type Cue struct {
	Name  string
	Value float64
}

func (r *Recorder) OnAmbient(s float64) { r.Cues = append(r.Cues, Cue{"ambient", s}) }
func (r *Recorder) OnHit(a float64) { r.Cues = append(r.Cues, Cue{"hit", a}) }
func (r *Recorder) OnMiss() { r.Cues = append(r.Cues, Cue{Name: "miss"}) }
func (r *Recorder) OnFlowEnter() { r.Cues = append(r.Cues, Cue{Name: "flow"}) }
func (r *Recorder) OnAnticipationRipple() { r.Cues = append(r.Cues, Cue{Name: "ripple"}) }

// Names lists the cue names in order.
func (r *Recorder) Names() []string {
	names := make([]string, len(r.Cues))
	for i, c := range r.Cues {
		names[i] = c.Name
	}
	return names
}
