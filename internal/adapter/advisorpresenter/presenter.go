package advisorpresenter

import "strings"

// Presenter delivers formatted analysis text without coupling to the event layer.
type Presenter struct {
	pushText func(room, text string) error
}

func NewPresenter(pushText func(room, text string) error) *Presenter {
	return &Presenter{pushText: pushText}
}

// Text pushes one rendered block to a room. Blank text is dropped so
// formatters can return "" for frames with nothing to say.
func (p *Presenter) Text(room, text string) error {
	if p == nil || p.pushText == nil {
		return nil
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return p.pushText(room, text)
}
