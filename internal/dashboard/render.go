package dashboard

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// RoverButtonsID is the container the render fills with rover buttons.
const RoverButtonsID = "rover-buttons"

var shellTmpl = template.Must(template.New("shell").Parse(`<main>
	<h1 class="title">Welcome to Mars dashboard</h1>
	<section>
		<div class="intro">{{.}}</div>
		<div id="rover-buttons"></div>
	</section>
</main>`))

// View paints the page shell and the rover buttons.
type View struct {
	shell    string
	onSelect func(rover string)
}

// NewView renders the Markdown intro once and returns a View whose rover
// buttons call onSelect when clicked.
func NewView(introMarkdown string, onSelect func(rover string)) (*View, error) {
	intro, err := renderIntro(introMarkdown)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := shellTmpl.Execute(&buf, intro); err != nil {
		return nil, fmt.Errorf("rendering shell: %w", err)
	}
	return &View{shell: buf.String(), onSelect: onSelect}, nil
}

// Render repaints the whole page from state.
//
// This is a full repaint: whatever was appended to #root outside the shell,
// such as the loading indicator or a gallery container, is discarded. The
// gallery loader relies on this ordering, since the repaint triggered by its
// own store update happens before it appends the new gallery.
//
// The document reports a single change once the buttons are in place.
func (v *View) Render(doc *Document, state AppState) error {
	return doc.Batch(func() error {
		if err := doc.SetInnerHTML(RootID, v.shell); err != nil {
			return fmt.Errorf("painting shell: %w", err)
		}
		return v.showRoverButtons(doc, state.Rovers())
	})
}

func (v *View) showRoverButtons(doc *Document, rovers []string) error {
	for _, rover := range rovers {
		button, err := doc.AppendElement(RoverButtonsID, "button", map[string]string{
			"class": "btn-rover",
		}, template.HTMLEscapeString(rover))
		if err != nil {
			return fmt.Errorf("adding %s button: %w", rover, err)
		}
		if v.onSelect != nil {
			doc.On(button, RoverRef(rover), func() { v.onSelect(rover) })
		}
	}
	return nil
}

// RoverRef is the click reference of a rover's button.
func RoverRef(rover string) string {
	return "rover:" + rover
}

func renderIntro(markdown string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("converting intro markdown: %w", err)
	}
	return template.HTML(bluemonday.UGCPolicy().SanitizeBytes(buf.Bytes())), nil
}
