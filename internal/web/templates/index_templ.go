// Rendering of index.templ, maintained by hand; `templ generate` replaces this file.

package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/emiliopalmerini/mood/internal/util"
)

// Index renders the vocabulary reference page with the most recent records.
func Index(data IndexData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}

		p.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>mood</title></head><body>`)
		p.raw(`<h1>mood</h1>`)

		p.raw(`<section id="valence"><h2>Valence</h2><table><thead><tr><th>Level</th><th>Key</th><th>Score</th></tr></thead><tbody>`)
		for _, v := range data.Vocabulary.ValenceLevels {
			p.raw(`<tr><td>`)
			p.text(v.Name)
			p.raw(`</td><td><code>`)
			p.text(v.Key)
			p.raw(`</code></td><td>`)
			p.text(formatScore(v.Score))
			p.raw(`</td></tr>`)
		}
		p.raw(`</tbody></table></section>`)

		p.raw(`<section id="kinds"><h2>Record kinds</h2><ul>`)
		for _, k := range data.Vocabulary.Kinds {
			p.raw(`<li><strong>`)
			p.text(k.Name)
			p.raw(`</strong> stored as <code>`)
			p.text(k.Scope)
			p.raw(`</code>`)
			if k.RequiresSelection {
				p.raw(` (requires at least one label and one association)`)
			}
			p.raw(`</li>`)
		}
		p.raw(`</ul></section>`)

		p.vocabList("labels", "Labels", data.Vocabulary.Labels)
		p.vocabList("associations", "Associations", data.Vocabulary.Associations)

		p.raw(`<section id="recent"><h2>Recent records</h2>`)
		if len(data.Recent) == 0 {
			p.raw(`<p>No records yet.</p>`)
		} else {
			p.raw(`<table><thead><tr><th>When</th><th>Kind</th><th>Valence</th><th>Labels</th><th>Associations</th></tr></thead><tbody>`)
			for _, r := range data.Recent {
				p.raw(`<tr><td>`)
				p.text(util.FormatDateTime(r.Timestamp))
				p.raw(`</td><td>`)
				p.text(r.Kind.String())
				p.raw(`</td><td>`)
				p.text(formatValence(r))
				p.raw(`</td><td>`)
				p.text(joinLabels(r.Labels))
				p.raw(`</td><td>`)
				p.text(joinAssociations(r.Associations))
				p.raw(`</td></tr>`)
			}
			p.raw(`</tbody></table>`)
		}
		p.raw(`</section></body></html>`)

		return p.err
	})
}

// printer keeps the first write error so the markup above reads linearly.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *printer) text(s string) {
	p.raw(templ.EscapeString(s))
}

func (p *printer) vocabList(id, title string, entries []VocabularyEntry) {
	p.raw(`<section id="`)
	p.text(id)
	p.raw(`"><h2>`)
	p.text(title)
	p.raw(`</h2><ul>`)
	for _, e := range entries {
		p.raw(`<li title="`)
		p.text(e.Key)
		p.raw(`">`)
		p.text(e.Name)
		p.raw(`</li>`)
	}
	p.raw(`</ul></section>`)
}
