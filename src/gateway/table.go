package gateway

import (
	"context"
	"strings"

	"github.com/a-h/templ"

	"audio-briefing/src/render"
)

const cellStyle = "padding:4px 8px;border-bottom:1px solid #ddd"

// AnswersTable renders the answers as a two-column HTML table
func AnswersTable(question, answer string, rows []Row) templ.Component {
	left := render.Attrs{render.Attr("align", "left")}
	cell := render.Attrs{render.Attr("style", cellStyle)}

	body := make([]templ.Component, 0, len(rows))
	for _, row := range rows {
		body = append(body, render.El("tr", nil,
			render.El("td", cell, render.El("strong", nil, render.Text(row.Question))),
			render.El("td", cell, multiline(row.Answer)),
		))
	}

	return render.El("table", render.Attrs{render.Attr("style", "border-collapse:collapse;width:100%")},
		render.El("thead", nil, render.El("tr", nil,
			render.El("th", left, render.Text(question)),
			render.El("th", left, render.Text(answer)),
		)),
		render.El("tbody", nil, body...),
	)
}

// multiline keeps the line breaks of free text
func multiline(s string) templ.Component {
	lines := strings.Split(s, "\n")
	parts := make([]templ.Component, 0, 2*len(lines))
	for i, line := range lines {
		if i > 0 {
			parts = append(parts, render.El("br", nil))
		}
		parts = append(parts, render.Text(line))
	}
	return render.Fragment(parts...)
}

func renderToString(ctx context.Context, c templ.Component) (string, error) {
	var b strings.Builder
	if err := c.Render(ctx, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}
