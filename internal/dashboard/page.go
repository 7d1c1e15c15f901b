package dashboard

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const indexHTML = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Botcepter</title>
  </head>
  <body>
    <h1>Botcepter</h1>
    <p>Bot testing dashboard. The form, results, and chat views load from the /api endpoints.</p>
  </body>
</html>`

// indexPage is the HTML shell served at the root. The rendering layer
// proper lives client-side; the server only hosts the shell and the JSON
// API.
func indexPage() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, indexHTML)
		return err
	})
}
