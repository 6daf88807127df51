package devtools

import (
	"fmt"
	"html"
	"os"
	"strings"
	"time"

	"gallerymaze/pkg/game/catalog"
	"gallerymaze/pkg/game/generator"
	"gallerymaze/pkg/game/renderer"
)

// SaveLayoutHTML saves the layout as a standalone HTML page. An empty
// filename picks a timestamped one. Returns the filename written.
func SaveLayoutHTML(res *generator.Result, filename string) (string, error) {
	if filename == "" {
		filename = fmt.Sprintf("layout-%s.html", time.Now().Format("20060102-150405"))
	}
	if err := os.WriteFile(filename, []byte(LayoutHTML(res)), 0o644); err != nil {
		return "", err
	}
	return filename, nil
}

// LayoutHTML renders the layout as an HTML page with one span per cell
func LayoutHTML(res *generator.Result) string {
	s := renderer.NewScene(res)

	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Gallery layout</title>
    <style>
        body {
            background-color: #1a1a2e;
            color: #eee;
            font-family: 'Courier New', monospace;
            padding: 20px;
        }
        .header {
            color: #bb86fc;
            font-size: 18px;
            margin-bottom: 10px;
        }
        .map-container {
            background-color: #0f0f1a;
            padding: 20px;
            border-radius: 8px;
            display: inline-block;
            margin: 20px 0;
        }
        .map-row {
            white-space: pre;
            line-height: 1.2;
            font-size: 16px;
        }
        .start { color: #00ff00; font-weight: bold; }
        .void { color: #1a1a2e; }
        .corridor { color: #888; }
        .normal { color: #6f8fff; }
        .aggro { color: #ff4444; font-weight: bold; }
        .safe { color: #00aa00; }
        .legend { margin-top: 20px; color: #888; }
    </style>
</head>
<body>
`)

	b.WriteString(fmt.Sprintf(`    <div class="header">Seed %d, %d attempt(s)</div>`+"\n", res.Seed, res.Attempts))
	if !res.Success {
		b.WriteString(`    <div class="aggro">No layout found</div>` + "\n</body>\n</html>\n")
		return b.String()
	}

	b.WriteString(`    <div class="map-container">` + "\n")
	for y := 0; y < s.Height; y++ {
		b.WriteString(`        <div class="map-row">`)
		for x := 0; x < s.Width; x++ {
			icon, class := cellHTMLInfo(s, x, y)
			b.WriteString(fmt.Sprintf(`<span class="%s">%s</span>`, class, icon))
		}
		b.WriteString("</div>\n")
	}
	b.WriteString(`    </div>` + "\n")

	b.WriteString(`    <div class="legend">` + "\n")
	for _, e := range s.Legend {
		b.WriteString(fmt.Sprintf(`        <div><span class="%s">%c</span> %s x%d</div>`+"\n",
			kindClass(e.Kind), e.Glyph, html.EscapeString(string(e.Room)), e.Count))
	}
	b.WriteString(`    </div>` + "\n")
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// cellHTMLInfo returns the icon and CSS class for a cell
func cellHTMLInfo(s *renderer.Scene, x, y int) (string, string) {
	if room, ok := s.RoomAt(x, y); ok {
		if s.IsStart(x, y) {
			return html.EscapeString(string(room.Glyph)), "start"
		}
		return html.EscapeString(string(room.Glyph)), kindClass(room.Kind)
	}
	if s.IsUnassigned(x, y) {
		if s.IsStart(x, y) {
			return "@", "start"
		}
		return ".", "corridor"
	}
	return "#", "void"
}

func kindClass(kind catalog.Kind) string {
	return kind.String()
}
