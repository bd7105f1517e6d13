package pages

import (
	"html/template"

	"github.com/kaulkaran/huti/catalog"
)

// PlaylistData is everything the shared playlist page renders.
type PlaylistData struct {
	Songs  []catalog.Song
	Visits int
}

var Playlist = template.Must(template.New("playlist").Parse(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>Our Playlist</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            line-height: 1.6;
            max-width: 800px;
            margin: 0 auto;
            padding: 20px;
        }
        pre {
            white-space: pre-wrap;
            word-wrap: break-word;
        }
        img {
            max-width: 160px;
        }
    </style>
</head>
<body>
    <h1>Welcome to Our Playlist</h1>
    <h2>Bindu ❤️</h2>
    <p>A collection of songs that tell our story, capture our moments, and express my love for you.</p>
    {{range .Songs}}
    <section id="song-{{.ID}}">
        <h3>{{.Title}}</h3>
        <p>{{.Artist}}</p>
        {{if .ImageURL}}<img src="{{.ImageURL}}" alt="{{.Title}}">{{end}}
        {{if .AudioURL}}<audio controls preload="metadata" src="{{.AudioURL}}"></audio>{{else}}<p>No audio file provided.</p>{{end}}
        <h4>Lyrics</h4>
        <pre>{{.Lyrics}}</pre>
        <h4>Why This Song Is Special</h4>
        <p>{{.Comment}}</p>
    </section>
    {{end}}
    <footer>
        <p>Created with ❤️ by Saksham</p>
        <p>Dedicated to the love of Bindu</p>
        <p>You have visited this website {{.Visits}} times.</p>
    </footer>
</body>
</html>`))
