// internal/httpserver/page.go
//
// Server-rendered puzzle page. The grid is rendered as a 10x10 table; a small
// script handles pointer dragging, posts released paths to /game/{id}/select,
// follows the timer over the websocket, and shows the completion overlay.

package httpserver

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordsearch/internal/game"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// pageData feeds templates/index.html.
type pageData struct {
	Title  string
	GameID string
	Date   string // daily puzzles only
	Played bool   // daily puzzle already solved today
	Cells  [][]string
	Game   *game.Snapshot
}

// handlePage renders a fresh free-play puzzle.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	sess, err := s.startFreeGame(w, r, newGameReq{})
	if err != nil {
		writeGameError(w, r, err)
		return
	}
	snap := sess.Snapshot()
	s.renderPage(w, r, pageData{Title: "Word Search", GameID: sess.ID, Game: &snap})
}

// handleDailyPage renders today's puzzle, or a notice when it is already solved.
func (s *Server) handleDailyPage(w http.ResponseWriter, r *http.Request) {
	res, err := s.daily.start(w, r)
	if err != nil {
		writeGameError(w, r, err)
		return
	}
	s.renderPage(w, r, pageData{
		Title:  "Daily Word Search " + res.Date,
		GameID: res.GameID,
		Date:   res.Date,
		Played: res.Played,
		Game:   res.Game,
	})
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, data pageData) {
	if data.Game != nil {
		data.Cells = cells(data.Game)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, data); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("render page")
	}
}

// cells splits the grid into one-letter strings for the table.
func cells(snap *game.Snapshot) [][]string {
	rows := snap.Grid.Rows()
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = make([]string, len(row))
		for j := range row {
			out[i][j] = row[j : j+1]
		}
	}
	return out
}
