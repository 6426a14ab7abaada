// Package api provides the REST API server for chordkey
package api

import (
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/james-see/chordkey/pkg/render"
	"github.com/james-see/chordkey/pkg/theory"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title chordkey API
// @version 1.0
// @description Chord tones and major-key degrees from integer pitches
// @host localhost:8080
// @BasePath /api/v1

// maxUpload bounds the MIDI file accepted by /analyze
const maxUpload = 8 << 20

// StartServer starts the API server on the specified port
func StartServer(port int) error {
	return NewRouter().Run(fmt.Sprintf(":%d", port))
}

// NewRouter builds the gin engine with every route registered
func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(requestIDMiddleware())
	r.Use(corsMiddleware())

	r.GET("/health", healthCheck)

	v1 := r.Group(basePath)
	for _, rt := range v1Routes {
		v1.Handle(rt.Method, rt.Path, rt.handler)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

const basePath = "/api/v1"

// Route is one endpoint served under /api/v1
type Route struct {
	Method  string
	Path    string
	handler gin.HandlerFunc
}

var v1Routes = []Route{
	{http.MethodGet, "/health", healthCheck},
	{http.MethodGet, "/qualities", listQualities},
	{http.MethodGet, "/chord", getChord},
	{http.MethodGet, "/chord/midi", getChordMIDI},
	{http.MethodGet, "/key", getKey},
	{http.MethodGet, "/key/degree/:n", getKeyDegree},
	{http.MethodGet, "/key/position", getKeyPosition},
	{http.MethodGet, "/key/midi", getKeyMIDI},
	{http.MethodPost, "/analyze", analyzeMIDI},
}

// Routes lists the versioned endpoints with their full paths
func Routes() []Route {
	routes := make([]Route, len(v1Routes))
	for i, rt := range v1Routes {
		routes[i] = Route{Method: rt.Method, Path: basePath + rt.Path}
	}
	return routes
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// QualityInfo describes one chord quality
type QualityInfo struct {
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
	Offsets []int  `json:"offsets"`
}

// ChordResponse is returned by /chord
type ChordResponse struct {
	Name      string   `json:"name"`
	Root      int      `json:"root"`
	Quality   string   `json:"quality"`
	Inversion string   `json:"inversion"`
	Notes     []int    `json:"notes"`
	Names     []string `json:"names"`
	Degrees   []int    `json:"degrees"`
}

// KeyResponse is returned by /key
type KeyResponse struct {
	Name  string   `json:"name"`
	Root  int      `json:"root"`
	Notes []int    `json:"notes"`
	Names []string `json:"names"`
}

// DegreeResponse is returned by /key/degree/:n
type DegreeResponse struct {
	Root  int    `json:"root"`
	Index int    `json:"index"`
	Note  int    `json:"note"`
	Name  string `json:"name"`
}

// PositionResponse is returned by /key/position. Position is null when the
// note is not in the key.
type PositionResponse struct {
	Root     int  `json:"root"`
	Note     int  `json:"note"`
	Position *int `json:"position"`
	Diatonic bool `json:"diatonic"`
}

// ErrorResponse carries a client-facing error message
type ErrorResponse struct {
	Error string `json:"error"`
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}

func pitchParam(c *gin.Context, name string) (theory.Pitch, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return 0, fmt.Errorf("missing %s parameter", name)
	}
	p, err := theory.ParsePitch(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return p, nil
}

// floatParam reads a finite number, falling back to def when absent
func floatParam(c *gin.Context, name string, def float64) (float64, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s: %q is not a finite number", name, raw)
	}
	return v, nil
}

func tempoParam(c *gin.Context) (float64, error) {
	tempo, err := floatParam(c, "tempo", 120)
	if err != nil {
		return 0, err
	}
	if tempo <= 0 {
		return 0, fmt.Errorf("tempo: %v must be positive", tempo)
	}
	return tempo, nil
}

func chordParams(c *gin.Context) (theory.Chord, error) {
	root, err := pitchParam(c, "root")
	if err != nil {
		return theory.Chord{}, err
	}
	quality, err := theory.ParseQuality(c.DefaultQuery("quality", "major"))
	if err != nil {
		return theory.Chord{}, err
	}
	inversion, err := theory.ParseInversion(c.Query("inversion"))
	if err != nil {
		return theory.Chord{}, err
	}
	return theory.Chord{Root: root, Quality: quality, Inversion: inversion}, nil
}

func pitchesToInts(ps []theory.Pitch) ([]int, []string) {
	ints := make([]int, len(ps))
	names := make([]string, len(ps))
	for i, p := range ps {
		ints[i] = int(p)
		names[i] = p.String()
	}
	return ints, names
}

// healthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "chordkey",
	})
}

// listQualities godoc
// @Summary List chord qualities
// @Description Returns every supported chord quality with its semitone offsets
// @Tags info
// @Produce json
// @Success 200 {object} map[string][]QualityInfo
// @Router /api/v1/qualities [get]
func listQualities(c *gin.Context) {
	qs := theory.Qualities()
	res := make([]QualityInfo, len(qs))
	for i, q := range qs {
		res[i] = QualityInfo{Name: q.String(), Symbol: q.Symbol(), Offsets: q.Offsets()}
	}
	c.JSON(http.StatusOK, gin.H{
		"qualities":  res,
		"inversions": []string{theory.Root.String(), theory.First.String(), theory.Second.String()},
	})
}

// getChord godoc
// @Summary Chord tones
// @Description Returns the pitches of a chord in chord-tone order. Inverted tones keep their index.
// @Tags chord
// @Produce json
// @Param root query string true "Root pitch, integer or name (C4 = 60)"
// @Param quality query string false "Chord quality (default: major)"
// @Param inversion query string false "root, first or second (default: root)"
// @Success 200 {object} ChordResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/chord [get]
func getChord(c *gin.Context) {
	chord, err := chordParams(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	notes := chord.Notes()
	ints, names := pitchesToInts(notes)
	c.JSON(http.StatusOK, ChordResponse{
		Name:      chord.Name(),
		Root:      int(chord.Root),
		Quality:   chord.Quality.String(),
		Inversion: chord.Inversion.String(),
		Notes:     ints,
		Names:     names,
		Degrees:   theory.Key{Root: chord.Root}.Degrees(notes),
	})
}

// getChordMIDI godoc
// @Summary Chord as MIDI
// @Description Renders a chord as a block chord in a Standard MIDI File
// @Tags chord
// @Produce audio/midi
// @Param root query string true "Root pitch"
// @Param quality query string false "Chord quality (default: major)"
// @Param inversion query string false "Inversion (default: root)"
// @Param beats query number false "Length in quarter notes (default: 4)"
// @Param tempo query number false "Tempo in BPM (default: 120)"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/chord/midi [get]
func getChordMIDI(c *gin.Context) {
	chord, err := chordParams(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	beats, err := floatParam(c, "beats", 4)
	if err != nil {
		badRequest(c, err)
		return
	}
	tempo, err := tempoParam(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	data, err := render.NewMIDIRenderer().WithTempo(tempo).RenderChords([]theory.Chord{chord}, beats)
	if err != nil {
		badRequest(c, err)
		return
	}
	sendMIDI(c, chord.Name(), data)
}

// getKey godoc
// @Summary Major key notes
// @Description Returns the eight notes of the major key, root to octave
// @Tags key
// @Produce json
// @Param root query string true "Key root pitch"
// @Success 200 {object} KeyResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/key [get]
func getKey(c *gin.Context) {
	root, err := pitchParam(c, "root")
	if err != nil {
		badRequest(c, err)
		return
	}

	k := theory.Key{Root: root}
	notes := k.Notes()
	ints, names := pitchesToInts(notes[:])
	c.JSON(http.StatusOK, KeyResponse{
		Name:  k.Name(),
		Root:  int(root),
		Notes: ints,
		Names: names,
	})
}

// getKeyDegree godoc
// @Summary Nth note in key
// @Description Returns the key note at index n (0-7, 7 is the octave)
// @Tags key
// @Produce json
// @Param n path int true "Index into the key, 0-7"
// @Param root query string true "Key root pitch"
// @Success 200 {object} DegreeResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/key/degree/{n} [get]
func getKeyDegree(c *gin.Context) {
	root, err := pitchParam(c, "root")
	if err != nil {
		badRequest(c, err)
		return
	}
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil {
		badRequest(c, fmt.Errorf("n: %w", err))
		return
	}

	note, err := theory.NthNoteInKey(root, n)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, DegreeResponse{
		Root:  int(root),
		Index: n,
		Note:  int(note),
		Name:  note.String(),
	})
}

// getKeyPosition godoc
// @Summary Scale degree of a note
// @Description Returns the 1-based scale degree of note in the major key on root, or null
// @Tags key
// @Produce json
// @Param root query string true "Key root pitch"
// @Param note query string true "Pitch to look up"
// @Success 200 {object} PositionResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/key/position [get]
func getKeyPosition(c *gin.Context) {
	root, err := pitchParam(c, "root")
	if err != nil {
		badRequest(c, err)
		return
	}
	note, err := pitchParam(c, "note")
	if err != nil {
		badRequest(c, err)
		return
	}

	res := PositionResponse{Root: int(root), Note: int(note)}
	if pos, ok := theory.PositionInKey(root, note); ok {
		res.Position = &pos
		res.Diatonic = true
	}
	c.JSON(http.StatusOK, res)
}

// getKeyMIDI godoc
// @Summary Major scale as MIDI
// @Description Renders the key's eight notes as an ascending scale
// @Tags key
// @Produce audio/midi
// @Param root query string true "Key root pitch"
// @Param tempo query number false "Tempo in BPM (default: 120)"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/key/midi [get]
func getKeyMIDI(c *gin.Context) {
	root, err := pitchParam(c, "root")
	if err != nil {
		badRequest(c, err)
		return
	}
	tempo, err := tempoParam(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	k := theory.Key{Root: root}
	data, err := render.NewMIDIRenderer().WithTempo(tempo).RenderKey(k)
	if err != nil {
		badRequest(c, err)
		return
	}
	sendMIDI(c, root.Class()+"-major", data)
}

// analyzeMIDI godoc
// @Summary Scale degrees of a MIDI file
// @Description Upload a MIDI file and receive every note-on tagged with its degree in the major key on root
// @Tags analyze
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "MIDI file to analyze"
// @Param root query string true "Key root pitch"
// @Success 200 {object} render.KeyReport
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/analyze [post]
func analyzeMIDI(c *gin.Context) {
	root, err := pitchParam(c, "root")
	if err != nil {
		badRequest(c, err)
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No file uploaded"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, maxUpload))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read file"})
		return
	}

	report, err := render.AnalyzeKey(data, theory.Key{Root: root})
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func sendMIDI(c *gin.Context, name string, data []byte) {
	name = strings.NewReplacer("/", "_", "#", "s").Replace(name)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.mid", name))
	c.Data(http.StatusOK, "audio/midi", data)
}
